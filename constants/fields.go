package constants

// Column labels as they appear on the standardized guide layout. These are
// also the export headers, so they must stay byte-identical across CSV and
// XLSX output.
const (
	LabelArquivo         = "Arquivo"
	LabelRegistroANS     = "1 - Registro ANS"
	LabelNumeroGuia      = "2 - Número GUIA"
	LabelDataAutorizacao = "4 - Data de Autorização"
	LabelNome            = "10 - Nome"
	LabelValorConsulta   = "Valor da Consulta"
)

// FieldLabels is the fixed reporting order of the extracted fields
// (the filename column comes first in exports and is not listed here).
var FieldLabels = []string{
	LabelRegistroANS,
	LabelNumeroGuia,
	LabelDataAutorizacao,
	LabelNome,
	LabelValorConsulta,
}

// ExportHeader is the full export header row: filename plus field labels.
func ExportHeader() []string {
	return append([]string{LabelArquivo}, FieldLabels...)
}
