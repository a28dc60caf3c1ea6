package fields

// Default pattern lists, ordered most-specific-first: guides follow a
// standardized numbered-field layout when cleanly extracted, but OCR noise
// frequently drops the numeric prefix or label punctuation, so each field
// carries progressively looser fallbacks. The digit-run fallbacks capture
// from four digits up and rely on the configured minimum-length validators
// to reject short false positives.
//
// Name patterns keep the capture class case-sensitive (names start with an
// uppercase letter); only the label part is case-insensitive.
var defaultPatterns = map[string][]string{
	keyRegistroANS: {
		`(?i)1\s*-\s*Registro\s+ANS[:\s]*(\d+)`,
		`(?i)ANS[:\s]*[Nn]?[°º]?\s*(\d{4,})`,
	},
	keyNumeroGuia: {
		`(?i)2\s*-\s*N[uú]mero\s+GUIA[:\s]*(\d[\d.\-]*)`,
		`(?i)GUIA[:\s]*[Nn]?[°º]?\s*(\d[\d.\-]*)`,
	},
	keyDataAutorizacao: {
		`(?i)4\s*-\s*Data\s+de\s+Autoriza[cç][aã]o[:\s]*(\d{2}[/.\-]\d{2}[/.\-]\d{4})`,
		`(?i)Autoriza[cç][aã]o[:\s]*(\d{2}[/.\-]\d{2}[/.\-]\d{4})`,
	},
	keyNome: {
		`(?i:10\s*-\s*Nome)[:\s]+([A-ZÀÁÂÃÇÉÊÍÓÔÕÚ][A-Za-zàáâãçéêíóôõúÀÁÂÃÇÉÊÍÓÔÕÚ\s]+?)(?:\s+\d{2}/|\s+CPF|\s+RG|\s+Cart|\s+\d{3}\.|$)`,
		`(?i:Benefici[aá]rio|Paciente|Nome)[:\s]+([A-ZÀÁÂÃÇÉÊÍÓÔÕÚ][A-Za-zàáâãçéêíóôõúÀÁÂÃÇÉÊÍÓÔÕÚ\s]{2,80}?)(?:\s+CPF|\s+RG|\s+Cart|\s+\d|$)`,
	},
	keyValorConsulta: {
		`(?i)Valor\s+da\s+Consulta[:\s]*R?\$?\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
		`R\$\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
		`(?i)Valor[:\s]*R?\$?\s*(\d{1,3}(?:\.\d{3})*,\d{2})`,
	},
}

// Stable keys used in the pattern-file JSON.
const (
	keyRegistroANS     = "registro_ans"
	keyNumeroGuia      = "numero_guia"
	keyDataAutorizacao = "data_autorizacao"
	keyNome            = "nome"
	keyValorConsulta   = "valor_consulta"
)

var patternKeys = []string{
	keyRegistroANS,
	keyNumeroGuia,
	keyDataAutorizacao,
	keyNome,
	keyValorConsulta,
}
