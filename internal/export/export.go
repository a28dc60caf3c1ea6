// Package export renders the result table to CSV and XLSX, and reads
// user-edited CSVs back in verbatim for conversion. Edits are never
// re-validated; whatever the user typed is exported as-is.
package export

import (
	"log/slog"

	"github.com/guiaslabs/guias-tracker/constants"
	"github.com/guiaslabs/guias-tracker/internal/fields"
)

// Row is one line of the export table: the source filename plus the field
// values in reporting order (constants.FieldLabels).
type Row struct {
	Arquivo string
	Values  []string
}

// FromFields builds a Row from an extracted record.
func FromFields(filename string, f fields.GuideFields) Row {
	return Row{Arquivo: filename, Values: f.Values()}
}

// Service renders result tables.
type Service struct {
	sheetName string
	csvBOM    bool
	logger    *slog.Logger
}

func NewService(sheetName string, csvBOM bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheetName == "" {
		sheetName = "Dados Extraídos"
	}
	return &Service{sheetName: sheetName, csvBOM: csvBOM, logger: logger}
}

// header returns the full export header row.
func header() []string {
	return constants.ExportHeader()
}
