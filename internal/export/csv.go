package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM makes Excel open the CSV as UTF-8 instead of guessing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the header and rows to w.
func (s *Service) WriteCSV(w io.Writer, rows []Row) error {
	if s.csvBOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := append([]string{row.Arquivo}, row.Values...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a (possibly user-edited) CSV previously produced by
// WriteCSV. Values come back verbatim; no field validation is applied.
// The header row is required and must have the expected column count.
func (s *Service) ReadCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = len(header())

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{Arquivo: record[0], Values: record[1:]})
	}
	return rows, nil
}
