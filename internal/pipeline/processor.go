package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/guiaslabs/guias-tracker/constants"
	"github.com/guiaslabs/guias-tracker/internal/extract"
	"github.com/guiaslabs/guias-tracker/internal/fields"
)

// Processor coordinates text acquisition then field extraction, one
// document at a time. OCR dominates the cost and is CPU-bound, so the
// batch is processed sequentially.
type Processor struct {
	Acquirer extract.TextExtractor
	Fields   *fields.Extractor
	Logger   *slog.Logger
}

func NewProcessor(acquirer extract.TextExtractor, fx *fields.Extractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Acquirer: acquirer, Fields: fx, Logger: logger}
}

// DocumentResult is one row of the result table.
type DocumentResult struct {
	Path     string
	Filename string
	Fields   fields.GuideFields
	Text     string // acquired text, kept for review dumps
	Method   string
	Pages    int
	Err      string // non-empty when acquisition failed and the file was skipped
}

// Status maps the document outcome to the status stored with its row.
func (r DocumentResult) Status() constants.JobStatus {
	switch {
	case r.Err != "":
		return constants.JobStatusFailed
	case r.Fields.IsEmpty():
		return constants.JobStatusTextOK
	default:
		return constants.JobStatusParseOK
	}
}

// BatchStats summarizes a batch run.
type BatchStats struct {
	Processed int
	Succeeded int
	Skipped   int
}

// ProcessFile acquires text for one document and extracts its fields.
// An empty acquisition yields a row with all fields empty; only a failure
// to read the document at all returns an error.
func (p *Processor) ProcessFile(ctx context.Context, path string) (DocumentResult, error) {
	res := DocumentResult{Path: path, Filename: filepath.Base(path)}

	acq, err := p.Acquirer.Extract(ctx, path)
	if err != nil {
		p.Logger.Warn("acquisition failed, skipping file",
			"file", res.Filename, "error", err)
		res.Err = err.Error()
		return res, err
	}

	res.Text = acq.Text
	res.Method = acq.Method
	res.Pages = acq.Pages
	for _, w := range acq.Warnings {
		p.Logger.Warn("acquisition warning", "file", res.Filename, "warning", w)
	}

	res.Fields = p.Fields.Extract(acq.Text)
	p.Logger.Info("document processed",
		"file", res.Filename,
		"method", acq.Method,
		"pages", acq.Pages,
		"text_bytes", len(acq.Text),
		"fields_empty", res.Fields.IsEmpty(),
	)
	return res, nil
}

// ProcessBatch runs ProcessFile over paths in order. A failing document is
// recorded and skipped; it never aborts the rest of the batch.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) ([]DocumentResult, BatchStats) {
	results := make([]DocumentResult, 0, len(paths))
	var stats BatchStats

	for i, path := range paths {
		p.Logger.Info("processing file", "index", i+1, "total", len(paths), "path", path)
		stats.Processed++

		res, err := p.ProcessFile(ctx, path)
		if err != nil {
			stats.Skipped++
		} else {
			stats.Succeeded++
		}
		results = append(results, res)

		if ctx.Err() != nil {
			break
		}
	}
	return results, stats
}
