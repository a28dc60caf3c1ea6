package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/guiaslabs/guias-tracker/constants"
	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/pdftext"
)

// Config controls the acquisition heuristics.
type Config struct {
	// MinTextLen is the embedded-text length below which a PDF page is
	// treated as scanned and sent to OCR. Default 50.
	MinTextLen int
	// MaxPages caps the number of PDF pages processed; 0 = no limit.
	MaxPages int
}

// Acquirer converts an uploaded document into plain text: embedded PDF
// text where present, OCR output for scanned pages and raster images.
type Acquirer struct {
	cfg    Config
	ocr    Recognizer
	logger *slog.Logger

	// readPages is swappable in tests.
	readPages func(path string) ([]pdftext.Page, error)
}

func NewAcquirer(cfg Config, ocr Recognizer, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = 50
	}
	return &Acquirer{cfg: cfg, ocr: ocr, logger: logger, readPages: pdftext.ReadPages}
}

// Extract picks a strategy based on file extension.
func (a *Acquirer) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	a.logger.Debug("starting text acquisition", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := a.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := a.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		a.logger.Error("unsupported extension", "extension", ext)
		return TextExtractionResult{}, fmt.Errorf("%w: extension %q", common.ErrUnsupportedFormat, ext)
	}
}

// extractPDF reads embedded text per page and falls back to OCR for pages
// whose text layer is shorter than MinTextLen. A document that cannot be
// parsed fails as a whole; a page whose OCR fails yields empty text with a
// warning and the rest of the document continues.
func (a *Acquirer) extractPDF(ctx context.Context, path string) (TextExtractionResult, error) {
	pages, err := a.readPages(path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.PDF}, common.WrapError(err, "open pdf")
	}
	if a.cfg.MaxPages > 0 && len(pages) > a.cfg.MaxPages {
		pages = pages[:a.cfg.MaxPages]
	}

	var b strings.Builder
	var warns []string
	ocrPages := 0
	for _, page := range pages {
		text := page.Text
		if len(strings.TrimSpace(text)) < a.cfg.MinTextLen {
			a.logger.Debug("page below text threshold, running ocr",
				"path", path, "page", page.Number, "embedded_len", len(text))
			ocrText, w, err := a.ocr.PageOCR(ctx, path, page.Number)
			warns = append(warns, w...)
			if err != nil {
				warns = append(warns, fmt.Sprintf("page %d: %v", page.Number, err))
				ocrText = ""
			}
			text = ocrText
			ocrPages++
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}

	method := MethodPDFText
	switch {
	case ocrPages == len(pages) && len(pages) > 0:
		method = MethodPDFOCR
	case ocrPages > 0:
		method = MethodPDFMixed
	}

	return TextExtractionResult{
		Text:       strings.TrimSpace(b.String()),
		Pages:      len(pages),
		SourceType: constants.PDF,
		Method:     method,
		Warnings:   warns,
	}, nil
}

func (a *Acquirer) extractImage(ctx context.Context, path string) (TextExtractionResult, error) {
	txt, warns, err := a.ocr.ImageOCR(ctx, path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.IMAGE, Warnings: warns}, err
	}
	return TextExtractionResult{
		Text:       strings.TrimSpace(txt),
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     MethodImageOCR,
		Warnings:   warns,
	}, nil
}
