package extract

import (
	"context"
	"time"
)

// Acquisition methods recorded on results.
const (
	MethodPDFText  = "pdf-text"
	MethodPDFOCR   = "pdf-ocr"
	MethodPDFMixed = "pdf-mixed"
	MethodImageOCR = "image-ocr"
)

// TextExtractor is stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

// TextExtractionResult summarizes one document's text acquisition.
type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // pdf-text | pdf-ocr | pdf-mixed | image-ocr
	Duration   time.Duration
	Warnings   []string
}

// Recognizer is the OCR capability the acquirer depends on.
// *ocr.Engine satisfies it; tests stub it.
type Recognizer interface {
	PageOCR(ctx context.Context, pdfPath string, page int) (string, []string, error)
	ImageOCR(ctx context.Context, path string) (string, []string, error)
}
