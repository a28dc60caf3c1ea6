// Package pdftext reads the embedded (digital) text layer of PDF files
// using pdfcpu, page by page. Pages without a text layer come back empty;
// deciding whether such a page needs OCR is the caller's concern.
package pdftext

import (
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Page is one PDF page with its embedded text (possibly empty).
type Page struct {
	Number int // 1-based
	Text   string
}

// ReadPages opens a PDF and returns one Page per document page, in order.
// A page whose content stream yields no text is returned with Text == "".
// A document that cannot be parsed at all returns an error; callers treat
// that as an acquisition failure for the whole document.
func ReadPages(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, ctx.PageCount)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		pages = append(pages, Page{Number: nr, Text: pageText(ctx, nr)})
	}
	return pages, nil
}

// pageText extracts the text of a single page from its content stream.
func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}
