package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PageOCR rasterizes a single PDF page and runs OCR on it.
// Page numbers are 1-based. Returns the recognized text, which may be
// empty when the page carries no legible content.
func (e *Engine) PageOCR(ctx context.Context, pdfPath string, page int) (string, []string, error) {
	tmpDir, err := os.MkdirTemp("", "gt-pp-*")
	if err != nil {
		return "", nil, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f N -l N -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", fmt.Sprintf("%d", page),
		"-l", fmt.Sprintf("%d", page),
		"-r", fmt.Sprintf("%d", e.cfg.DPI),
		"-png", pdfPath, prefix)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("pdftoppm page %d: %w", page, err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", []string{"pdftoppm produced no image"}, fmt.Errorf("page %d not rendered", page)
	}

	img := matches[0]
	var warns []string
	if e.cfg.Enhance {
		enhanced, cleanup, err := enhanceForOCR(img)
		if err != nil {
			// OCR the raw render instead; a failed enhancement never fails the page.
			warns = append(warns, fmt.Sprintf("enhance: %v", err))
		} else {
			defer cleanup()
			img = enhanced
		}
	}

	txt, w, err := e.tesseract(ctx, img)
	warns = append(warns, w...)
	if err != nil {
		return "", warns, err
	}
	return Normalize(txt), warns, nil
}
