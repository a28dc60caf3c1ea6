package ocr

import (
	"context"
	"fmt"
)

// ImageOCR runs OCR on a whole raster image file (PNG/JPEG).
func (e *Engine) ImageOCR(ctx context.Context, path string) (string, []string, error) {
	var warns []string
	if e.cfg.Enhance {
		enhanced, cleanup, err := enhanceForOCR(path)
		if err != nil {
			warns = append(warns, fmt.Sprintf("enhance: %v", err))
		} else {
			defer cleanup()
			path = enhanced
		}
	}

	txt, w, err := e.tesseract(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		return "", warns, err
	}
	return Normalize(txt), warns, nil
}
