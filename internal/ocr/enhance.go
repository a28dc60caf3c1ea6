package ocr

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Enhancement constants tuned for scanned guides; contrast and sharpening
// help tesseract with small fonts at moderate DPI.
const (
	contrastBoost = 50.0 // percent
	sharpenSigma  = 1.0
)

// enhanceForOCR decodes an image, applies contrast and sharpening, and
// writes the result to a temporary PNG.
//
// Returns (outPath, cleanup, err). Call cleanup() to remove temp files.
func enhanceForOCR(path string) (string, func(), error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, err
	}

	img = imaging.AdjustContrast(img, contrastBoost)
	img = imaging.Sharpen(img, sharpenSigma)

	tmpDir, err := os.MkdirTemp("", "gt-enh-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "enhanced.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, err
	}
	return out, cleanup, nil
}
