package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/guiaslabs/guias-tracker/internal/common"
)

// Config controls the external OCR toolchain.
type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	Languages   string // tesseract language spec, default "por+eng"
	TessdataDir string
	DPI         int // rasterization DPI for scanned PDF pages, default 300
	PSM         int // page segmentation mode; 0 = engine default
	Enhance     bool
}

// Engine wraps tesseract and pdftoppm behind a process-wide instance.
// Construct once and reuse; Available caches its probe result.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	availOnce sync.Once
	availErr  error
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Languages == "" {
		cfg.Languages = "por+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Available probes the external binaries once per Engine lifetime.
// A missing tesseract is fatal for the session; callers should check
// this before accepting any documents.
func (e *Engine) Available(ctx context.Context) error {
	e.availOnce.Do(func() {
		out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, "--version")
		if err != nil {
			e.availErr = fmt.Errorf("%w: tesseract not available (%s): %v",
				common.ErrEngineUnavailable, e.cfg.Tesseract, err)
			return
		}
		version := ""
		if lines := strings.SplitN(string(out), "\n", 2); len(lines) > 0 {
			version = strings.TrimSpace(lines[0])
		}
		e.logger.Info("ocr engine ready", "tesseract", version)

		if _, _, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-v"); err != nil {
			// pdftoppm is only needed for scanned PDF pages; degrade with a warning.
			e.logger.Warn("pdftoppm not available; scanned PDF pages cannot be OCR'd",
				"pdftoppm", e.cfg.Pdftoppm, "error", err)
		}
	})
	return e.availErr
}

func (e *Engine) tesseract(ctx context.Context, imgPath string) (string, []string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.Languages}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
