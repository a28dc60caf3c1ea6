package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/extract"
	"github.com/guiaslabs/guias-tracker/internal/fields"
	"github.com/guiaslabs/guias-tracker/internal/ocr"
)

// runextract processes a single document and prints the acquired text and
// extracted fields. A debugging aid for tuning patterns and thresholds.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Languages:   cfg.OCR.Languages,
		TessdataDir: cfg.OCR.TessdataDir,
		DPI:         cfg.OCR.DPI,
		PSM:         cfg.OCR.PSM,
		Enhance:     cfg.OCR.Enhance,
	}, logger)
	if err := engine.Available(ctx); err != nil {
		logger.Error("ocr engine unavailable", "error", err)
		os.Exit(1)
	}

	fieldsCfg := fields.Config{
		MinRegistroDigits: cfg.Fields.MinRegistroDigits,
		MinGuiaDigits:     cfg.Fields.MinGuiaDigits,
	}
	if cfg.Fields.PatternsPath != "" {
		var err error
		fieldsCfg, err = fields.LoadPatternFile(cfg.Fields.PatternsPath, fieldsCfg)
		if err != nil {
			logger.Error("invalid pattern file", "error", err)
			os.Exit(1)
		}
	}
	fx, err := fields.NewExtractor(fieldsCfg, logger)
	if err != nil {
		logger.Error("failed to build field extractor", "error", err)
		os.Exit(1)
	}

	acquirer := extract.NewAcquirer(extract.Config{
		MinTextLen: cfg.Extract.MinTextLen,
		MaxPages:   cfg.Extract.MaxPages,
	}, engine, logger)

	start := time.Now()
	res, err := acquirer.Extract(ctx, path)
	if err != nil {
		logger.Error("acquisition failed", "path", path, "error", err)
		os.Exit(1)
	}
	logger.Info("text acquired",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	record := fx.Extract(res.Text)
	out, _ := json.MarshalIndent(map[string]any{
		"registro_ans":     record.RegistroANS,
		"numero_guia":      record.NumeroGuia,
		"data_autorizacao": record.DataAutorizacao,
		"nome":             record.Nome,
		"valor_consulta":   record.ValorConsulta,
	}, "", "  ")

	fmt.Println("--- text ---")
	fmt.Println(res.Text)
	fmt.Println("--- fields ---")
	fmt.Println(string(out))
}
