package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/export"
	"github.com/guiaslabs/guias-tracker/internal/extract"
	"github.com/guiaslabs/guias-tracker/internal/fields"
	"github.com/guiaslabs/guias-tracker/internal/ingest"
	"github.com/guiaslabs/guias-tracker/internal/ocr"
	"github.com/guiaslabs/guias-tracker/internal/pipeline"
	repo "github.com/guiaslabs/guias-tracker/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails.
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory to process guides from (or pass files as arguments)")
		out      = flag.String("out", "", "output base path without extension (default: <dir>/../guias)")
		format   = flag.String("format", "both", "export format: csv | xlsx | both")
		dbPath   = flag.String("db", "", "sqlite results store path (default: GUIAS_DB_PATH or in-memory)")
		patterns = flag.String("patterns", "", "JSON pattern file overriding the built-in extraction rules")
		keepText = flag.Bool("keep-text", false, "dump acquired text next to the export for review")
		watch    = flag.Bool("watch", false, "keep watching -dir and process files as they appear")
	)
	flag.Parse()

	files := flag.Args()
	if *dir == "" && len(files) == 0 {
		printError("Error: provide -dir or at least one file argument\n")
		os.Exit(2)
	}
	if *watch && *dir == "" {
		printError("Error: -watch requires -dir\n")
		os.Exit(2)
	}
	switch *format {
	case "csv", "xlsx", "both":
	default:
		printError("Error: -format must be csv, xlsx or both\n")
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *patterns != "" {
		cfg.Fields.PatternsPath = *patterns
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		base := *dir
		if base == "" {
			base = filepath.Dir(files[0])
		}
		*out = filepath.Join(filepath.Dir(base), "guias")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The OCR engine is constructed once and reused for every document.
	// A missing engine is fatal for the whole session.
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
		logger.Error("ocr engine unavailable, refusing to process", "error", err)
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
			logger.Error("invalid pattern file", "path", cfg.Fields.PatternsPath, "error", err)
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
	processor := pipeline.NewProcessor(acquirer, fx, logger)

	db, err := repo.Open(ctx, repo.Config{Path: cfg.Database.Path}, logger)
	if err != nil {
		logger.Error("failed to open results store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close results store", "error", cerr)
		}
	}()
	results := repo.NewResultsRepository(db, logger)

	batchID, err := results.CreateBatch(ctx, *dir)
	if err != nil {
		logger.Error("failed to create batch", "error", err)
		os.Exit(1)
	}

	exporter := export.NewService(cfg.Export.SheetName, cfg.Export.CSVWithBOM, logger)

	if *watch {
		runWatch(ctx, logger, processor, results, exporter, batchID, *dir, *out, *format, *keepText)
		return
	}

	if *dir != "" {
		discovered, stats, err := ingest.Discover(*dir, nil, true)
		if err != nil {
			logger.Error("directory scan failed", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("directory scanned", "dir", *dir,
			"scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
		files = append(files, discovered...)
	}
	if len(files) == 0 {
		logger.Warn("no processable files found")
		return
	}

	rows, stats := processor.ProcessBatch(ctx, files)
	saveRows(ctx, logger, results, batchID, rows)

	if *keepText {
		dumpTexts(logger, *out, rows)
	}
	if err := writeExports(logger, exporter, *out, *format, rows); err != nil {
		os.Exit(1)
	}

	logger.Info("batch complete",
		"batch_id", batchID,
		"processed", stats.Processed,
		"succeeded", stats.Succeeded,
		"skipped", stats.Skipped,
	)
}

// runWatch processes files as they appear and rewrites the exports after
// each one, until interrupted.
func runWatch(ctx context.Context, logger *slog.Logger, processor *pipeline.Processor,
	results *repo.ResultsRepository, exporter *export.Service,
	batchID uuid.UUID, dir, out, format string, keepText bool) {

	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}
	logger.Info("watching for documents", "dir", dir)

	seen := map[string]struct{}{}
	var rows []pipeline.DocumentResult
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return
		case err, ok := <-errCh:
			if ok {
				logger.Warn("watch error", "error", err)
			}
		case path, ok := <-evCh:
			if !ok {
				return
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}

			res, _ := processor.ProcessFile(ctx, path)
			rows = append(rows, res)
			saveRows(ctx, logger, results, batchID, []pipeline.DocumentResult{res})
			if keepText {
				dumpTexts(logger, out, []pipeline.DocumentResult{res})
			}
			if err := writeExports(logger, exporter, out, format, rows); err != nil {
				logger.Warn("export rewrite failed", "error", err)
			}
		}
	}
}

func saveRows(ctx context.Context, logger *slog.Logger, results *repo.ResultsRepository,
	batchID uuid.UUID, rows []pipeline.DocumentResult) {
	for _, res := range rows {
		if _, err := results.SaveRow(ctx, repo.Row{
			BatchID:      batchID,
			Filename:     res.Filename,
			Fields:       res.Fields,
			Method:       res.Method,
			Pages:        res.Pages,
			Status:       res.Status(),
			ErrorMessage: res.Err,
		}); err != nil {
			logger.Warn("failed to persist result", "file", res.Filename, "error", err)
		}
	}
}

// exportable filters out rows whose acquisition failed; those are reported
// as skips, not exported as empty lines.
func exportable(rows []pipeline.DocumentResult) []export.Row {
	out := make([]export.Row, 0, len(rows))
	for _, r := range rows {
		if r.Err != "" {
			continue
		}
		out = append(out, export.FromFields(r.Filename, r.Fields))
	}
	return out
}

func writeExports(logger *slog.Logger, exporter *export.Service, out, format string,
	rows []pipeline.DocumentResult) error {
	table := exportable(rows)

	if format == "csv" || format == "both" {
		path := out + ".csv"
		f, err := os.Create(path)
		if err != nil {
			logger.Error("failed to create csv", "path", path, "error", err)
			return err
		}
		err = exporter.WriteCSV(f, table)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			logger.Error("failed to write csv", "path", path, "error", err)
			return err
		}
		logger.Info("csv written", "path", path, "rows", len(table))
	}

	if format == "xlsx" || format == "both" {
		path := out + ".xlsx"
		data, err := exporter.BuildXLSX(table)
		if err != nil {
			logger.Error("failed to build xlsx", "error", err)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Error("failed to write xlsx", "path", path, "error", err)
			return err
		}
		logger.Info("xlsx written", "path", path, "rows", len(table))
	}
	return nil
}

// dumpTexts writes each document's acquired text next to the export so a
// reviewer can check what the extractor saw.
func dumpTexts(logger *slog.Logger, out string, rows []pipeline.DocumentResult) {
	dir := out + "-text"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("failed to create text dump dir", "dir", dir, "error", err)
		return
	}
	for _, r := range rows {
		if r.Err != "" {
			continue
		}
		name := strings.TrimSuffix(r.Filename, filepath.Ext(r.Filename)) + ".txt"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(r.Text), 0o644); err != nil {
			logger.Warn("failed to dump text", "file", r.Filename, "error", err)
		}
	}
}
