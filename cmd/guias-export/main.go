package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/export"
)

// guias-export converts a result CSV to XLSX, typically after the user
// has edited it by hand. Values are carried over verbatim; edits are not
// re-validated.
func main() {
	var (
		in  = flag.String("in", "", "input CSV path (required)")
		out = flag.String("out", "", "output XLSX path (default: input with .xlsx extension)")
	)
	flag.Parse()

	if *in == "" {
		if _, err := fmt.Fprintln(os.Stderr, "Error: -in is required"); err != nil {
			fmt.Println("Error: -in is required")
		}
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, ".csv") + ".xlsx"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	exporter := export.NewService(cfg.Export.SheetName, cfg.Export.CSVWithBOM, logger)

	f, err := os.Open(*in)
	if err != nil {
		logger.Error("failed to open csv", "path", *in, "error", err)
		os.Exit(1)
	}
	rows, err := exporter.ReadCSV(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("failed to read csv", "path", *in, "error", err)
		os.Exit(1)
	}

	data, err := exporter.BuildXLSX(rows)
	if err != nil {
		logger.Error("failed to build xlsx", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("failed to write xlsx", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("converted", "in", *in, "out", *out, "rows", len(rows))
}
