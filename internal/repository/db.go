package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/guiaslabs/guias-tracker/internal/common"
)

// Config holds the results-store settings.
type Config struct {
	Path string // sqlite file path; empty -> in-memory
}

// Open opens (or creates) the sqlite results store and runs migrations.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := cfg.Path
	if dsn == "" {
		dsn = ":memory:"
	}
	logger.Info("opening results store", "path", dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", common.ErrDatabase, err)
	}
	// sqlite writes serialize anyway; a single connection avoids lock
	// contention and keeps in-memory databases coherent.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", common.ErrDatabase, err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", common.ErrDatabase, err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	source_dir TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	id               TEXT PRIMARY KEY,
	batch_id         TEXT NOT NULL REFERENCES batches(id),
	filename         TEXT NOT NULL,
	registro_ans     TEXT NOT NULL DEFAULT '',
	numero_guia      TEXT NOT NULL DEFAULT '',
	data_autorizacao TEXT NOT NULL DEFAULT '',
	nome             TEXT NOT NULL DEFAULT '',
	valor_consulta   TEXT NOT NULL DEFAULT '',
	method           TEXT NOT NULL DEFAULT '',
	pages            INTEGER NOT NULL DEFAULT 0,
	status           TEXT NOT NULL,
	error_message    TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_batch ON results(batch_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
