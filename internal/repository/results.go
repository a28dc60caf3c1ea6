package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/guiaslabs/guias-tracker/constants"
	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/fields"
)

// Batch is one processing run.
type Batch struct {
	ID        uuid.UUID
	SourceDir string
	CreatedAt time.Time
}

// Row is one stored document result.
type Row struct {
	ID           uuid.UUID
	BatchID      uuid.UUID
	Filename     string
	Fields       fields.GuideFields
	Method       string
	Pages        int
	Status       constants.JobStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// ResultsRepository persists batches and their extracted rows.
type ResultsRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewResultsRepository(db *sql.DB, logger *slog.Logger) *ResultsRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultsRepository{db: db, logger: logger}
}

// CreateBatch records a new run and returns its id.
func (r *ResultsRepository) CreateBatch(ctx context.Context, sourceDir string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO batches (id, source_dir, created_at) VALUES (?, ?, ?)`,
		id.String(), sourceDir, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: create batch: %v", common.ErrDatabase, err)
	}
	r.logger.Debug("batch created", "batch_id", id, "source_dir", sourceDir)
	return id, nil
}

// SaveRow inserts one document result.
func (r *ResultsRepository) SaveRow(ctx context.Context, row Row) (uuid.UUID, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results
		 (id, batch_id, filename, registro_ans, numero_guia, data_autorizacao,
		  nome, valor_consulta, method, pages, status, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID.String(), row.BatchID.String(), row.Filename,
		row.Fields.RegistroANS, row.Fields.NumeroGuia, row.Fields.DataAutorizacao,
		row.Fields.Nome, row.Fields.ValorConsulta,
		row.Method, row.Pages, string(row.Status), row.ErrorMessage, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: save row: %v", common.ErrDatabase, err)
	}
	return row.ID, nil
}

// ListRows returns the rows of a batch in insertion order.
func (r *ResultsRepository) ListRows(ctx context.Context, batchID uuid.UUID) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, batch_id, filename, registro_ans, numero_guia, data_autorizacao,
		        nome, valor_consulta, method, pages, status, error_message, created_at
		 FROM results WHERE batch_id = ? ORDER BY created_at, id`,
		batchID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: list rows: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var id, bid, status string
		if err := rows.Scan(&id, &bid, &row.Filename,
			&row.Fields.RegistroANS, &row.Fields.NumeroGuia, &row.Fields.DataAutorizacao,
			&row.Fields.Nome, &row.Fields.ValorConsulta,
			&row.Method, &row.Pages, &status, &row.ErrorMessage, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.ID, _ = uuid.Parse(id)
		row.BatchID, _ = uuid.Parse(bid)
		row.Status = constants.JobStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListBatches returns all batches, newest first.
func (r *ResultsRepository) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_dir, created_at FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list batches: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		var id string
		if err := rows.Scan(&id, &b.SourceDir, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.ID, _ = uuid.Parse(id)
		out = append(out, b)
	}
	return out, rows.Err()
}
