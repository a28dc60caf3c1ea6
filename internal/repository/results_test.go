package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiaslabs/guias-tracker/constants"
	"github.com/guiaslabs/guias-tracker/internal/common"
	"github.com/guiaslabs/guias-tracker/internal/fields"
)

func newTestRepo(t *testing.T) *ResultsRepository {
	t.Helper()
	db, err := Open(context.Background(), Config{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResultsRepository(db, nil)
}

func TestSaveAndListRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	batchID, err := repo.CreateBatch(ctx, "/in/guias")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, batchID)

	want := Row{
		BatchID:  batchID,
		Filename: "guia-001.pdf",
		Fields: fields.GuideFields{
			RegistroANS:     "123456",
			NumeroGuia:      "987654",
			DataAutorizacao: "01/02/2024",
			Nome:            "Maria Silva",
			ValorConsulta:   "1.234,56",
		},
		Method: "pdf-text",
		Pages:  2,
		Status: constants.JobStatusParseOK,
	}
	id, err := repo.SaveRow(ctx, want)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	got, err := repo.ListRows(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, batchID, got[0].BatchID)
	assert.Equal(t, want.Fields, got[0].Fields)
	assert.Equal(t, want.Method, got[0].Method)
	assert.Equal(t, want.Pages, got[0].Pages)
	assert.Equal(t, constants.JobStatusParseOK, got[0].Status)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestSaveRow_FailedDocument(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	batchID, err := repo.CreateBatch(ctx, "/in/guias")
	require.NoError(t, err)

	_, err = repo.SaveRow(ctx, Row{
		BatchID:      batchID,
		Filename:     "broken.pdf",
		Status:       constants.JobStatusFailed,
		ErrorMessage: "open pdf: xref table corrupt",
	})
	require.NoError(t, err)

	got, err := repo.ListRows(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, constants.JobStatusFailed, got[0].Status)
	assert.Equal(t, "open pdf: xref table corrupt", got[0].ErrorMessage)
	assert.True(t, got[0].Fields.IsEmpty())
}

func TestListRows_InsertionOrderAndIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b1, err := repo.CreateBatch(ctx, "/in/a")
	require.NoError(t, err)
	b2, err := repo.CreateBatch(ctx, "/in/b")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := repo.SaveRow(ctx, Row{
			BatchID:  b1,
			Filename: fmt.Sprintf("guia-%03d.pdf", i),
			Status:   constants.JobStatusParseOK,
		})
		require.NoError(t, err)
	}
	_, err = repo.SaveRow(ctx, Row{BatchID: b2, Filename: "other.pdf", Status: constants.JobStatusParseOK})
	require.NoError(t, err)

	got, err := repo.ListRows(ctx, b1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, row := range got {
		assert.Equal(t, fmt.Sprintf("guia-%03d.pdf", i), row.Filename)
	}

	other, err := repo.ListRows(ctx, b2)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestListBatches(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.CreateBatch(ctx, "/in/a")
	require.NoError(t, err)
	_, err = repo.CreateBatch(ctx, "/in/b")
	require.NoError(t, err)

	batches, err := repo.ListBatches(ctx)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}

func TestErrorsCarryDatabaseSentinel(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{}, nil)
	require.NoError(t, err)
	repo := NewResultsRepository(db, nil)
	require.NoError(t, db.Close())

	_, err = repo.CreateBatch(ctx, "/in")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))

	_, err = repo.SaveRow(ctx, Row{BatchID: uuid.New(), Filename: "x.pdf", Status: constants.JobStatusParseOK})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))

	_, err = repo.ListRows(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))
}

func TestOpen_FileBacked(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/results.db"

	db, err := Open(ctx, Config{Path: path}, nil)
	require.NoError(t, err)
	repo := NewResultsRepository(db, nil)
	batchID, err := repo.CreateBatch(ctx, "/in")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopen and read back
	db2, err := Open(ctx, Config{Path: path}, nil)
	require.NoError(t, err)
	defer db2.Close()
	batches, err := NewResultsRepository(db2, nil).ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, batchID, batches[0].ID)
}
