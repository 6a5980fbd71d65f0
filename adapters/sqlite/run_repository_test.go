package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"confmat/domain/core"
	"confmat/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) ports.RunLedgerPort {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunRepository(db)
}

func sampleRecord(created time.Time) ports.RunRecord {
	return ports.RunRecord{
		ID:                uuid.New(),
		InputPath:         "/data/input.xlsx",
		OutputPath:        "/data/output_confusion_matrix.xlsx",
		LabelCount:        7,
		TotalTP:           12,
		TotalFP:           3,
		TotalTN:           40,
		TotalFN:           5,
		MeanSensitivity:   0.71,
		MedianSensitivity: 0.75,
		MeanSpecificity:   0.93,
		MedianSpecificity: 0.95,
		CreatedAt:         created,
	}
}

func TestRunRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := sampleRecord(time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.SaveRun(ctx, record))

	got, err := repo.GetRun(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.LabelCount, got.LabelCount)
	assert.Equal(t, record.InputPath, got.InputPath)
	assert.InDelta(t, record.MeanSensitivity, got.MeanSensitivity, 1e-9)
}

func TestRunRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	older := sampleRecord(base.Add(-time.Hour))
	newer := sampleRecord(base)
	require.NoError(t, repo.SaveRun(ctx, older))
	require.NoError(t, repo.SaveRun(ctx, newer))

	records, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newer.ID, records[0].ID)
	assert.Equal(t, older.ID, records[1].ID)
}

func TestRunRepository_ListLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveRun(ctx, sampleRecord(base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := repo.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRunRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRun(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, core.ErrRunNotFound))
}
