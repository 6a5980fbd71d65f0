package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one completed generation run as stored in the ledger.
type RunRecord struct {
	ID                uuid.UUID `db:"id" json:"id"`
	InputPath         string    `db:"input_path" json:"input_path"`
	OutputPath        string    `db:"output_path" json:"output_path"`
	LabelCount        int       `db:"label_count" json:"label_count"`
	TotalTP           int       `db:"total_tp" json:"total_tp"`
	TotalFP           int       `db:"total_fp" json:"total_fp"`
	TotalTN           int       `db:"total_tn" json:"total_tn"`
	TotalFN           int       `db:"total_fn" json:"total_fn"`
	MeanSensitivity   float64   `db:"mean_sensitivity" json:"mean_sensitivity"`
	MedianSensitivity float64   `db:"median_sensitivity" json:"median_sensitivity"`
	MeanSpecificity   float64   `db:"mean_specificity" json:"mean_specificity"`
	MedianSpecificity float64   `db:"median_specificity" json:"median_specificity"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// RunLedgerPort records completed runs and serves run history.
// Ledger failures must degrade, never fail a generation.
type RunLedgerPort interface {
	SaveRun(ctx context.Context, record RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	GetRun(ctx context.Context, id uuid.UUID) (*RunRecord, error)
}
