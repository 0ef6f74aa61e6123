package attendance

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type AttendanceRepository interface {
	// GetByKey returns nil, nil when no record exists for the triple.
	GetByKey(ctx context.Context, workerID, siteID, date string) (*Record, error)
	// Upsert writes by (worker, site, date); the store's unique key makes it atomic.
	Upsert(ctx context.Context, record Record) (Record, error)
	// BulkUpsert applies all records atomically and returns how many were written.
	BulkUpsert(ctx context.Context, records []Record) (int, error)

	// List methods populate Record.Worker, leaving it nil for orphaned rows.
	ListBySiteDate(ctx context.Context, siteID, date string) ([]Record, error)
	ListBySiteRange(ctx context.Context, siteID string, rng period.Range) ([]Record, error)
	ListByWorkerRange(ctx context.Context, workerID string, rng period.Range) ([]Record, error)
}
