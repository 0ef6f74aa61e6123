package payment

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

// PaymentRepository list methods order by date, newest first.
type PaymentRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]Payment, error)
	ListBySite(ctx context.Context, siteID string, filter SiteFilter) ([]Payment, error)
	Update(ctx context.Context, payment Payment) (Payment, error)
	Delete(ctx context.Context, id string) error
}
