package payment

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type PaymentService interface {
	Create(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]PaymentResponse, error)
	ListBySite(ctx context.Context, siteID string, filter SiteFilter) ([]PaymentResponse, error)
	Update(ctx context.Context, req UpdatePaymentRequest) (PaymentResponse, error)
	Delete(ctx context.Context, id string) error
}
