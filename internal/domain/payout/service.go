package payout

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type PayoutService interface {
	SitePayouts(ctx context.Context, siteID string, rng period.Range) (SitePayoutResponse, error)
	SiteSummary(ctx context.Context, siteID string, rng period.Range) (SiteSummary, error)
	WorkerSalarySlip(ctx context.Context, workerID string, rng period.Range) (SalarySlipResponse, error)
	WorkerSummary(ctx context.Context, workerID string, rng period.Range) (WorkerSummaryResponse, error)
}
