package worker

import "context"

type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	ListBySite(ctx context.Context, siteID string) ([]WorkerResponse, error)
	Get(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, id string) error

	// GetOwned loads a worker and checks its site belongs to the caller.
	GetOwned(ctx context.Context, id string) (Worker, error)
}
