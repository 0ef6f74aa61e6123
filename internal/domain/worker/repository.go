package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	// GetByIDAndSite returns ErrWorkerNotInSite when the worker exists elsewhere or not at all.
	GetByIDAndSite(ctx context.Context, id string, siteID string) (Worker, error)
	ListBySite(ctx context.Context, siteID string) ([]Worker, error)
	Update(ctx context.Context, worker Worker) (Worker, error)
	Delete(ctx context.Context, id string) error
}
