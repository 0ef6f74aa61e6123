package memory

import (
	"context"
	"sort"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
)

type workerRepository struct {
	store *Store
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.workers {
		if existing.WorkerCode == w.WorkerCode {
			return worker.Worker{}, worker.ErrWorkerCodeExists
		}
	}
	r.store.workers[w.ID] = w
	return w, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *workerRepository) GetByIDAndSite(ctx context.Context, id string, siteID string) (worker.Worker, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.workers[id]
	if !ok || w.SiteID != siteID {
		return worker.Worker{}, worker.ErrWorkerNotInSite
	}
	return w, nil
}

func (r *workerRepository) ListBySite(ctx context.Context, siteID string) ([]worker.Worker, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]worker.Worker, 0)
	for _, w := range r.store.workers {
		if w.SiteID == siteID {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.workers[w.ID]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	current.Name = w.Name
	current.Role = w.Role
	current.WageRate = w.WageRate
	current.WageType = w.WageType
	current.Phone = w.Phone
	current.Address = w.Address
	current.UpdatedAt = w.UpdatedAt
	r.store.workers[w.ID] = current
	return current, nil
}

// Delete leaves the worker's attendance and payments in place.
func (r *workerRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.workers[id]; !ok {
		return worker.ErrWorkerNotFound
	}
	delete(r.store.workers, id)
	return nil
}
