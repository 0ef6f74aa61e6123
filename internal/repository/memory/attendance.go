package memory

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type attendanceRepository struct {
	store *Store
}

func (r *attendanceRepository) GetByKey(ctx context.Context, workerID, siteID, date string) (*attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.attendance[attendanceKey(workerID, siteID, date)]
	if !ok {
		return nil, nil
	}
	a.Worker = nil
	return &a, nil
}

func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Record) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.upsertLocked(a), nil
}

func (r *attendanceRepository) upsertLocked(a attendance.Record) attendance.Record {
	key := attendanceKey(a.WorkerID, a.SiteID, a.Date)
	if existing, ok := r.store.attendance[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	}
	a.Worker = nil
	r.store.attendance[key] = a
	return a
}

func (r *attendanceRepository) BulkUpsert(ctx context.Context, records []attendance.Record) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range records {
		r.upsertLocked(a)
	}
	return len(records), nil
}

func (r *attendanceRepository) ListBySiteDate(ctx context.Context, siteID, date string) ([]attendance.Record, error) {
	return r.filter(func(a attendance.Record) bool {
		return a.SiteID == siteID && a.Date == date
	}), nil
}

func (r *attendanceRepository) ListBySiteRange(ctx context.Context, siteID string, rng period.Range) ([]attendance.Record, error) {
	return r.filter(func(a attendance.Record) bool {
		return a.SiteID == siteID && rng.Contains(a.Date)
	}), nil
}

func (r *attendanceRepository) ListByWorkerRange(ctx context.Context, workerID string, rng period.Range) ([]attendance.Record, error) {
	return r.filter(func(a attendance.Record) bool {
		return a.WorkerID == workerID && rng.Contains(a.Date)
	}), nil
}

func (r *attendanceRepository) filter(match func(attendance.Record) bool) []attendance.Record {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]attendance.Record, 0)
	for _, a := range r.store.attendance {
		if match(a) {
			result = append(result, r.store.withWorker(a))
		}
	}
	sortAttendance(result)
	return result
}
