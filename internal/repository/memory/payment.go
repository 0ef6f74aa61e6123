package memory

import (
	"context"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type paymentRepository struct {
	store *Store
}

func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p.WorkerName, p.WorkerRole = nil, nil
	r.store.payments[p.ID] = p
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments[id]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	return p, nil
}

func (r *paymentRepository) ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]payment.Payment, error) {
	return r.filter(func(p payment.Payment) bool {
		return p.WorkerID == workerID && rng.Contains(p.Date)
	}), nil
}

func (r *paymentRepository) ListBySite(ctx context.Context, siteID string, filter payment.SiteFilter) ([]payment.Payment, error) {
	return r.filter(func(p payment.Payment) bool {
		if p.SiteID != siteID || !filter.Range.Contains(p.Date) {
			return false
		}
		return filter.WorkerID == nil || p.WorkerID == *filter.WorkerID
	}), nil
}

func (r *paymentRepository) filter(match func(payment.Payment) bool) []payment.Payment {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]payment.Payment, 0)
	for _, p := range r.store.payments {
		if !match(p) {
			continue
		}
		if w, ok := r.store.workers[p.WorkerID]; ok {
			name, role := w.Name, w.Role
			p.WorkerName, p.WorkerRole = &name, &role
		}
		result = append(result, p)
	}
	sortPaymentsNewestFirst(result)
	return result
}

func (r *paymentRepository) Update(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.payments[p.ID]
	if !ok {
		return payment.Payment{}, payment.ErrPaymentNotFound
	}
	current.Amount = p.Amount
	current.Date = p.Date
	current.PaymentType = p.PaymentType
	current.Notes = p.Notes
	current.UpdatedAt = p.UpdatedAt
	r.store.payments[p.ID] = current
	return current, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payments[id]; !ok {
		return payment.ErrPaymentNotFound
	}
	delete(r.store.payments, id)
	return nil
}
