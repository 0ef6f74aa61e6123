package memory

import (
	"context"
	"sort"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
)

type siteRepository struct {
	store *Store
}

func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s.Deleted = false
	r.store.sites[s.ID] = s
	return s, nil
}

func (r *siteRepository) GetByID(ctx context.Context, id string) (site.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sites[id]
	if !ok {
		return site.Site{}, site.ErrSiteNotFound
	}
	return s, nil
}

func (r *siteRepository) ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]site.Site, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]site.Site, 0)
	for _, s := range r.store.sites {
		if s.CreatedBy == ownerID && s.Deleted == deleted {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *siteRepository) Update(ctx context.Context, s site.Site) (site.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.sites[s.ID]
	if !ok {
		return site.Site{}, site.ErrSiteNotFound
	}
	current.Name = s.Name
	current.Location = s.Location
	current.Notes = s.Notes
	current.UpdatedAt = s.UpdatedAt
	r.store.sites[s.ID] = current
	return current, nil
}

func (r *siteRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.sites[id]
	if !ok {
		return site.ErrSiteNotFound
	}
	current.Deleted = deleted
	r.store.sites[id] = current
	return nil
}

// Delete cascades to the site's workers, attendance and payments.
func (r *siteRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sites[id]; !ok {
		return site.ErrSiteNotFound
	}
	delete(r.store.sites, id)

	for k, w := range r.store.workers {
		if w.SiteID == id {
			delete(r.store.workers, k)
		}
	}
	for k, a := range r.store.attendance {
		if a.SiteID == id {
			delete(r.store.attendance, k)
		}
	}
	for k, p := range r.store.payments {
		if p.SiteID == id {
			delete(r.store.payments, k)
		}
	}
	return nil
}
