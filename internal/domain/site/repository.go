package site

import "context"

type SiteRepository interface {
	Create(ctx context.Context, site Site) (Site, error)
	GetByID(ctx context.Context, id string) (Site, error)
	ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]Site, error)
	Update(ctx context.Context, site Site) (Site, error)
	SetDeleted(ctx context.Context, id string, deleted bool) error
	Delete(ctx context.Context, id string) error
}
