package site

import "context"

type SiteService interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	List(ctx context.Context) ([]SiteResponse, error)
	ListArchived(ctx context.Context) ([]SiteResponse, error)
	Get(ctx context.Context, id string) (SiteResponse, error)
	Update(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
	Archive(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	// GetOwned loads a site and checks it belongs to the caller.
	GetOwned(ctx context.Context, id string) (Site, error)
}
