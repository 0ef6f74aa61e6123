package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
)

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepositoryImpl{db: db}
}

const siteColumns = `id, name, location, notes, created_by, deleted, created_at, updated_at`

func scanSite(row pgx.Row) (site.Site, error) {
	var s site.Site
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Location,
		&s.Notes,
		&s.CreatedBy,
		&s.Deleted,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements site.SiteRepository.
func (r *siteRepositoryImpl) Create(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sites (id, name, location, notes, created_by, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
		RETURNING ` + siteColumns

	created, err := scanSite(q.QueryRow(ctx, query, s.ID, s.Name, s.Location, s.Notes, s.CreatedBy, s.CreatedAt, s.UpdatedAt))
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}
	return created, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepositoryImpl) GetByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`

	found, err := scanSite(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site: %w", err)
	}
	return found, nil
}

// ListByOwner implements site.SiteRepository.
func (r *siteRepositoryImpl) ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + siteColumns + `
		FROM sites
		WHERE created_by = $1 AND deleted = $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, ownerID, deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	sites := make([]site.Site, 0)
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sites, nil
}

// Update implements site.SiteRepository.
func (r *siteRepositoryImpl) Update(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $2, location = $3, notes = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + siteColumns

	updated, err := scanSite(q.QueryRow(ctx, query, s.ID, s.Name, s.Location, s.Notes, s.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to update site: %w", err)
	}
	return updated, nil
}

// SetDeleted implements site.SiteRepository.
func (r *siteRepositoryImpl) SetDeleted(ctx context.Context, id string, deleted bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE sites SET deleted = $2, updated_at = NOW() WHERE id = $1`, id, deleted)
	if err != nil {
		return fmt.Errorf("failed to set site deleted flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}
	return nil
}

// Delete implements site.SiteRepository.
func (r *siteRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}
	return nil
}
