package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
)

type SiteServiceImpl struct {
	site.SiteRepository
}

func NewSiteService(repo site.SiteRepository) site.SiteService {
	return &SiteServiceImpl{SiteRepository: repo}
}

// GetOwned implements site.SiteService.
func (s *SiteServiceImpl) GetOwned(ctx context.Context, id string) (site.Site, error) {
	uid, err := jwt.OwnerFromContext(ctx)
	if err != nil {
		return site.Site{}, err
	}

	siteData, err := s.SiteRepository.GetByID(ctx, id)
	if err != nil {
		return site.Site{}, err
	}
	if !siteData.OwnedBy(uid) {
		return site.Site{}, site.ErrForbidden
	}
	return siteData, nil
}

// Create implements site.SiteService.
// Subtle: this method shadows the method (SiteRepository).Create of SiteServiceImpl.SiteRepository.
func (s *SiteServiceImpl) Create(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	uid, err := jwt.OwnerFromContext(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to generate site id: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.SiteRepository.Create(ctx, site.Site{
		ID:        id.String(),
		Name:      strings.TrimSpace(req.Name),
		Location:  req.Location,
		Notes:     req.Notes,
		CreatedBy: uid,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to create site: %w", err)
	}
	return site.ToResponse(created), nil
}

// List implements site.SiteService.
func (s *SiteServiceImpl) List(ctx context.Context) ([]site.SiteResponse, error) {
	return s.list(ctx, false)
}

// ListArchived implements site.SiteService.
func (s *SiteServiceImpl) ListArchived(ctx context.Context) ([]site.SiteResponse, error) {
	return s.list(ctx, true)
}

func (s *SiteServiceImpl) list(ctx context.Context, deleted bool) ([]site.SiteResponse, error) {
	uid, err := jwt.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sites, err := s.SiteRepository.ListByOwner(ctx, uid, deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	result := make([]site.SiteResponse, 0, len(sites))
	for _, item := range sites {
		result = append(result, site.ToResponse(item))
	}
	return result, nil
}

// Get implements site.SiteService.
func (s *SiteServiceImpl) Get(ctx context.Context, id string) (site.SiteResponse, error) {
	siteData, err := s.GetOwned(ctx, id)
	if err != nil {
		return site.SiteResponse{}, err
	}
	return site.ToResponse(siteData), nil
}

// Update implements site.SiteService.
// Subtle: this method shadows the method (SiteRepository).Update of SiteServiceImpl.SiteRepository.
func (s *SiteServiceImpl) Update(ctx context.Context, req site.UpdateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	siteData, err := s.GetOwned(ctx, req.ID)
	if err != nil {
		return site.SiteResponse{}, err
	}

	if req.Name != nil {
		siteData.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		siteData.Location = req.Location
	}
	if req.Notes != nil {
		siteData.Notes = req.Notes
	}
	siteData.UpdatedAt = time.Now().UTC()

	updated, err := s.SiteRepository.Update(ctx, siteData)
	if err != nil {
		return site.SiteResponse{}, fmt.Errorf("failed to update site: %w", err)
	}
	return site.ToResponse(updated), nil
}

// Archive implements site.SiteService.
func (s *SiteServiceImpl) Archive(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, true)
}

// Restore implements site.SiteService.
func (s *SiteServiceImpl) Restore(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, false)
}

func (s *SiteServiceImpl) setDeleted(ctx context.Context, id string, deleted bool) error {
	if _, err := s.GetOwned(ctx, id); err != nil {
		return err
	}
	if err := s.SiteRepository.SetDeleted(ctx, id, deleted); err != nil {
		return fmt.Errorf("failed to update site archive flag: %w", err)
	}
	return nil
}

// Delete implements site.SiteService.
// Subtle: this method shadows the method (SiteRepository).Delete of SiteServiceImpl.SiteRepository.
func (s *SiteServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.GetOwned(ctx, id); err != nil {
		return err
	}
	if err := s.SiteRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	return nil
}
