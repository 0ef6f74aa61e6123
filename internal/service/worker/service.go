package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
	siteService site.SiteService
}

func NewWorkerService(repo worker.WorkerRepository, siteService site.SiteService) worker.WorkerService {
	return &WorkerServiceImpl{
		WorkerRepository: repo,
		siteService:      siteService,
	}
}

// GetOwned implements worker.WorkerService.
func (s *WorkerServiceImpl) GetOwned(ctx context.Context, id string) (worker.Worker, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.Worker{}, err
	}
	if _, err := s.siteService.GetOwned(ctx, w.SiteID); err != nil {
		return worker.Worker{}, err
	}
	return w, nil
}

// Create implements worker.WorkerService.
// Subtle: this method shadows the method (WorkerRepository).Create of WorkerServiceImpl.WorkerRepository.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if _, err := s.siteService.GetOwned(ctx, req.SiteID); err != nil {
		return worker.WorkerResponse{}, err
	}
	uid, err := jwt.OwnerFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to generate worker id: %w", err)
	}

	now := time.Now().UTC()
	w := worker.Worker{
		ID:         id.String(),
		WorkerCode: uuid.NewString(),
		SiteID:     req.SiteID,
		Name:       strings.TrimSpace(req.Name),
		Role:       worker.DefaultRole,
		WageRate:   decimal.Zero,
		WageType:   worker.WageTypeDay,
		CreatedBy:  uid,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Role != nil && strings.TrimSpace(*req.Role) != "" {
		w.Role = strings.TrimSpace(*req.Role)
	}
	if req.WageRate != nil {
		w.WageRate = *req.WageRate
	}
	if req.WageType != nil {
		w.WageType = worker.WageType(*req.WageType)
	}
	if req.Phone != nil {
		w.Phone = *req.Phone
	}
	if req.Address != nil {
		w.Address = *req.Address
	}

	created, err := s.WorkerRepository.Create(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return worker.ToResponse(created), nil
}

// ListBySite implements worker.WorkerService.
// Subtle: this method shadows the method (WorkerRepository).ListBySite of WorkerServiceImpl.WorkerRepository.
func (s *WorkerServiceImpl) ListBySite(ctx context.Context, siteID string) ([]worker.WorkerResponse, error) {
	if _, err := s.siteService.GetOwned(ctx, siteID); err != nil {
		return nil, err
	}

	workers, err := s.WorkerRepository.ListBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	result := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		result = append(result, worker.ToResponse(w))
	}
	return result, nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.GetOwned(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(w), nil
}

// Update implements worker.WorkerService.
// Subtle: this method shadows the method (WorkerRepository).Update of WorkerServiceImpl.WorkerRepository.
func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.GetOwned(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	req.Apply(&w)
	w.Name = strings.TrimSpace(w.Name)
	w.UpdatedAt = time.Now().UTC()

	updated, err := s.WorkerRepository.Update(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return worker.ToResponse(updated), nil
}

// Delete implements worker.WorkerService.
// Subtle: this method shadows the method (WorkerRepository).Delete of WorkerServiceImpl.WorkerRepository.
func (s *WorkerServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.GetOwned(ctx, id); err != nil {
		return err
	}
	if err := s.WorkerRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	return nil
}
