package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type PaymentServiceImpl struct {
	payment.PaymentRepository
	siteService   site.SiteService
	workerService worker.WorkerService
	workerRepo    worker.WorkerRepository
}

func NewPaymentService(
	repo payment.PaymentRepository,
	siteService site.SiteService,
	workerService worker.WorkerService,
	workerRepo worker.WorkerRepository,
) payment.PaymentService {
	return &PaymentServiceImpl{
		PaymentRepository: repo,
		siteService:       siteService,
		workerService:     workerService,
		workerRepo:        workerRepo,
	}
}

// Create implements payment.PaymentService.
// Subtle: this method shadows the method (PaymentRepository).Create of PaymentServiceImpl.PaymentRepository.
func (s *PaymentServiceImpl) Create(ctx context.Context, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	if _, err := s.siteService.GetOwned(ctx, req.SiteID); err != nil {
		return payment.PaymentResponse{}, err
	}
	w, err := s.workerRepo.GetByIDAndSite(ctx, req.WorkerID, req.SiteID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	uid, err := jwt.OwnerFromContext(ctx)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to generate payment id: %w", err)
	}

	paymentType := payment.TypeWage
	if req.PaymentType != nil {
		paymentType = payment.Type(*req.PaymentType)
	}

	now := time.Now().UTC()
	created, err := s.PaymentRepository.Create(ctx, payment.Payment{
		ID:          id.String(),
		WorkerID:    req.WorkerID,
		SiteID:      req.SiteID,
		Amount:      req.Amount,
		Date:        req.Date,
		PaymentType: paymentType,
		Notes:       req.Notes,
		CreatedBy:   uid,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}
	created.WorkerName = &w.Name
	created.WorkerRole = &w.Role

	return payment.ToResponse(created), nil
}

// ListByWorker implements payment.PaymentService.
// Subtle: this method shadows the method (PaymentRepository).ListByWorker of PaymentServiceImpl.PaymentRepository.
func (s *PaymentServiceImpl) ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]payment.PaymentResponse, error) {
	if _, err := s.workerService.GetOwned(ctx, workerID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepository.ListByWorker(ctx, workerID, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker payments: %w", err)
	}
	return payment.ToResponses(payments), nil
}

// ListBySite implements payment.PaymentService.
// Subtle: this method shadows the method (PaymentRepository).ListBySite of PaymentServiceImpl.PaymentRepository.
func (s *PaymentServiceImpl) ListBySite(ctx context.Context, siteID string, filter payment.SiteFilter) ([]payment.PaymentResponse, error) {
	if _, err := s.siteService.GetOwned(ctx, siteID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepository.ListBySite(ctx, siteID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list site payments: %w", err)
	}
	return payment.ToResponses(payments), nil
}

// Update implements payment.PaymentService.
// Subtle: this method shadows the method (PaymentRepository).Update of PaymentServiceImpl.PaymentRepository.
func (s *PaymentServiceImpl) Update(ctx context.Context, req payment.UpdatePaymentRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	p, err := s.getOwned(ctx, req.ID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	req.Apply(&p)
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.PaymentRepository.Update(ctx, p)
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment.ToResponse(updated), nil
}

// Delete implements payment.PaymentService.
// Subtle: this method shadows the method (PaymentRepository).Delete of PaymentServiceImpl.PaymentRepository.
func (s *PaymentServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}
	if err := s.PaymentRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *PaymentServiceImpl) getOwned(ctx context.Context, id string) (payment.Payment, error) {
	p, err := s.PaymentRepository.GetByID(ctx, id)
	if err != nil {
		return payment.Payment{}, err
	}
	if _, err := s.siteService.GetOwned(ctx, p.SiteID); err != nil {
		return payment.Payment{}, err
	}
	return p, nil
}
