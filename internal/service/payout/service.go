package payout

import (
	"context"
	"fmt"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payout"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"golang.org/x/sync/errgroup"
)

type PayoutServiceImpl struct {
	calculator     *Calculator
	siteService    site.SiteService
	workerService  worker.WorkerService
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	paymentRepo    payment.PaymentRepository
}

func NewPayoutService(
	calculator *Calculator,
	siteService site.SiteService,
	workerService worker.WorkerService,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	paymentRepo payment.PaymentRepository,
) payout.PayoutService {
	return &PayoutServiceImpl{
		calculator:     calculator,
		siteService:    siteService,
		workerService:  workerService,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
	}
}

// SitePayouts implements payout.PayoutService.
func (s *PayoutServiceImpl) SitePayouts(ctx context.Context, siteID string, rng period.Range) (payout.SitePayoutResponse, error) {
	siteData, err := s.siteService.GetOwned(ctx, siteID)
	if err != nil {
		return payout.SitePayoutResponse{}, err
	}

	records, err := s.attendanceRepo.ListBySiteRange(ctx, siteID, rng)
	if err != nil {
		return payout.SitePayoutResponse{}, fmt.Errorf("failed to list site attendance: %w", err)
	}

	return payout.SitePayoutResponse{
		From:    rng.From,
		To:      rng.To,
		Site:    siteData.Name,
		SiteID:  siteData.ID,
		Results: s.calculator.AggregateSitePayouts(records),
	}, nil
}

// SiteSummary implements payout.PayoutService.
func (s *PayoutServiceImpl) SiteSummary(ctx context.Context, siteID string, rng period.Range) (payout.SiteSummary, error) {
	if _, err := s.siteService.GetOwned(ctx, siteID); err != nil {
		return payout.SiteSummary{}, err
	}

	var (
		workers  []worker.Worker
		records  []attendance.Record
		payments []payment.Payment
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		workers, err = s.workerRepo.ListBySite(gCtx, siteID)
		if err != nil {
			return fmt.Errorf("failed to list site workers: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListBySiteRange(gCtx, siteID, rng)
		if err != nil {
			return fmt.Errorf("failed to list site attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListBySite(gCtx, siteID, payment.SiteFilter{Range: rng})
		if err != nil {
			return fmt.Errorf("failed to list site payments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return payout.SiteSummary{}, err
	}

	attendanceByWorker := make(map[string][]attendance.Record)
	for _, r := range records {
		attendanceByWorker[r.WorkerID] = append(attendanceByWorker[r.WorkerID], r)
	}
	paymentsByWorker := make(map[string][]payment.Payment)
	for _, p := range payments {
		paymentsByWorker[p.WorkerID] = append(paymentsByWorker[p.WorkerID], p)
	}

	return s.calculator.SummarizeSite(workers, attendanceByWorker, paymentsByWorker)
}

// WorkerSalarySlip implements payout.PayoutService.
func (s *PayoutServiceImpl) WorkerSalarySlip(ctx context.Context, workerID string, rng period.Range) (payout.SalarySlipResponse, error) {
	w, err := s.workerService.GetOwned(ctx, workerID)
	if err != nil {
		return payout.SalarySlipResponse{}, err
	}
	siteData, err := s.siteService.GetOwned(ctx, w.SiteID)
	if err != nil {
		return payout.SalarySlipResponse{}, err
	}

	records, payments, err := s.workerHistory(ctx, w.ID, rng)
	if err != nil {
		return payout.SalarySlipResponse{}, err
	}

	slip, err := s.calculator.AssembleSalarySlip(&w, payout.SiteRef{ID: siteData.ID, Name: siteData.Name}, rng, records, payments)
	if err != nil {
		return payout.SalarySlipResponse{}, err
	}

	return payout.ToSalarySlipResponse(slip), nil
}

// WorkerSummary implements payout.PayoutService.
func (s *PayoutServiceImpl) WorkerSummary(ctx context.Context, workerID string, rng period.Range) (payout.WorkerSummaryResponse, error) {
	w, err := s.workerService.GetOwned(ctx, workerID)
	if err != nil {
		return payout.WorkerSummaryResponse{}, err
	}

	records, payments, err := s.workerHistory(ctx, w.ID, rng)
	if err != nil {
		return payout.WorkerSummaryResponse{}, err
	}

	summary, err := s.calculator.Summarize(&w, records, payments)
	if err != nil {
		return payout.WorkerSummaryResponse{}, err
	}

	return payout.WorkerSummaryResponse{
		Worker:     worker.ToResponse(w),
		Attendance: attendance.ToResponses(records),
		Payments:   payment.ToResponses(payments),
		Summary:    summary,
	}, nil
}

// workerHistory loads attendance and payments for one worker in parallel
func (s *PayoutServiceImpl) workerHistory(ctx context.Context, workerID string, rng period.Range) ([]attendance.Record, []payment.Payment, error) {
	var (
		records  []attendance.Record
		payments []payment.Payment
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByWorkerRange(gCtx, workerID, rng)
		if err != nil {
			return fmt.Errorf("failed to list worker attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByWorker(gCtx, workerID, rng)
		if err != nil {
			return fmt.Errorf("failed to list worker payments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return records, payments, nil
}
