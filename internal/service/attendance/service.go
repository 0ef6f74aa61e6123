package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	siteService site.SiteService
	workerRepo  worker.WorkerRepository
	logger      *slog.Logger
}

func NewAttendanceService(
	repo attendance.AttendanceRepository,
	siteService site.SiteService,
	workerRepo worker.WorkerRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		siteService:          siteService,
		workerRepo:           workerRepo,
		logger:               logger,
	}
}

// ListBySite implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListBySite(ctx context.Context, siteID string, date string) ([]attendance.AttendanceResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "is required in YYYY-MM-DD format"}}
	}

	if _, err := s.siteService.GetOwned(ctx, siteID); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListBySiteDate(ctx, siteID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.ToResponses(records), nil
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.siteService.GetOwned(ctx, req.SiteID); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	w, err := s.workerRepo.GetByIDAndSite(ctx, req.WorkerID, req.SiteID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := period.Today()
	if req.Date != nil {
		date = *req.Date
	}

	existing, err := s.AttendanceRepository.GetByKey(ctx, req.WorkerID, req.SiteID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	defaultStatus := attendance.StatusAbsent
	if req.CheckIn != nil {
		defaultStatus = attendance.StatusPresent
	}

	record, err := merge(existing, change{
		workerID:      req.WorkerID,
		siteID:        req.SiteID,
		date:          date,
		status:        req.Status,
		defaultStatus: defaultStatus,
		hoursWorked:   req.HoursWorked,
		checkIn:       req.CheckIn,
		checkOut:      req.CheckOut,
		notes:         req.Notes,
		notesOnUpdate: true,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	saved.Worker = &w

	return attendance.ToResponse(saved), nil
}

// BulkMark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	if _, err := s.siteService.GetOwned(ctx, req.SiteID); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	date := period.Today()
	if req.Date != nil {
		date = *req.Date
	}

	workers, err := s.workerRepo.ListBySite(ctx, req.SiteID)
	if err != nil {
		return attendance.BulkMarkResponse{}, fmt.Errorf("failed to list site workers: %w", err)
	}
	atSite := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		atSite[w.ID] = struct{}{}
	}

	records := make([]attendance.Record, 0, len(req.Records))
	seen := make(map[string]int, len(req.Records))
	for _, entry := range req.Records {
		if entry.WorkerID == "" {
			continue
		}
		if _, ok := atSite[entry.WorkerID]; !ok {
			s.logger.Warn("Skipping bulk attendance entry for worker outside site",
				"site_id", req.SiteID,
				"worker_id", entry.WorkerID,
			)
			continue
		}

		var existing *attendance.Record
		if i, ok := seen[entry.WorkerID]; ok {
			existing = &records[i]
		} else {
			existing, err = s.AttendanceRepository.GetByKey(ctx, entry.WorkerID, req.SiteID, date)
			if err != nil {
				return attendance.BulkMarkResponse{}, fmt.Errorf("failed to get attendance: %w", err)
			}
		}

		record, err := merge(existing, change{
			workerID:      entry.WorkerID,
			siteID:        req.SiteID,
			date:          date,
			status:        entry.Status,
			defaultStatus: attendance.StatusAbsent,
			hoursWorked:   entry.HoursWorked,
			checkIn:       entry.CheckIn,
			checkOut:      entry.CheckOut,
			notes:         entry.Notes,
		})
		if err != nil {
			return attendance.BulkMarkResponse{}, err
		}

		if i, ok := seen[entry.WorkerID]; ok {
			records[i] = record
			continue
		}
		seen[entry.WorkerID] = len(records)
		records = append(records, record)
	}

	if len(records) == 0 {
		return attendance.BulkMarkResponse{Updated: 0}, nil
	}

	updated, err := s.AttendanceRepository.BulkUpsert(ctx, records)
	if err != nil {
		return attendance.BulkMarkResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return attendance.BulkMarkResponse{Updated: updated}, nil
}

// change is one requested attendance write before it is merged with the stored record.
type change struct {
	workerID      string
	siteID        string
	date          string
	status        *string
	defaultStatus attendance.Status
	hoursWorked   *float64
	checkIn       *string
	checkOut      *string
	notes         *string
	// notesOnUpdate lets an update overwrite notes; bulk writes only set them on create.
	notesOnUpdate bool
}

func merge(existing *attendance.Record, c change) (attendance.Record, error) {
	now := time.Now().UTC()

	var record attendance.Record
	if existing != nil {
		record = *existing
		if c.notes != nil && c.notesOnUpdate {
			record.Notes = c.notes
		}
	} else {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		record = attendance.Record{
			ID:        id.String(),
			WorkerID:  c.workerID,
			SiteID:    c.siteID,
			Date:      c.date,
			Status:    c.defaultStatus,
			Notes:     c.notes,
			CreatedAt: now,
		}
	}

	if c.status != nil {
		record.Status = attendance.Status(*c.status)
	}
	if c.hoursWorked != nil {
		record.HoursWorked = *c.hoursWorked
	}
	if t := attendance.ParseTime(c.checkIn); t != nil {
		record.CheckIn = t
	}
	if t := attendance.ParseTime(c.checkOut); t != nil {
		record.CheckOut = t
	}
	record.ApplyCheckTimes()
	record.UpdatedAt = now

	return record, nil
}
