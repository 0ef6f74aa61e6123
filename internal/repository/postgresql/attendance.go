package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, worker_id, site_id, date, status, hours_worked, check_in, check_out, notes, created_at, updated_at`

// attendanceJoinSelect left joins workers so rows of deleted workers still come back.
const attendanceJoinSelect = `
	SELECT a.id, a.worker_id, a.site_id, a.date, a.status, a.hours_worked,
		a.check_in, a.check_out, a.notes, a.created_at, a.updated_at,
		w.id, w.site_id, w.name, w.role, w.wage_rate, w.wage_type
	FROM attendances a
	LEFT JOIN workers w ON w.id = a.worker_id
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var a attendance.Record
	err := row.Scan(
		&a.ID,
		&a.WorkerID,
		&a.SiteID,
		&a.Date,
		&a.Status,
		&a.HoursWorked,
		&a.CheckIn,
		&a.CheckOut,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func scanAttendanceWithWorker(row pgx.Row) (attendance.Record, error) {
	var (
		a        attendance.Record
		wID      *string
		wSiteID  *string
		wName    *string
		wRole    *string
		wRate    decimal.NullDecimal
		wageType *string
	)
	err := row.Scan(
		&a.ID,
		&a.WorkerID,
		&a.SiteID,
		&a.Date,
		&a.Status,
		&a.HoursWorked,
		&a.CheckIn,
		&a.CheckOut,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
		&wID,
		&wSiteID,
		&wName,
		&wRole,
		&wRate,
		&wageType,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if wID != nil {
		w := &worker.Worker{ID: *wID}
		if wSiteID != nil {
			w.SiteID = *wSiteID
		}
		if wName != nil {
			w.Name = *wName
		}
		if wRole != nil {
			w.Role = *wRole
		}
		if wRate.Valid {
			w.WageRate = wRate.Decimal
		}
		if wageType != nil {
			w.WageType = worker.WageType(*wageType)
		}
		a.Worker = w
	}
	return a, nil
}

// GetByKey implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByKey(ctx context.Context, workerID, siteID, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE worker_id = $1 AND site_id = $2 AND date = $3
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, workerID, siteID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &found, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT uq_attendance_site_date_worker DO UPDATE SET
			status = EXCLUDED.status,
			hours_worked = EXCLUDED.hours_worked,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		a.ID, a.WorkerID, a.SiteID, a.Date, a.Status, a.HoursWorked,
		a.CheckIn, a.CheckOut, a.Notes, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

// BulkUpsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) BulkUpsert(ctx context.Context, records []attendance.Record) (int, error) {
	updated := 0
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		for _, a := range records {
			if _, err := r.Upsert(txCtx, a); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// ListBySiteDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBySiteDate(ctx context.Context, siteID, date string) ([]attendance.Record, error) {
	query := attendanceJoinSelect + `
		WHERE a.site_id = $1 AND a.date = $2
		ORDER BY w.name ASC NULLS LAST, a.created_at ASC
	`
	return r.list(ctx, query, siteID, date)
}

// ListBySiteRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBySiteRange(ctx context.Context, siteID string, rng period.Range) ([]attendance.Record, error) {
	query, args := withRange(attendanceJoinSelect+` WHERE a.site_id = $1`, []interface{}{siteID}, "a.date", rng)
	query += ` ORDER BY a.date ASC, a.created_at ASC`
	return r.list(ctx, query, args...)
}

// ListByWorkerRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByWorkerRange(ctx context.Context, workerID string, rng period.Range) ([]attendance.Record, error) {
	query, args := withRange(attendanceJoinSelect+` WHERE a.worker_id = $1`, []interface{}{workerID}, "a.date", rng)
	query += ` ORDER BY a.date ASC, a.created_at ASC`
	return r.list(ctx, query, args...)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		a, err := scanAttendanceWithWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// withRange appends an inclusive date filter on column when rng is set.
func withRange(query string, args []interface{}, column string, rng period.Range) (string, []interface{}) {
	if rng.IsZero() {
		return query, args
	}
	args = append(args, rng.From, rng.To)
	query += fmt.Sprintf(" AND %s >= $%d AND %s <= $%d", column, len(args)-1, column, len(args))
	return query, args
}
