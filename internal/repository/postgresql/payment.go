package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
)

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payment.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

const paymentColumns = `id, worker_id, site_id, amount, date, payment_type, notes, created_by, created_at, updated_at`

const paymentJoinSelect = `
	SELECT p.id, p.worker_id, p.site_id, p.amount, p.date, p.payment_type, p.notes,
		p.created_by, p.created_at, p.updated_at, w.name, w.role
	FROM payments p
	LEFT JOIN workers w ON w.id = p.worker_id
`

func scanPayment(row pgx.Row) (payment.Payment, error) {
	var p payment.Payment
	err := row.Scan(
		&p.ID,
		&p.WorkerID,
		&p.SiteID,
		&p.Amount,
		&p.Date,
		&p.PaymentType,
		&p.Notes,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		p.ID, p.WorkerID, p.SiteID, p.Amount, p.Date, p.PaymentType,
		p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return created, nil
}

// GetByID implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) GetByID(ctx context.Context, id string) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	found, err := scanPayment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return found, nil
}

// ListByWorker implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) ListByWorker(ctx context.Context, workerID string, rng period.Range) ([]payment.Payment, error) {
	query, args := withRange(paymentJoinSelect+` WHERE p.worker_id = $1`, []interface{}{workerID}, "p.date", rng)
	query += ` ORDER BY p.date DESC, p.created_at DESC`
	return r.list(ctx, query, args...)
}

// ListBySite implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) ListBySite(ctx context.Context, siteID string, filter payment.SiteFilter) ([]payment.Payment, error) {
	query := paymentJoinSelect + ` WHERE p.site_id = $1`
	args := []interface{}{siteID}
	if filter.WorkerID != nil {
		args = append(args, *filter.WorkerID)
		query += fmt.Sprintf(" AND p.worker_id = $%d", len(args))
	}
	query, args = withRange(query, args, "p.date", filter.Range)
	query += ` ORDER BY p.date DESC, p.created_at DESC`
	return r.list(ctx, query, args...)
}

func (r *paymentRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]payment.Payment, 0)
	for rows.Next() {
		var p payment.Payment
		err := rows.Scan(
			&p.ID,
			&p.WorkerID,
			&p.SiteID,
			&p.Amount,
			&p.Date,
			&p.PaymentType,
			&p.Notes,
			&p.CreatedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.WorkerName,
			&p.WorkerRole,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return payments, nil
}

// Update implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Update(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payments
		SET amount = $2, date = $3, payment_type = $4, notes = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + paymentColumns

	updated, err := scanPayment(q.QueryRow(ctx, query, p.ID, p.Amount, p.Date, p.PaymentType, p.Notes, p.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payment.Payment{}, payment.ErrPaymentNotFound
		}
		return payment.Payment{}, fmt.Errorf("failed to update payment: %w", err)
	}
	return updated, nil
}

// Delete implements payment.PaymentRepository.
func (r *paymentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}
