package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `id, worker_code, site_id, name, role, wage_rate, wage_type, phone, address, created_by, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID,
		&w.WorkerCode,
		&w.SiteID,
		&w.Name,
		&w.Role,
		&w.WageRate,
		&w.WageType,
		&w.Phone,
		&w.Address,
		&w.CreatedBy,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (id, worker_code, site_id, name, role, wage_rate, wage_type, phone, address, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.WorkerCode, w.SiteID, w.Name, w.Role, w.WageRate, w.WageType,
		w.Phone, w.Address, w.CreatedBy, w.CreatedAt, w.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.Worker{}, worker.ErrWorkerCodeExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`

	found, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return found, nil
}

// GetByIDAndSite implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByIDAndSite(ctx context.Context, id string, siteID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1 AND site_id = $2`

	found, err := scanWorker(q.QueryRow(ctx, query, id, siteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotInSite
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return found, nil
}

// ListBySite implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListBySite(ctx context.Context, siteID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE site_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET name = $2, role = $3, wage_rate = $4, wage_type = $5, phone = $6, address = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + workerColumns

	updated, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.Name, w.Role, w.WageRate, w.WageType, w.Phone, w.Address, w.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return updated, nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
