package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	sites      site.SiteRepository
	workers    worker.WorkerRepository
	attendance attendance.AttendanceRepository
	payments   payment.PaymentRepository
}

func newRepos(t *testing.T) repos {
	setup := NewTestDatabase(t)
	return repos{
		sites:      postgresql.NewSiteRepository(setup.DB),
		workers:    postgresql.NewWorkerRepository(setup.DB),
		attendance: postgresql.NewAttendanceRepository(setup.DB),
		payments:   postgresql.NewPaymentRepository(setup.DB),
	}
}

func createTestSite(t *testing.T, ctx context.Context, r repos, owner string) site.Site {
	now := time.Now().UTC()
	s, err := r.sites.Create(ctx, site.Site{ID: uuid.NewString(), Name: "Tower A", CreatedBy: owner, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	return s
}

func createTestWorker(t *testing.T, ctx context.Context, r repos, siteID, name string) worker.Worker {
	now := time.Now().UTC()
	w, err := r.workers.Create(ctx, worker.Worker{
		ID:         uuid.NewString(),
		WorkerCode: uuid.NewString(),
		SiteID:     siteID,
		Name:       name,
		Role:       worker.DefaultRole,
		WageRate:   decimal.NewFromInt(100),
		WageType:   worker.WageTypeDay,
		CreatedBy:  "owner-1",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	return w
}

func newRecord(workerID, siteID, date string, status attendance.Status) attendance.Record {
	now := time.Now().UTC()
	return attendance.Record{
		ID:        uuid.NewString(),
		WorkerID:  workerID,
		SiteID:    siteID,
		Date:      date,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSiteRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	created := createTestSite(t, ctx, r, "owner-1")

	found, err := r.sites.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tower A", found.Name)
	assert.False(t, found.Deleted)

	require.NoError(t, r.sites.SetDeleted(ctx, created.ID, true))
	archived, err := r.sites.ListByOwner(ctx, "owner-1", true)
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	active, err := r.sites.ListByOwner(ctx, "owner-1", false)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, r.sites.Delete(ctx, created.ID))
	_, err = r.sites.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
	assert.ErrorIs(t, r.sites.Delete(ctx, created.ID), site.ErrSiteNotFound)
}

func TestWorkerRepository_UniqueCodeAndSiteScope(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := createTestSite(t, ctx, r, "owner-1")
	other := createTestSite(t, ctx, r, "owner-1")

	w := createTestWorker(t, ctx, r, s.ID, "Ravi")
	assert.True(t, decimal.NewFromInt(100).Equal(w.WageRate))

	dup := w
	dup.ID = uuid.NewString()
	_, err := r.workers.Create(ctx, dup)
	assert.ErrorIs(t, err, worker.ErrWorkerCodeExists)

	_, err = r.workers.GetByIDAndSite(ctx, w.ID, other.ID)
	assert.ErrorIs(t, err, worker.ErrWorkerNotInSite)

	require.NoError(t, r.workers.Delete(ctx, w.ID))
	_, err = r.workers.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestAttendanceRepository_UpsertKeepsOneRowPerKey(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := createTestSite(t, ctx, r, "owner-1")
	w := createTestWorker(t, ctx, r, s.ID, "Ravi")

	first, err := r.attendance.Upsert(ctx, newRecord(w.ID, s.ID, "2024-03-01", attendance.StatusPresent))
	require.NoError(t, err)

	second, err := r.attendance.Upsert(ctx, newRecord(w.ID, s.ID, "2024-03-01", attendance.StatusHalfDay))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusHalfDay, second.Status)

	records, err := r.attendance.ListBySiteDate(ctx, s.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Worker)
	assert.Equal(t, "Ravi", records[0].Worker.Name)

	missing, err := r.attendance.GetByKey(ctx, w.ID, s.ID, "2024-03-02")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_BulkUpsertAndOrphans(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := createTestSite(t, ctx, r, "owner-1")
	ravi := createTestWorker(t, ctx, r, s.ID, "Ravi")
	asha := createTestWorker(t, ctx, r, s.ID, "Asha")

	n, err := r.attendance.BulkUpsert(ctx, []attendance.Record{
		newRecord(ravi.ID, s.ID, "2024-03-01", attendance.StatusPresent),
		newRecord(asha.ID, s.ID, "2024-03-01", attendance.StatusAbsent),
		newRecord(ravi.ID, s.ID, "2024-03-02", attendance.StatusPresent),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, r.workers.Delete(ctx, asha.ID))

	records, err := r.attendance.ListBySiteRange(ctx, s.ID, period.Range{From: "2024-03-01", To: "2024-03-01"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	var orphans int
	for _, rec := range records {
		if rec.Worker == nil {
			orphans++
			assert.Equal(t, asha.ID, rec.WorkerID)
		}
	}
	assert.Equal(t, 1, orphans)

	history, err := r.attendance.ListByWorkerRange(ctx, ravi.ID, period.Range{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-01", history[0].Date)
}

func TestPaymentRepository_ListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := createTestSite(t, ctx, r, "owner-1")
	ravi := createTestWorker(t, ctx, r, s.ID, "Ravi")
	asha := createTestWorker(t, ctx, r, s.ID, "Asha")

	for _, p := range []struct {
		workerID string
		date     string
		amount   int64
	}{
		{ravi.ID, "2024-03-01", 50},
		{ravi.ID, "2024-03-10", 70},
		{asha.ID, "2024-03-05", 30},
	} {
		now := time.Now().UTC()
		_, err := r.payments.Create(ctx, payment.Payment{
			ID:          uuid.NewString(),
			WorkerID:    p.workerID,
			SiteID:      s.ID,
			Amount:      decimal.NewFromInt(p.amount),
			Date:        p.date,
			PaymentType: payment.TypeWage,
			CreatedBy:   "owner-1",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		require.NoError(t, err)
	}

	byWorker, err := r.payments.ListByWorker(ctx, ravi.ID, period.Range{})
	require.NoError(t, err)
	require.Len(t, byWorker, 2)
	assert.Equal(t, "2024-03-10", byWorker[0].Date)
	require.NotNil(t, byWorker[0].WorkerName)
	assert.Equal(t, "Ravi", *byWorker[0].WorkerName)

	filtered, err := r.payments.ListBySite(ctx, s.ID, payment.SiteFilter{
		WorkerID: &asha.ID,
		Range:    period.Range{From: "2024-03-01", To: "2024-03-31"},
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, decimal.NewFromInt(30).Equal(filtered[0].Amount))

	inRange, err := r.payments.ListBySite(ctx, s.ID, payment.SiteFilter{Range: period.Range{From: "2024-03-02", To: "2024-03-09"}})
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	_, err = r.payments.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}
