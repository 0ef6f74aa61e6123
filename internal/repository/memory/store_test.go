package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, store *Store) (site.Site, worker.Worker) {
	ctx := context.Background()
	s, err := store.Sites().Create(ctx, site.Site{ID: "s1", Name: "Tower A", CreatedBy: "owner-1", CreatedAt: time.Now()})
	require.NoError(t, err)
	w, err := store.Workers().Create(ctx, worker.Worker{ID: "w1", WorkerCode: "c1", SiteID: s.ID, Name: "Ravi", WageType: worker.WageTypeDay})
	require.NoError(t, err)
	return s, w
}

func TestAttendance_UpsertKeepsOriginalID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	s, w := seed(t, store)
	repo := store.Attendance()

	first, err := repo.Upsert(ctx, attendance.Record{ID: "a1", WorkerID: w.ID, SiteID: s.ID, Date: "2024-03-01", Status: attendance.StatusPresent})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, attendance.Record{ID: "a2", WorkerID: w.ID, SiteID: s.ID, Date: "2024-03-01", Status: attendance.StatusAbsent})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	records, err := repo.ListBySiteDate(ctx, s.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)
	require.NotNil(t, records[0].Worker)
}

func TestWorkerDelete_LeavesOrphanedAttendance(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	s, w := seed(t, store)

	_, err := store.Attendance().Upsert(ctx, attendance.Record{ID: "a1", WorkerID: w.ID, SiteID: s.ID, Date: "2024-03-01", Status: attendance.StatusPresent})
	require.NoError(t, err)
	require.NoError(t, store.Workers().Delete(ctx, w.ID))

	records, err := store.Attendance().ListBySiteRange(ctx, s.ID, period.Range{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Worker)
}

func TestSiteDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	s, w := seed(t, store)

	_, err := store.Attendance().Upsert(ctx, attendance.Record{ID: "a1", WorkerID: w.ID, SiteID: s.ID, Date: "2024-03-01", Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = store.Payments().Create(ctx, payment.Payment{ID: "p1", WorkerID: w.ID, SiteID: s.ID, Amount: decimal.NewFromInt(10), Date: "2024-03-02"})
	require.NoError(t, err)

	require.NoError(t, store.Sites().Delete(ctx, s.ID))

	_, err = store.Workers().GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	records, err := store.Attendance().ListByWorkerRange(ctx, w.ID, period.Range{})
	require.NoError(t, err)
	assert.Empty(t, records)

	payments, err := store.Payments().ListByWorker(ctx, w.ID, period.Range{})
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPayments_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	s, w := seed(t, store)

	for id, date := range map[string]string{"p1": "2024-03-01", "p2": "2024-03-09", "p3": "2024-03-05"} {
		_, err := store.Payments().Create(ctx, payment.Payment{ID: id, WorkerID: w.ID, SiteID: s.ID, Amount: decimal.NewFromInt(10), Date: date})
		require.NoError(t, err)
	}

	payments, err := store.Payments().ListByWorker(ctx, w.ID, period.Range{})
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, []string{"2024-03-09", "2024-03-05", "2024-03-01"}, []string{payments[0].Date, payments[1].Date, payments[2].Date})
}
