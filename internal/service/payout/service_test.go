package payout

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payout"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/memory"
	attendanceservice "github.com/sitecrew/sitecrew-backend-go/internal/service/attendance"
	paymentservice "github.com/sitecrew/sitecrew-backend-go/internal/service/payment"
	siteservice "github.com/sitecrew/sitecrew-backend-go/internal/service/site"
	workerservice "github.com/sitecrew/sitecrew-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerContext(t *testing.T, uid string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{jwt.OwnerClaim: uid})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	svc        payout.PayoutService
	sites      site.SiteService
	workers    worker.WorkerService
	attendance attendance.AttendanceService
	payments   payment.PaymentService
	siteID     string
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	sites := siteservice.NewSiteService(store.Sites())
	workers := workerservice.NewWorkerService(store.Workers(), sites)
	ctx := ownerContext(t, "owner-1")

	s, err := sites.Create(ctx, site.CreateSiteRequest{Name: "Tower A"})
	require.NoError(t, err)

	return fixture{
		ctx:        ctx,
		store:      store,
		svc:        NewPayoutService(NewCalculator(nil), sites, workers, store.Workers(), store.Attendance(), store.Payments()),
		sites:      sites,
		workers:    workers,
		attendance: attendanceservice.NewAttendanceService(store.Attendance(), sites, store.Workers(), nil),
		payments:   paymentservice.NewPaymentService(store.Payments(), sites, workers, store.Workers()),
		siteID:     s.ID,
	}
}

func (f fixture) worker(t *testing.T, name string, rate int64, wageType string) string {
	t.Helper()
	r := decimal.NewFromInt(rate)
	w, err := f.workers.Create(f.ctx, worker.CreateWorkerRequest{Name: name, SiteID: f.siteID, WageRate: &r, WageType: &wageType})
	require.NoError(t, err)
	return w.ID
}

func (f fixture) mark(t *testing.T, workerID, date, status string, hours float64) {
	t.Helper()
	_, err := f.attendance.Mark(f.ctx, attendance.MarkRequest{
		WorkerID:    workerID,
		SiteID:      f.siteID,
		Date:        &date,
		Status:      &status,
		HoursWorked: &hours,
	})
	require.NoError(t, err)
}

func (f fixture) pay(t *testing.T, workerID string, amount int64, date, paymentType string) {
	t.Helper()
	_, err := f.payments.Create(f.ctx, payment.CreatePaymentRequest{
		WorkerID:    workerID,
		SiteID:      f.siteID,
		Amount:      decimal.NewFromInt(amount),
		Date:        date,
		PaymentType: &paymentType,
	})
	require.NoError(t, err)
}

func TestPayoutService_SitePayoutsSkipsDeletedWorkers(t *testing.T) {
	f := setup(t)

	gone := f.worker(t, "Gone", 900, "day")
	kept := f.worker(t, "Kept", 200, "day")
	f.mark(t, gone, "2024-03-01", "present", 8)
	f.mark(t, kept, "2024-03-01", "present", 8)
	require.NoError(t, f.workers.Delete(f.ctx, gone))

	resp, err := f.svc.SitePayouts(f.ctx, f.siteID, period.Range{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "Tower A", resp.Site)
	assert.Equal(t, "2024-03-01", resp.From)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, kept, resp.Results[0].WorkerID)
	assert.True(t, decimal.NewFromInt(200).Equal(resp.Results[0].TotalPayout))
}

func TestPayoutService_SitePayoutsRange(t *testing.T) {
	f := setup(t)

	hourly := f.worker(t, "Hourly", 100, "hour")
	daily := f.worker(t, "Daily", 500, "day")
	f.mark(t, hourly, "2024-03-01", "present", 8)
	f.mark(t, hourly, "2024-03-02", "present", 10)
	f.mark(t, hourly, "2024-04-01", "present", 10)
	f.mark(t, daily, "2024-03-01", "present", 0)
	f.mark(t, daily, "2024-03-02", "halfday", 4)

	resp, err := f.svc.SitePayouts(f.ctx, f.siteID, period.Range{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, hourly, resp.Results[0].WorkerID)
	assert.True(t, decimal.NewFromInt(1800).Equal(resp.Results[0].TotalPayout))
	assert.Equal(t, 18.0, resp.Results[0].TotalHours)

	assert.Equal(t, daily, resp.Results[1].WorkerID)
	assert.True(t, decimal.NewFromInt(500).Equal(resp.Results[1].TotalPayout))
	assert.Equal(t, 1, resp.Results[1].DaysPresent)
}

func TestPayoutService_WorkerSalarySlip(t *testing.T) {
	f := setup(t)

	w := f.worker(t, "Ravi", 2600, "month")
	f.mark(t, w, "2024-03-02", "present", 8)
	f.mark(t, w, "2024-03-01", "halfday", 4)
	f.mark(t, w, "2024-02-28", "present", 8)
	f.pay(t, w, 60, "2024-03-03", "advance")
	f.pay(t, w, 20, "2024-03-04", "wage")
	f.pay(t, w, 999, "2024-02-01", "wage")

	slip, err := f.svc.WorkerSalarySlip(f.ctx, w, period.Range{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "Ravi", slip.WorkerName)
	assert.Equal(t, "Tower A", slip.Site)
	assert.Equal(t, "month", slip.WageType)
	assert.Equal(t, 1, slip.DaysPresent)
	assert.Equal(t, 1, slip.DaysHalf)
	assert.Equal(t, 2, slip.TotalDays)
	assert.Equal(t, 12.0, slip.TotalHours)
	assert.True(t, decimal.NewFromInt(150).Equal(slip.TotalEarned))
	assert.True(t, decimal.NewFromInt(80).Equal(slip.TotalPaid))
	assert.True(t, decimal.NewFromInt(70).Equal(slip.RemainingAmount))

	require.Len(t, slip.Attendance, 2)
	assert.Equal(t, "2024-03-01", slip.Attendance[0].Date)
	require.Len(t, slip.Payments, 2)
	assert.Equal(t, "2024-03-03", slip.Payments[0].Date)
	assert.True(t, decimal.NewFromInt(60).Equal(slip.PaymentTypeTotals["advance"]))
	assert.Len(t, slip.PaymentsByType["wage"], 1)
}

func TestPayoutService_WorkerSummaryMatchesSlip(t *testing.T) {
	f := setup(t)

	w := f.worker(t, "Ravi", 100, "hour")
	f.mark(t, w, "2024-03-01", "present", 8)
	f.pay(t, w, 300, "2024-03-02", "advance")

	rng := period.Range{From: "2024-03-01", To: "2024-03-31"}
	summary, err := f.svc.WorkerSummary(f.ctx, w, rng)
	require.NoError(t, err)
	slip, err := f.svc.WorkerSalarySlip(f.ctx, w, rng)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(800).Equal(summary.Summary.EarnedAmount))
	assert.True(t, decimal.NewFromInt(500).Equal(summary.Summary.RemainingAmount))
	assert.True(t, summary.Summary.EarnedAmount.Equal(slip.TotalEarned))
	assert.True(t, summary.Summary.TotalPaid.Equal(slip.TotalPaid))
	assert.True(t, summary.Summary.RemainingAmount.Equal(slip.RemainingAmount))
	assert.Equal(t, "Ravi", summary.Worker.Name)
	assert.Len(t, summary.Attendance, 1)
	assert.Len(t, summary.Payments, 1)
}

func TestPayoutService_SiteSummary(t *testing.T) {
	f := setup(t)

	a := f.worker(t, "A", 500, "day")
	b := f.worker(t, "B", 100, "hour")
	f.worker(t, "Idle", 300, "day")
	f.mark(t, a, "2024-03-01", "present", 0)
	f.mark(t, a, "2024-03-02", "halfday", 0)
	f.mark(t, b, "2024-03-01", "present", 8)
	f.pay(t, a, 1000, "2024-03-03", "advance")
	f.pay(t, b, 300, "2024-03-03", "wage")

	summary, err := f.svc.SiteSummary(f.ctx, f.siteID, period.Range{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalWorkers)
	assert.True(t, decimal.NewFromInt(1550).Equal(summary.TotalEarned))
	assert.True(t, decimal.NewFromInt(1300).Equal(summary.TotalPaid))
	assert.True(t, decimal.NewFromInt(250).Equal(summary.TotalRemaining))
}

func TestPayoutService_Ownership(t *testing.T) {
	f := setup(t)
	w := f.worker(t, "Ravi", 100, "day")
	other := ownerContext(t, "owner-2")

	_, err := f.svc.SitePayouts(other, f.siteID, period.Range{})
	assert.True(t, errors.Is(err, site.ErrForbidden))

	_, err = f.svc.SiteSummary(other, f.siteID, period.Range{})
	assert.True(t, errors.Is(err, site.ErrForbidden))

	_, err = f.svc.WorkerSalarySlip(other, w, period.Range{})
	assert.True(t, errors.Is(err, site.ErrForbidden))

	_, err = f.svc.WorkerSummary(f.ctx, "missing", period.Range{})
	assert.True(t, errors.Is(err, worker.ErrWorkerNotFound))

	_, err = f.svc.SitePayouts(f.ctx, "missing", period.Range{})
	assert.True(t, errors.Is(err, site.ErrSiteNotFound))
}
