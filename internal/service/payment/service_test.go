package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
	"github.com/sitecrew/sitecrew-backend-go/internal/repository/memory"
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

func strPtr(s string) *string { return &s }

type fixture struct {
	svc      payment.PaymentService
	ctx      context.Context
	siteID   string
	workerID string
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	sites := siteservice.NewSiteService(store.Sites())
	workers := workerservice.NewWorkerService(store.Workers(), sites)
	ctx := ownerContext(t, "owner-1")

	s, err := sites.Create(ctx, site.CreateSiteRequest{Name: "Tower A"})
	require.NoError(t, err)
	w, err := workers.Create(ctx, worker.CreateWorkerRequest{Name: "Ravi", SiteID: s.ID})
	require.NoError(t, err)

	return fixture{
		svc:      NewPaymentService(store.Payments(), sites, workers, store.Workers()),
		ctx:      ctx,
		siteID:   s.ID,
		workerID: w.ID,
	}
}

func (f fixture) create(t *testing.T, amount int64, date string, paymentType *string) payment.PaymentResponse {
	t.Helper()
	resp, err := f.svc.Create(f.ctx, payment.CreatePaymentRequest{
		WorkerID:    f.workerID,
		SiteID:      f.siteID,
		Amount:      decimal.NewFromInt(amount),
		Date:        date,
		PaymentType: paymentType,
	})
	require.NoError(t, err)
	return resp
}

func TestPaymentService_Create(t *testing.T) {
	f := setup(t)

	resp := f.create(t, 500, "2024-03-01", nil)
	assert.Equal(t, "wage", resp.PaymentType)
	assert.Equal(t, "owner-1", resp.CreatedBy)
	require.NotNil(t, resp.WorkerName)
	assert.Equal(t, "Ravi", *resp.WorkerName)

	resp = f.create(t, 200, "2024-03-02", strPtr("advance"))
	assert.Equal(t, "advance", resp.PaymentType)
}

func TestPaymentService_CreateErrors(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(f.ctx, payment.CreatePaymentRequest{WorkerID: f.workerID, SiteID: f.siteID, Amount: decimal.Zero, Date: "2024-3-1"})
	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs))
	assert.Len(t, vErrs, 2)

	_, err = f.svc.Create(f.ctx, payment.CreatePaymentRequest{WorkerID: "elsewhere", SiteID: f.siteID, Amount: decimal.NewFromInt(10), Date: "2024-03-01"})
	assert.True(t, errors.Is(err, worker.ErrWorkerNotInSite))

	_, err = f.svc.Create(ownerContext(t, "owner-2"), payment.CreatePaymentRequest{WorkerID: f.workerID, SiteID: f.siteID, Amount: decimal.NewFromInt(10), Date: "2024-03-01"})
	assert.True(t, errors.Is(err, site.ErrForbidden))
}

func TestPaymentService_ListNewestFirstWithinRange(t *testing.T) {
	f := setup(t)

	f.create(t, 100, "2024-02-28", nil)
	f.create(t, 200, "2024-03-05", nil)
	f.create(t, 300, "2024-03-01", strPtr("bonus"))

	all, err := f.svc.ListByWorker(f.ctx, f.workerID, period.Range{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-05", all[0].Date)
	assert.Equal(t, "2024-03-01", all[1].Date)
	assert.Equal(t, "2024-02-28", all[2].Date)

	march, err := f.svc.ListByWorker(f.ctx, f.workerID, period.Range{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	bySite, err := f.svc.ListBySite(f.ctx, f.siteID, payment.SiteFilter{WorkerID: &f.workerID, Range: period.Range{From: "2024-03-01", To: "2024-03-01"}})
	require.NoError(t, err)
	require.Len(t, bySite, 1)
	assert.Equal(t, "bonus", bySite[0].PaymentType)

	other := "someone-else"
	none, err := f.svc.ListBySite(f.ctx, f.siteID, payment.SiteFilter{WorkerID: &other})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPaymentService_UpdateAndDelete(t *testing.T) {
	f := setup(t)
	created := f.create(t, 100, "2024-03-01", nil)

	amount := decimal.NewFromInt(150)
	updated, err := f.svc.Update(f.ctx, payment.UpdatePaymentRequest{ID: created.ID, Amount: &amount, PaymentType: strPtr("other")})
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "other", updated.PaymentType)
	assert.Equal(t, "2024-03-01", updated.Date)

	zero := decimal.Zero
	_, err = f.svc.Update(f.ctx, payment.UpdatePaymentRequest{ID: created.ID, Amount: &zero})
	var vErrs validator.ValidationErrors
	assert.True(t, errors.As(err, &vErrs))

	_, err = f.svc.Update(ownerContext(t, "owner-2"), payment.UpdatePaymentRequest{ID: created.ID, Amount: &amount})
	assert.True(t, errors.Is(err, site.ErrForbidden))

	assert.True(t, errors.Is(f.svc.Delete(ownerContext(t, "owner-2"), created.ID), site.ErrForbidden))
	require.NoError(t, f.svc.Delete(f.ctx, created.ID))
	assert.True(t, errors.Is(f.svc.Delete(f.ctx, created.ID), payment.ErrPaymentNotFound))
}
