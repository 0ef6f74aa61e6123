package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payout"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
)

type PayoutHandler interface {
	SitePayouts(w http.ResponseWriter, r *http.Request)
	SiteSummary(w http.ResponseWriter, r *http.Request)
	WorkerSalarySlip(w http.ResponseWriter, r *http.Request)
	WorkerSummary(w http.ResponseWriter, r *http.Request)
}

type PayoutHandlerImpl struct {
	payoutService payout.PayoutService
}

func NewPayoutHandler(payoutService payout.PayoutService) PayoutHandler {
	return &PayoutHandlerImpl{payoutService: payoutService}
}

// SitePayouts implements PayoutHandler. from and to are required.
func (h *PayoutHandlerImpl) SitePayouts(w http.ResponseWriter, r *http.Request) {
	rng, err := requiredRangeFromQuery(r)
	if err != nil {
		response.BadRequest(w, "from and to (YYYY-MM-DD) required", map[string]string{"range": err.Error()})
		return
	}

	result, err := h.payoutService.SitePayouts(r.Context(), chi.URLParam(r, "siteId"), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// SiteSummary implements PayoutHandler.
func (h *PayoutHandlerImpl) SiteSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payoutService.SiteSummary(r.Context(), chi.URLParam(r, "siteId"), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// WorkerSalarySlip implements PayoutHandler. from and to are required.
func (h *PayoutHandlerImpl) WorkerSalarySlip(w http.ResponseWriter, r *http.Request) {
	rng, err := requiredRangeFromQuery(r)
	if err != nil {
		response.BadRequest(w, "from and to (YYYY-MM-DD) required", map[string]string{"range": err.Error()})
		return
	}

	slip, err := h.payoutService.WorkerSalarySlip(r.Context(), chi.URLParam(r, "workerId"), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, slip)
}

// WorkerSummary implements PayoutHandler.
func (h *PayoutHandlerImpl) WorkerSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.payoutService.WorkerSummary(r.Context(), chi.URLParam(r, "workerId"), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
