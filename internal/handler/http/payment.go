package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/sse"
)

type PaymentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByWorker(w http.ResponseWriter, r *http.Request)
	ListBySite(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PaymentHandlerImpl struct {
	paymentService payment.PaymentService
	events         *sse.Hub
}

func NewPaymentHandler(paymentService payment.PaymentService, events *sse.Hub) PaymentHandler {
	return &PaymentHandlerImpl{paymentService: paymentService, events: events}
}

// Create implements PaymentHandler.
func (h *PaymentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payment.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.paymentService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to record payment", "error", err, "worker_id", req.WorkerID)
		response.HandleError(w, err)
		return
	}

	h.events.Publish(created.SiteID, EventPaymentRecorded, created)
	response.Created(w, "Payment recorded successfully", created)
}

// ListByWorker implements PaymentHandler.
func (h *PaymentHandlerImpl) ListByWorker(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payments, err := h.paymentService.ListByWorker(r.Context(), chi.URLParam(r, "workerId"), rng)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payments)
}

// ListBySite implements PaymentHandler.
func (h *PaymentHandlerImpl) ListBySite(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := payment.SiteFilter{Range: rng}
	if workerID := firstNonEmpty(r.URL.Query().Get("worker_id"), r.URL.Query().Get("workerId")); workerID != "" {
		filter.WorkerID = &workerID
	}

	payments, err := h.paymentService.ListBySite(r.Context(), chi.URLParam(r, "siteId"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payments)
}

// Update implements PaymentHandler.
func (h *PaymentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payment.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "paymentId")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.paymentService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update payment", "error", err, "payment_id", req.ID)
		response.HandleError(w, err)
		return
	}

	h.events.Publish(updated.SiteID, EventPaymentUpdated, updated)
	response.SuccessWithMessage(w, "Payment updated successfully", updated)
}

// Delete implements PaymentHandler.
func (h *PaymentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "paymentId")
	if err := h.paymentService.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete payment", "error", err, "payment_id", id)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}
