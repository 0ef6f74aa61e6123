package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	ListBySite(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	events            *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, events *sse.Hub) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService, events: events}
}

// ListBySite implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListBySite(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListBySite(r.Context(), chi.URLParam(r, "siteId"), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		slog.Error("Failed to mark attendance", "error", err, "worker_id", req.WorkerID, "site_id", req.SiteID)
		response.HandleError(w, err)
		return
	}

	h.events.Publish(record.SiteID, EventAttendanceMarked, record)
	response.SuccessWithMessage(w, "Attendance saved", record)
}

// BulkMark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bulk attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.BulkMark(r.Context(), req)
	if err != nil {
		slog.Error("Failed to bulk mark attendance", "error", err, "site_id", req.SiteID)
		response.HandleError(w, err)
		return
	}

	h.events.Publish(req.SiteID, EventAttendanceBulk, result)
	response.SuccessWithMessage(w, "Bulk attendance saved", result)
}
