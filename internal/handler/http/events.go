package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/sse"
)

const (
	EventAttendanceMarked = "attendance.marked"
	EventAttendanceBulk   = "attendance.bulk"
	EventPaymentRecorded  = "payment.recorded"
	EventPaymentUpdated   = "payment.updated"
)

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventsHandlerImpl struct {
	siteService site.SiteService
	hub         *sse.Hub
	keepalive   time.Duration
}

func NewEventsHandler(siteService site.SiteService, hub *sse.Hub) EventsHandler {
	return &EventsHandlerImpl{siteService: siteService, hub: hub, keepalive: 30 * time.Second}
}

// Stream pushes attendance and payment changes of one site as server-sent events.
func (h *EventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "id")
	if _, err := h.siteService.GetOwned(r.Context(), siteID); err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(siteID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"site_id\":%q}\n\n", siteID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
