package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/handler/http/response"
)

type SiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListArchived(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	Restore(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type SiteHandlerImpl struct {
	siteService site.SiteService
}

func NewSiteHandler(siteService site.SiteService) SiteHandler {
	return &SiteHandlerImpl{siteService: siteService}
}

// Create implements SiteHandler.
func (h *SiteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create site decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.siteService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create site", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created successfully", created)
}

// List implements SiteHandler.
func (h *SiteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sites)
}

// ListArchived implements SiteHandler.
func (h *SiteHandlerImpl) ListArchived(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.ListArchived(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sites)
}

// Get implements SiteHandler.
func (h *SiteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.siteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

// Update implements SiteHandler.
func (h *SiteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update site decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.siteService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update site", "error", err, "site_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site updated successfully", updated)
}

// Archive implements SiteHandler.
func (h *SiteHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.siteService.Archive(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Site archived", nil)
}

// Restore implements SiteHandler.
func (h *SiteHandlerImpl) Restore(w http.ResponseWriter, r *http.Request) {
	if err := h.siteService.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Site restored", nil)
}

// Delete implements SiteHandler.
func (h *SiteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.siteService.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete site", "error", err, "site_id", id)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Site deleted permanently", nil)
}
