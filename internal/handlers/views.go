package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/middleware"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/internal/response"
)

type viewService interface {
	ListViews(ctx context.Context, uid, regionID string) ([]*models.ChartView, error)
	CreateView(ctx context.Context, uid string, req dto.CreateViewRequest) (*models.ChartView, error)
	UpdateView(ctx context.Context, uid, viewID string, req dto.UpdateViewRequest) (*models.ChartView, error)
	ReorderViews(ctx context.Context, uid string, req dto.ReorderViewsRequest) error
	DeleteView(ctx context.Context, uid, viewID string) error
	GetViewData(ctx context.Context, uid, viewID string) (dto.ViewDataResponse, error)
}

type viewHandlers struct {
	ResponseHandler response.ResponseHandler
	ViewSvc         viewService
}

func NewViewHandlers(deps *Deps) *viewHandlers {
	return &viewHandlers{
		ResponseHandler: deps.ResponseHandler,
		ViewSvc:         deps.ViewSvc,
	}
}

func (h *viewHandlers) ViewRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListViews)
	r.Post("/", h.CreateView)
	r.Put("/reorder", h.ReorderViews) // must be before /{viewId}
	r.Put("/{viewId}", h.UpdateView)
	r.Delete("/{viewId}", h.DeleteView)
	r.Get("/{viewId}/data", h.GetViewData)
	return r
}

func (h *viewHandlers) ListViews(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	views, err := h.ViewSvc.ListViews(r.Context(), uid, r.URL.Query().Get("regionId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, views)
}

func (h *viewHandlers) CreateView(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	view, err := h.ViewSvc.CreateView(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, view)
}

func (h *viewHandlers) UpdateView(w http.ResponseWriter, r *http.Request) {
	viewID := chi.URLParam(r, "viewId")
	var req dto.UpdateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	view, err := h.ViewSvc.UpdateView(r.Context(), uid, viewID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *viewHandlers) ReorderViews(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderViewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	if err := h.ViewSvc.ReorderViews(r.Context(), uid, req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *viewHandlers) DeleteView(w http.ResponseWriter, r *http.Request) {
	viewID := chi.URLParam(r, "viewId")
	uid := middleware.UID(r.Context())
	if err := h.ViewSvc.DeleteView(r.Context(), uid, viewID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *viewHandlers) GetViewData(w http.ResponseWriter, r *http.Request) {
	viewID := chi.URLParam(r, "viewId")
	uid := middleware.UID(r.Context())
	data, err := h.ViewSvc.GetViewData(r.Context(), uid, viewID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}
