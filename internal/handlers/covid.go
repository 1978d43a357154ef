package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/response"
)

type trackerService interface {
	Refresh(ctx context.Context) dto.TrackerStatus
	Status() dto.TrackerStatus
	Regions(ctx context.Context) []string
}

type chartService interface {
	GetSeriesView(ctx context.Context, regionID string, q dto.ChartQuery) (dto.SeriesView, error)
	GetPoint(ctx context.Context, regionID, metric string, index int) (dto.ChartPoint, error)
	GetPointDaysAgo(ctx context.Context, regionID, metric string, days int) (dto.ChartPoint, error)
}

type covidHandlers struct {
	ResponseHandler response.ResponseHandler
	TrackerSvc      trackerService
	ChartSvc        chartService
}

func NewCovidHandlers(deps *Deps) *covidHandlers {
	return &covidHandlers{
		ResponseHandler: deps.ResponseHandler,
		TrackerSvc:      deps.TrackerSvc,
		ChartSvc:        deps.ChartSvc,
	}
}

// CovidRoutes are public except refresh, which runs behind authMw.
func (h *covidHandlers) CovidRoutes(authMw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(authMw).Post("/refresh", h.Refresh)
	r.Get("/status", h.GetStatus)
	r.Get("/regions", h.ListRegions)
	r.Route("/series/{regionId}", func(r chi.Router) {
		r.Get("/", h.GetSeries)
		r.Get("/points/{index}", h.GetPoint)
		r.Get("/days-ago/{days}", h.GetPointDaysAgo)
	})
	return r
}

func (h *covidHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.TrackerSvc.Status())
}

func (h *covidHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	status := h.TrackerSvc.Refresh(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, status)
}

func (h *covidHandlers) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions := h.TrackerSvc.Regions(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.RegionList{Regions: regions})
}

func (h *covidHandlers) GetSeries(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "regionId")
	q := dto.ChartQuery{
		Metric: r.URL.Query().Get("metric"),
		Window: r.URL.Query().Get("window"),
	}
	view, err := h.ChartSvc.GetSeriesView(r.Context(), regionID, q)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *covidHandlers) GetPoint(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	p, err := h.ChartSvc.GetPoint(r.Context(), chi.URLParam(r, "regionId"), r.URL.Query().Get("metric"), index)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

func (h *covidHandlers) GetPointDaysAgo(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	p, err := h.ChartSvc.GetPointDaysAgo(r.Context(), chi.URLParam(r, "regionId"), r.URL.Query().Get("metric"), days)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

func intParam(r *http.Request, key string) (int, error) {
	raw := chi.URLParam(r, key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(key + " must be an integer")
	}
	return n, nil
}
