package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/handlers"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/internal/response"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

type stubTracker struct{ refreshed bool }

func (s *stubTracker) Refresh(context.Context) dto.TrackerStatus {
	s.refreshed = true
	return dto.TrackerStatus{}
}
func (s *stubTracker) Status() dto.TrackerStatus        { return dto.TrackerStatus{} }
func (s *stubTracker) Regions(context.Context) []string { return []string{"NY"} }

type stubCharts struct{ lastRegion string }

func (s *stubCharts) GetSeriesView(_ context.Context, regionID string, _ dto.ChartQuery) (dto.SeriesView, error) {
	s.lastRegion = regionID
	return dto.SeriesView{RegionID: regionID}, nil
}
func (s *stubCharts) GetPoint(context.Context, string, string, int) (dto.ChartPoint, error) {
	return dto.ChartPoint{}, nil
}
func (s *stubCharts) GetPointDaysAgo(context.Context, string, string, int) (dto.ChartPoint, error) {
	return dto.ChartPoint{}, nil
}

type stubViews struct{}

func (stubViews) ListViews(context.Context, string, string) ([]*models.ChartView, error) {
	return nil, nil
}
func (stubViews) CreateView(context.Context, string, dto.CreateViewRequest) (*models.ChartView, error) {
	return nil, nil
}
func (stubViews) UpdateView(context.Context, string, string, dto.UpdateViewRequest) (*models.ChartView, error) {
	return nil, nil
}
func (stubViews) ReorderViews(context.Context, string, dto.ReorderViewsRequest) error { return nil }
func (stubViews) DeleteView(context.Context, string, string) error                    { return nil }
func (stubViews) GetViewData(context.Context, string, string) (dto.ViewDataResponse, error) {
	return dto.ViewDataResponse{}, nil
}

func newTestRouter() (http.Handler, *stubTracker, *stubCharts) {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	tracker := &stubTracker{}
	charts := &stubCharts{}
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		TrackerSvc:      tracker,
		ChartSvc:        charts,
		ViewSvc:         stubViews{},
	}
	return NewRouter(deps), tracker, charts
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _, charts := newTestRouter()

	for _, path := range []string{"/covid/status", "/covid/regions", "/covid/series/NY?window=week", "/covid/series/NY/points/0", "/covid/series/NY/days-ago/3"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
	if charts.lastRegion != "NY" {
		t.Fatalf("expected regionId URL param to reach the service, got %q", charts.lastRegion)
	}
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	r, tracker, _ := newTestRouter()

	tests := []struct {
		method, path string
	}{
		{http.MethodPost, "/covid/refresh"},
		{http.MethodGet, "/views"},
		{http.MethodPut, "/views/reorder"},
		{http.MethodGet, "/views/v1/data"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tt.method, tt.path, rr.Code)
		}
	}
	if tracker.refreshed {
		t.Fatal("refresh must not run without auth")
	}
}
