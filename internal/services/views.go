package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/covid-tracker/internal/chart"
	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

// viewStore is the Firestore storage interface for saved chart views.
type viewStore interface {
	Create(ctx context.Context, uid string, v *models.ChartView) error
	Get(ctx context.Context, uid, viewID string) (*models.ChartView, error)
	List(ctx context.Context, uid, regionID string) ([]*models.ChartView, error)
	Update(ctx context.Context, uid string, v *models.ChartView) error
	Delete(ctx context.Context, uid, viewID string) error
	Count(ctx context.Context, uid string) (int, error)
	BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error
}

// viewCharts is the chart surface used to resolve a saved view.
type viewCharts interface {
	GetSeriesView(ctx context.Context, regionID string, q dto.ChartQuery) (dto.SeriesView, error)
}

// viewRegions resolves region ids against the loaded feed data.
type viewRegions interface {
	Series(ctx context.Context, regionID string) (models.Series, error)
}

type viewService struct {
	store   viewStore
	charts  viewCharts
	regions viewRegions
}

func NewViewService(store viewStore, charts viewCharts, regions viewRegions) *viewService {
	return &viewService{store: store, charts: charts, regions: regions}
}

// ListViews returns the user's views in position order, optionally only those
// saved for regionID.
func (s *viewService) ListViews(ctx context.Context, uid, regionID string) ([]*models.ChartView, error) {
	return s.store.List(ctx, uid, strings.TrimSpace(regionID))
}

func (s *viewService) CreateView(ctx context.Context, uid string, req dto.CreateViewRequest) (*models.ChartView, error) {
	v := &models.ChartView{
		Name:     strings.TrimSpace(req.Name),
		RegionID: req.RegionID,
		Metric:   req.Metric,
		Window:   req.Window,
	}
	applyViewDefaults(v)
	if err := s.validateView(ctx, v); err != nil {
		return nil, err
	}

	count, err := s.store.Count(ctx, uid)
	if err != nil {
		return nil, err
	}
	if count >= dto.MaxChartViews {
		return nil, errs.NewValidationError(fmt.Sprintf("at most %d saved views are allowed", dto.MaxChartViews))
	}

	v.ViewID = uuid.New().String()
	v.Position = count + 1
	if err := s.store.Create(ctx, uid, v); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("chart view created", "view_id", v.ViewID, "region_id", v.RegionID)
	return v, nil
}

func (s *viewService) UpdateView(ctx context.Context, uid, viewID string, req dto.UpdateViewRequest) (*models.ChartView, error) {
	v, err := s.store.Get(ctx, uid, viewID)
	if err != nil {
		return nil, err
	}
	v.Name = strings.TrimSpace(req.Name)
	v.RegionID = req.RegionID
	v.Metric = req.Metric
	v.Window = req.Window
	applyViewDefaults(v)
	if err := s.validateView(ctx, v); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, uid, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *viewService) ReorderViews(ctx context.Context, uid string, req dto.ReorderViewsRequest) error {
	positions := make(map[string]int, len(req.ViewOrder))
	for _, item := range req.ViewOrder {
		if item.ViewID == "" {
			return errs.NewValidationError("viewOrder entries require a viewId")
		}
		positions[item.ViewID] = item.Position
	}
	return s.store.BulkUpdatePositions(ctx, uid, positions)
}

func (s *viewService) DeleteView(ctx context.Context, uid, viewID string) error {
	if err := s.store.Delete(ctx, uid, viewID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("chart view deleted", "view_id", viewID)
	return nil
}

// GetViewData resolves a saved selection into its current windowed series.
func (s *viewService) GetViewData(ctx context.Context, uid, viewID string) (dto.ViewDataResponse, error) {
	v, err := s.store.Get(ctx, uid, viewID)
	if err != nil {
		return dto.ViewDataResponse{}, err
	}
	data, err := s.charts.GetSeriesView(ctx, v.RegionID, dto.ChartQuery{Metric: v.Metric, Window: v.Window})
	if err != nil {
		return dto.ViewDataResponse{}, err
	}
	return dto.ViewDataResponse{
		ViewID:      viewID,
		Data:        data,
		LastUpdated: time.Now(),
	}, nil
}

// --- Validation ---

func applyViewDefaults(v *models.ChartView) {
	if v.RegionID == "" {
		v.RegionID = dto.NationwideID
	}
	if v.Metric == "" {
		v.Metric = chart.MetricPositive.String()
	}
	if v.Window == "" {
		v.Window = chart.TimeScaleMax.String()
	}
	if v.Name == "" {
		v.Name = fmt.Sprintf("%s %s (%s)", v.RegionID, v.Metric, v.Window)
	}
}

func (s *viewService) validateView(ctx context.Context, v *models.ChartView) error {
	if _, err := chart.ParseMetric(v.Metric); err != nil {
		return err
	}
	if _, err := chart.ParseTimeScale(v.Window); err != nil {
		return err
	}
	if len(v.Name) > 80 {
		return errs.NewValidationError("name must be at most 80 characters")
	}
	return s.validateRegion(ctx, v.RegionID)
}

// validateRegion accepts the nationwide id unconditionally and any region the
// tracker currently knows. Region lookups before the first successful refresh
// are rejected too, since the id cannot be confirmed.
func (s *viewService) validateRegion(ctx context.Context, regionID string) error {
	if regionID == dto.NationwideID {
		return nil
	}
	_, err := s.regions.Series(ctx, regionID)
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return errs.NewValidationError("unknown region: " + regionID)
	}
	return err
}
