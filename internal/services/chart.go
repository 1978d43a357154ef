package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/covid-tracker/internal/chart"
	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
)

// seriesSource resolves a region id to its shared series.
type seriesSource interface {
	Series(ctx context.Context, regionID string) (models.Series, error)
}

type chartService struct {
	source   seriesSource
	clockNow func() time.Time
}

func NewChartService(source seriesSource) *chartService {
	return &chartService{source: source, clockNow: time.Now}
}

// GetSeriesView returns the bounds and the visible points for one region.
func (s *chartService) GetSeriesView(ctx context.Context, regionID string, q dto.ChartQuery) (dto.SeriesView, error) {
	adapter, err := s.adapter(ctx, regionID, q)
	if err != nil {
		return dto.SeriesView{}, err
	}

	b := adapter.VisibleBounds()
	view := dto.SeriesView{
		RegionID: displayRegion(regionID),
		Metric:   adapter.Metric.String(),
		Window:   adapter.TimeScale.String(),
		Count:    adapter.Count(),
		Bounds: dto.ChartBounds{
			LowIndex:  b.LowIndex,
			HighIndex: b.HighIndex,
			LowValue:  b.LowValue,
			HighValue: b.HighValue,
		},
		Points: make([]dto.ChartPoint, 0, max(0, b.HighIndex-b.LowIndex+1)),
	}
	for i := b.LowIndex; i <= b.HighIndex; i++ {
		view.Points = append(view.Points, point(adapter, i))
	}
	if idx, ok := adapter.LatestIndex(); ok {
		latest := point(adapter, idx)
		view.Latest = &latest
	}
	return view, nil
}

// GetPoint looks a point up by index. Out-of-range indices are rejected, never clamped.
func (s *chartService) GetPoint(ctx context.Context, regionID, metric string, index int) (dto.ChartPoint, error) {
	adapter, err := s.adapter(ctx, regionID, dto.ChartQuery{Metric: metric})
	if err != nil {
		return dto.ChartPoint{}, err
	}
	if index < 0 || index >= adapter.Count() {
		return dto.ChartPoint{}, errs.NewValidationError(fmt.Sprintf("index %d out of range [0,%d)", index, adapter.Count()))
	}
	return point(adapter, index), nil
}

// GetPointDaysAgo looks up the latest point dated at or before now minus days.
func (s *chartService) GetPointDaysAgo(ctx context.Context, regionID, metric string, days int) (dto.ChartPoint, error) {
	if days < 0 {
		return dto.ChartPoint{}, errs.NewValidationError("days must not be negative")
	}
	adapter, err := s.adapter(ctx, regionID, dto.ChartQuery{Metric: metric})
	if err != nil {
		return dto.ChartPoint{}, err
	}
	idx, ok := adapter.IndexDaysAgo(days, s.clockNow())
	if !ok {
		return dto.ChartPoint{}, errs.NewNotFoundError(fmt.Sprintf("no record %d days ago", days))
	}
	return point(adapter, idx), nil
}

func (s *chartService) adapter(ctx context.Context, regionID string, q dto.ChartQuery) (*chart.Adapter, error) {
	metric, err := chart.ParseMetric(q.Metric)
	if err != nil {
		return nil, err
	}
	window, err := chart.ParseTimeScale(q.Window)
	if err != nil {
		return nil, err
	}
	data, err := s.source.Series(ctx, regionID)
	if err != nil {
		return nil, err
	}
	adapter := chart.NewAdapter(data)
	adapter.Metric = metric
	adapter.TimeScale = window
	return adapter, nil
}

func point(a *chart.Adapter, index int) dto.ChartPoint {
	return dto.ChartPoint{
		Index: index,
		Date:  a.RecordAt(index).Timestamp,
		Value: a.ValueAt(index),
	}
}

func displayRegion(regionID string) string {
	if regionID == "" {
		return dto.NationwideID
	}
	return regionID
}
