package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/pkg/helpers"
)

func newChartSvc() *chartService {
	src := &fakeSeriesSource{data: map[string]models.Series{
		dto.NationwideID: testSeries(40, ""),
		"NY":             testSeries(3, "NY"),
		"EMPTY":          {},
	}}
	return NewChartService(src)
}

func TestGetSeriesView_Week(t *testing.T) {
	svc := newChartSvc()

	view, err := svc.GetSeriesView(helpers.TestCtx(), "", dto.ChartQuery{Window: "week"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.RegionID != "all" || view.Metric != "positive" || view.Window != "week" || view.Count != 40 {
		t.Fatalf("unexpected header: %+v", view)
	}
	wantBounds := dto.ChartBounds{LowIndex: 33, HighIndex: 39, LowValue: 1, HighValue: 40}
	if diff := cmp.Diff(wantBounds, view.Bounds); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
	if len(view.Points) != 7 || view.Points[0].Index != 33 || view.Points[6].Value != 40 {
		t.Fatalf("unexpected points: %+v", view.Points)
	}
	if view.Latest == nil || view.Latest.Index != 39 || !view.Latest.Date.Equal(testDay.AddDate(0, 0, 39)) {
		t.Fatalf("unexpected latest: %+v", view.Latest)
	}
}

func TestGetSeriesView_Metric(t *testing.T) {
	svc := newChartSvc()

	view, err := svc.GetSeriesView(helpers.TestCtx(), "NY", dto.ChartQuery{Metric: "negative"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []dto.ChartPoint{
		{Index: 0, Date: testDay, Value: 0},
		{Index: 1, Date: testDay.AddDate(0, 0, 1), Value: 2},
		{Index: 2, Date: testDay.AddDate(0, 0, 2), Value: 4},
	}
	if diff := cmp.Diff(want, view.Points); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSeriesView_Empty(t *testing.T) {
	view, err := newChartSvc().GetSeriesView(helpers.TestCtx(), "EMPTY", dto.ChartQuery{Window: "month"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Count != 0 || view.Latest != nil || len(view.Points) != 0 || view.Bounds.HighIndex != -1 {
		t.Fatalf("unexpected empty view: %+v", view)
	}
}

func TestGetSeriesView_Errors(t *testing.T) {
	svc := newChartSvc()
	ctx := helpers.TestCtx()

	var vErr *errs.ValidationError
	if _, err := svc.GetSeriesView(ctx, "NY", dto.ChartQuery{Metric: "recovered"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad metric, got %v", err)
	}
	if _, err := svc.GetSeriesView(ctx, "NY", dto.ChartQuery{Window: "decade"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bad window, got %v", err)
	}
	var nf *errs.NotFoundError
	if _, err := svc.GetSeriesView(ctx, "ZZ", dto.ChartQuery{}); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for unknown region, got %v", err)
	}
}

func TestGetPoint(t *testing.T) {
	svc := newChartSvc()
	ctx := helpers.TestCtx()

	p, err := svc.GetPoint(ctx, "NY", "death", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Index != 1 || p.Value != 1 {
		t.Fatalf("unexpected point: %+v", p)
	}

	var vErr *errs.ValidationError
	for _, idx := range []int{-1, 3} {
		if _, err := svc.GetPoint(ctx, "NY", "", idx); !errors.As(err, &vErr) {
			t.Fatalf("index %d: expected ValidationError, got %v", idx, err)
		}
	}
}

func TestGetPointDaysAgo(t *testing.T) {
	svc := newChartSvc()
	svc.clockNow = fixedClock(testDay.AddDate(0, 0, 39).Add(18 * time.Hour))
	ctx := helpers.TestCtx()

	p, err := svc.GetPointDaysAgo(ctx, "all", "", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Index != 32 || p.Value != 33 {
		t.Fatalf("unexpected point: %+v", p)
	}

	var nf *errs.NotFoundError
	if _, err := svc.GetPointDaysAgo(ctx, "all", "", 400); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError before the series starts, got %v", err)
	}
	var vErr *errs.ValidationError
	if _, err := svc.GetPointDaysAgo(ctx, "all", "", -2); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative days, got %v", err)
	}
}
