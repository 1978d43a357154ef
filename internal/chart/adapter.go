// Package chart projects a chronological series into a sparkline-friendly view.
package chart

import (
	"fmt"
	"sort"
	"time"

	"github.com/GregMSThompson/covid-tracker/internal/models"
)

// Bounds is the visible index range plus the value range of the whole series.
type Bounds struct {
	LowIndex  int
	HighIndex int
	LowValue  float64
	HighValue float64
}

// Adapter is a windowed view over a shared, read-only series.
// Metric and TimeScale may be changed at any time; an Adapter is not safe for
// concurrent use, but any number of adapters may share one series.
type Adapter struct {
	series    models.Series
	Metric    Metric
	TimeScale TimeScale
}

func NewAdapter(s models.Series) *Adapter {
	return &Adapter{
		series:    s,
		Metric:    MetricPositive,
		TimeScale: TimeScaleMax,
	}
}

func (a *Adapter) Count() int {
	return len(a.series)
}

// ValueAt returns the selected metric at index. It panics when index is out of range.
func (a *Adapter) ValueAt(index int) float64 {
	return float64(a.metricOf(a.RecordAt(index)))
}

// RecordAt returns the record at index regardless of Metric. It panics when index is out of range.
func (a *Adapter) RecordAt(index int) models.DailyRecord {
	if index < 0 || index >= len(a.series) {
		panic(fmt.Sprintf("chart: index %d out of range [0,%d)", index, len(a.series)))
	}
	return a.series[index]
}

// VisibleBounds narrows the low index to the trailing window while the value
// range stays anchored to the whole series, so the vertical scale does not
// change when the window does. An empty series yields HighIndex -1.
func (a *Adapter) VisibleBounds() Bounds {
	n := len(a.series)
	b := Bounds{LowIndex: 0, HighIndex: n - 1}
	for i, rec := range a.series {
		v := float64(a.metricOf(rec))
		if i == 0 || v < b.LowValue {
			b.LowValue = v
		}
		if i == 0 || v > b.HighValue {
			b.HighValue = v
		}
	}
	if days := a.TimeScale.Days(); days > 0 {
		b.LowIndex = max(0, n-days)
	}
	return b
}

// LatestIndex is the index of the most recent record, whatever the window.
func (a *Adapter) LatestIndex() (int, bool) {
	if len(a.series) == 0 {
		return -1, false
	}
	return len(a.series) - 1, true
}

// IndexDaysAgo finds the latest record dated at or before now minus days.
// The series must be ascending, which every built series is.
func (a *Adapter) IndexDaysAgo(days int, now time.Time) (int, bool) {
	if days < 0 {
		return 0, false
	}
	target := now.AddDate(0, 0, -days)
	idx := sort.Search(len(a.series), func(i int) bool {
		return a.series[i].Timestamp.After(target)
	})
	if idx == 0 {
		return 0, false
	}
	return idx - 1, true
}

func (a *Adapter) metricOf(rec models.DailyRecord) int {
	switch a.Metric {
	case MetricPositive:
		return rec.PositiveIncrease
	case MetricNegative:
		return rec.NegativeIncrease
	case MetricDeath:
		return rec.DeathIncrease
	default:
		panic(fmt.Sprintf("chart: unknown metric %d", int(a.Metric)))
	}
}
