package dto

import "time"

// ChartQuery carries the raw metric/window selectors from a request.
// Empty values fall back to "positive" and "max".
type ChartQuery struct {
	Metric string
	Window string
}

type ChartBounds struct {
	LowIndex  int     `json:"lowIndex"`
	HighIndex int     `json:"highIndex"`
	LowValue  float64 `json:"lowValue"`
	HighValue float64 `json:"highValue"`
}

type ChartPoint struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SeriesView is the windowed projection of one region's series.
type SeriesView struct {
	RegionID string       `json:"regionId"`
	Metric   string       `json:"metric"`
	Window   string       `json:"window"`
	Count    int          `json:"count"`
	Bounds   ChartBounds  `json:"bounds"`
	Latest   *ChartPoint  `json:"latest,omitempty"`
	Points   []ChartPoint `json:"points"`
}

type RegionList struct {
	Regions []string `json:"regions"`
}
