package dto

import "time"

const MaxChartViews = 20

type CreateViewRequest struct {
	Name     string `json:"name"`
	RegionID string `json:"regionId"`
	Metric   string `json:"metric"`
	Window   string `json:"window"`
}

type UpdateViewRequest struct {
	Name     string `json:"name"`
	RegionID string `json:"regionId"`
	Metric   string `json:"metric"`
	Window   string `json:"window"`
}

type ReorderViewItem struct {
	ViewID   string `json:"viewId"`
	Position int    `json:"position"`
}

type ReorderViewsRequest struct {
	ViewOrder []ReorderViewItem `json:"viewOrder"`
}

type ViewDataResponse struct {
	ViewID      string     `json:"viewId"`
	Data        SeriesView `json:"data"`
	LastUpdated time.Time  `json:"lastUpdated"`
}
