package models

import (
	"sort"
	"time"
)

// DailyRecord is one day's report for one scope. An empty RegionID means national scope.
type DailyRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	PositiveIncrease int       `json:"positiveIncrease"`
	NegativeIncrease int       `json:"negativeIncrease"`
	DeathIncrease    int       `json:"deathIncrease"`
	RegionID         string    `json:"regionId,omitempty"`
}

// Series is ordered ascending by Timestamp and is never mutated once built.
type Series []DailyRecord

// RegionSeriesMap maps a region id to its chronological series.
type RegionSeriesMap map[string]Series

// RegionIDs returns the map keys sorted for display.
func (m RegionSeriesMap) RegionIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
