package series

import (
	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/models"
)

// BuildNationalSeries turns the most-recent-first national feed into an ascending series.
// The national feed is trusted: records are neither filtered nor clamped.
func BuildNationalSeries(raw []dto.RawRecord) models.Series {
	out := make(models.Series, len(raw))
	for i, r := range raw {
		out[len(raw)-1-i] = toRecord(r)
	}
	return out
}

// BuildRegionSeriesMap filters records without a timestamp, sanitizes the rest,
// reverses the feed into ascending order and partitions it by region in one pass.
// Each region keeps the relative order of the reversed feed.
func BuildRegionSeriesMap(raw []dto.RawRecord) models.RegionSeriesMap {
	kept := make([]models.DailyRecord, 0, len(raw))
	for _, r := range raw {
		if r.DateChecked == nil {
			continue
		}
		kept = append(kept, Sanitize(toRecord(r)))
	}

	out := make(models.RegionSeriesMap)
	for i := len(kept) - 1; i >= 0; i-- {
		rec := kept[i]
		out[rec.RegionID] = append(out[rec.RegionID], rec)
	}
	return out
}
