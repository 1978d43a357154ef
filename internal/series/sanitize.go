package series

import (
	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/models"
)

// Sanitize clamps every increase to zero or above. Regional feeds publish
// corrections as negative deltas, which cannot be plotted as daily new counts.
func Sanitize(r models.DailyRecord) models.DailyRecord {
	r.PositiveIncrease = max(r.PositiveIncrease, 0)
	r.NegativeIncrease = max(r.NegativeIncrease, 0)
	r.DeathIncrease = max(r.DeathIncrease, 0)
	return r
}

// toRecord converts a raw record as-is. A nil DateChecked becomes the zero time.
func toRecord(raw dto.RawRecord) models.DailyRecord {
	rec := models.DailyRecord{
		PositiveIncrease: raw.PositiveIncrease,
		NegativeIncrease: raw.NegativeIncrease,
		DeathIncrease:    raw.DeathIncrease,
		RegionID:         raw.State,
	}
	if raw.DateChecked != nil {
		rec.Timestamp = *raw.DateChecked
	}
	return rec
}
