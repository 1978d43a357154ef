package series

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GregMSThompson/covid-tracker/internal/models"
)

func TestSanitize(t *testing.T) {
	ts := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		in   models.DailyRecord
		want models.DailyRecord
	}{
		"negatives clamp to zero": {
			in:   models.DailyRecord{Timestamp: ts, PositiveIncrease: -5, NegativeIncrease: -1, DeathIncrease: -30, RegionID: "NY"},
			want: models.DailyRecord{Timestamp: ts, RegionID: "NY"},
		},
		"positives untouched": {
			in:   models.DailyRecord{Timestamp: ts, PositiveIncrease: 12, NegativeIncrease: 0, DeathIncrease: 3, RegionID: "CA"},
			want: models.DailyRecord{Timestamp: ts, PositiveIncrease: 12, NegativeIncrease: 0, DeathIncrease: 3, RegionID: "CA"},
		},
		"mixed": {
			in:   models.DailyRecord{Timestamp: ts, PositiveIncrease: 7, NegativeIncrease: -2, DeathIncrease: 1},
			want: models.DailyRecord{Timestamp: ts, PositiveIncrease: 7, DeathIncrease: 1},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Sanitize mismatch (-want +got):\n%s", diff)
			}
			if again := Sanitize(got); again != got {
				t.Fatalf("Sanitize is not idempotent: %+v then %+v", got, again)
			}
		})
	}
}
