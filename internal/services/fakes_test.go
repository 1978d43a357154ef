package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
)

// --- Fakes ---

type fakeCovidClient struct {
	national    []dto.RawRecord
	states      []dto.RawRecord
	nationalErr error
	statesErr   error
}

func (f *fakeCovidClient) FetchNational(_ context.Context) ([]dto.RawRecord, error) {
	return f.national, f.nationalErr
}

func (f *fakeCovidClient) FetchStates(_ context.Context) ([]dto.RawRecord, error) {
	return f.states, f.statesErr
}

type fakeCovidRepo struct {
	national      dto.FetchOutcome[models.Series]
	regions       dto.FetchOutcome[models.RegionSeriesMap]
	nationalCalls atomic.Int32
	regionCalls   atomic.Int32
}

func (f *fakeCovidRepo) GetNationalData(_ context.Context) dto.FetchOutcome[models.Series] {
	f.nationalCalls.Add(1)
	return f.national
}

func (f *fakeCovidRepo) GetRegionData(_ context.Context) dto.FetchOutcome[models.RegionSeriesMap] {
	f.regionCalls.Add(1)
	return f.regions
}

type fakeSeriesSource struct {
	data map[string]models.Series
}

func (f *fakeSeriesSource) Series(_ context.Context, regionID string) (models.Series, error) {
	if regionID == "" {
		regionID = dto.NationwideID
	}
	s, ok := f.data[regionID]
	if !ok {
		return nil, errs.NewNotFoundError("unknown region: " + regionID)
	}
	return s, nil
}

var testDay = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

// testSeries builds n consecutive days from testDay with positive = i+1.
func testSeries(n int, region string) models.Series {
	s := make(models.Series, n)
	for i := range s {
		s[i] = models.DailyRecord{
			Timestamp:        testDay.AddDate(0, 0, i),
			PositiveIncrease: i + 1,
			NegativeIncrease: 2 * i,
			DeathIncrease:    i % 2,
			RegionID:         region,
		}
	}
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
