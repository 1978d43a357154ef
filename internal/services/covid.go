package services

import (
	"context"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/internal/series"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

// covidClient is the upstream adapter surface used by the repository.
type covidClient interface {
	FetchNational(ctx context.Context) ([]dto.RawRecord, error)
	FetchStates(ctx context.Context) ([]dto.RawRecord, error)
}

type covidRepository struct {
	client covidClient
}

func NewCovidRepository(client covidClient) *covidRepository {
	return &covidRepository{client: client}
}

// GetNationalData fetches the national feed and reshapes it into an ascending series.
func (r *covidRepository) GetNationalData(ctx context.Context) dto.FetchOutcome[models.Series] {
	raw, err := r.client.FetchNational(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("national fetch failed", "error", err)
		return dto.Failed[models.Series](err.Error())
	}
	return dto.Succeeded(series.BuildNationalSeries(raw))
}

// GetRegionData fetches the per-state feed and partitions it into per-region series.
func (r *covidRepository) GetRegionData(ctx context.Context) dto.FetchOutcome[models.RegionSeriesMap] {
	raw, err := r.client.FetchStates(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("regional fetch failed", "error", err)
		return dto.Failed[models.RegionSeriesMap](err.Error())
	}
	return dto.Succeeded(series.BuildRegionSeriesMap(raw))
}
