package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/covid-tracker/internal/dto"
	"github.com/GregMSThompson/covid-tracker/internal/errs"
	"github.com/GregMSThompson/covid-tracker/internal/models"
	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

type covidRepo interface {
	GetNationalData(ctx context.Context) dto.FetchOutcome[models.Series]
	GetRegionData(ctx context.Context) dto.FetchOutcome[models.RegionSeriesMap]
}

// trackerService keeps the latest successfully fetched series in memory along
// with the state of each feed. Data from a failed refresh never replaces the
// previous snapshot.
type trackerService struct {
	repo     covidRepo
	clockNow func() time.Time

	// refreshMu serializes refreshes so an older fetch can never land after a newer one.
	refreshMu sync.Mutex

	mu            sync.RWMutex
	national      models.Series
	regions       models.RegionSeriesMap
	nationalState dto.FeedState
	regionState   dto.FeedState
}

func NewTrackerService(repo covidRepo) *trackerService {
	return &trackerService{
		repo:          repo,
		clockNow:      time.Now,
		nationalState: dto.FeedState{Status: dto.FeedEmpty},
		regionState:   dto.FeedState{Status: dto.FeedEmpty},
	}
}

// Refresh fetches both feeds concurrently and returns the resulting states.
func (s *trackerService) Refresh(ctx context.Context) dto.TrackerStatus {
	log := logger.FromContext(ctx)

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.Lock()
	s.nationalState = loadingState(s.nationalState)
	s.regionState = loadingState(s.regionState)
	s.mu.Unlock()
	log.Info("covid refresh started")

	// Feeds fail independently: each goroutine records its own outcome and
	// returns nil, so one failed feed never cancels the other.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.applyNational(egCtx, s.repo.GetNationalData(egCtx))
		return nil
	})
	eg.Go(func() error {
		s.applyRegions(egCtx, s.repo.GetRegionData(egCtx))
		return nil
	})
	_ = eg.Wait()

	status := s.Status()
	log.Info("covid refresh completed",
		"national_status", status.National.Status,
		"national_records", status.National.Records,
		"regions_status", status.Regions.Status,
		"regions", status.Regions.Records)
	return status
}

// RunRefreshLoop refreshes every interval until ctx is done.
func (s *trackerService) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *trackerService) applyNational(ctx context.Context, outcome dto.FetchOutcome[models.Series]) {
	now := s.clockNow()
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome.Match(func(data models.Series) {
		if len(data) == 0 {
			s.nationalState = dto.NoDataState(now)
			s.nationalState.Records = len(s.national)
			return
		}
		s.national = data
		s.nationalState = dto.FeedState{Status: dto.FeedSuccess, Records: len(data), UpdatedAt: now}
	}, func(message string) {
		logger.FromContext(ctx).Error("national feed failed", "error", message)
		s.nationalState = dto.FailureState(message, now)
		s.nationalState.Records = len(s.national)
	})
}

func (s *trackerService) applyRegions(ctx context.Context, outcome dto.FetchOutcome[models.RegionSeriesMap]) {
	now := s.clockNow()
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome.Match(func(data models.RegionSeriesMap) {
		if len(data) == 0 {
			s.regionState = dto.NoDataState(now)
			s.regionState.Records = len(s.regions)
			return
		}
		s.regions = data
		s.regionState = dto.FeedState{Status: dto.FeedSuccess, Records: len(data), UpdatedAt: now}
	}, func(message string) {
		logger.FromContext(ctx).Error("regional feed failed", "error", message)
		s.regionState = dto.FailureState(message, now)
		s.regionState.Records = len(s.regions)
	})
}

// loadingState keeps the served record count while a fetch is in flight.
func loadingState(prev dto.FeedState) dto.FeedState {
	return dto.FeedState{Status: dto.FeedLoading, Records: prev.Records, UpdatedAt: prev.UpdatedAt}
}

func (s *trackerService) Status() dto.TrackerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.TrackerStatus{National: s.nationalState, Regions: s.regionState}
}

// Regions returns the known region ids in display order.
func (s *trackerService) Regions(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regions.RegionIDs()
}

// Series resolves "" and "all" to the national series, anything else to a region.
// The returned series is shared and must not be modified.
func (s *trackerService) Series(_ context.Context, regionID string) (models.Series, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if regionID == "" || regionID == dto.NationwideID {
		if s.national == nil {
			return nil, errs.NewNotFoundError("national data not available")
		}
		return s.national, nil
	}
	if s.regions == nil {
		return nil, errs.NewNotFoundError("regional data not available")
	}
	data, ok := s.regions[regionID]
	if !ok {
		return nil, errs.NewNotFoundError("unknown region: " + regionID)
	}
	return data, nil
}
