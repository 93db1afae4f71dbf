package service

import (
	"context"
	"errors"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/hwpaige/launchboard/aggregator"
	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("service")

// ArgsLaunchService defines the launch service arguments
type ArgsLaunchService struct {
	Cache    Cache
	Archive  Archive
	Vehicles []string
}

// launchService is the read surface consumed by the presentation layer: pure
// reads over the cache plus derived aggregate series, safe to call at
// arbitrary rate
type launchService struct {
	cache    Cache
	archive  Archive
	vehicles []string
}

// NewLaunchService creates a new launch service
func NewLaunchService(args ArgsLaunchService) (*launchService, error) {
	if check.IfNil(args.Cache) {
		return nil, errors.New("nil cache")
	}
	if check.IfNil(args.Archive) {
		return nil, errors.New("nil archive")
	}
	if len(args.Vehicles) == 0 {
		return nil, errors.New("empty vehicle categories")
	}

	return &launchService{
		cache:    args.Cache,
		archive:  args.Archive,
		vehicles: args.Vehicles,
	}, nil
}

// GetRecords returns the cached snapshot for a category
func (s *launchService) GetRecords(ctx context.Context, category common.Category) (common.CacheSnapshot, bool, error) {
	return s.cache.Get(ctx, category, false)
}

// GetSeries aggregates the cached records of a category into per-vehicle
// monthly or cumulative series for the given calendar year
func (s *launchService) GetSeries(ctx context.Context, category common.Category, year int, mode common.SeriesMode) (common.AggregateSeries, bool, error) {
	snapshot, degraded, err := s.cache.Get(ctx, category, false)
	if err != nil {
		return common.AggregateSeries{}, false, err
	}

	return aggregator.Aggregate(snapshot.Records, year, s.vehicles, mode), degraded, nil
}

// GetStatusSeries counts the cached records of a category per status for the
// given calendar year
func (s *launchService) GetStatusSeries(ctx context.Context, category common.Category, year int) (common.StatusBreakdown, bool, error) {
	snapshot, degraded, err := s.cache.Get(ctx, category, false)
	if err != nil {
		return nil, false, err
	}

	return aggregator.ByStatus(snapshot.Records, year), degraded, nil
}

// GetHistorySeries aggregates over the persistent archive instead of the live
// cache, serving years beyond the upstream's bounded window
func (s *launchService) GetHistorySeries(ctx context.Context, year int, mode common.SeriesMode) (common.AggregateSeries, error) {
	records, err := s.archive.GetYear(ctx, year)
	if err != nil {
		return common.AggregateSeries{}, err
	}

	return aggregator.Aggregate(records, year, s.vehicles, mode), nil
}

// Refresh forces a cache refresh for a category and archives the refreshed
// records on success. A degraded result means the refresh failed and the
// stale snapshot was kept; nothing is archived in that case.
func (s *launchService) Refresh(ctx context.Context, category common.Category) (common.CacheSnapshot, error) {
	snapshot, degraded, err := s.cache.Get(ctx, category, true)
	if err != nil {
		return common.CacheSnapshot{}, err
	}
	if degraded {
		return snapshot, nil
	}

	err = s.archive.SaveRecords(ctx, category, snapshot.Records)
	if err != nil {
		log.Warn("failed to archive refreshed records", "category", category, "error", err)
	}

	return snapshot, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *launchService) IsInterfaceNil() bool {
	return s == nil
}
