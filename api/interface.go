package api

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// Service defines the read surface the presentation layer consumes
type Service interface {
	// GetRecords returns the cached snapshot for a category
	GetRecords(ctx context.Context, category common.Category) (common.CacheSnapshot, bool, error)

	// GetSeries aggregates cached records into per-vehicle monthly or cumulative series
	GetSeries(ctx context.Context, category common.Category, year int, mode common.SeriesMode) (common.AggregateSeries, bool, error)

	// GetStatusSeries counts cached records per status label
	GetStatusSeries(ctx context.Context, category common.Category, year int) (common.StatusBreakdown, bool, error)

	// GetHistorySeries aggregates over the persistent archive instead of the live cache
	GetHistorySeries(ctx context.Context, year int, mode common.SeriesMode) (common.AggregateSeries, error)

	// Refresh forces a cache refresh for a category, archiving on success
	Refresh(ctx context.Context, category common.Category) (common.CacheSnapshot, error)

	IsInterfaceNil() bool
}

// WeatherClient defines the external weather collaborator. It never fails:
// any fetch error yields the documented fallback snapshot.
type WeatherClient interface {
	Fetch(ctx context.Context, lat float64, lon float64) common.WeatherSnapshot

	IsInterfaceNil() bool
}
