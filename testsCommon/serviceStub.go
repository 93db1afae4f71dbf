package testsCommon

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// ServiceStub -
type ServiceStub struct {
	GetRecordsHandler       func(ctx context.Context, category common.Category) (common.CacheSnapshot, bool, error)
	GetSeriesHandler        func(ctx context.Context, category common.Category, year int, mode common.SeriesMode) (common.AggregateSeries, bool, error)
	GetStatusSeriesHandler  func(ctx context.Context, category common.Category, year int) (common.StatusBreakdown, bool, error)
	GetHistorySeriesHandler func(ctx context.Context, year int, mode common.SeriesMode) (common.AggregateSeries, error)
	RefreshHandler          func(ctx context.Context, category common.Category) (common.CacheSnapshot, error)
}

// GetRecords -
func (stub *ServiceStub) GetRecords(ctx context.Context, category common.Category) (common.CacheSnapshot, bool, error) {
	if stub.GetRecordsHandler != nil {
		return stub.GetRecordsHandler(ctx, category)
	}

	return common.CacheSnapshot{}, false, nil
}

// GetSeries -
func (stub *ServiceStub) GetSeries(ctx context.Context, category common.Category, year int, mode common.SeriesMode) (common.AggregateSeries, bool, error) {
	if stub.GetSeriesHandler != nil {
		return stub.GetSeriesHandler(ctx, category, year, mode)
	}

	return common.AggregateSeries{}, false, nil
}

// GetStatusSeries -
func (stub *ServiceStub) GetStatusSeries(ctx context.Context, category common.Category, year int) (common.StatusBreakdown, bool, error) {
	if stub.GetStatusSeriesHandler != nil {
		return stub.GetStatusSeriesHandler(ctx, category, year)
	}

	return make(common.StatusBreakdown, 0), false, nil
}

// GetHistorySeries -
func (stub *ServiceStub) GetHistorySeries(ctx context.Context, year int, mode common.SeriesMode) (common.AggregateSeries, error) {
	if stub.GetHistorySeriesHandler != nil {
		return stub.GetHistorySeriesHandler(ctx, year, mode)
	}

	return common.AggregateSeries{}, nil
}

// Refresh -
func (stub *ServiceStub) Refresh(ctx context.Context, category common.Category) (common.CacheSnapshot, error) {
	if stub.RefreshHandler != nil {
		return stub.RefreshHandler(ctx, category)
	}

	return common.CacheSnapshot{}, nil
}

// IsInterfaceNil -
func (stub *ServiceStub) IsInterfaceNil() bool {
	return stub == nil
}
