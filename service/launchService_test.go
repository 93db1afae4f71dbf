package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwpaige/launchboard/common"
	"github.com/hwpaige/launchboard/testsCommon"
)

var testVehicles = []string{"Falcon 9", "Starship"}

func testSnapshot() common.CacheSnapshot {
	return common.CacheSnapshot{
		Records: []common.LaunchRecord{
			{ID: "1", Rocket: "Falcon 9", Status: "Success", Net: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			{ID: "2", Rocket: "Falcon 9", Status: "Success", Net: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
			{ID: "3", Rocket: "Starship", Status: "Failure", Net: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestNewLaunchService(t *testing.T) {
	t.Parallel()

	t.Run("nil cache should error", func(t *testing.T) {
		s, err := NewLaunchService(ArgsLaunchService{
			Archive:  &testsCommon.ArchiveStub{},
			Vehicles: testVehicles,
		})
		assert.Nil(t, s)
		assert.True(t, s.IsInterfaceNil())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil cache")
	})
	t.Run("nil archive should error", func(t *testing.T) {
		s, err := NewLaunchService(ArgsLaunchService{
			Cache:    &testsCommon.CacheStub{},
			Vehicles: testVehicles,
		})
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil archive")
	})
	t.Run("empty vehicles should error", func(t *testing.T) {
		s, err := NewLaunchService(ArgsLaunchService{
			Cache:   &testsCommon.CacheStub{},
			Archive: &testsCommon.ArchiveStub{},
		})
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty vehicle categories")
	})
	t.Run("should work", func(t *testing.T) {
		s, err := NewLaunchService(ArgsLaunchService{
			Cache:    &testsCommon.CacheStub{},
			Archive:  &testsCommon.ArchiveStub{},
			Vehicles: testVehicles,
		})
		require.NoError(t, err)
		assert.False(t, s.IsInterfaceNil())
	})
}

func TestLaunchService_GetSeries(t *testing.T) {
	t.Parallel()

	cache := &testsCommon.CacheStub{
		GetHandler: func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
			assert.False(t, forceRefresh)
			return testSnapshot(), true, nil
		},
	}

	s, err := NewLaunchService(ArgsLaunchService{
		Cache:    cache,
		Archive:  &testsCommon.ArchiveStub{},
		Vehicles: testVehicles,
	})
	require.NoError(t, err)

	series, degraded, err := s.GetSeries(context.Background(), common.CategoryPrevious, 2024, common.ModeMonthly)
	require.NoError(t, err)
	assert.True(t, degraded) // the degraded indicator passes through
	assert.Equal(t, testVehicles, series.Categories)
	assert.Equal(t, 2, series.Values["Falcon 9"][2])
	assert.Equal(t, 1, series.Values["Starship"][6])
}

func TestLaunchService_GetStatusSeries(t *testing.T) {
	t.Parallel()

	cache := &testsCommon.CacheStub{
		GetHandler: func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
			return testSnapshot(), false, nil
		},
	}

	s, err := NewLaunchService(ArgsLaunchService{
		Cache:    cache,
		Archive:  &testsCommon.ArchiveStub{},
		Vehicles: testVehicles,
	})
	require.NoError(t, err)

	breakdown, degraded, err := s.GetStatusSeries(context.Background(), common.CategoryPrevious, 2024)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, breakdown, 2)
	assert.Equal(t, common.StatusCount{Status: "Success", Count: 2}, breakdown[0])
	assert.Equal(t, common.StatusCount{Status: "Failure", Count: 1}, breakdown[1])
}

func TestLaunchService_GetHistorySeries(t *testing.T) {
	t.Parallel()

	archive := &testsCommon.ArchiveStub{
		GetYearHandler: func(ctx context.Context, year int) ([]common.LaunchRecord, error) {
			assert.Equal(t, 2023, year)
			return []common.LaunchRecord{
				{ID: "old", Rocket: "Falcon 9", Net: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	s, err := NewLaunchService(ArgsLaunchService{
		Cache:    &testsCommon.CacheStub{},
		Archive:  archive,
		Vehicles: testVehicles,
	})
	require.NoError(t, err)

	series, err := s.GetHistorySeries(context.Background(), 2023, common.ModeCumulative)
	require.NoError(t, err)
	// cumulative: the May launch counts through December
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1}, series.Values["Falcon 9"])
}

func TestLaunchService_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("successful refresh archives the records", func(t *testing.T) {
		archivedCategories := make([]common.Category, 0)
		archive := &testsCommon.ArchiveStub{
			SaveRecordsHandler: func(ctx context.Context, category common.Category, records []common.LaunchRecord) error {
				archivedCategories = append(archivedCategories, category)
				assert.Len(t, records, 3)
				return nil
			},
		}
		cache := &testsCommon.CacheStub{
			GetHandler: func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
				assert.True(t, forceRefresh)
				return testSnapshot(), false, nil
			},
		}

		s, err := NewLaunchService(ArgsLaunchService{Cache: cache, Archive: archive, Vehicles: testVehicles})
		require.NoError(t, err)

		snapshot, err := s.Refresh(context.Background(), common.CategoryPrevious)
		require.NoError(t, err)
		assert.Len(t, snapshot.Records, 3)
		assert.Equal(t, []common.Category{common.CategoryPrevious}, archivedCategories)
	})
	t.Run("degraded refresh does not archive stale data", func(t *testing.T) {
		archive := &testsCommon.ArchiveStub{
			SaveRecordsHandler: func(ctx context.Context, category common.Category, records []common.LaunchRecord) error {
				t.Error("should not archive a stale snapshot")
				return nil
			},
		}
		cache := &testsCommon.CacheStub{
			GetHandler: func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
				return testSnapshot(), true, nil
			},
		}

		s, err := NewLaunchService(ArgsLaunchService{Cache: cache, Archive: archive, Vehicles: testVehicles})
		require.NoError(t, err)

		snapshot, err := s.Refresh(context.Background(), common.CategoryPrevious)
		require.NoError(t, err)
		assert.Len(t, snapshot.Records, 3)
	})
	t.Run("cold start failure propagates", func(t *testing.T) {
		expectedErr := errors.New("no launch data available yet")
		cache := &testsCommon.CacheStub{
			GetHandler: func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
				return common.CacheSnapshot{}, false, expectedErr
			},
		}

		s, err := NewLaunchService(ArgsLaunchService{
			Cache:    cache,
			Archive:  &testsCommon.ArchiveStub{},
			Vehicles: testVehicles,
		})
		require.NoError(t, err)

		_, err = s.Refresh(context.Background(), common.CategoryPrevious)
		assert.ErrorIs(t, err, expectedErr)
	})
}
