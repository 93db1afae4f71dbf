package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwpaige/launchboard/common"
	"github.com/hwpaige/launchboard/testsCommon"
)

func TestNewRefreshScheduler(t *testing.T) {
	t.Parallel()

	t.Run("nil refresher should error", func(t *testing.T) {
		s, err := NewRefreshScheduler(nil, time.Minute)
		assert.Nil(t, s)
		assert.True(t, s.IsInterfaceNil())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil refresher")
	})
	t.Run("invalid interval should error", func(t *testing.T) {
		s, err := NewRefreshScheduler(&testsCommon.ServiceStub{}, 0)
		assert.Nil(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid refresh interval")
	})
	t.Run("should work", func(t *testing.T) {
		s, err := NewRefreshScheduler(&testsCommon.ServiceStub{}, time.Minute)
		require.NoError(t, err)
		assert.False(t, s.IsInterfaceNil())
	})
}

func TestRefreshScheduler_RunsImmediatelyForBothCategories(t *testing.T) {
	t.Parallel()

	numUpcoming := int32(0)
	numPrevious := int32(0)
	stub := &testsCommon.ServiceStub{
		RefreshHandler: func(ctx context.Context, category common.Category) (common.CacheSnapshot, error) {
			switch category {
			case common.CategoryUpcoming:
				atomic.AddInt32(&numUpcoming, 1)
			case common.CategoryPrevious:
				atomic.AddInt32(&numPrevious, 1)
			}
			return common.CacheSnapshot{}, nil
		},
	}

	s, err := NewRefreshScheduler(stub, time.Hour)
	require.NoError(t, err)

	err = s.Start()
	require.NoError(t, err)
	defer s.Stop()

	// the first run is immediate; poll briefly for it to complete
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&numUpcoming) >= 1 && atomic.LoadInt32(&numPrevious) >= 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&numUpcoming))
	assert.Equal(t, int32(1), atomic.LoadInt32(&numPrevious))
}
