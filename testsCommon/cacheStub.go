package testsCommon

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// CacheStub -
type CacheStub struct {
	GetHandler func(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error)
}

// Get -
func (stub *CacheStub) Get(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
	if stub.GetHandler != nil {
		return stub.GetHandler(ctx, category, forceRefresh)
	}

	return common.CacheSnapshot{}, false, nil
}

// IsInterfaceNil -
func (stub *CacheStub) IsInterfaceNil() bool {
	return stub == nil
}
