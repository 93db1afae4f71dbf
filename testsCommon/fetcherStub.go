package testsCommon

import (
	"context"
	"encoding/json"

	"github.com/hwpaige/launchboard/common"
)

// FetcherStub -
type FetcherStub struct {
	FetchHandler func(ctx context.Context, category common.Category, limit int) ([]json.RawMessage, error)
}

// Fetch -
func (stub *FetcherStub) Fetch(ctx context.Context, category common.Category, limit int) ([]json.RawMessage, error) {
	if stub.FetchHandler != nil {
		return stub.FetchHandler(ctx, category, limit)
	}

	return make([]json.RawMessage, 0), nil
}

// IsInterfaceNil -
func (stub *FetcherStub) IsInterfaceNil() bool {
	return stub == nil
}
