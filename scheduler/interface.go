package scheduler

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// Refresher defines the component able to refresh one launch category
type Refresher interface {
	// Refresh forces a cache refresh for a category, archiving on success
	Refresh(ctx context.Context, category common.Category) (common.CacheSnapshot, error)

	IsInterfaceNil() bool
}
