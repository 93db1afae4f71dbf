package cache

import (
	"context"
	"encoding/json"

	"github.com/hwpaige/launchboard/common"
)

// Fetcher defines the interface for retrieving raw launch objects from the upstream API
type Fetcher interface {
	// Fetch retrieves raw launch objects for the given category. The limit is advisory
	// for the upstream; the implementation paginates locally and truncates overshoot.
	Fetch(ctx context.Context, category common.Category, limit int) ([]json.RawMessage, error)

	IsInterfaceNil() bool
}

// Normalizer defines the interface for converting raw upstream objects into canonical records
type Normalizer interface {
	// NormalizeBatch converts a raw batch, dropping unusable records instead of failing
	NormalizeBatch(raws []json.RawMessage) []common.LaunchRecord

	IsInterfaceNil() bool
}
