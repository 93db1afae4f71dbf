package service

import (
	"context"

	"github.com/hwpaige/launchboard/common"
)

// Cache defines the interface for the per-category launch cache
type Cache interface {
	// Get returns the snapshot for a category, refreshing when stale or forced.
	// The boolean result flags a degraded (stale, refresh failed) snapshot.
	Get(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error)

	IsInterfaceNil() bool
}

// Archive defines the interface for the persistent launch archive
type Archive interface {
	// SaveRecords upserts a batch of records, newer fetches superseding by identifier
	SaveRecords(ctx context.Context, category common.Category, records []common.LaunchRecord) error

	// GetYear returns all archived records dated inside the given calendar year (UTC)
	GetYear(ctx context.Context, year int) ([]common.LaunchRecord, error)

	// CountByRocket returns per-vehicle launch counts for a year (0 = whole archive)
	CountByRocket(ctx context.Context, year int) (map[string]int, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}
