package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("cache")

var errEmptyRefresh = errors.New("refresh produced no usable records")

// ArgsLaunchCache defines the launch cache arguments
type ArgsLaunchCache struct {
	Fetcher    Fetcher
	Normalizer Normalizer
	TTL        time.Duration
	Limit      int
	DataDir    string // empty disables snapshot persistence
}

type categoryEntry struct {
	snapshot   common.CacheSnapshot
	hasData    bool
	inFlight   chan struct{}
	refreshErr error
}

// launchCache is the single authoritative store for the most recently
// normalized record set, one entry per category. Entries older than the TTL
// are refreshed on access; a failed refresh keeps serving the stale entry.
type launchCache struct {
	fetcher    Fetcher
	normalizer Normalizer
	ttl        time.Duration
	limit      int
	dataDir    string

	mut     sync.Mutex
	entries map[common.Category]*categoryEntry
}

// NewLaunchCache creates a new per-category launch cache, loading any
// persisted snapshots from the data directory
func NewLaunchCache(args ArgsLaunchCache) (*launchCache, error) {
	if check.IfNil(args.Fetcher) {
		return nil, errors.New("nil fetcher")
	}
	if check.IfNil(args.Normalizer) {
		return nil, errors.New("nil normalizer")
	}
	if args.TTL <= 0 {
		return nil, errors.New("invalid TTL")
	}

	c := &launchCache{
		fetcher:    args.Fetcher,
		normalizer: args.Normalizer,
		ttl:        args.TTL,
		limit:      args.Limit,
		dataDir:    args.DataDir,
		entries:    make(map[common.Category]*categoryEntry),
	}

	for _, category := range common.AllCategories {
		c.entries[category] = &categoryEntry{}
	}

	c.loadSnapshots()

	return c, nil
}

// Get returns the snapshot for a category. A fresh entry is returned without
// any network call; a stale or forced entry triggers a refresh. The boolean
// result is the degraded indicator: true means the returned snapshot is stale
// because the latest refresh attempt failed. Concurrent callers share a single
// in-flight fetch per category.
func (c *launchCache) Get(ctx context.Context, category common.Category, forceRefresh bool) (common.CacheSnapshot, bool, error) {
	c.mut.Lock()
	entry, ok := c.entries[category]
	if !ok {
		c.mut.Unlock()
		return common.CacheSnapshot{}, false, fmt.Errorf("unknown category '%s'", category)
	}

	fresh := entry.hasData && time.Since(entry.snapshot.FetchedAt) < c.ttl
	if fresh && !forceRefresh {
		snapshot := entry.snapshot
		c.mut.Unlock()
		return snapshot, false, nil
	}

	if entry.inFlight != nil {
		done := entry.inFlight
		c.mut.Unlock()

		select {
		case <-done:
			return c.currentState(category)
		case <-ctx.Done():
			// the caller gave up waiting; the in-flight fetch continues and the
			// cache state stays consistent
			return c.staleOrError(category, ctx.Err())
		}
	}

	done := make(chan struct{})
	entry.inFlight = done
	c.mut.Unlock()

	snapshot, err := c.refresh(ctx, category)

	c.mut.Lock()
	if err == nil && len(snapshot.Records) == 0 && entry.hasData && len(entry.snapshot.Records) > 0 {
		// availability over freshness: never replace good data with nothing
		err = errEmptyRefresh
	}
	if err == nil {
		entry.snapshot = snapshot
		entry.hasData = true
	}
	entry.refreshErr = err
	entry.inFlight = nil
	c.mut.Unlock()
	close(done)

	if err == nil {
		c.persistSnapshot(category, snapshot)
	} else {
		log.Warn("refresh failed, serving stale data if available", "category", category, "error", err)
	}

	return c.currentState(category)
}

func (c *launchCache) refresh(ctx context.Context, category common.Category) (common.CacheSnapshot, error) {
	raws, err := c.fetcher.Fetch(ctx, category, c.limit)
	if err != nil {
		return common.CacheSnapshot{}, err
	}

	return common.CacheSnapshot{
		Records:   c.normalizer.NormalizeBatch(raws),
		FetchedAt: time.Now().UTC(),
		Query:     fmt.Sprintf("category=%s&limit=%d", category, c.limit),
	}, nil
}

// currentState derives the caller-visible result from the entry state after a
// refresh attempt completed (locally or on another goroutine)
func (c *launchCache) currentState(category common.Category) (common.CacheSnapshot, bool, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	entry := c.entries[category]
	if !entry.hasData {
		return common.CacheSnapshot{}, false, fmt.Errorf("%w: %v", ErrCacheMiss, entry.refreshErr)
	}

	return entry.snapshot, entry.refreshErr != nil, nil
}

func (c *launchCache) staleOrError(category common.Category, cause error) (common.CacheSnapshot, bool, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	entry := c.entries[category]
	if !entry.hasData {
		return common.CacheSnapshot{}, false, fmt.Errorf("%w: %v", ErrCacheMiss, cause)
	}

	return entry.snapshot, true, nil
}

func (c *launchCache) snapshotFile(category common.Category) string {
	return filepath.Join(c.dataDir, fmt.Sprintf("launches_%s.json", category))
}

func (c *launchCache) loadSnapshots() {
	if c.dataDir == "" {
		return
	}

	for _, category := range common.AllCategories {
		data, err := os.ReadFile(c.snapshotFile(category))
		if err != nil {
			continue // nothing persisted yet
		}

		var snapshot common.CacheSnapshot
		err = json.Unmarshal(data, &snapshot)
		if err != nil {
			log.Warn("discarding unreadable snapshot file", "category", category, "error", err)
			continue
		}

		if snapshot.FetchedAt.IsZero() {
			continue
		}

		entry := c.entries[category]
		entry.snapshot = snapshot
		entry.hasData = true

		log.Debug("loaded persisted snapshot", "category", category,
			"records", len(snapshot.Records), "fetchedAt", snapshot.FetchedAt)
	}
}

func (c *launchCache) persistSnapshot(category common.Category, snapshot common.CacheSnapshot) {
	if c.dataDir == "" {
		return
	}

	err := os.MkdirAll(c.dataDir, os.ModePerm)
	if err != nil {
		log.Warn("failed to create data directory", "dir", c.dataDir, "error", err)
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Warn("failed to marshal snapshot", "category", category, "error", err)
		return
	}

	err = os.WriteFile(c.snapshotFile(category), data, 0644)
	if err != nil {
		log.Warn("failed to persist snapshot", "category", category, "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (c *launchCache) IsInterfaceNil() bool {
	return c == nil
}
