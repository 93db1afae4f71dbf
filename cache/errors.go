package cache

import "errors"

// ErrCacheMiss signals a cold start: no prior snapshot exists and the first
// fetch failed. This is the only condition surfaced to callers as fatal.
var ErrCacheMiss = errors.New("no launch data available yet")
