package fetcher

import "errors"

// ErrUpstreamUnavailable signals a network error, a timeout, a non-2xx status or
// an open circuit. Recoverable: the cache keeps serving its last good snapshot.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrUpstreamMalformed signals a response body that could not be parsed as any
// of the known launch list shapes. Recoverable in the same way.
var ErrUpstreamMalformed = errors.New("upstream response malformed")
