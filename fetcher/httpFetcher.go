package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("fetcher")

// listKeys are the top-level keys under which known upstream endpoints expose
// the launch list. A bare top-level array is accepted as well.
var listKeys = []string{"results", "launches"}

type httpFetcher struct {
	baseURL  string
	pageSize int
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

// NewHTTPFetcher creates a new HTTP-based fetcher with a bounded request timeout
// and a circuit breaker guarding the upstream
func NewHTTPFetcher(baseURL string, pageSize int, timeout time.Duration) *httpFetcher {
	if pageSize <= 0 {
		pageSize = 50
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "launch-upstream",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &httpFetcher{
		baseURL:  baseURL,
		pageSize: pageSize,
		client: &http.Client{
			Timeout: timeout,
		},
		breaker: cb,
	}
}

// Fetch retrieves raw launch objects for the given category. The limit is only
// advisory for the upstream, so pagination happens locally: pages are requested
// until limit records are collected or the upstream runs dry, and any overshoot
// is truncated. Duplicate identifiers within one response are dropped, first
// occurrence wins.
func (f *httpFetcher) Fetch(ctx context.Context, category common.Category, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		limit = f.pageSize
	}

	collected := make([]json.RawMessage, 0, limit)
	seenIDs := make(map[string]struct{}, limit)
	offset := 0

	for len(collected) < limit {
		page, err := f.fetchPage(ctx, category, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, raw := range page {
			id := gjson.GetBytes(raw, "id").String()
			if id != "" {
				_, seen := seenIDs[id]
				if seen {
					log.Debug("dropping duplicate identifier in upstream response", "id", id)
					continue
				}
				seenIDs[id] = struct{}{}
			}
			collected = append(collected, raw)
		}

		offset += len(page)
		if len(page) < f.pageSize {
			break
		}
	}

	if len(collected) > limit {
		collected = collected[:limit]
	}

	log.Debug("fetched raw launch records", "category", category, "count", len(collected))

	return collected, nil
}

func (f *httpFetcher) fetchPage(ctx context.Context, category common.Category, offset int) ([]json.RawMessage, error) {
	url := fmt.Sprintf("%s/launch/%s/?limit=%d&offset=%d", f.baseURL, category, f.pageSize, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		resp, execErr := f.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("non-2xx HTTP status code: %s", http.StatusText(resp.StatusCode))
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	body, _ := result.([]byte)

	return extractList(body)
}

// extractList absorbs the endpoint shape variability: the launch list may live
// under a known top-level key or be the top-level value itself.
func extractList(body []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrUpstreamMalformed)
	}

	parsed := gjson.ParseBytes(body)

	list := gjson.Result{}
	found := false
	if parsed.IsArray() {
		list = parsed
		found = true
	} else {
		for _, key := range listKeys {
			candidate := parsed.Get(key)
			if candidate.IsArray() {
				list = candidate
				found = true
				break
			}
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: no launch list found under keys %v", ErrUpstreamMalformed, listKeys)
	}

	items := list.Array()
	raws := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raws = append(raws, json.RawMessage(item.Raw))
	}

	return raws, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (f *httpFetcher) IsInterfaceNil() bool {
	return f == nil
}
