package normalizer

import (
	"encoding/json"
	"fmt"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"

	"github.com/hwpaige/launchboard/common"
)

var log = logger.GetOrCreate("normalizer")

// fieldRule describes where an optional field is looked up in the raw object
// graph and what it defaults to when every path is absent. Any level of the
// graph may be missing: gjson lookups never raise, they just return no value.
type fieldRule struct {
	paths    []string
	fallback string
}

var optionalFields = map[string]fieldRule{
	"name":            {paths: []string{"name", "mission.name"}},
	"rocket":          {paths: []string{"rocket.configuration.name", "rocket.name"}, fallback: "Unknown"},
	"orbit":           {paths: []string{"mission.orbit.name", "mission.orbit.abbrev"}},
	"pad":             {paths: []string{"pad.name", "launchpad.name"}},
	"status":          {paths: []string{"status.abbrev", "status.name", "status"}, fallback: common.StatusTBD},
	"landingType":     {paths: []string{"rocket.launcher_stage.0.landing.type.abbrev", "landing.type"}},
	"landingLocation": {paths: []string{"rocket.launcher_stage.0.landing.location.abbrev", "landing.location"}},
	"videoUrl":        {paths: []string{"vidURLs.0.url", "webcast.url", "video_url"}},
}

var idPaths = []string{"id", "uuid"}
var datePaths = []string{"net", "date_utc", "window_start"}

// dateLayouts covers the timestamp formats seen across upstream response modes
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type recordNormalizer struct{}

// NewNormalizer creates a new raw-record normalizer
func NewNormalizer() *recordNormalizer {
	return &recordNormalizer{}
}

// Normalize maps one raw upstream object into the canonical LaunchRecord shape.
// Only a missing identifier or launch date is an error; every other field uses
// its documented default.
func (n *recordNormalizer) Normalize(raw json.RawMessage) (common.LaunchRecord, error) {
	parsed := gjson.ParseBytes(raw)

	id := firstString(parsed, idPaths)
	if id == "" {
		return common.LaunchRecord{}, fmt.Errorf("%w: missing identifier", ErrRecordIncomplete)
	}

	rawDate := firstString(parsed, datePaths)
	if rawDate == "" {
		return common.LaunchRecord{}, fmt.Errorf("%w: missing launch date for '%s'", ErrRecordIncomplete, id)
	}

	net, err := parseDate(rawDate)
	if err != nil {
		return common.LaunchRecord{}, fmt.Errorf("%w: unparseable launch date '%s' for '%s'", ErrRecordIncomplete, rawDate, id)
	}

	return common.LaunchRecord{
		ID:              id,
		Name:            extractOptional(parsed, "name"),
		Rocket:          extractOptional(parsed, "rocket"),
		Orbit:           extractOptional(parsed, "orbit"),
		Pad:             extractOptional(parsed, "pad"),
		Net:             net,
		Status:          extractOptional(parsed, "status"),
		LandingType:     extractOptional(parsed, "landingType"),
		LandingLocation: extractOptional(parsed, "landingLocation"),
		VideoURL:        extractOptional(parsed, "videoUrl"),
	}, nil
}

// NormalizeBatch converts a raw batch, dropping incomplete records with a warn
// log instead of failing the whole batch
func (n *recordNormalizer) NormalizeBatch(raws []json.RawMessage) []common.LaunchRecord {
	records := make([]common.LaunchRecord, 0, len(raws))
	for _, raw := range raws {
		record, err := n.Normalize(raw)
		if err != nil {
			log.Warn("dropping unusable record from batch", "error", err)
			continue
		}

		records = append(records, record)
	}

	return records
}

func extractOptional(parsed gjson.Result, field string) string {
	rule := optionalFields[field]

	val := firstString(parsed, rule.paths)
	if val == "" {
		return rule.fallback
	}

	return val
}

func firstString(parsed gjson.Result, paths []string) string {
	for _, path := range paths {
		result := parsed.Get(path)
		if result.Exists() && result.Type == gjson.String && result.String() != "" {
			return result.String()
		}
	}

	return ""
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("no known layout matches '%s'", raw)
}

// IsInterfaceNil returns true if the value under the interface is nil
func (n *recordNormalizer) IsInterfaceNil() bool {
	return n == nil
}
