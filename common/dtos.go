package common

import (
	"fmt"
	"time"
)

// Category selects which launch timeline the upstream API is queried for
type Category string

const (
	// CategoryUpcoming selects launches that have not happened yet
	CategoryUpcoming Category = "upcoming"
	// CategoryPrevious selects launches that already happened
	CategoryPrevious Category = "previous"
)

// AllCategories holds every valid category in a fixed order
var AllCategories = []Category{CategoryUpcoming, CategoryPrevious}

// ParseCategory validates a raw string as a Category
func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryUpcoming:
		return CategoryUpcoming, nil
	case CategoryPrevious:
		return CategoryPrevious, nil
	default:
		return "", fmt.Errorf("unknown category '%s'", raw)
	}
}

// SeriesMode selects how the aggregator folds monthly counts
type SeriesMode string

const (
	// ModeMonthly produces one count per calendar month
	ModeMonthly SeriesMode = "monthly"
	// ModeCumulative produces running sums across months in chronological order
	ModeCumulative SeriesMode = "cumulative"
)

// ParseSeriesMode validates a raw string as a SeriesMode
func ParseSeriesMode(raw string) (SeriesMode, error) {
	switch SeriesMode(raw) {
	case ModeMonthly:
		return ModeMonthly, nil
	case ModeCumulative:
		return ModeCumulative, nil
	default:
		return "", fmt.Errorf("unknown series mode '%s'", raw)
	}
}

// StatusTBD is the status assigned to records the upstream left without one
const StatusTBD = "TBD"

// LaunchRecord is the canonical representation of one rocket launch.
// Records are immutable once cached: a newer fetch supersedes, never mutates.
type LaunchRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Rocket          string    `json:"rocket"`
	Orbit           string    `json:"orbit,omitempty"`
	Pad             string    `json:"pad,omitempty"`
	Net             time.Time `json:"net"` // always UTC
	Status          string    `json:"status"`
	LandingType     string    `json:"landingType,omitempty"`
	LandingLocation string    `json:"landingLocation,omitempty"`
	VideoURL        string    `json:"videoUrl,omitempty"`
}

// CacheSnapshot wraps a record set together with its fetch metadata. It is also
// the on-disk shape of the per-category cache files.
type CacheSnapshot struct {
	Records   []LaunchRecord `json:"data"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Query     string         `json:"query,omitempty"`
}

// AggregateSeries maps category labels (vehicle names) to one numeric value per
// month bucket. All categories share the same bucket label sequence and months
// without matching records hold 0, they are never omitted.
type AggregateSeries struct {
	Buckets    []string         `json:"buckets"`
	Categories []string         `json:"categories"`
	Values     map[string][]int `json:"values"`
}

// StatusCount holds the number of launches sharing one status label
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatusBreakdown is a deterministically ordered list of per-status counts
type StatusBreakdown []StatusCount

// WeatherSnapshot is the reading returned by the weather collaborator. Fallback
// is true when the fixed offline values were substituted for a failed fetch.
type WeatherSnapshot struct {
	TemperatureF     float64   `json:"temperatureF"`
	WindSpeedKts     float64   `json:"windSpeedKts"`
	WindDirectionDeg float64   `json:"windDirectionDeg"`
	WeatherCode      int       `json:"weatherCode"`
	Fallback         bool      `json:"fallback"`
	ObservedAt       time.Time `json:"observedAt"`
}
