package aggregator

import (
	"sort"
	"time"

	"github.com/hwpaige/launchboard/common"
)

// monthBuckets returns the fixed chronological bucket labels of one calendar year
func monthBuckets() []string {
	buckets := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		buckets[int(m)-1] = m.String()[:3]
	}
	return buckets
}

// Aggregate folds a record sequence into one series per category label for the
// given calendar year (UTC). Records outside the year or carrying a label not
// listed in categories are dropped silently. Every series holds exactly 12
// values, one per month, zero where no record matched; cumulative mode applies
// a running sum in chronological order, per category independently. Output
// ordering is deterministic: months ascending, categories as given.
func Aggregate(records []common.LaunchRecord, year int, categories []string, mode common.SeriesMode) common.AggregateSeries {
	values := make(map[string][]int, len(categories))
	orderedCategories := make([]string, 0, len(categories))
	for _, category := range categories {
		_, exists := values[category]
		if exists {
			continue
		}
		values[category] = make([]int, 12)
		orderedCategories = append(orderedCategories, category)
	}

	for _, record := range records {
		net := record.Net.UTC()
		if net.Year() != year {
			continue
		}

		counts, known := values[record.Rocket]
		if !known {
			continue
		}

		counts[int(net.Month())-1]++
	}

	if mode == common.ModeCumulative {
		for _, counts := range values {
			for i := 1; i < len(counts); i++ {
				counts[i] += counts[i-1]
			}
		}
	}

	return common.AggregateSeries{
		Buckets:    monthBuckets(),
		Categories: orderedCategories,
		Values:     values,
	}
}

// ByStatus counts records per status label for the given calendar year (UTC);
// a zero year disables the year filter. The result is ordered by count
// descending, ties broken by status name ascending.
func ByStatus(records []common.LaunchRecord, year int) common.StatusBreakdown {
	counts := make(map[string]int)
	for _, record := range records {
		if year != 0 && record.Net.UTC().Year() != year {
			continue
		}

		status := record.Status
		if status == "" {
			status = common.StatusTBD
		}
		counts[status]++
	}

	breakdown := make(common.StatusBreakdown, 0, len(counts))
	for status, count := range counts {
		breakdown = append(breakdown, common.StatusCount{Status: status, Count: count})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Status < breakdown[j].Status
	})

	return breakdown
}
