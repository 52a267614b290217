// Package transform applies rate and aggregation suffixes to a fetched
// series. Rates rescale observations against earlier ones; aggregators
// collapse the series to annual frequency.
package transform

import (
	"fmt"
	"sort"

	"github.com/mini-kep/series-gateway/pkg/datapoints"
	"github.com/mini-kep/series-gateway/pkg/pathquery"
)

// stepsPerYear maps a frequency to the number of observations one year
// back. Daily and weekly series have no fixed step count, so yoy is
// rejected for them.
var stepsPerYear = map[string]int{
	"m": 12,
	"q": 4,
	"a": 1,
}

// Apply runs the query's rate or aggregation suffix over the series.
// A query with neither returns the input unchanged. When the rate
// token doubled as the unit suffix the upstream store already holds
// the transformed series under the suffixed name, so nothing is
// applied locally.
func Apply(q pathquery.PathQuery, points []datapoints.Datapoint) ([]datapoints.Datapoint, error) {
	switch {
	case q.Agg != "":
		return aggregateAnnual(points, q.Agg)
	case q.Rate != "" && q.Rate != q.Unit:
		return applyRate(points, q.Rate, q.Freq)
	default:
		return points, nil
	}
}

func applyRate(points []datapoints.Datapoint, rate, freq string) ([]datapoints.Datapoint, error) {
	if len(points) == 0 {
		return points, nil
	}
	sorted := sortByDate(points)
	switch rate {
	case "rog":
		return ratioToOffset(sorted, 1)
	case "yoy":
		k, ok := stepsPerYear[freq]
		if !ok {
			return nil, fmt.Errorf("yoy is not defined for frequency %q", freq)
		}
		return ratioToOffset(sorted, k)
	case "base":
		base := sorted[0].Value
		if base == 0 {
			return nil, fmt.Errorf("base transform: first observation of %q is zero", sorted[0].Name)
		}
		out := make([]datapoints.Datapoint, len(sorted))
		for i, p := range sorted {
			p.Value = p.Value / base
			out[i] = p
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown rate %q", rate)
	}
}

// ratioToOffset divides each observation by the one k steps earlier,
// dropping the first k points.
func ratioToOffset(sorted []datapoints.Datapoint, k int) ([]datapoints.Datapoint, error) {
	if len(sorted) <= k {
		return []datapoints.Datapoint{}, nil
	}
	out := make([]datapoints.Datapoint, 0, len(sorted)-k)
	for i := k; i < len(sorted); i++ {
		prev := sorted[i-k].Value
		if prev == 0 {
			return nil, fmt.Errorf("rate transform: zero observation at %s", sorted[i-k].Date)
		}
		p := sorted[i]
		p.Value = p.Value / prev
		out = append(out, p)
	}
	return out, nil
}

// aggregateAnnual collapses the series to one point per calendar year,
// dated December 31: the last observation for eop, the mean for avg.
func aggregateAnnual(points []datapoints.Datapoint, agg string) ([]datapoints.Datapoint, error) {
	if agg != "eop" && agg != "avg" {
		return nil, fmt.Errorf("unknown aggregator %q", agg)
	}
	if len(points) == 0 {
		return points, nil
	}
	sorted := sortByDate(points)
	type bucket struct {
		last  datapoints.Datapoint
		sum   float64
		count int
	}
	buckets := map[string]*bucket{}
	years := []string{}
	for _, p := range sorted {
		if len(p.Date) < 4 {
			return nil, fmt.Errorf("malformed observation date %q", p.Date)
		}
		year := p.Date[:4]
		b, ok := buckets[year]
		if !ok {
			b = &bucket{}
			buckets[year] = b
			years = append(years, year)
		}
		b.last = p
		b.sum += p.Value
		b.count++
	}
	out := make([]datapoints.Datapoint, 0, len(years))
	for _, year := range years {
		b := buckets[year]
		p := b.last
		p.Date = year + "-12-31"
		p.Freq = "a"
		if agg == "avg" {
			p.Value = b.sum / float64(b.count)
		}
		out = append(out, p)
	}
	return out, nil
}

func sortByDate(points []datapoints.Datapoint) []datapoints.Datapoint {
	out := append([]datapoints.Datapoint(nil), points...)
	// ISO dates sort lexicographically.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
