package engine

import (
	"math"
	"sort"

	"popdash/internal/models"
)

// Aggregation helpers. Pure functions over a Dataset, no side effects.

// TotalPopulation sums the population field (in millions) over all records.
func TotalPopulation(ds *models.Dataset) float64 {
	var total float64
	for _, r := range ds.Records {
		total += r.Population
	}
	return total
}

// Average computes the arithmetic mean of a named metric. Returns NaN on
// an empty dataset or an unknown metric key.
func Average(ds *models.Dataset, metric string) float64 {
	if ds.Len() == 0 || !IsMetric(metric) {
		return math.NaN()
	}
	var total float64
	for _, r := range ds.Records {
		v, _ := MetricValue(r, metric)
		total += v
	}
	return total / float64(ds.Len())
}

// TopN returns the n records with the largest value in the named metric,
// descending, ties kept in source row order. n >= len returns all records
// sorted. Unknown metric returns nil.
func TopN(ds *models.Dataset, metric string, n int) []models.Record {
	if !IsMetric(metric) || n <= 0 || ds.Len() == 0 {
		return nil
	}
	ranked := make([]models.Record, ds.Len())
	copy(ranked, ds.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := MetricValue(ranked[i], metric)
		b, _ := MetricValue(ranked[j], metric)
		// NaN (a non-core field that failed coercion) always sinks below
		// real values instead of comparing as tied with everything.
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
