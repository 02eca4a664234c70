package engine

import "popdash/internal/models"

// Metric keys are the stable, API-facing names for the numeric columns.
const (
	MetricPopulation       = "population"
	MetricDensity          = "density"
	MetricTotalDependency  = "total_dependency"
	MetricYouthDependency  = "youth_dependency"
	MetricOldAgeDependency = "old_age_dependency"
	MetricWorkingAge       = "working_age"
	MetricSexRatio         = "sex_ratio"
	MetricAge0to14         = "age_0_14"
	MetricAge60Plus        = "age_60_plus"
)

type metricField struct {
	Label string
	Get   func(models.Record) float64
}

// metricTable maps metric keys to display labels and field accessors.
// Labels match the source column headers so the HTTP consumer can reuse
// them as axis titles verbatim.
var metricTable = map[string]metricField{
	MetricPopulation:       {"Population(in millions)", func(r models.Record) float64 { return r.Population }},
	MetricDensity:          {"Population density", func(r models.Record) float64 { return r.Density }},
	MetricTotalDependency:  {"Total Dependency Ratio", func(r models.Record) float64 { return r.TotalDependency }},
	MetricYouthDependency:  {"Youth Dependency Ratio", func(r models.Record) float64 { return r.YouthDependency }},
	MetricOldAgeDependency: {"Old-Age Dependency Ratio", func(r models.Record) float64 { return r.OldAgeDependency }},
	MetricWorkingAge:       {"Working-Age (15-59) %", func(r models.Record) float64 { return r.WorkingAge }},
	MetricSexRatio:         {"Sex ratio (males per 100 females)", func(r models.Record) float64 { return r.SexRatio }},
	MetricAge0to14:         {"Population Aged 0 to 14 (%)", func(r models.Record) float64 { return r.Age0to14 }},
	MetricAge60Plus:        {"Population Aged 60 and Over (%)", func(r models.Record) float64 { return r.Age60Plus }},
}

// metricOrder fixes iteration order for API listings.
var metricOrder = []string{
	MetricPopulation, MetricDensity, MetricTotalDependency,
	MetricYouthDependency, MetricOldAgeDependency, MetricWorkingAge,
	MetricSexRatio, MetricAge0to14, MetricAge60Plus,
}

// CoreMetrics are the four columns required non-missing by validation,
// and the four metrics offered on the overview map and comparison view.
var CoreMetrics = []string{
	MetricPopulation, MetricDensity, MetricTotalDependency, MetricSexRatio,
}

// MetricKeys returns all metric keys in a stable order.
func MetricKeys() []string {
	keys := make([]string, len(metricOrder))
	copy(keys, metricOrder)
	return keys
}

// MetricValue reads a named metric from a record.
func MetricValue(r models.Record, key string) (float64, bool) {
	f, ok := metricTable[key]
	if !ok {
		return 0, false
	}
	return f.Get(r), true
}

// MetricLabel returns the display label for a metric key, or the key
// itself when unknown.
func MetricLabel(key string) string {
	if f, ok := metricTable[key]; ok {
		return f.Label
	}
	return key
}

// IsMetric reports whether key names a known metric.
func IsMetric(key string) bool {
	_, ok := metricTable[key]
	return ok
}
