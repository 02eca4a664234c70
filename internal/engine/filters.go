package engine

import (
	"fmt"
	"sort"

	"popdash/internal/models"
)

// ContinentAll is the sentinel selection meaning "no continent filter".
const ContinentAll = "All"

// ByContinent returns the records whose continent matches the selection.
// The sentinel "All" (or an empty selection) returns every record.
// Dataset order is preserved.
func ByContinent(ds *models.Dataset, continent string) []models.Record {
	if continent == "" || continent == ContinentAll {
		return ds.Records
	}
	var out []models.Record
	for _, r := range ds.Records {
		if r.Continent == continent {
			out = append(out, r)
		}
	}
	return out
}

// CountryLookup returns the single record for a country name.
func CountryLookup(ds *models.Dataset, name string) (models.Record, error) {
	for _, r := range ds.Records {
		if r.Country == name {
			return r, nil
		}
	}
	return models.Record{}, fmt.Errorf("%w: %q", ErrCountryNotFound, name)
}

// ByCountries returns the subset of records whose country is in names,
// preserving dataset order. Unknown names are silently ignored, so the
// result may be smaller than the selection.
func ByCountries(ds *models.Dataset, names []string) []models.Record {
	if len(names) == 0 {
		return nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []models.Record
	for _, r := range ds.Records {
		if want[r.Country] {
			out = append(out, r)
		}
	}
	return out
}

// Melt reshapes records into long format: one row per (country, metric)
// pair. Metric names in the output are display labels, matching what the
// grouped-bar facets are titled with.
func Melt(records []models.Record, metrics []string) []models.MeltRow {
	rows := make([]models.MeltRow, 0, len(records)*len(metrics))
	for _, r := range records {
		for _, m := range metrics {
			v, ok := MetricValue(r, m)
			if !ok {
				continue
			}
			rows = append(rows, models.MeltRow{
				Country: r.Country,
				Metric:  MetricLabel(m),
				Value:   v,
			})
		}
	}
	return rows
}

// Continents lists distinct continents sorted alphabetically, with the
// catch-all "Other" bucket forced last when present.
func Continents(ds *models.Dataset) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range ds.Records {
		if r.Continent != "" && !seen[r.Continent] {
			seen[r.Continent] = true
			out = append(out, r.Continent)
		}
	}
	sort.Strings(out)
	for i, c := range out {
		if c == "Other" {
			out = append(append(out[:i], out[i+1:]...), "Other")
			break
		}
	}
	return out
}

// Countries lists distinct country names from a record subset, sorted.
func Countries(records []models.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.Country != "" && !seen[r.Country] {
			seen[r.Country] = true
			out = append(out, r.Country)
		}
	}
	sort.Strings(out)
	return out
}
