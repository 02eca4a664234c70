package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"popdash/internal/models"
)

// View builders. Each is a pure function of (Dataset, selection params)
// producing a declarative ViewSpec; the HTTP consumer does the drawing.

// DefaultComparison is the country selection used when the consumer has
// not picked any.
var DefaultComparison = []string{"United States of America", "China", "India", "Kenya"}

// BuildOverview produces the global overview: headline metrics, a
// choropleth of the selected metric, and three top-10 ranking tables.
func BuildOverview(ds *models.Dataset, mapMetric string) (*models.ViewSpec, error) {
	if mapMetric == "" {
		mapMetric = MetricPopulation
	}
	if !IsMetric(mapMetric) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, mapMetric)
	}

	spec := &models.ViewSpec{
		Title: "Global Demographic Overview",
		Metrics: []models.MetricSpec{
			metricSpec("Total Population", TotalPopulation(ds), "%s Million", 0),
			metricSpec("Avg. Population Density", Average(ds, MetricDensity), "%s / km²", 2),
			metricSpec("Avg. Sex Ratio", Average(ds, MetricSexRatio), "%s m / 100 f", 1),
		},
	}

	mapChart := models.ChartSpec{
		ChartType: "choropleth",
		Title:     "Global Map of " + MetricLabel(mapMetric),
		Points:    make([]models.ChartPoint, 0, ds.Len()),
	}
	for _, r := range ds.Records {
		v, _ := MetricValue(r, mapMetric)
		if math.IsNaN(v) {
			continue
		}
		mapChart.Points = append(mapChart.Points, models.ChartPoint{
			Code: r.ISO3, Label: r.Country, Y: v,
		})
	}
	spec.Charts = append(spec.Charts, mapChart)

	spec.Tables = append(spec.Tables,
		rankingTable(ds, "Top 10 Most Populous Countries", MetricPopulation),
		rankingTable(ds, "Top 10 Most Densely Populated", MetricDensity),
		rankingTable(ds, "Top 10 'Youngest' Countries (by Youth Dependency)", MetricYouthDependency),
	)
	return spec, nil
}

// BuildDeepDive produces the demographic relationship view: age-structure
// scatter, sex-ratio histogram, and the log-log population/density scatter.
func BuildDeepDive(ds *models.Dataset) *models.ViewSpec {
	spec := &models.ViewSpec{Title: "Demographic Deep-Dive"}

	age := models.ChartSpec{
		ChartType:  "scatter",
		Title:      "Age Structure: Young vs. Old Population (%)",
		XLabel:     MetricLabel(MetricAge0to14),
		YLabel:     MetricLabel(MetricAge60Plus),
		ShowLegend: true,
	}
	for _, r := range ds.Records {
		if math.IsNaN(r.Age0to14) || math.IsNaN(r.Age60Plus) {
			continue
		}
		age.Points = append(age.Points, models.ChartPoint{
			Label: r.Country, Group: r.Continent, X: r.Age0to14, Y: r.Age60Plus,
		})
	}

	hist := models.ChartSpec{
		ChartType: "histogram",
		Title:     "Distribution of Sex Ratios Worldwide",
		XLabel:    MetricLabel(MetricSexRatio),
		Bins:      50,
		RefLineX:  100, // a 1:1 ratio
	}
	for _, r := range ds.Records {
		hist.Points = append(hist.Points, models.ChartPoint{X: r.SexRatio})
	}

	density := models.ChartSpec{
		ChartType:  "scatter",
		Title:      "Population (Millions) vs. Population Density (Log Scale)",
		XLabel:     "Population (in millions, log)",
		YLabel:     "Population Density (log)",
		LogX:       true,
		LogY:       true,
		ShowLegend: true,
	}
	for _, r := range ds.Records {
		density.Points = append(density.Points, models.ChartPoint{
			Label: r.Country, Group: r.Continent, X: r.Population, Y: r.Density,
		})
	}

	spec.Charts = append(spec.Charts, age, hist, density)
	return spec
}

// BuildCountryProfile produces the per-country drill-down. The continent
// selection only narrows the offered country list; the lookup itself runs
// against the full dataset. An empty country defaults to the first option.
func BuildCountryProfile(ds *models.Dataset, continent, country string) (*models.ViewSpec, error) {
	options := Countries(ByContinent(ds, continent))
	if country == "" && len(options) > 0 {
		country = options[0]
	}
	rec, err := CountryLookup(ds, country)
	if err != nil {
		return nil, err
	}

	spec := &models.ViewSpec{
		Title: "Demographic Profile for " + rec.Country,
		Metrics: []models.MetricSpec{
			metricSpec("Total Population", rec.Population, "%s M", 1),
			metricSpec("Population Density", rec.Density, "%s / km²", 1),
			metricSpec("Sex Ratio (m/100f)", rec.SexRatio, "%s", 1),
			metricSpec("Working-Age (15-59)", rec.WorkingAge, "%s%%", 1),
			metricSpec("Youth Dependency", rec.YouthDependency, "%s%%", 1),
			metricSpec("Old-Age Dependency", rec.OldAgeDependency, "%s%%", 1),
		},
	}

	donut := models.ChartSpec{
		ChartType:  "pie",
		Title:      "Population Age Structure",
		Hole:       0.4,
		ShowLegend: true,
	}
	for _, slice := range []struct {
		label string
		value float64
	}{
		{"Aged 0-14", rec.Age0to14},
		{"Aged 15-59 (Working Age)", rec.WorkingAge},
		{"Aged 60+", rec.Age60Plus},
	} {
		if math.IsNaN(slice.value) {
			continue
		}
		donut.Points = append(donut.Points, models.ChartPoint{Label: slice.label, Y: slice.value})
	}
	spec.Charts = append(spec.Charts, donut)
	return spec, nil
}

// BuildComparison produces the multi-country side-by-side view: a faceted
// grouped bar over the four core metrics plus the raw comparison table.
// Unknown country names are silently dropped from the subset.
func BuildComparison(ds *models.Dataset, countries []string) *models.ViewSpec {
	spec := &models.ViewSpec{Title: "Country Comparison"}

	subset := ByCountries(ds, countries)
	if len(subset) == 0 {
		spec.Notice = "Please select at least one country to start the comparison."
		return spec
	}

	bar := models.ChartSpec{
		ChartType:  "bar",
		Title:      "Country Comparison by Metric",
		BarMode:    "group",
		FacetBy:    "metric",
		FreeY:      true, // population in millions vs. ratios in percent
		ShowLegend: true,
	}
	for _, row := range Melt(subset, CoreMetrics) {
		bar.Points = append(bar.Points, models.ChartPoint{
			Label: row.Country, Group: row.Metric, Y: row.Value,
		})
	}
	spec.Charts = append(spec.Charts, bar)

	table := models.TableSpec{
		Title: "Raw Data Comparison",
		Columns: []models.Column{
			{Key: "country", Label: "Country", Align: "left"},
			{Key: "continent", Label: "Continent", Align: "left"},
		},
	}
	for _, m := range MetricKeys() {
		table.Columns = append(table.Columns, models.Column{
			Key: m, Label: MetricLabel(m), Align: "right",
		})
	}
	for _, r := range subset {
		row := []string{r.Country, r.Continent}
		for _, m := range MetricKeys() {
			v, _ := MetricValue(r, m)
			row = append(row, formatCell(v))
		}
		table.Rows = append(table.Rows, row)
	}
	spec.Tables = append(spec.Tables, table)
	return spec
}

// ============================================================================
// FORMATTING
// ============================================================================

func metricSpec(label string, v float64, format string, decimals int) models.MetricSpec {
	if math.IsNaN(v) {
		return models.MetricSpec{Label: label, Value: "n/a"}
	}
	return models.MetricSpec{
		Label: label,
		Value: fmt.Sprintf(format, formatComma(v, decimals)),
		Raw:   v,
	}
}

func rankingTable(ds *models.Dataset, title, metric string) models.TableSpec {
	t := models.TableSpec{
		Title: title,
		Columns: []models.Column{
			{Key: "country", Label: "Country", Align: "left"},
			{Key: metric, Label: MetricLabel(metric), Align: "right"},
		},
	}
	for _, r := range TopN(ds, metric, 10) {
		v, _ := MetricValue(r, metric)
		t.Rows = append(t.Rows, []string{r.Country, formatCell(v)})
	}
	return t
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatComma renders v with the given decimal places and thousands
// separators in the integer part.
func formatComma(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var parts []string
		for len(intPart) > 3 {
			parts = append([]string{intPart[len(intPart)-3:]}, parts...)
			intPart = intPart[:len(intPart)-3]
		}
		parts = append([]string{intPart}, parts...)
		intPart = strings.Join(parts, ",")
	}
	out := intPart
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
