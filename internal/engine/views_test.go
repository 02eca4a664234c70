package engine

import (
	"errors"
	"math"
	"testing"
)

func TestBuildOverview(t *testing.T) {
	ds := loadSample(t)

	spec, err := BuildOverview(ds, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(spec.Metrics) != 3 {
		t.Fatalf("expected 3 headline metrics, got %d", len(spec.Metrics))
	}
	if spec.Metrics[0].Value != "3,333 Million" {
		t.Errorf("total population = %q, want %q", spec.Metrics[0].Value, "3,333 Million")
	}

	if len(spec.Charts) != 1 || spec.Charts[0].ChartType != "choropleth" {
		t.Fatalf("expected one choropleth, got %+v", spec.Charts)
	}
	m := spec.Charts[0]
	if len(m.Points) != ds.Len() {
		t.Errorf("choropleth has %d points, want %d", len(m.Points), ds.Len())
	}
	if m.Points[0].Code != "CHN" || m.Points[0].Y != 1425.7 {
		t.Errorf("unexpected first map point: %+v", m.Points[0])
	}

	if len(spec.Tables) != 3 {
		t.Fatalf("expected 3 ranking tables, got %d", len(spec.Tables))
	}
	for _, tbl := range spec.Tables {
		if len(tbl.Rows) > 10 {
			t.Errorf("%q has %d rows, want <= 10", tbl.Title, len(tbl.Rows))
		}
	}
	// Densest country tops the density ranking
	if spec.Tables[1].Rows[0][0] != "Monaco" {
		t.Errorf("density ranking top = %q, want Monaco", spec.Tables[1].Rows[0][0])
	}
}

func TestBuildOverviewUnknownMetric(t *testing.T) {
	ds := loadSample(t)
	_, err := BuildOverview(ds, "gdp")
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestBuildDeepDive(t *testing.T) {
	ds := loadSample(t)
	spec := BuildDeepDive(ds)

	if len(spec.Charts) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(spec.Charts))
	}

	age := spec.Charts[0]
	if age.ChartType != "scatter" || len(age.Points) != ds.Len() {
		t.Errorf("age scatter: type=%q points=%d", age.ChartType, len(age.Points))
	}
	if age.Points[0].Group != "Asia" {
		t.Errorf("scatter points should carry the continent, got %q", age.Points[0].Group)
	}

	hist := spec.Charts[1]
	if hist.ChartType != "histogram" || hist.Bins != 50 || hist.RefLineX != 100 {
		t.Errorf("histogram spec: %+v", hist)
	}

	density := spec.Charts[2]
	if !density.LogX || !density.LogY {
		t.Error("population/density scatter should use log-log axes")
	}
}

func TestBuildCountryProfile(t *testing.T) {
	ds := loadSample(t)

	spec, err := BuildCountryProfile(ds, ContinentAll, "Kenya")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.Title != "Demographic Profile for Kenya" {
		t.Errorf("title = %q", spec.Title)
	}
	if len(spec.Metrics) != 6 {
		t.Fatalf("expected 6 metrics, got %d", len(spec.Metrics))
	}
	if spec.Metrics[0].Value != "55.1 M" {
		t.Errorf("population metric = %q", spec.Metrics[0].Value)
	}

	if len(spec.Charts) != 1 {
		t.Fatalf("expected the donut chart, got %d charts", len(spec.Charts))
	}
	donut := spec.Charts[0]
	if donut.ChartType != "pie" || donut.Hole != 0.4 {
		t.Errorf("donut spec: type=%q hole=%f", donut.ChartType, donut.Hole)
	}
	if len(donut.Points) != 3 {
		t.Fatalf("expected 3 age slices, got %d", len(donut.Points))
	}
	sum := 0.0
	for _, p := range donut.Points {
		sum += p.Y
	}
	if math.Abs(sum-(38.0+56.2+4.4)) > 1e-9 {
		t.Errorf("age slices sum = %f, want source cells", sum)
	}
}

func TestBuildCountryProfileDefaultsToFirstOption(t *testing.T) {
	ds := loadSample(t)
	spec, err := BuildCountryProfile(ds, "Asia", "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Alphabetically first Asian country
	if spec.Title != "Demographic Profile for China" {
		t.Errorf("title = %q", spec.Title)
	}
}

func TestBuildCountryProfileNotFound(t *testing.T) {
	ds := loadSample(t)
	_, err := BuildCountryProfile(ds, ContinentAll, "Wakanda")
	if !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("expected ErrCountryNotFound, got %v", err)
	}
}

func TestBuildComparison(t *testing.T) {
	ds := loadSample(t)

	spec := BuildComparison(ds, []string{"China", "Kenya"})
	if spec.Notice != "" {
		t.Fatalf("unexpected notice: %q", spec.Notice)
	}
	if len(spec.Charts) != 1 {
		t.Fatalf("expected the faceted bar chart, got %d charts", len(spec.Charts))
	}

	bar := spec.Charts[0]
	if bar.ChartType != "bar" || bar.BarMode != "group" || bar.FacetBy != "metric" || !bar.FreeY {
		t.Errorf("bar spec: %+v", bar)
	}
	if len(bar.Points) != 2*len(CoreMetrics) {
		t.Errorf("bar has %d points, want %d", len(bar.Points), 2*len(CoreMetrics))
	}

	if len(spec.Tables) != 1 {
		t.Fatalf("expected the raw data table, got %d", len(spec.Tables))
	}
	tbl := spec.Tables[0]
	if len(tbl.Rows) != 2 {
		t.Errorf("raw table has %d rows, want 2", len(tbl.Rows))
	}
	// Country + Continent + all nine metrics
	if len(tbl.Columns) != 2+len(MetricKeys()) {
		t.Errorf("raw table has %d columns, want %d", len(tbl.Columns), 2+len(MetricKeys()))
	}
}

func TestBuildComparisonEmptySelection(t *testing.T) {
	ds := loadSample(t)

	spec := BuildComparison(ds, nil)
	if spec.Notice == "" {
		t.Error("empty selection should produce an informational notice")
	}
	if len(spec.Charts) != 0 || len(spec.Tables) != 0 {
		t.Error("empty selection should not produce charts or tables")
	}

	// All-unknown selection behaves like an empty one
	spec = BuildComparison(ds, []string{"Wakanda"})
	if spec.Notice == "" {
		t.Error("all-unknown selection should produce the notice")
	}
}
