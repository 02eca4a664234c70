package engine

import (
	"math"
	"testing"

	"popdash/internal/models"
)

func TestTotalPopulation(t *testing.T) {
	ds := loadSample(t)
	want := 1425.7 + 1428.6 + 339.9 + 55.1 + 83.2 + 0.04
	if got := TotalPopulation(ds); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalPopulation = %f, want %f", got, want)
	}
}

func TestAverage(t *testing.T) {
	ds := loadSample(t)
	want := (151.0 + 481.0 + 37.3 + 96.9 + 238.0 + 19361.0) / 6
	if got := Average(ds, MetricDensity); math.Abs(got-want) > 1e-9 {
		t.Errorf("Average(density) = %f, want %f", got, want)
	}
}

func TestAverageEmptyDataset(t *testing.T) {
	ds := &models.Dataset{}
	if got := Average(ds, MetricDensity); !math.IsNaN(got) {
		t.Errorf("Average over empty dataset = %f, want NaN", got)
	}
}

func TestAverageUnknownMetric(t *testing.T) {
	ds := loadSample(t)
	if got := Average(ds, "gdp"); !math.IsNaN(got) {
		t.Errorf("Average of unknown metric = %f, want NaN", got)
	}
}

func TestTopN(t *testing.T) {
	ds := loadSample(t)

	top := TopN(ds, MetricPopulation, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 records, got %d", len(top))
	}
	wantOrder := []string{"India", "China", "United States of America"}
	for i, want := range wantOrder {
		if top[i].Country != want {
			t.Errorf("rank %d: got %q, want %q", i, top[i].Country, want)
		}
	}
}

func TestTopNLargerThanDataset(t *testing.T) {
	ds := loadSample(t)
	top := TopN(ds, MetricDensity, 100)
	if len(top) != ds.Len() {
		t.Fatalf("n >= len should return all records sorted, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Density > top[i-1].Density {
			t.Errorf("not sorted descending at %d: %f > %f", i, top[i].Density, top[i-1].Density)
		}
	}
}

func TestTopNStableTies(t *testing.T) {
	ds := &models.Dataset{Records: []models.Record{
		{Country: "A", Population: 10},
		{Country: "B", Population: 20},
		{Country: "C", Population: 10},
		{Country: "D", Population: 10},
	}}
	top := TopN(ds, MetricPopulation, 4)
	want := []string{"B", "A", "C", "D"}
	for i, w := range want {
		if top[i].Country != w {
			t.Errorf("tie order broken at %d: got %q, want %q", i, top[i].Country, w)
		}
	}
}

func TestTopNSinksNaN(t *testing.T) {
	// A row whose youth dependency failed coercion survives validation
	// with NaN; it must never outrank countries with real values.
	ds := &models.Dataset{Records: []models.Record{
		{Country: "A", YouthDependency: math.NaN()},
		{Country: "B", YouthDependency: 10},
		{Country: "C", YouthDependency: 60},
	}}

	top := TopN(ds, MetricYouthDependency, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 records, got %d", len(top))
	}
	if top[0].Country != "C" || top[1].Country != "B" {
		t.Errorf("ranking = [%q, %q], want [C, B]", top[0].Country, top[1].Country)
	}

	// With room for all rows the NaN record sorts last.
	all := TopN(ds, MetricYouthDependency, 3)
	if all[2].Country != "A" {
		t.Errorf("NaN record should sink to the bottom, got %q last", all[2].Country)
	}
}

func TestTopNDegenerateInputs(t *testing.T) {
	ds := loadSample(t)
	if got := TopN(ds, "gdp", 3); got != nil {
		t.Errorf("unknown metric should return nil, got %v", got)
	}
	if got := TopN(ds, MetricPopulation, 0); got != nil {
		t.Errorf("n=0 should return nil, got %v", got)
	}
	if got := TopN(&models.Dataset{}, MetricPopulation, 3); got != nil {
		t.Errorf("empty dataset should return nil, got %v", got)
	}
}
