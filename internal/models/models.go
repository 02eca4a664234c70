package models

import "time"

// Record is one country's demographic snapshot, one CSV row after validation.
type Record struct {
	Country   string `json:"country"`
	ISO3      string `json:"iso_alpha3"`
	Continent string `json:"continent"`

	Population       float64 `json:"population"`         // in millions
	Density          float64 `json:"density"`            // per km²
	TotalDependency  float64 `json:"total_dependency"`   // %
	YouthDependency  float64 `json:"youth_dependency"`   // %
	OldAgeDependency float64 `json:"old_age_dependency"` // %
	WorkingAge       float64 `json:"working_age"`        // % aged 15-59
	SexRatio         float64 `json:"sex_ratio"`          // males per 100 females
	Age0to14         float64 `json:"age_0_14"`           // %
	Age60Plus        float64 `json:"age_60_plus"`        // %
}

// Dataset is the validated, ordered collection of records for one load.
// It is never mutated after the loader returns it.
type Dataset struct {
	SnapshotID string    `json:"snapshot_id"`
	Source     string    `json:"source"`
	LoadedAt   time.Time `json:"loaded_at"`
	Dropped    int       `json:"dropped_rows"`
	Records    []Record  `json:"records"`
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// MeltRow is one row of a long-format reshape: one (country, metric) pair.
// Input shape for grouped-bar rendering only, never persisted.
type MeltRow struct {
	Country string  `json:"country"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
}

// ViewSpec is the render-ready output of one dashboard view.
// The HTTP consumer owns all actual drawing; this is purely declarative.
type ViewSpec struct {
	Title   string       `json:"title"`
	Metrics []MetricSpec `json:"metrics,omitempty"`
	Charts  []ChartSpec  `json:"charts,omitempty"`
	Tables  []TableSpec  `json:"tables,omitempty"`
	Notice  string       `json:"notice,omitempty"`
}

// MetricSpec is a single headline number with its display formatting applied.
type MetricSpec struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw_value"`
}

// ChartSpec describes one chart as a mark type plus field-to-channel mapping.
type ChartSpec struct {
	ChartType  string       `json:"chartType"` // "choropleth", "scatter", "histogram", "pie", "bar"
	Title      string       `json:"title"`
	XLabel     string       `json:"xLabel,omitempty"`
	YLabel     string       `json:"yLabel,omitempty"`
	LogX       bool         `json:"logX,omitempty"`
	LogY       bool         `json:"logY,omitempty"`
	Bins       int          `json:"bins,omitempty"`
	RefLineX   float64      `json:"refLineX,omitempty"`
	Hole       float64      `json:"hole,omitempty"` // 0 = pie, >0 = donut
	FacetBy    string       `json:"facetBy,omitempty"`
	BarMode    string       `json:"barMode,omitempty"`
	FreeY      bool         `json:"independentY,omitempty"`
	ShowLegend bool         `json:"showLegend"`
	Points     []ChartPoint `json:"points"`
}

// ChartPoint is a single datum. Channel use depends on the mark:
// choropleth reads Code+Y, scatter reads X+Y+Group, histogram reads X,
// pie reads Label+Y, grouped bar reads Label+Group+Y.
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	Group string  `json:"group,omitempty"`
	Code  string  `json:"code,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// TableSpec describes a rendered data table.
type TableSpec struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align,omitempty"`
}
