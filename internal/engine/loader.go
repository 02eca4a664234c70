package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"popdash/internal/models"
)

// Source column headers, exactly as written by the cleaning step upstream.
const (
	colCountry    = "Country"
	colISO3       = "iso_alpha3"
	colContinent  = "Continent"
	colPopulation = "Population(in millions)"
	colDensity    = "Population density"
	colTotalDep   = "Total Dependency Ratio"
	colYouthDep   = "Youth Dependency Ratio"
	colOldDep     = "Old-Age Dependency Ratio"
	colWorkingAge = "Working-Age (15-59) %"
	colSexRatio   = "Sex ratio (males per 100 females)"
	colAge0to14   = "Population Aged 0 to 14 (%)"
	colAge60Plus  = "Population Aged 60 and Over (%)"
)

// Continent first: its absence is the schema failure users hit in practice
// (a re-export without the enrichment step), so it gets the clearest error.
var requiredColumns = []string{
	colContinent, colCountry, colISO3,
	colPopulation, colDensity, colTotalDep, colYouthDep, colOldDep,
	colWorkingAge, colSexRatio, colAge0to14, colAge60Plus,
}

// Load reads and validates a demographic CSV snapshot.
//
// Rows with an unparsable value in any of the four core numeric columns
// (population, density, total dependency, sex ratio) are dropped whole and
// counted on the Dataset. Non-core numeric fields that fail to parse are
// kept as NaN. Source row order is preserved.
func Load(path string) (*models.Dataset, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	ds := &models.Dataset{
		SnapshotID: uuid.NewString(),
		Source:     path,
		LoadedAt:   time.Now(),
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		rec := models.Record{
			Country:   strings.TrimSpace(row[index[colCountry]]),
			ISO3:      strings.TrimSpace(row[index[colISO3]]),
			Continent: strings.TrimSpace(row[index[colContinent]]),
		}

		// Core numeric columns: any coercion failure drops the row.
		core := true
		rec.Population = coerce(row[index[colPopulation]], &core)
		rec.Density = coerce(row[index[colDensity]], &core)
		rec.TotalDependency = coerce(row[index[colTotalDep]], &core)
		rec.SexRatio = coerce(row[index[colSexRatio]], &core)
		if !core {
			ds.Dropped++
			continue
		}

		// Remaining numerics: keep the row, store NaN on failure.
		rec.YouthDependency = coerceOrNaN(row[index[colYouthDep]])
		rec.OldAgeDependency = coerceOrNaN(row[index[colOldDep]])
		rec.WorkingAge = coerceOrNaN(row[index[colWorkingAge]])
		rec.Age0to14 = coerceOrNaN(row[index[colAge0to14]])
		rec.Age60Plus = coerceOrNaN(row[index[colAge60Plus]])

		ds.Records = append(ds.Records, rec)
	}

	log.Printf("Load complete. Rows: %d (dropped %d). Time: %v",
		len(ds.Records), ds.Dropped, time.Since(start))
	return ds, nil
}

func coerce(s string, ok *bool) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*ok = false
		return 0
	}
	return v
}

func coerceOrNaN(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
