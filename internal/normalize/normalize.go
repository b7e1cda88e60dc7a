// Package normalize turns raw indicator tables into per-country series.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brightside-dev/goodnews/internal/common"
	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/model"
)

// Aggregate regions present in OWID exports that are not countries and
// would otherwise dominate the feed.
var aggregateRegions = map[string]bool{
	"World": true, "Africa": true, "Asia": true, "Europe": true,
	"North America": true, "South America": true, "Oceania": true,
	"European Union": true, "High income": true, "Low income": true,
	"Middle income": true, "Upper middle income": true,
	"Lower middle income": true, "OECD": true, "G20": true,
	"Latin America and the Caribbean": true, "Sub-Saharan Africa": true,
	"East Asia and Pacific": true, "Middle East and North Africa": true,
	"South Asia": true, "Europe and Central Asia": true,
	"North America (WB)": true, "African Union": true,
	"Americas (WHO)": true, "Eastern Mediterranean (WHO)": true,
	"Europe (WHO)": true, "South-East Asia (WHO)": true,
	"Western Pacific (WHO)": true,
}

var (
	countryColumns = []string{"Entity", "Country", "country", "entity"}
	yearColumns    = []string{"Year", "year", "date", "Date"}
)

// Result is the normalized form of one indicator's raw table.
type Result struct {
	// Series maps country name to its ordered observations.
	Series map[string]model.Series
	// LatestYear is the maximum year across the whole dataset; the
	// milestone recency window is anchored to it.
	LatestYear int
	// Rows is the number of observations kept after filtering.
	Rows int
}

// Normalize groups a raw table (header row first) by country, sorted
// ascending by year. Rows with missing or non-numeric year/value cells
// are dropped individually; aggregate regions are excluded; duplicate
// (country, year) rows resolve to the last occurrence. Gaps in years are
// preserved as-is.
func Normalize(table [][]string, ind config.Indicator) (*Result, error) {
	if len(table) < 2 {
		return nil, fmt.Errorf("%w: %s: table has no data rows", common.ErrSchema, ind.Name)
	}
	header := table[0]

	countryIdx := findColumn(header, countryColumns...)
	if countryIdx < 0 {
		return nil, fmt.Errorf("%w: %s: no country column in %v", common.ErrSchema, ind.Name, header)
	}
	yearIdx := findColumn(header, yearColumns...)
	if yearIdx < 0 {
		return nil, fmt.Errorf("%w: %s: no year column in %v", common.ErrSchema, ind.Name, header)
	}
	valueIdx, err := findValueColumn(header, ind)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.Observation)
	latest := 0
	rows := 0

	for _, row := range table[1:] {
		if len(row) <= countryIdx || len(row) <= yearIdx || len(row) <= valueIdx {
			continue
		}
		country := strings.TrimSpace(row[countryIdx])
		if country == "" || aggregateRegions[country] {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil {
			continue
		}

		grouped[country] = append(grouped[country], model.Observation{
			Country: country,
			Year:    year,
			Value:   value,
		})
		if year > latest {
			latest = year
		}
		rows++
	}

	series := make(map[string]model.Series, len(grouped))
	for country, obs := range grouped {
		series[country] = model.NewSeries(obs)
	}

	return &Result{Series: series, LatestYear: latest, Rows: rows}, nil
}

func findColumn(header []string, names ...string) int {
	for _, name := range names {
		for i, col := range header {
			if col == name {
				return i
			}
		}
	}
	return -1
}

// findValueColumn matches the configured column exactly, then falls back
// to the first case-insensitive substring match (OWID column names drift).
func findValueColumn(header []string, ind config.Indicator) (int, error) {
	for i, col := range header {
		if col == ind.ValueColumn {
			return i, nil
		}
	}
	want := strings.ToLower(ind.ValueColumn)
	for i, col := range header {
		if strings.Contains(strings.ToLower(col), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s: column %q not found in %v",
		common.ErrSchema, ind.Name, ind.ValueColumn, header)
}
