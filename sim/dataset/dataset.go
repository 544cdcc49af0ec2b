// Package dataset loads and calibrates retail demand history for the
// inventory simulator. Input is a flat CSV with one row per store/product/day
// carrying observed sales and the merchant's demand forecast.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Record is one cleaned observation from the retail inventory dataset.
type Record struct {
	Date      time.Time
	StoreID   string
	ProductID string
	Category  string
	UnitsSold float64
	Forecast  float64
}

// Error returns the forecast error of the observation (actual - forecast).
func (r Record) Error() float64 {
	return r.UnitsSold - r.Forecast
}

// Header candidates. Real exports of this dataset are inconsistent about
// column naming, so each logical column matches the first present candidate.
var (
	dateColumns     = []string{"Date", "date"}
	storeColumns    = []string{"Store ID", "StoreID", "Store"}
	categoryColumns = []string{"Category", "Product Category", "ProductCategory", "category"}
	skuColumns      = []string{"SKU", "Product ID", "ProductID", "Item", "item"}
	demandColumns   = []string{"Units Sold", "UnitsSold", "units_sold"}
	forecastColumns = []string{"Demand Forecast", "DemandForecast", "demand_forecast"}
)

// columnIndex maps logical fields to CSV column positions (-1 = absent).
type columnIndex struct {
	date, store, category, sku, demand, forecast int
}

func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	find := func(candidates []string) int {
		for _, c := range candidates {
			if i, ok := pos[c]; ok {
				return i
			}
		}
		return -1
	}
	idx := columnIndex{
		date:     find(dateColumns),
		store:    find(storeColumns),
		category: find(categoryColumns),
		sku:      find(skuColumns),
		demand:   find(demandColumns),
		forecast: find(forecastColumns),
	}
	if idx.date < 0 {
		return idx, fmt.Errorf("no date column found; expected one of %v", dateColumns)
	}
	if idx.demand < 0 {
		return idx, fmt.Errorf("no demand column found; expected one of %v", demandColumns)
	}
	if idx.forecast < 0 {
		return idx, fmt.Errorf("no forecast column found; expected one of %v", forecastColumns)
	}
	return idx, nil
}

// Load reads raw records from a CSV file. Numeric fields that are empty or
// unparseable become NaN so that Clean can drop them; malformed rows and
// dates are hard errors.
func Load(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	return Read(file, path)
}

// Read parses CSV records from r; name is used in error messages only.
func Read(r io.Reader, name string) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header from %s: %w", name, err)
	}
	idx, err := resolveColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var records []Record
	rowIdx := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV %s row %d: %w", name, rowIdx, err)
		}

		date, err := parseDate(row[idx.date])
		if err != nil {
			return nil, fmt.Errorf("CSV %s row %d: %w", name, rowIdx, err)
		}

		rec := Record{
			Date:      date,
			UnitsSold: parseFloatOrNaN(row[idx.demand]),
			Forecast:  parseFloatOrNaN(row[idx.forecast]),
		}
		if idx.store >= 0 {
			rec.StoreID = row[idx.store]
		}
		if idx.category >= 0 {
			rec.Category = row[idx.category]
		}
		if idx.sku >= 0 {
			rec.ProductID = row[idx.sku]
		}
		records = append(records, rec)
		rowIdx++
	}
	return records, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006/01/02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseFloatOrNaN(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Clean drops rows with missing or negative demand or forecast values.
func Clean(records []Record) []Record {
	cleaned := make([]Record, 0, len(records))
	dropped := 0
	for _, rec := range records {
		if math.IsNaN(rec.UnitsSold) || math.IsNaN(rec.Forecast) ||
			rec.UnitsSold < 0 || rec.Forecast < 0 {
			dropped++
			continue
		}
		cleaned = append(cleaned, rec)
	}
	if dropped > 0 {
		logrus.Warnf("dropped %d/%d rows with missing or negative demand values", dropped, len(records))
	}
	return cleaned
}

// Preprocess runs the full pipeline: load, clean, sort chronologically, and
// filter deterministically to a single store (first store ID alphabetically)
// when the dataset carries a store column.
func Preprocess(path string) ([]Record, error) {
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	records = Clean(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no usable rows after cleaning", path)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return filterFirstStore(records), nil
}

func filterFirstStore(records []Record) []Record {
	stores := make(map[string]bool)
	for _, rec := range records {
		if rec.StoreID != "" {
			stores[rec.StoreID] = true
		}
	}
	if len(stores) == 0 {
		return records
	}
	names := make([]string, 0, len(stores))
	for s := range stores {
		names = append(names, s)
	}
	sort.Strings(names)
	selected := names[0]

	filtered := records[:0:0]
	for _, rec := range records {
		if rec.StoreID == selected {
			filtered = append(filtered, rec)
		}
	}
	logrus.Infof("selected store %q (%d of %d rows)", selected, len(filtered), len(records))
	return filtered
}

// Demand extracts the observed demand series in record order.
func Demand(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.UnitsSold
	}
	return out
}
