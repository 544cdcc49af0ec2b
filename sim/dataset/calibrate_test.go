package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeGroupRecords builds n records for a group with demand = base + i and
// forecast = base (so every error is i).
func makeGroupRecords(category string, base float64, n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			Category:  category,
			ProductID: fmt.Sprintf("%s-sku", category),
			UnitsSold: base + float64(i),
			Forecast:  base,
		}
	}
	return records
}

func TestCalibrate_PrefersCategoryOverSKU(t *testing.T) {
	records := makeGroupRecords("Groceries", 100, 12)
	table, err := Calibrate(records)
	require.NoError(t, err)
	assert.Equal(t, GroupByCategory, table.GroupColumn)

	// Without categories, grouping falls back to the SKU column.
	for i := range records {
		records[i].Category = ""
	}
	table, err = Calibrate(records)
	require.NoError(t, err)
	assert.Equal(t, GroupBySKU, table.GroupColumn)
	assert.Equal(t, "Groceries-sku", table.Groups[0].Group)
}

func TestCalibrate_NoGroupingColumn(t *testing.T) {
	_, err := Calibrate([]Record{{UnitsSold: 1, Forecast: 1}})
	assert.Error(t, err)
}

func TestCalibrate_DropsThinGroups(t *testing.T) {
	records := append(
		makeGroupRecords("Groceries", 100, MinObsThreshold),
		makeGroupRecords("Toys", 50, MinObsThreshold-1)...,
	)
	table, err := Calibrate(records)
	require.NoError(t, err)

	require.Len(t, table.Groups, 1)
	assert.Equal(t, "Groceries", table.Groups[0].Group)

	_, found := table.Lookup("Toys")
	assert.False(t, found)
}

func TestCalibrate_AllGroupsThin(t *testing.T) {
	_, err := Calibrate(makeGroupRecords("Toys", 50, MinObsThreshold-1))
	assert.Error(t, err)
}

func TestCalibrate_Statistics(t *testing.T) {
	// Demand 100..111, forecast 100: errors 0..11.
	records := makeGroupRecords("Groceries", 100, 12)
	table, err := Calibrate(records)
	require.NoError(t, err)

	g := table.Groups[0]
	assert.Equal(t, 12, g.NObs)
	assert.InDelta(t, 105.5, g.MeanDemand, 1e-12)
	assert.InDelta(t, 5.5, g.MeanError, 1e-12)
	// Sample std of 0..11 is sqrt(13) ≈ 3.6056.
	assert.InDelta(t, 3.6056, g.StdDemand, 1e-3)
	assert.InDelta(t, 3.6056, g.StdError, 1e-3)
	require.Len(t, g.Errors, 12)
	assert.InDelta(t, 0.0, g.Errors[0], 1e-12)
	assert.InDelta(t, 11.0, g.Errors[11], 1e-12)
}

func TestCalibrationTable_Largest(t *testing.T) {
	records := append(
		makeGroupRecords("Groceries", 100, 15),
		makeGroupRecords("Toys", 50, 25)...,
	)
	table, err := Calibrate(records)
	require.NoError(t, err)

	largest, err := table.Largest()
	require.NoError(t, err)
	assert.Equal(t, "Toys", largest.Group)
	assert.Equal(t, 25, largest.NObs)
}

func TestCalibrationTable_FilterGroup(t *testing.T) {
	records := append(
		makeGroupRecords("Groceries", 100, 12),
		makeGroupRecords("Toys", 50, 12)...,
	)
	table, err := Calibrate(records)
	require.NoError(t, err)

	toys := table.FilterGroup(records, "Toys")
	require.Len(t, toys, 12)
	for _, rec := range toys {
		assert.Equal(t, "Toys", rec.Category)
	}
}
