package dataset

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// MinObsThreshold is the minimum number of observations a group needs to be
// calibrated; thinner groups produce unusable error distributions.
const MinObsThreshold = 10

// Grouping column identifiers reported by CalibrationTable.GroupColumn.
const (
	GroupByCategory = "category"
	GroupBySKU      = "sku"
)

// GroupStats holds calibrated demand and forecast-error statistics for one
// product group, plus the empirical error samples the simulator bootstraps
// from.
type GroupStats struct {
	Group      string
	NObs       int
	MeanDemand float64
	StdDemand  float64 // sample standard deviation
	MeanError  float64
	StdError   float64
	Errors     []float64
}

// CalibrationTable is the per-group calibration result.
type CalibrationTable struct {
	GroupColumn string // GroupByCategory or GroupBySKU
	Groups      []GroupStats
}

// Lookup returns the stats for a named group.
func (t *CalibrationTable) Lookup(name string) (GroupStats, bool) {
	for _, g := range t.Groups {
		if g.Group == name {
			return g, true
		}
	}
	return GroupStats{}, false
}

// Largest returns the group with the most observations.
func (t *CalibrationTable) Largest() (GroupStats, error) {
	if len(t.Groups) == 0 {
		return GroupStats{}, fmt.Errorf("calibration table is empty")
	}
	best := t.Groups[0]
	for _, g := range t.Groups[1:] {
		if g.NObs > best.NObs {
			best = g
		}
	}
	return best, nil
}

// inferGroupColumn picks the grouping column: category-like columns are
// preferred over SKU-like ones, matching how the study aggregates demand.
func inferGroupColumn(records []Record) (string, error) {
	for _, rec := range records {
		if rec.Category != "" {
			return GroupByCategory, nil
		}
	}
	for _, rec := range records {
		if rec.ProductID != "" {
			return GroupBySKU, nil
		}
	}
	return "", fmt.Errorf("no grouping column found: records carry neither category nor product ID")
}

func groupKey(rec Record, column string) string {
	if column == GroupByCategory {
		return rec.Category
	}
	return rec.ProductID
}

// Calibrate computes per-group demand and forecast-error statistics over
// cleaned records. Groups with fewer than MinObsThreshold observations are
// dropped (with a log line counting them). Group order follows first
// appearance in the input.
func Calibrate(records []Record) (*CalibrationTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to calibrate")
	}
	column, err := inferGroupColumn(records)
	if err != nil {
		return nil, err
	}

	demandByGroup := make(map[string][]float64)
	errorByGroup := make(map[string][]float64)
	var order []string
	for _, rec := range records {
		key := groupKey(rec, column)
		if _, seen := demandByGroup[key]; !seen {
			order = append(order, key)
		}
		demandByGroup[key] = append(demandByGroup[key], rec.UnitsSold)
		errorByGroup[key] = append(errorByGroup[key], rec.Error())
	}

	table := &CalibrationTable{GroupColumn: column}
	dropped := 0
	for _, key := range order {
		demand := demandByGroup[key]
		if len(demand) < MinObsThreshold {
			dropped++
			continue
		}
		errs := errorByGroup[key]
		table.Groups = append(table.Groups, GroupStats{
			Group:      key,
			NObs:       len(demand),
			MeanDemand: stat.Mean(demand, nil),
			StdDemand:  sampleStdDev(demand),
			MeanError:  stat.Mean(errs, nil),
			StdError:   sampleStdDev(errs),
			Errors:     errs,
		})
	}
	if dropped > 0 {
		logrus.Warnf("calibration: dropped %d/%d groups with fewer than %d observations",
			dropped, len(order), MinObsThreshold)
	}
	if len(table.Groups) == 0 {
		return nil, fmt.Errorf("calibration: all %d groups below the %d-observation threshold",
			len(order), MinObsThreshold)
	}
	return table, nil
}

// sampleStdDev is stat.StdDev guarded against single-observation groups,
// where the sample variance is undefined.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// FilterGroup returns the records belonging to the named group under the
// table's grouping column, preserving order.
func (t *CalibrationTable) FilterGroup(records []Record, name string) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if groupKey(rec, t.GroupColumn) == name {
			out = append(out, rec)
		}
	}
	return out
}
