package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inventory-sim/inventory-sim/sim/dataset"
)

// groupSeries is the calibrated input of one simulation study: the selected
// group's statistics plus its aligned demand and forecast series.
type groupSeries struct {
	Stats    dataset.GroupStats
	Demand   []float64
	Forecast []float64
}

// loadGroupSeries runs the dataset pipeline: preprocess the CSV, calibrate
// per group, select a group (named, or the one with the most observations),
// build the forecast and trim its warm-up.
func loadGroupSeries(dataPath, group, method string) (groupSeries, error) {
	records, err := dataset.Preprocess(dataPath)
	if err != nil {
		return groupSeries{}, err
	}
	table, err := dataset.Calibrate(records)
	if err != nil {
		return groupSeries{}, err
	}

	var stats dataset.GroupStats
	if group != "" {
		var ok bool
		if stats, ok = table.Lookup(group); !ok {
			return groupSeries{}, fmt.Errorf("group %q not found in calibration table", group)
		}
	} else {
		if stats, err = table.Largest(); err != nil {
			return groupSeries{}, err
		}
	}
	logrus.Infof("selected group %q (%s, n_obs=%d, mu_demand=%.2f, sigma_error=%.2f)",
		stats.Group, table.GroupColumn, stats.NObs, stats.MeanDemand, stats.StdError)

	groupRecords := table.FilterGroup(records, stats.Group)
	forecast, err := dataset.Forecast(groupRecords, method)
	if err != nil {
		return groupSeries{}, err
	}
	demand, forecast := dataset.AlignWarmup(dataset.Demand(groupRecords), forecast)
	if len(forecast) == 0 {
		return groupSeries{}, fmt.Errorf("group %q has no periods left after forecast warm-up", stats.Group)
	}

	return groupSeries{Stats: stats, Demand: demand, Forecast: forecast}, nil
}
