package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim/dataset"
)

var (
	calibrateData   string
	calibrateOutput string
)

// calibrateCmd computes the per-group calibration table without simulating.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Compute per-group demand and forecast-error statistics",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if calibrateData == "" {
			logrus.Fatalf("No dataset provided.")
		}

		records, err := dataset.Preprocess(calibrateData)
		if err != nil {
			logrus.Fatalf("unable to preprocess dataset: %v", err)
		}
		table, err := dataset.Calibrate(records)
		if err != nil {
			logrus.Fatalf("calibration failed: %v", err)
		}
		logrus.Infof("calibrated %d groups by %s", len(table.Groups), table.GroupColumn)

		out := os.Stdout
		if calibrateOutput != "" {
			f, err := os.Create(calibrateOutput)
			if err != nil {
				logrus.Fatalf("unable to create %s: %v", calibrateOutput, err)
			}
			defer f.Close() //nolint:errcheck // flushed by csv writer
			out = f
		}
		if err := writeCalibrationCSV(out, table); err != nil {
			logrus.Fatalf("unable to write calibration table: %v", err)
		}
	},
}

// writeCalibrationCSV emits the calibration table with one row per group.
func writeCalibrationCSV(w io.Writer, table *dataset.CalibrationTable) error {
	cw := csv.NewWriter(w)
	header := []string{"group", "n_obs", "mu_demand", "sigma_demand", "mu_error", "sigma_error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing calibration header: %w", err)
	}
	for _, g := range table.Groups {
		row := []string{
			g.Group,
			strconv.Itoa(g.NObs),
			formatFloat(g.MeanDemand),
			formatFloat(g.StdDemand),
			formatFloat(g.MeanError),
			formatFloat(g.StdError),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing calibration row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func init() {
	calibrateCmd.Flags().StringVar(&calibrateData, "data", "", "Path to retail inventory CSV")
	calibrateCmd.Flags().StringVar(&calibrateOutput, "output", "", "Calibration CSV path (default: stdout)")

	rootCmd.AddCommand(calibrateCmd)
}
