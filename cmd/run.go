package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/inventory-sim/inventory-sim/sim"
)

var (
	// CLI flags for a single-policy Monte Carlo run
	seed             int64   // Master seed for demand path generation
	dataPath         string  // Retail inventory CSV
	group            string  // Calibration group; empty = largest n_obs
	policyName       string  // static_rq, tuned_rq or historical_mean
	forecastMethod   string  // dataset, moving_average or exp_smoothing
	horizon          int     // Number of simulated periods
	replications     int     // Monte Carlo replications
	initialInventory float64 // On-hand stock at period 0
	leadTime         int     // Periods between order placement and arrival
	orderQuantity    float64 // Fixed order quantity Q
	safetyFactor     float64 // Safety factor z for the tuned policy
	serviceLevel     float64 // Cycle service level; overrides --safety-factor when set
	holdingCost      float64 // Holding cost per unit per period
	historyWindow    int     // Trailing window of the historical-mean baseline
	volatility       float64 // Multiplier on the empirical forecast errors
)

// runCmd executes one Monte Carlo study using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo study for one replenishment policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if dataPath == "" {
			logrus.Fatalf("No dataset provided. Exiting simulation.")
		}

		startTime := time.Now()

		series, err := loadGroupSeries(dataPath, group, forecastMethod)
		if err != nil {
			logrus.Fatalf("unable to calibrate dataset: %v", err)
		}

		z := safetyFactor
		if serviceLevel > 0 {
			if z, err = sim.ServiceLevelZ(serviceLevel); err != nil {
				logrus.Fatalf("invalid service level: %v", err)
			}
		}

		// Policy parameters come from the demand observed over the
		// simulated horizon, not the full calibration window.
		demand := series.Demand
		if horizon > 0 && horizon < len(demand) {
			demand = demand[:horizon]
		}
		policy, err := sim.NewPolicy(policyName, sim.PolicyInputs{
			MeanDemand:    stat.Mean(demand, nil),
			DemandStd:     stat.StdDev(demand, nil),
			LeadTime:      leadTime,
			OrderQuantity: orderQuantity,
			SafetyFactor:  z,
			Window:        historyWindow,
		})
		if err != nil {
			logrus.Fatalf("invalid policy: %v", err)
		}

		sampler, err := sim.NewBootstrapSampler(series.Stats.Errors, volatility)
		if err != nil {
			logrus.Fatalf("unable to build demand sampler: %v", err)
		}

		logrus.Infof("Starting study: policy=%s horizon=%d replications=%d lead_time=%d Q=%.1f z=%.2f",
			policy.Name(), horizon, replications, leadTime, orderQuantity, z)

		cfg := sim.NewSimulationConfig(horizon, leadTime, initialInventory)
		runs, err := sim.RunMonteCarlo(cfg, policy, series.Forecast, sampler,
			replications, sim.NewSimulationKey(seed))
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		summary, err := sim.SummarizeMonteCarlo(runs, sim.NewCostConfig(holdingCost))
		if err != nil {
			logrus.Fatalf("unable to summarize runs: %v", err)
		}
		summary.Print(os.Stdout)

		logrus.Infof("Study complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for demand path generation")
	runCmd.Flags().StringVar(&dataPath, "data", "", "Path to retail inventory CSV")
	runCmd.Flags().StringVar(&group, "group", "", "Calibration group (default: group with most observations)")
	runCmd.Flags().StringVar(&policyName, "policy", "tuned_rq", "Replenishment policy (static_rq, tuned_rq, historical_mean)")
	runCmd.Flags().StringVar(&forecastMethod, "forecast", "dataset", "Forecast method (dataset, moving_average, exp_smoothing)")
	runCmd.Flags().IntVar(&horizon, "horizon", 365, "Number of simulated periods")
	runCmd.Flags().IntVar(&replications, "replications", 300, "Number of Monte Carlo replications")
	runCmd.Flags().Float64Var(&initialInventory, "initial-inventory", 300.0, "On-hand inventory at period 0")
	runCmd.Flags().IntVar(&leadTime, "lead-time", 1, "Replenishment lead time in periods")
	runCmd.Flags().Float64Var(&orderQuantity, "order-quantity", 200.0, "Fixed order quantity Q")
	runCmd.Flags().Float64Var(&safetyFactor, "safety-factor", 1.0, "Safety factor z for the tuned policy")
	runCmd.Flags().Float64Var(&serviceLevel, "service-level", 0, "Cycle service level in (0,1); overrides --safety-factor")
	runCmd.Flags().Float64Var(&holdingCost, "holding-cost", 1.0, "Holding cost per unit of ending inventory per period")
	runCmd.Flags().IntVar(&historyWindow, "history-window", sim.DefaultHistoryWindow, "Trailing window of the historical-mean baseline")
	runCmd.Flags().Float64Var(&volatility, "volatility", 1.0, "Multiplier on the empirical forecast errors")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
