package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunMonteCarlo executes replications independent simulations of the given
// policy over stochastic demand paths generated from the forecast and the
// bootstrap sampler. Deterministic given the same key and configuration:
// replication i always draws from its own derived RNG stream, so its path
// does not change when the replication count does.
//
// If cfg.Horizon is positive and shorter than the forecast, the forecast is
// truncated to the horizon.
func RunMonteCarlo(cfg SimulationConfig, policy ReplenishmentPolicy, forecast []float64,
	sampler *BootstrapSampler, replications int, key SimulationKey) ([][]PeriodRecord, error) {

	if replications <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d", replications)
	}
	if len(forecast) == 0 {
		return nil, fmt.Errorf("empty forecast")
	}
	if cfg.Horizon > 0 && cfg.Horizon < len(forecast) {
		forecast = forecast[:cfg.Horizon]
	}

	rng := NewPartitionedRNG(key)
	runs := make([][]PeriodRecord, 0, replications)
	for i := 0; i < replications; i++ {
		repRNG := rng.ForSubsystem(SubsystemReplication(i))
		demand, err := GenerateDemandPath(forecast, sampler, repRNG)
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", i, err)
		}
		records, err := NewSimulator(cfg, policy).Run(demand)
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", i, err)
		}
		runs = append(runs, records)
	}
	logrus.Debugf("completed %d replications of %s over %d periods",
		replications, policy.Name(), len(forecast))
	return runs, nil
}
