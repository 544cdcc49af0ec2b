// Package sim provides the core Monte Carlo simulation engine for the
// inventory policy study.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - policy.go: Replenishment policies (static and volatility-tuned (r, Q),
//     historical-mean baseline) and the safety-stock arithmetic behind them
//   - simulator.go: The discrete-time period loop (arrivals, lost sales,
//     ordering) for a single replication
//   - montecarlo.go: The replication driver with per-replication RNG isolation
//
// # Architecture
//
// The pipeline is sequential: dataset calibration produces a demand forecast
// and an empirical forecast-error distribution (sim/dataset), demand.go turns
// them into stochastic demand paths by bootstrap resampling, simulator.go
// steps each path through the inventory balance, and metrics.go aggregates
// fill rate, stockout rates, holding cost, and turnover across replications
// with 95% confidence intervals.
//
// Scenario files (scenario.go) describe a full experiment: the policy set,
// volatility multipliers scaling the error distribution, replication count,
// and the shared master seed that makes policy comparisons paired.
package sim
