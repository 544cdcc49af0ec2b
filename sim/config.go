package sim

// SimulationConfig groups the discrete-time loop parameters for NewSimulator.
type SimulationConfig struct {
	Horizon          int     // number of simulated periods (must be > 0)
	LeadTime         int     // periods between order placement and arrival (must be >= 1)
	InitialInventory float64 // on-hand stock at the start of period 0
}

// NewSimulationConfig builds a SimulationConfig value.
func NewSimulationConfig(horizon, leadTime int, initialInventory float64) SimulationConfig {
	return SimulationConfig{
		Horizon:          horizon,
		LeadTime:         leadTime,
		InitialInventory: initialInventory,
	}
}

// CostConfig groups per-unit cost rates applied when summarizing runs.
type CostConfig struct {
	HoldingCostPerUnit float64 // cost per unit of end-of-period inventory per period
}

// NewCostConfig builds a CostConfig value.
func NewCostConfig(holdingCostPerUnit float64) CostConfig {
	return CostConfig{HoldingCostPerUnit: holdingCostPerUnit}
}
