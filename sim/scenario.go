package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the top-level experiment configuration.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Seed                  int64     `yaml:"seed"`
	Horizon               int       `yaml:"horizon"`
	Replications          int       `yaml:"replications"`
	InitialInventory      float64   `yaml:"initial_inventory"`
	LeadTime              int       `yaml:"lead_time"`
	OrderQuantity         float64   `yaml:"order_quantity"`
	SafetyFactor          float64   `yaml:"safety_factor,omitempty"` // z; mutually exclusive with service_level
	ServiceLevel          float64   `yaml:"service_level,omitempty"` // converted to z via the normal quantile
	HoldingCost           float64   `yaml:"holding_cost"`
	ForecastMethod        string    `yaml:"forecast_method,omitempty"` // default "dataset"
	HistoryWindow         int       `yaml:"history_window,omitempty"`  // historical-mean trailing window, default 5
	Group                 string    `yaml:"group,omitempty"`           // calibration group; empty = largest n_obs
	Policies              []string  `yaml:"policies"`
	VolatilityMultipliers []float64 `yaml:"volatility_multipliers,omitempty"` // default [1.0]
}

// Valid value registries.
var (
	validPolicies = map[string]bool{
		PolicyStaticRQ: true, PolicyTunedRQ: true, PolicyHistoricalMean: true,
	}
	validForecastMethods = map[string]bool{
		"dataset": true, "moving_average": true, "exp_smoothing": true,
	}
)

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	sc.ApplyDefaults()
	return &sc, nil
}

// ApplyDefaults fills unset optional fields. Idempotent.
func (sc *Scenario) ApplyDefaults() {
	if sc.ForecastMethod == "" {
		sc.ForecastMethod = "dataset"
	}
	if sc.HistoryWindow == 0 {
		sc.HistoryWindow = DefaultHistoryWindow
	}
	if len(sc.VolatilityMultipliers) == 0 {
		sc.VolatilityMultipliers = []float64{1.0}
	}
	if sc.SafetyFactor == 0 && sc.ServiceLevel == 0 {
		sc.SafetyFactor = 1.0
	}
}

// Validate checks that all fields in the scenario are valid.
func (sc *Scenario) Validate() error {
	if sc.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", sc.Horizon)
	}
	if sc.Replications <= 0 {
		return fmt.Errorf("replications must be positive, got %d", sc.Replications)
	}
	if sc.LeadTime < 1 {
		return fmt.Errorf("lead_time must be >= 1, got %d", sc.LeadTime)
	}
	if sc.InitialInventory < 0 {
		return fmt.Errorf("initial_inventory must be non-negative, got %f", sc.InitialInventory)
	}
	if sc.OrderQuantity <= 0 {
		return fmt.Errorf("order_quantity must be positive, got %f", sc.OrderQuantity)
	}
	if sc.HoldingCost < 0 {
		return fmt.Errorf("holding_cost must be non-negative, got %f", sc.HoldingCost)
	}
	if sc.SafetyFactor != 0 && sc.ServiceLevel != 0 {
		return fmt.Errorf("safety_factor and service_level are mutually exclusive")
	}
	if sc.ServiceLevel != 0 && (sc.ServiceLevel <= 0 || sc.ServiceLevel >= 1) {
		return fmt.Errorf("service_level must be in (0, 1), got %f", sc.ServiceLevel)
	}
	if !validForecastMethods[sc.ForecastMethod] {
		return fmt.Errorf("unknown forecast_method %q; valid: dataset, moving_average, exp_smoothing", sc.ForecastMethod)
	}
	if sc.HistoryWindow < 1 {
		return fmt.Errorf("history_window must be >= 1, got %d", sc.HistoryWindow)
	}
	if len(sc.Policies) == 0 {
		return fmt.Errorf("at least one policy required")
	}
	for i, p := range sc.Policies {
		if !validPolicies[p] {
			return fmt.Errorf("policies[%d]: unknown policy %q; valid: %s, %s, %s",
				i, p, PolicyStaticRQ, PolicyTunedRQ, PolicyHistoricalMean)
		}
	}
	for i, m := range sc.VolatilityMultipliers {
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("volatility_multipliers[%d] must be finite and non-negative, got %f", i, m)
		}
	}
	return nil
}

// Z resolves the effective safety factor: safety_factor when set, otherwise
// the normal quantile of service_level.
func (sc *Scenario) Z() (float64, error) {
	if sc.ServiceLevel != 0 {
		return ServiceLevelZ(sc.ServiceLevel)
	}
	return sc.SafetyFactor, nil
}

// SimulationConfig derives the per-replication loop configuration.
func (sc *Scenario) SimulationConfig() SimulationConfig {
	return NewSimulationConfig(sc.Horizon, sc.LeadTime, sc.InitialInventory)
}

// CostConfig derives the cost rates used when summarizing runs.
func (sc *Scenario) CostConfig() CostConfig {
	return NewCostConfig(sc.HoldingCost)
}
