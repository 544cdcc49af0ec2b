package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validScenarioYAML = `
seed: 11
horizon: 365
replications: 300
initial_inventory: 300.0
lead_time: 1
order_quantity: 200.0
safety_factor: 1.0
holding_cost: 1.0
policies: [static_rq, tuned_rq]
volatility_multipliers: [0.5, 1.0, 1.5]
`

func TestLoadScenario_Valid(t *testing.T) {
	sc, err := LoadScenario(writeScenarioFile(t, validScenarioYAML))
	require.NoError(t, err)
	require.NoError(t, sc.Validate())

	assert.Equal(t, int64(11), sc.Seed)
	assert.Equal(t, 365, sc.Horizon)
	assert.Equal(t, 300, sc.Replications)
	assert.Equal(t, []string{PolicyStaticRQ, PolicyTunedRQ}, sc.Policies)
	assert.Equal(t, []float64{0.5, 1.0, 1.5}, sc.VolatilityMultipliers)

	// Defaults applied on load.
	assert.Equal(t, "dataset", sc.ForecastMethod)
	assert.Equal(t, DefaultHistoryWindow, sc.HistoryWindow)
}

func TestLoadScenario_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadScenario(writeScenarioFile(t, validScenarioYAML+"reorder_point: 5\n"))
	assert.Error(t, err, "strict parsing must reject typo keys")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestScenario_ApplyDefaults(t *testing.T) {
	sc := &Scenario{}
	sc.ApplyDefaults()
	assert.Equal(t, "dataset", sc.ForecastMethod)
	assert.Equal(t, DefaultHistoryWindow, sc.HistoryWindow)
	assert.Equal(t, []float64{1.0}, sc.VolatilityMultipliers)
	assert.Equal(t, 1.0, sc.SafetyFactor)

	// Idempotent, and explicit values survive.
	sc.ServiceLevel = 0.95
	sc.SafetyFactor = 0
	sc.ApplyDefaults()
	assert.Equal(t, 0.0, sc.SafetyFactor, "service_level set: z must stay unset")
}

func validScenario() *Scenario {
	sc := &Scenario{
		Seed:             11,
		Horizon:          365,
		Replications:     300,
		InitialInventory: 300,
		LeadTime:         1,
		OrderQuantity:    200,
		HoldingCost:      1.0,
		Policies:         []string{PolicyStaticRQ},
	}
	sc.ApplyDefaults()
	return sc
}

func TestScenario_Validate(t *testing.T) {
	require.NoError(t, validScenario().Validate())

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"zero horizon", func(sc *Scenario) { sc.Horizon = 0 }},
		{"zero replications", func(sc *Scenario) { sc.Replications = 0 }},
		{"zero lead time", func(sc *Scenario) { sc.LeadTime = 0 }},
		{"negative initial inventory", func(sc *Scenario) { sc.InitialInventory = -1 }},
		{"zero order quantity", func(sc *Scenario) { sc.OrderQuantity = 0 }},
		{"negative holding cost", func(sc *Scenario) { sc.HoldingCost = -0.5 }},
		{"both z and service level", func(sc *Scenario) { sc.ServiceLevel = 0.95 }},
		{"service level out of range", func(sc *Scenario) { sc.SafetyFactor = 0; sc.ServiceLevel = 1.2 }},
		{"unknown forecast method", func(sc *Scenario) { sc.ForecastMethod = "arima" }},
		{"negative history window", func(sc *Scenario) { sc.HistoryWindow = -1 }},
		{"no policies", func(sc *Scenario) { sc.Policies = nil }},
		{"unknown policy", func(sc *Scenario) { sc.Policies = []string{"base_stock"} }},
		{"negative multiplier", func(sc *Scenario) { sc.VolatilityMultipliers = []float64{-1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validScenario()
			tt.mutate(sc)
			assert.Error(t, sc.Validate())
		})
	}
}

func TestScenario_Z(t *testing.T) {
	sc := validScenario()
	z, err := sc.Z()
	require.NoError(t, err)
	assert.Equal(t, 1.0, z, "defaulted safety factor")

	sc.SafetyFactor = 0
	sc.ServiceLevel = 0.95
	z, err = sc.Z()
	require.NoError(t, err)
	assert.InDelta(t, 1.6449, z, 1e-3)
}

func TestScenario_DerivedConfigs(t *testing.T) {
	sc := validScenario()
	assert.Equal(t, NewSimulationConfig(365, 1, 300), sc.SimulationConfig())
	assert.Equal(t, NewCostConfig(1.0), sc.CostConfig())
}
