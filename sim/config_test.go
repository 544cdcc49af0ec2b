package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSimulationConfig_FieldEquivalence(t *testing.T) {
	got := NewSimulationConfig(365, 2, 300.0)
	want := SimulationConfig{
		Horizon:          365,
		LeadTime:         2,
		InitialInventory: 300.0,
	}
	assert.Equal(t, want, got)
}

func TestNewCostConfig_FieldEquivalence(t *testing.T) {
	got := NewCostConfig(1.5)
	want := CostConfig{HoldingCostPerUnit: 1.5}
	assert.Equal(t, want, got)
}
