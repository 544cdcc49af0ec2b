package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemReplication(7)).Float64()
		v2 := rng2.ForSubsystem(SubsystemReplication(7)).Float64()
		if v1 != v2 {
			t.Errorf("draw %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_ReplicationIsolation(t *testing.T) {
	// Drawing from replication 0 must not affect replication 1's stream.
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemReplication(0)).Float64()
	}

	aFirst := rngA.ForSubsystem(SubsystemReplication(1)).Float64()
	bFirst := rngB.ForSubsystem(SubsystemReplication(1)).Float64()
	if aFirst != bFirst {
		t.Errorf("replication 1 stream perturbed by replication 0 draws: %v vs %v", aFirst, bFirst)
	}
}

func TestPartitionedRNG_SubsystemCaching(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(1))
	r1 := rng.ForSubsystem(SubsystemDemand)
	r2 := rng.ForSubsystem(SubsystemDemand)
	if r1 != r2 {
		t.Error("same subsystem name should return the cached *rand.Rand instance")
	}
}

func TestPartitionedRNG_DemandUsesMasterSeed(t *testing.T) {
	// The demand subsystem equals the first replication of a study keyed
	// on the same seed only if both use the master seed directly; here we
	// check the weaker documented property that it differs from derived
	// subsystems.
	rng := NewPartitionedRNG(NewSimulationKey(42))
	demand := rng.ForSubsystem(SubsystemDemand).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	derived := fresh.ForSubsystem(SubsystemReplication(0)).Float64()
	if demand == derived {
		t.Error("expected demand and replication_0 subsystems to use different seeds")
	}
}

func TestPartitionedRNG_DifferentKeysDifferentStreams(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSimulationKey(1))
	rng2 := NewPartitionedRNG(NewSimulationKey(2))

	same := true
	for i := 0; i < 5; i++ {
		if rng1.ForSubsystem(SubsystemDemand).Float64() != rng2.ForSubsystem(SubsystemDemand).Float64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different keys produced identical 5-draw sequences")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	key := NewSimulationKey(99)
	if got := NewPartitionedRNG(key).Key(); got != key {
		t.Errorf("Key() = %d, want %d", got, key)
	}
}
