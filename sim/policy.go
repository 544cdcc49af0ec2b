package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Policy name registry. These are the values accepted in scenario files
// and by the --policy flag.
const (
	PolicyStaticRQ       = "static_rq"
	PolicyTunedRQ        = "tuned_rq"
	PolicyHistoricalMean = "historical_mean"
)

// PolicyDecision is an end-of-period ordering decision.
type PolicyDecision struct {
	PlaceOrder bool
	Quantity   float64
}

// ReplenishmentPolicy decides whether to place a replenishment order at the
// end of a period. Implementations must be deterministic: all randomness in
// a replication comes from the demand path.
type ReplenishmentPolicy interface {
	// Decide inspects the period index, the inventory position
	// (on-hand + on-order; lost sales, so no backorder term) and the
	// demand observed so far (demandHistory[0..t] inclusive).
	Decide(t int, inventoryPosition float64, demandHistory []float64) PolicyDecision

	// Name returns the registry name of the policy.
	Name() string
}

// SafetyStock computes the volatility buffer SS = z * sigma * sqrt(L).
func SafetyStock(demandStd float64, leadTime int, z float64) float64 {
	return z * demandStd * math.Sqrt(float64(leadTime))
}

// ReorderPoint computes r = mu * L + SS for a (r, Q) policy.
func ReorderPoint(meanDemand float64, leadTime int, safetyStock float64) float64 {
	return meanDemand*float64(leadTime) + safetyStock
}

// ServiceLevelZ converts a cycle service level (e.g. 0.95) into the safety
// factor z via the standard normal quantile.
func ServiceLevelZ(serviceLevel float64) (float64, error) {
	if serviceLevel <= 0 || serviceLevel >= 1 {
		return 0, fmt.Errorf("service level must be in (0, 1), got %f", serviceLevel)
	}
	return distuv.UnitNormal.Quantile(serviceLevel), nil
}

// RQPolicy is a continuous-review (r, Q) policy: whenever the inventory
// position falls to or below the reorder point r, order the fixed quantity Q.
type RQPolicy struct {
	name          string
	ReorderPt     float64
	OrderQuantity float64
}

// NewStaticRQ configures an (r, Q) policy that ignores demand volatility:
// sigma is treated as zero, so r covers expected lead-time demand only.
func NewStaticRQ(meanDemand float64, leadTime int, orderQuantity float64) *RQPolicy {
	return &RQPolicy{
		name:          PolicyStaticRQ,
		ReorderPt:     ReorderPoint(meanDemand, leadTime, 0),
		OrderQuantity: orderQuantity,
	}
}

// NewTunedRQ configures an (r, Q) policy whose reorder point carries a
// safety stock sized to observed demand volatility.
func NewTunedRQ(meanDemand, demandStd float64, leadTime int, orderQuantity, z float64) *RQPolicy {
	ss := SafetyStock(demandStd, leadTime, z)
	return &RQPolicy{
		name:          PolicyTunedRQ,
		ReorderPt:     ReorderPoint(meanDemand, leadTime, ss),
		OrderQuantity: orderQuantity,
	}
}

func (p *RQPolicy) Name() string { return p.name }

func (p *RQPolicy) Decide(_ int, inventoryPosition float64, _ []float64) PolicyDecision {
	if inventoryPosition <= p.ReorderPt {
		return PolicyDecision{PlaceOrder: true, Quantity: p.OrderQuantity}
	}
	return PolicyDecision{}
}

// HistoricalMeanPolicy is a naive baseline that orders the trailing mean of
// observed demand every period. At t=0 there is no history and nothing is
// ordered.
type HistoricalMeanPolicy struct {
	Window int // number of trailing periods to average (must be >= 1)
}

// NewHistoricalMean builds the baseline with the given trailing window.
func NewHistoricalMean(window int) *HistoricalMeanPolicy {
	return &HistoricalMeanPolicy{Window: window}
}

func (p *HistoricalMeanPolicy) Name() string { return PolicyHistoricalMean }

func (p *HistoricalMeanPolicy) Decide(t int, _ float64, demandHistory []float64) PolicyDecision {
	// demandHistory includes the current period; the trailing mean uses
	// only completed periods before t.
	past := demandHistory
	if len(past) > 0 {
		past = past[:len(past)-1]
	}
	if t == 0 || len(past) == 0 {
		return PolicyDecision{}
	}
	n := min(len(past), p.Window)
	sum := 0.0
	for _, d := range past[len(past)-n:] {
		sum += d
	}
	return PolicyDecision{PlaceOrder: true, Quantity: sum / float64(n)}
}

// PolicyInputs carries the calibrated quantities a policy is configured from.
type PolicyInputs struct {
	MeanDemand    float64
	DemandStd     float64
	LeadTime      int
	OrderQuantity float64
	SafetyFactor  float64 // z
	Window        int     // historical-mean trailing window
}

// NewPolicy creates a ReplenishmentPolicy from a registry name.
func NewPolicy(name string, in PolicyInputs) (ReplenishmentPolicy, error) {
	switch name {
	case PolicyStaticRQ:
		return NewStaticRQ(in.MeanDemand, in.LeadTime, in.OrderQuantity), nil
	case PolicyTunedRQ:
		return NewTunedRQ(in.MeanDemand, in.DemandStd, in.LeadTime, in.OrderQuantity, in.SafetyFactor), nil
	case PolicyHistoricalMean:
		window := in.Window
		if window <= 0 {
			window = DefaultHistoryWindow
		}
		return NewHistoricalMean(window), nil
	default:
		return nil, fmt.Errorf("unknown policy %q; valid: %s, %s, %s",
			name, PolicyStaticRQ, PolicyTunedRQ, PolicyHistoricalMean)
	}
}

// DefaultHistoryWindow is the trailing window of the historical-mean baseline.
const DefaultHistoryWindow = 5
