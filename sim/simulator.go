// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// PeriodRecord captures the state transitions of one simulated period.
type PeriodRecord struct {
	Period          int
	Arrivals        float64 // replenishment received at the start of the period
	Demand          float64
	Sales           float64 // demand satisfied from on-hand stock
	LostSales       float64 // unmet demand (lost, never backordered)
	EndingInventory float64
	OrderPlaced     float64 // quantity ordered this period (0 if none)
}

// Simulator advances a single replication through the discrete-time
// inventory balance. Orders placed in period t arrive at the start of
// period t+L; demand in excess of on-hand stock is lost.
type Simulator struct {
	Config SimulationConfig
	Policy ReplenishmentPolicy
}

// NewSimulator builds a Simulator for one replication.
func NewSimulator(cfg SimulationConfig, policy ReplenishmentPolicy) *Simulator {
	return &Simulator{Config: cfg, Policy: policy}
}

// Run executes the period loop over the given demand path and returns one
// PeriodRecord per period. The demand path length is the effective horizon.
func (s *Simulator) Run(demand []float64) ([]PeriodRecord, error) {
	if s.Policy == nil {
		return nil, fmt.Errorf("simulator requires a replenishment policy")
	}
	if s.Config.LeadTime < 1 {
		return nil, fmt.Errorf("lead time must be >= 1 period, got %d", s.Config.LeadTime)
	}
	if len(demand) == 0 {
		return nil, fmt.Errorf("empty demand path")
	}

	lead := s.Config.LeadTime
	onHand := s.Config.InitialInventory
	onOrder := 0.0
	orders := make([]float64, len(demand))
	records := make([]PeriodRecord, len(demand))
	history := make([]float64, 0, len(demand))

	for t := range demand {
		d := demand[t]
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("demand[%d] must be finite and non-negative, got %f", t, d)
		}

		// Orders placed L periods ago arrive before demand is served.
		var arrivals float64
		if t-lead >= 0 {
			arrivals = orders[t-lead]
			onOrder -= arrivals
		}
		onHand += arrivals

		sales := math.Min(d, onHand)
		lost := d - sales
		onHand -= sales
		history = append(history, d)

		decision := s.Policy.Decide(t, onHand+onOrder, history)
		var placed float64
		if decision.PlaceOrder && decision.Quantity > 0 {
			placed = decision.Quantity
			orders[t] = placed
			onOrder += placed
			logrus.Debugf("[period %04d] %s orders %.2f (position %.2f)",
				t, s.Policy.Name(), placed, onHand+onOrder)
		}

		records[t] = PeriodRecord{
			Period:          t,
			Arrivals:        arrivals,
			Demand:          d,
			Sales:           sales,
			LostSales:       lost,
			EndingInventory: onHand,
			OrderPlaced:     placed,
		}
	}

	return records, nil
}
