// Defines State: the single mutable value threaded through the
// turn engine. Created once per session, mutated exactly once per accepted
// turn, discarded on restart. No ambient globals.

package sim

// ExternalFactors models market conditions outside the player's direct
// control. Only the contract-mix variant populates it; the zero value is
// inert for the transformation variant.
type ExternalFactors struct {
	CompetitorPriceIndex float64 // 100 = parity with our list prices
	InstalledBase        float64 // units in the field generating breakdowns
	OutcomePct           float64 // share of clients on outcome contracts [0,100]
}

// TransactionalPct returns the complement of the outcome share.
// Transactional + Outcome == 100 is enforced after every mix shift.
func (x ExternalFactors) TransactionalPct() float64 {
	return 100 - x.OutcomePct
}

// State holds the full simulation state for one session.
type State struct {
	// Quarter is 1-indexed; QuartersTotal+1 marks a finished game.
	Quarter int
	// Cash is the liquid balance in million USD. Below zero means bankruptcy.
	Cash float64
	// Revenue maps stream name to its current quarterly revenue ($M, >= 0).
	Revenue map[string]float64
	// Metrics maps org metric name to a capability score clamped to [0,100].
	Metrics map[string]float64
	// External market conditions (contract-mix variant only).
	External ExternalFactors
	// Log collects narrative events, newest first.
	Log *EventLog
	// History records one snapshot per completed quarter, append-only.
	// The engine never reads it back; it exists for charting.
	History []Snapshot
}

// NewState builds the initial state for a variant configuration.
func NewState(cfg *Config) *State {
	st := &State{
		Quarter: 1,
		Cash:    cfg.StartingCash,
		Revenue: make(map[string]float64, len(cfg.Streams)),
		Metrics: make(map[string]float64, len(cfg.Metrics)),
		Log:     &EventLog{},
	}
	for _, s := range cfg.Streams {
		st.Revenue[s.Name] = s.Initial
	}
	for _, m := range cfg.Metrics {
		st.Metrics[m.Name] = m.Initial
	}
	if cfg.Supply != nil {
		st.External.InstalledBase = cfg.Supply.InstalledBase
	}
	if cfg.Demand != nil {
		st.External.CompetitorPriceIndex = cfg.Demand.InitialPriceIndex
	}
	if cfg.Contracts != nil {
		st.External.OutcomePct = cfg.Contracts.InitialOutcomePct
	}
	return st
}

// clampMetrics caps every org metric to [0, 100].
func (s *State) clampMetrics() {
	for k, v := range s.Metrics {
		s.Metrics[k] = clamp(v, 0, 100)
	}
}

// floorRevenue floors every revenue stream at zero. Cannibalization and
// shocks may otherwise drive a stream negative.
func (s *State) floorRevenue() {
	for k, v := range s.Revenue {
		if v < 0 {
			s.Revenue[k] = 0
		}
	}
}

// TotalRevenue sums all streams.
func (s *State) TotalRevenue() float64 {
	total := 0.0
	for _, v := range s.Revenue {
		total += v
	}
	return total
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
