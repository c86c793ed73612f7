// Decision input for one quarter. Constructed fresh by the caller each turn;
// the engine clamps rather than rejects, so a Decision can never fail.

package sim

// Decision carries one quarter's choices.
type Decision struct {
	// Spend maps category name to $M. Values outside the configured
	// [min,max] range are clamped, never rejected.
	Spend map[string]float64

	// Strategy selects one strategic move by name (transformation variant).
	Strategy string

	// TargetOutcomePct is the desired outcome-contract share in [0,100]
	// (contract-mix variant).
	TargetOutcomePct float64

	// Posture selects the inventory posture by name (contract-mix variant).
	Posture string
}

// DefaultDecision returns a Decision with every spend at its configured
// default, the first strategy/posture selected, and the mix target held at
// its current level.
func DefaultDecision(cfg *Config, st *State) Decision {
	d := Decision{Spend: make(map[string]float64, len(cfg.Spends))}
	for _, sp := range cfg.Spends {
		d.Spend[sp.Name] = sp.Default
	}
	if len(cfg.Strategies) > 0 {
		d.Strategy = cfg.Strategies[0].Name
	}
	if cfg.Supply != nil && len(cfg.Supply.Postures) > 0 {
		d.Posture = cfg.Supply.Postures[0].Name
	}
	if cfg.Contracts != nil {
		d.TargetOutcomePct = st.External.OutcomePct
	}
	return d
}

// clampSpend returns the per-category spends clamped to their configured
// ranges plus the clamped total. Unknown categories are ignored.
func clampSpend(cfg *Config, d Decision) (map[string]float64, float64) {
	spend := make(map[string]float64, len(cfg.Spends))
	total := 0.0
	for _, sp := range cfg.Spends {
		v := clamp(d.Spend[sp.Name], sp.Min, sp.Max)
		spend[sp.Name] = v
		total += v
	}
	return spend, total
}
