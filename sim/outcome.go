// Terminal status and end-of-game grading. The engine itself never checks
// these; the session layer evaluates them between turns.

package sim

// Status is the session lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusBankrupt Status = "bankrupt"
	StatusComplete Status = "complete"
)

// Status reports the terminal state of the game. Bankruptcy wins over
// completion: running out of cash on the final quarter is still a loss.
// Exactly cash == 0 is not bankrupt; only a negative balance is.
func (s *State) Status(cfg *Config) Status {
	if s.Cash < 0 {
		return StatusBankrupt
	}
	if s.Quarter > cfg.QuartersTotal {
		return StatusComplete
	}
	return StatusActive
}

// Tier is a final-score grade band.
type Tier struct {
	Grade   string
	Title   string
	Verdict string
}

// GradeFinal grades a final valuation. Boundaries are strict: a score equal
// to the winning threshold lands in the tier below.
func (c *Config) GradeFinal(valuation float64) Tier {
	switch {
	case valuation > c.WinningValuation:
		return Tier{Grade: "A", Title: "Visionary",
			Verdict: "You successfully navigated the transition, balancing cash flow with high-growth innovation."}
	case valuation > c.SurvivorValuation:
		return Tier{Grade: "B", Title: "Survivor",
			Verdict: "You survived, but failed to unlock exponential value."}
	default:
		return Tier{Grade: "C", Title: "Stagnant",
			Verdict: "You protected the core but missed the digital revolution."}
	}
}
