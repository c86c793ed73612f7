// Supply-chain subsystem for the contract-mix variant: installed-base
// breakdowns, inventory postures, and the stockout draw.

package sim

import (
	"fmt"
	"math/rand"
)

// supplyOutcome carries the supply step's results into the demand step.
type supplyOutcome struct {
	Breakdowns  float64 // expected breakdown count this quarter
	HoldingCost float64 // $M charged for the chosen posture
	Stockout    bool
}

// runSupply charges the posture's holding cost, computes the quarter's
// breakdown count, and draws once against the accuracy-adjusted stockout
// probability. A stockout costs cash and trust and emits a danger event.
func (e *Engine) runSupply(st *State, postureName string, rng *rand.Rand, emit func(Severity, string)) supplyOutcome {
	sc := e.cfg.Supply
	accuracy := st.Metrics[sc.AccuracyMetric] / 100

	// Better data prevents the preventable fraction of breakdowns.
	breakdowns := st.External.InstalledBase * sc.BreakdownRate * (1 - sc.PreventableFraction*accuracy)
	if breakdowns < 0 {
		breakdowns = 0
	}

	posture := e.cfg.Posture(postureName)
	if posture == nil {
		posture = &sc.Postures[0]
	}
	st.Cash -= posture.HoldingCost

	prob := posture.StockoutProb - sc.AccuracyRelief*accuracy
	if prob < 0 {
		prob = 0
	}

	out := supplyOutcome{Breakdowns: breakdowns, HoldingCost: posture.HoldingCost}
	if prob > 0 && rng.Float64() < prob {
		out.Stockout = true
		st.Cash -= sc.StockoutCashPenalty
		st.Metrics[sc.TrustMetric] += sc.StockoutTrustDelta
		st.clampMetrics()
		emit(SeverityDanger, fmt.Sprintf(
			"Spare-parts stockout! The %s posture could not cover field demand.", posture.Name))
	}
	return out
}
