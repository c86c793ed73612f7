// Contract-mix shift for the contract-mix variant: moving clients from
// transactional to outcome contracts is rate-limited by sales capability.

package sim

import "fmt"

// shiftContracts moves the outcome-contract share toward the decided target.
// The shift toward outcome is capped at (culture+trust)/divisor per quarter;
// shifting back toward transactional needs no sales capability and is
// uncapped. Returns the applied shift (signed, in mix points).
// Transactional + Outcome == 100 holds afterwards by construction.
func (e *Engine) shiftContracts(st *State, target float64, emit func(Severity, string)) float64 {
	cc := e.cfg.Contracts
	target = clamp(target, 0, 100)
	desired := target - st.External.OutcomePct
	capacity := (st.Metrics[cc.CultureMetric] + st.Metrics[cc.TrustMetric]) / cc.ShiftCapDivisor
	shift := desired
	if desired > capacity {
		shift = capacity
		emit(SeverityWarning, fmt.Sprintf(
			"Sales capability caps contract conversion at %.1f points this quarter.", capacity))
	}
	st.External.OutcomePct = clamp(st.External.OutcomePct+shift, 0, 100)
	return shift
}

// mixLabel renders the contract mix for history snapshots.
func mixLabel(outcomePct float64) string {
	return fmt.Sprintf("T%.0f/O%.0f", 100-outcomePct, outcomePct)
}
