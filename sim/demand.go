// Demand-side revenue functions for the contract-mix variant. Hardware
// demand follows competitor pricing and trust, parts revenue follows
// breakdowns among transactional clients, and the outcome-contract service
// book grows with the mix shift plus a compounding renewal term.

package sim

// applyDemand recomputes the variant's revenue streams from market state.
// Must run after the supply step (it consumes the breakdown count) and after
// the mix shift (it consumes the applied shift and the new fractions).
func (e *Engine) applyDemand(st *State, sup supplyOutcome, mixShift float64) {
	dc := e.cfg.Demand
	trust := st.Metrics[dc.TrustMetric] / 100

	// Hardware: competitor list prices scale demand directly; trust nudges it.
	demandFactor := (st.External.CompetitorPriceIndex / 100) * (dc.BaseDemandFactor + dc.TrustDemandWeight*trust)
	if demandFactor < 0 {
		demandFactor = 0
	}
	st.Revenue[dc.HardwareStream] *= demandFactor

	// Parts: only transactional clients buy spares when things break.
	if e.cfg.Supply != nil {
		transFrac := st.External.TransactionalPct() / 100
		st.Revenue[dc.PartsStream] = sup.Breakdowns * e.cfg.Supply.RevenuePerBreakdown * transFrac
	}

	// Service: newly converted clients add recurring revenue, and the
	// existing book compounds on renewal (the variant's J-curve).
	growth := st.Revenue[dc.ServiceStream] * dc.ServiceRenewalGrowth
	if mixShift > 0 {
		growth += mixShift * dc.ServicePerPoint
	}
	st.Revenue[dc.ServiceStream] += growth

	// Outcome contracts make breakdowns our cost, not our revenue.
	outcomeFrac := st.External.OutcomePct / 100
	st.Cash -= sup.Breakdowns * outcomeFrac * dc.ServiceCostPerBreakdown
}
