// The quarterly state-transition engine. ApplyTurn is the whole game: it
// takes the current state and one quarter's decisions and mutates the state
// through a fixed step pipeline, returning the narrative events produced
// along the way. Later steps read outputs of earlier ones, so the order here
// is load-bearing.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Engine applies quarterly turns under one variant configuration.
// It holds no mutable state of its own; all session state lives in State.
type Engine struct {
	cfg *Config
}

// NewEngine wraps a variant configuration. The config is expected to have
// passed Validate.
func NewEngine(cfg *Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the variant configuration the engine runs under.
func (e *Engine) Config() *Config {
	return e.cfg
}

// ApplyTurn executes one quarter. Deterministic given a fixed rng. It never
// fails: out-of-range inputs are clamped and in-game failures are events.
//
// Step order: expenses, capability updates, baseline decay + strategic move,
// contract-mix shift, supply chain, demand + profit aggregation, scripted
// shocks, history snapshot, quarter advance.
func (e *Engine) ApplyTurn(st *State, d Decision, rng *PartitionedRNG) []Event {
	cfg := e.cfg
	var events []Event
	emit := func(sev Severity, msg string) {
		ev := Event{Quarter: st.Quarter, Severity: sev, Message: msg}
		events = append(events, ev)
		st.Log.Add(ev)
	}

	spend, totalSpend := clampSpend(cfg, d)
	logrus.Debugf("Q%d: spend=%.2f strategy=%q target=%.1f posture=%q",
		st.Quarter, totalSpend, d.Strategy, d.TargetOutcomePct, d.Posture)

	// 1. Expenses. The transformation variant charges spend+burn inside the
	// net change below instead; charging in both places would double-bill.
	if cfg.DeductSpendUpfront {
		st.Cash -= totalSpend + cfg.FixedBurn
	}

	// 2. Capability updates, then clamp to [0,100].
	for _, m := range cfg.Metrics {
		drive := spend[m.Driver]
		if m.MinSpend > 0 && drive < m.MinSpend {
			// Threshold penalty replaces the normal increment.
			st.Metrics[m.Name] += m.PenaltyDelta
			emit(SeverityWarning, m.PenaltyMessage)
		} else {
			st.Metrics[m.Name] += drive*m.Rate - m.Decay
		}
	}
	st.clampMetrics()

	// 3. Baseline commoditization decay, unconditional, then the selected
	// strategic move on top of it.
	if cfg.DecayStream != "" && cfg.DecayRate > 0 {
		st.Revenue[cfg.DecayStream] *= cfg.DecayRate
	}
	if strat := cfg.Strategy(d.Strategy); strat != nil {
		e.resolveStrategy(st, strat, emit)
	}
	st.floorRevenue()

	// 4. Contract-mix shift (contract-mix variant only).
	var mixShift float64
	if cfg.Contracts != nil {
		mixShift = e.shiftContracts(st, d.TargetOutcomePct, emit)
	}

	// 5. Supply chain: breakdowns, holding cost, stockout draw.
	var sup supplyOutcome
	if cfg.Supply != nil {
		sup = e.runSupply(st, d.Posture, rng.ForSubsystem(SubsystemSupply), emit)
	}

	// 6. Demand functions, then profit aggregation.
	if cfg.Demand != nil {
		e.applyDemand(st, sup, mixShift)
	}
	st.floorRevenue()
	gross := 0.0
	for _, s := range cfg.Streams {
		gross += st.Revenue[s.Name] * s.Margin
	}
	if cfg.DeductSpendUpfront {
		st.Cash += gross
	} else {
		st.Cash += gross - totalSpend - cfg.FixedBurn
	}
	logrus.Debugf("Q%d: gross=%.3f cash=%.3f", st.Quarter, gross, st.Cash)

	// 7. Scripted shocks at fixed quarters.
	e.applyShocks(st, rng.ForSubsystem(SubsystemMarket), emit)
	st.clampMetrics()
	st.floorRevenue()

	// 8-9. Valuation snapshot for charting.
	snap := Snapshot{
		Quarter:   st.Quarter,
		Cash:      st.Cash,
		Valuation: cfg.Valuation(st.Revenue),
		Revenue:   st.TotalRevenue(),
	}
	if cfg.Contracts != nil {
		snap.MixLabel = mixLabel(st.External.OutcomePct)
	}
	st.History = append(st.History, snap)

	// 10. Quarter advance.
	st.Quarter++
	return events
}

// resolveStrategy applies one strategic move. Defend moves multiply the decay
// stream; launch moves are gated on normalized capabilities and grow their
// stream, cannibalizing the decay stream per the stream spec.
func (e *Engine) resolveStrategy(st *State, strat *StrategySpec, emit func(Severity, string)) {
	cfg := e.cfg
	if strat.Defend > 0 {
		if cfg.DecayStream != "" {
			st.Revenue[cfg.DecayStream] *= strat.Defend
		}
		return
	}
	for _, g := range strat.Gates {
		if st.Metrics[g.Metric]/100 < g.Min {
			// Gate failure: narrative danger plus any configured penalty.
			emit(SeverityDanger, strat.FailMessage)
			if strat.FailMetric != "" {
				st.Metrics[strat.FailMetric] += strat.FailMetricDelta
				st.clampMetrics()
			}
			st.Cash -= strat.FailCash
			return
		}
	}
	growth := strat.BaseGrowth
	for _, f := range strat.Factors {
		growth *= st.Metrics[f] / 100
	}
	if strat.Compounding > 0 {
		// J-curve: growth proportional to the existing stream size.
		growth += st.Revenue[strat.Stream] * strat.Compounding
	}
	st.Revenue[strat.Stream] += growth
	if ss := cfg.Stream(strat.Stream); ss != nil && ss.Cannibalization > 0 && cfg.DecayStream != "" {
		st.Revenue[cfg.DecayStream] -= growth * ss.Cannibalization
	}
	if strat.SuccessMessage != "" {
		emit(SeveritySuccess, strat.SuccessMessage)
	}
	if strat.InfoMessage != "" {
		emit(SeverityInfo, strat.InfoMessage)
	}
}

// applyShocks fires scripted one-off shocks scheduled for the current
// quarter. A shock needs its quarter to match, its metric condition (if any)
// to hold, and its probability draw (if any) to succeed.
func (e *Engine) applyShocks(st *State, rng *rand.Rand, emit func(Severity, string)) {
	for i := range e.cfg.Shocks {
		sh := &e.cfg.Shocks[i]
		if sh.Quarter != st.Quarter {
			continue
		}
		if sh.MetricBelow != "" && st.Metrics[sh.MetricBelow] >= sh.MetricThreshold {
			continue
		}
		if sh.Probability > 0 && rng.Float64() >= sh.Probability {
			continue
		}
		for name, factor := range sh.StreamScale {
			st.Revenue[name] *= factor
		}
		for name, delta := range sh.MetricDelta {
			st.Metrics[name] += delta
		}
		st.Cash += sh.CashDelta
		st.External.CompetitorPriceIndex += sh.PriceIndexDelta
		sev := sh.Severity
		if sev == "" {
			sev = SeverityWarning
		}
		emit(sev, sh.Message)
	}
}
