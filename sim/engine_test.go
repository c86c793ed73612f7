package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApexGame(t *testing.T, seed int64) (*Engine, *State, *PartitionedRNG) {
	t.Helper()
	cfg := ApexConfig()
	require.NoError(t, cfg.Validate())
	return NewEngine(cfg), NewState(cfg), NewPartitionedRNG(NewSimulationKey(seed))
}

func apexSpend(rd, change, gtm float64) map[string]float64 {
	return map[string]float64{"R&D": rd, "Change Mgmt": change, "Go-To-Market": gtm}
}

func hasSeverity(events []Event, sev Severity) bool {
	for _, ev := range events {
		if ev.Severity == sev {
			return true
		}
	}
	return false
}

func TestApplyTurn_DefendCore_ExactNumbers(t *testing.T) {
	// GIVEN the initial Apex state, all spend at 0.5, strategy Defend Core
	eng, st, rng := newApexGame(t, 42)

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 0.5, 0.5),
		Strategy: "Defend Core (Hardware)",
	}, rng)

	// Traditional decays 5% then the defend move mitigates by 3%.
	assert.InDelta(t, 12.0*0.95*1.03, st.Revenue["Traditional"], 1e-9)
	assert.InDelta(t, 0, st.Revenue["Service"], 1e-9)
	assert.InDelta(t, 0, st.Revenue["Cloud"], 1e-9)

	// Metrics: linear driver updates. Morale spend of exactly 0.5 takes the
	// normal branch, not the threshold penalty.
	assert.InDelta(t, 11.0, st.Metrics["Tech_Maturity"], 1e-9)  // 10 + 0.5*4 - 1
	assert.InDelta(t, 81.5, st.Metrics["Sales_Morale"], 1e-9)   // 80 + 0.5*3
	assert.InDelta(t, 41.0, st.Metrics["Customer_Trust"], 1e-9) // 40 + 0.5*3 - 0.5
	assert.False(t, hasSeverity(events, SeverityWarning))
	assert.False(t, hasSeverity(events, SeverityDanger))

	// Cash: gross profit minus spend (1.5) minus burn (1.0), charged once.
	gross := 12.0 * 0.95 * 1.03 * 0.15
	assert.InDelta(t, 15.0+gross-1.5-1.0, st.Cash, 1e-9)

	assert.Equal(t, 2, st.Quarter)
	require.Len(t, st.History, 1)
	assert.InDelta(t, 12.0*0.95*1.03, st.History[0].Valuation, 1e-9)
	assert.Equal(t, 1, st.History[0].Quarter)
}

func TestApplyTurn_CloudLaunch_GateFailure(t *testing.T) {
	// GIVEN low tech and trust, WHEN the cloud launch is attempted
	eng, st, rng := newApexGame(t, 42)

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0, 0, 0),
		Strategy: "Launch Cloud (Platform)",
	}, rng)

	// Gate fails (tech ~9, trust ~39.5 after zero-spend updates): danger
	// event, Cloud untouched, trust penalty, failed-launch cleanup cost.
	assert.True(t, hasSeverity(events, SeverityDanger))
	assert.InDelta(t, 0, st.Revenue["Cloud"], 1e-9)
	// trust: 40 - 0.5 decay - 10 penalty
	assert.InDelta(t, 29.5, st.Metrics["Customer_Trust"], 1e-9)
	// cash: -2.0 launch penalty, then net change with zero spend
	gross := 12.0 * 0.95 * 0.15
	assert.InDelta(t, 15.0-2.0+gross-1.0, st.Cash, 1e-9)
}

func TestApplyTurn_CloudLaunch_GateBoundaryPasses(t *testing.T) {
	// A factor exactly at the gate passes; only below fails.
	eng, st, rng := newApexGame(t, 42)
	st.Metrics["Tech_Maturity"] = 71    // decays to 70 with zero R&D spend
	st.Metrics["Customer_Trust"] = 70.5 // decays to 70 with zero GTM spend

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0, 0.5, 0),
		Strategy: "Launch Cloud (Platform)",
	}, rng)

	assert.True(t, hasSeverity(events, SeveritySuccess))
	assert.InDelta(t, 1.0, st.Revenue["Cloud"], 1e-9) // base growth, empty stream
}

func TestApplyTurn_CloudCompounding_JCurve(t *testing.T) {
	// Once seeded and gated, cloud growth is strictly increasing.
	eng, st, rng := newApexGame(t, 7)
	st.Metrics["Tech_Maturity"] = 90
	st.Metrics["Customer_Trust"] = 90

	prev := 0.0
	prevGrowth := 0.0
	for q := 0; q < 6; q++ {
		eng.ApplyTurn(st, Decision{
			Spend:    apexSpend(1.0, 1.0, 1.0),
			Strategy: "Launch Cloud (Platform)",
		}, rng)
		growth := st.Revenue["Cloud"] - prev
		if q > 0 {
			assert.Greater(t, growth, prevGrowth, "growth must compound quarter over quarter")
		}
		assert.Greater(t, st.Revenue["Cloud"], prev)
		prev = st.Revenue["Cloud"]
		prevGrowth = growth
	}
}

func TestApplyTurn_ServiceLaunch_CannibalizesTraditional(t *testing.T) {
	eng, st, rng := newApexGame(t, 42)

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 1.0, 0.5),
		Strategy: "Launch Service (Predictive Maint)",
	}, rng)

	// growth = 1.5 * morale/100 with morale updated to 83 first
	growth := 1.5 * 0.83
	assert.InDelta(t, growth, st.Revenue["Service"], 1e-9)
	assert.InDelta(t, 12.0*0.95-growth*0.3, st.Revenue["Traditional"], 1e-9)
	assert.True(t, hasSeverity(events, SeverityInfo))
}

func TestApplyTurn_RepeatedServiceLaunch_MonotoneStreams(t *testing.T) {
	// Service grows every quarter while Traditional shrinks under decay plus
	// cannibalization.
	eng, st, rng := newApexGame(t, 42)

	prevService := st.Revenue["Service"]
	prevTraditional := st.Revenue["Traditional"]
	for q := 0; q < 3; q++ { // stay clear of the Q4 shock
		eng.ApplyTurn(st, Decision{
			Spend:    apexSpend(0.5, 1.5, 0.5),
			Strategy: "Launch Service (Predictive Maint)",
		}, rng)
		assert.Greater(t, st.Revenue["Service"], prevService)
		assert.Less(t, st.Revenue["Traditional"], prevTraditional)
		prevService = st.Revenue["Service"]
		prevTraditional = st.Revenue["Traditional"]
	}
}

func TestApplyTurn_ProcessLaunch_GateOnTrust(t *testing.T) {
	eng, st, rng := newApexGame(t, 42)
	st.Metrics["Customer_Trust"] = 30 // stays below 50 after updates

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 0.5, 0.5),
		Strategy: "Launch Process (Optimization)",
	}, rng)

	assert.True(t, hasSeverity(events, SeverityDanger))
	assert.InDelta(t, 0, st.Revenue["Process"], 1e-9)
	// Process failure carries no cash or metric penalty, unlike Cloud.
	gross := 12.0 * 0.95 * 0.15
	assert.InDelta(t, 15.0+gross-1.5-1.0, st.Cash, 1e-9)
}

func TestApplyTurn_MoraleThresholdPenalty(t *testing.T) {
	// Spending under the change-management floor tanks morale instead of
	// raising it, with a warning. The branches are mutually exclusive.
	eng, st, rng := newApexGame(t, 42)

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 0.4, 0.5),
		Strategy: "Defend Core (Hardware)",
	}, rng)

	assert.InDelta(t, 70.0, st.Metrics["Sales_Morale"], 1e-9) // 80 - 10, no +0.4*3
	assert.True(t, hasSeverity(events, SeverityWarning))
}

func TestApplyTurn_MetricsClampedAtExtremes(t *testing.T) {
	eng, st, rng := newApexGame(t, 42)

	// Max spend everywhere for many quarters: no metric may exceed 100.
	for q := 0; q < 8; q++ {
		eng.ApplyTurn(st, Decision{
			Spend:    apexSpend(5, 5, 5),
			Strategy: "Defend Core (Hardware)",
		}, rng)
		for name, v := range st.Metrics {
			assert.GreaterOrEqual(t, v, 0.0, "metric %s below 0", name)
			assert.LessOrEqual(t, v, 100.0, "metric %s above 100", name)
		}
	}

	// Zero spend for many quarters: no metric may drop below 0.
	eng2, st2, rng2 := newApexGame(t, 42)
	for q := 0; q < 12; q++ {
		eng2.ApplyTurn(st2, Decision{
			Spend:    apexSpend(0, 0, 0),
			Strategy: "Defend Core (Hardware)",
		}, rng2)
		for name, v := range st2.Metrics {
			assert.GreaterOrEqual(t, v, 0.0, "metric %s below 0", name)
			assert.LessOrEqual(t, v, 100.0, "metric %s above 100", name)
		}
	}
}

func TestApplyTurn_SpendClampedToRange(t *testing.T) {
	// Out-of-range spend is clamped, not rejected: a 99 spend costs 5.
	eng, st, rng := newApexGame(t, 42)

	eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(99, -3, 0.5),
		Strategy: "Defend Core (Hardware)",
	}, rng)

	// tech from clamped 5.0 R&D spend, morale from clamped 0 spend
	assert.InDelta(t, 10+5*4-1, st.Metrics["Tech_Maturity"], 1e-9)
	assert.InDelta(t, 70.0, st.Metrics["Sales_Morale"], 1e-9)
	gross := 12.0 * 0.95 * 1.03 * 0.15
	assert.InDelta(t, 15.0+gross-(5+0+0.5)-1.0, st.Cash, 1e-9)
}

func TestApplyTurn_RevenueFlooredAtZero(t *testing.T) {
	// Heavy cannibalization on a tiny legacy stream cannot go negative.
	eng, st, rng := newApexGame(t, 42)
	st.Revenue["Traditional"] = 0.1
	st.Metrics["Sales_Morale"] = 100

	eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 1.0, 0.5),
		Strategy: "Launch Service (Predictive Maint)",
	}, rng)

	assert.GreaterOrEqual(t, st.Revenue["Traditional"], 0.0)
}

func TestApplyTurn_DeterministicUnderFixedSeed(t *testing.T) {
	// Two full games with the same seed and decisions are identical.
	play := func() *State {
		eng, st, rng := newApexGame(t, 1234)
		for q := 0; q < 12; q++ {
			eng.ApplyTurn(st, Decision{
				Spend:    apexSpend(1.0, 1.0, 1.0),
				Strategy: "Launch Service (Predictive Maint)",
			}, rng)
		}
		return st
	}
	a, b := play(), play()
	assert.Equal(t, a.Revenue, b.Revenue)
	assert.Equal(t, a.Metrics, b.Metrics)
	assert.InDelta(t, a.Cash, b.Cash, 1e-12)
	assert.Equal(t, a.Quarter, b.Quarter)
	require.Equal(t, len(a.History), len(b.History))
	for i := range a.History {
		assert.Equal(t, a.History[i], b.History[i])
	}
}

func TestApplyShocks_ConditionalShockRequiresMetricBelow(t *testing.T) {
	// The Q8 sensor-failure shock fires only when tech maturity is low.
	eng, st, rng := newApexGame(t, 42)
	st.Quarter = 8
	st.Metrics["Tech_Maturity"] = 80

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 0.5, 0.5),
		Strategy: "Defend Core (Hardware)",
	}, rng)
	assert.False(t, hasSeverity(events, SeverityDanger))

	eng2, st2, rng2 := newApexGame(t, 42)
	st2.Quarter = 8
	st2.Metrics["Tech_Maturity"] = 10

	trustBefore := st2.Metrics["Customer_Trust"]
	events2 := eng2.ApplyTurn(st2, Decision{
		Spend:    apexSpend(0, 0.5, 0),
		Strategy: "Defend Core (Hardware)",
	}, rng2)
	assert.True(t, hasSeverity(events2, SeverityDanger))
	// trust: -0.5 decay then -20 shock
	assert.InDelta(t, trustBefore-0.5-20, st2.Metrics["Customer_Trust"], 1e-9)
}

func TestApplyShocks_ProbabilityOneAlwaysFires(t *testing.T) {
	// Float64 draws live in [0,1), so probability 1 fires on any seed.
	cfg := ApexConfig()
	cfg.Shocks = []ShockSpec{{
		Quarter: 1, Probability: 1.0, Severity: SeverityWarning,
		Message:     "price war",
		StreamScale: map[string]float64{"Traditional": 0.5},
	}}
	require.NoError(t, cfg.Validate())
	eng := NewEngine(cfg)
	st := NewState(cfg)
	rng := NewPartitionedRNG(NewSimulationKey(99))

	events := eng.ApplyTurn(st, Decision{
		Spend:    apexSpend(0.5, 0.5, 0.5),
		Strategy: "Defend Core (Hardware)",
	}, rng)

	assert.True(t, hasSeverity(events, SeverityWarning))
	assert.InDelta(t, 12.0*0.95*1.03*0.5, st.Revenue["Traditional"], 1e-9)
}

func TestEventLog_MostRecentFirst(t *testing.T) {
	eng, st, rng := newApexGame(t, 42)

	eng.ApplyTurn(st, Decision{Spend: apexSpend(0.5, 0, 0.5), Strategy: "Defend Core (Hardware)"}, rng)
	eng.ApplyTurn(st, Decision{Spend: apexSpend(0.5, 0, 0.5), Strategy: "Defend Core (Hardware)"}, rng)

	recent := st.Log.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, 2, recent[0].Quarter, "newest entry must come first")
	assert.Equal(t, 1, recent[1].Quarter)
}
