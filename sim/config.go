package sim

import "fmt"

// Variant tags the behavioral family of a configuration. Most differences
// between variants are pure data; the tag exists for the subsystems that
// genuinely branch (supply chain, contract mix) and for preset lookup.
type Variant string

const (
	// VariantApex is the 4-stream business-transformation model.
	VariantApex Variant = "apex"
	// VariantOrion is the contract-mix / supply-chain model.
	VariantOrion Variant = "orion"
)

// ValidVariants is the set of recognized variant names.
// Shared by Validate() and LookupVariant() to avoid duplication.
var ValidVariants = map[Variant]bool{VariantApex: true, VariantOrion: true}

// ValidSeverities is the set of recognized shock severities.
var ValidSeverities = map[Severity]bool{
	SeverityInfo: true, SeveritySuccess: true, SeverityWarning: true, SeverityDanger: true,
}

// StreamSpec describes one revenue stream: its profitability, how the market
// values a dollar of it, and how much of its growth eats the legacy stream.
type StreamSpec struct {
	Name            string  `yaml:"name"`
	Initial         float64 `yaml:"initial"`         // starting quarterly revenue ($M)
	Margin          float64 `yaml:"margin"`          // gross profit fraction of revenue
	Multiplier      float64 `yaml:"multiplier"`      // valuation weight per $ of revenue
	Cannibalization float64 `yaml:"cannibalization"` // fraction of growth subtracted from the decay stream
}

// MetricSpec describes one org capability score and the spend category that
// drives it. A metric with MinSpend > 0 has a threshold penalty: spending
// below MinSpend applies PenaltyDelta and emits a warning instead of the
// normal linear increment (mutually exclusive branches).
type MetricSpec struct {
	Name           string  `yaml:"name"`
	Initial        float64 `yaml:"initial"`
	Driver         string  `yaml:"driver"` // spend category name
	Rate           float64 `yaml:"rate"`   // points gained per $M of driver spend
	Decay          float64 `yaml:"decay"`  // points lost every quarter regardless of spend
	MinSpend       float64 `yaml:"min_spend"`
	PenaltyDelta   float64 `yaml:"penalty_delta"`
	PenaltyMessage string  `yaml:"penalty_message"`
}

// SpendSpec describes one budget category and its input range.
type SpendSpec struct {
	Name    string  `yaml:"name"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
	Default float64 `yaml:"default"`
}

// Gate is a minimum normalized capability (metric/100) required for a
// strategic move to succeed.
type Gate struct {
	Metric string  `yaml:"metric"`
	Min    float64 `yaml:"min"` // normalized threshold in [0,1]
}

// StrategySpec describes one selectable strategic move.
//
// Growth formula when all gates hold:
//
//	growth = BaseGrowth * Π(metric_i/100 for Factors) + existing * Compounding
//
// A non-zero Compounding rate is the J-curve mechanic: growth proportional
// to the existing stream size. Defend is special-cased: a multiplier applied
// to the decay stream on top of the baseline decay, with no growth at all.
type StrategySpec struct {
	Name        string   `yaml:"name"`
	Stream      string   `yaml:"stream"`      // stream grown on success (empty for defend)
	Defend      float64  `yaml:"defend"`      // decay-stream multiplier (0 = not a defend move)
	BaseGrowth  float64  `yaml:"base_growth"` // $M before factor scaling
	Factors     []string `yaml:"factors"`     // metric names, each contributing metric/100
	Gates       []Gate   `yaml:"gates"`
	Compounding float64  `yaml:"compounding"` // fraction of existing stream added to growth

	// Gate-failure consequences. Zero values mean no penalty beyond the event.
	FailCash        float64 `yaml:"fail_cash"`         // charged to cash on failure
	FailMetric      string  `yaml:"fail_metric"`       // metric penalized on failure
	FailMetricDelta float64 `yaml:"fail_metric_delta"` // applied to FailMetric (negative)
	FailMessage     string  `yaml:"fail_message"`
	SuccessMessage  string  `yaml:"success_message"`
	InfoMessage     string  `yaml:"info_message"` // emitted whenever the move executes
}

// ShockSpec is a scripted one-off shock at a fixed quarter. It fires when the
// quarter matches AND the probability draw (if Probability > 0) succeeds AND
// the metric condition (if MetricBelow is set) holds.
type ShockSpec struct {
	Quarter         int                `yaml:"quarter"`
	Probability     float64            `yaml:"probability"` // 0 = unconditional (given the metric condition)
	MetricBelow     string             `yaml:"metric_below"`
	MetricThreshold float64            `yaml:"metric_threshold"`
	Severity        Severity           `yaml:"severity"`
	Message         string             `yaml:"message"`
	StreamScale     map[string]float64 `yaml:"stream_scale"` // multiplies named streams
	MetricDelta     map[string]float64 `yaml:"metric_delta"`
	CashDelta       float64            `yaml:"cash_delta"`
	PriceIndexDelta float64            `yaml:"price_index_delta"`
}

// ContractConfig holds the contract-mix shift parameters (Orion only).
// Desired shift toward the target is capped by
// (culture + trust) / ShiftCapDivisor per quarter.
type ContractConfig struct {
	InitialOutcomePct float64 `yaml:"initial_outcome_pct"`
	ShiftCapDivisor   float64 `yaml:"shift_cap_divisor"`
	CultureMetric     string  `yaml:"culture_metric"`
	TrustMetric       string  `yaml:"trust_metric"`
}

// PostureSpec is one discrete inventory posture: a fixed holding cost per
// quarter traded against a base stockout probability.
type PostureSpec struct {
	Name         string  `yaml:"name"`
	HoldingCost  float64 `yaml:"holding_cost"`  // $M charged every quarter
	StockoutProb float64 `yaml:"stockout_prob"` // before data-accuracy relief
}

// SupplyConfig holds the breakdown/stockout subsystem parameters (Orion only).
type SupplyConfig struct {
	InstalledBase       float64       `yaml:"installed_base"`
	BreakdownRate       float64       `yaml:"breakdown_rate"`       // breakdowns per unit per quarter
	PreventableFraction float64       `yaml:"preventable_fraction"` // share avoidable at 100 data accuracy
	AccuracyMetric      string        `yaml:"accuracy_metric"`
	AccuracyRelief      float64       `yaml:"accuracy_relief"` // stockout prob reduction at 100 accuracy
	Postures            []PostureSpec `yaml:"postures"`
	StockoutCashPenalty float64       `yaml:"stockout_cash_penalty"`
	StockoutTrustDelta  float64       `yaml:"stockout_trust_delta"` // applied to TrustMetric (negative)
	TrustMetric         string        `yaml:"trust_metric"`
	RevenuePerBreakdown float64       `yaml:"revenue_per_breakdown"` // parts $M per breakdown
}

// DemandConfig holds the demand-side revenue functions (Orion only).
type DemandConfig struct {
	HardwareStream    string  `yaml:"hardware_stream"`
	PartsStream       string  `yaml:"parts_stream"`
	ServiceStream     string  `yaml:"service_stream"`
	InitialPriceIndex float64 `yaml:"initial_price_index"`
	BaseDemandFactor  float64 `yaml:"base_demand_factor"` // hardware demand at zero trust, index 100
	TrustDemandWeight float64 `yaml:"trust_demand_weight"`
	TrustMetric       string  `yaml:"trust_metric"`
	// Service revenue: each point of outcome-mix shift adds ServicePerPoint,
	// and the existing book renews with compound growth (the J-curve).
	ServicePerPoint      float64 `yaml:"service_per_point"`
	ServiceRenewalGrowth float64 `yaml:"service_renewal_growth"`
	// Outcome contracts make breakdowns our cost instead of our revenue.
	ServiceCostPerBreakdown float64 `yaml:"service_cost_per_breakdown"`
}

// Config is the complete parameter record for one variant. The engine holds
// no constants of its own; everything that differs between Apex and Orion
// lives here.
type Config struct {
	Variant            Variant        `yaml:"variant"`
	Name               string         `yaml:"name"`
	QuartersTotal      int            `yaml:"quarters_total"`
	StartingCash       float64        `yaml:"starting_cash"`
	FixedBurn          float64        `yaml:"fixed_burn"` // $M operating cost every quarter
	DeductSpendUpfront bool           `yaml:"deduct_spend_upfront"`
	WinningValuation   float64        `yaml:"winning_valuation"`  // top tier strictly above
	SurvivorValuation  float64        `yaml:"survivor_valuation"` // mid tier strictly above
	Streams            []StreamSpec   `yaml:"streams"`
	Metrics            []MetricSpec   `yaml:"metrics"`
	Spends             []SpendSpec    `yaml:"spends"`
	Strategies         []StrategySpec `yaml:"strategies"`
	DecayStream        string         `yaml:"decay_stream"`
	DecayRate          float64        `yaml:"decay_rate"` // survival multiplier per quarter, e.g. 0.95
	Shocks             []ShockSpec    `yaml:"shocks"`

	Contracts *ContractConfig `yaml:"contracts"`
	Supply    *SupplyConfig   `yaml:"supply"`
	Demand    *DemandConfig   `yaml:"demand"`
}

// Stream returns the spec for a named stream, or nil if unknown.
func (c *Config) Stream(name string) *StreamSpec {
	for i := range c.Streams {
		if c.Streams[i].Name == name {
			return &c.Streams[i]
		}
	}
	return nil
}

// Spend returns the spec for a named spend category, or nil if unknown.
func (c *Config) Spend(name string) *SpendSpec {
	for i := range c.Spends {
		if c.Spends[i].Name == name {
			return &c.Spends[i]
		}
	}
	return nil
}

// Strategy returns the spec for a named strategy, or nil if unknown.
func (c *Config) Strategy(name string) *StrategySpec {
	for i := range c.Strategies {
		if c.Strategies[i].Name == name {
			return &c.Strategies[i]
		}
	}
	return nil
}

// Posture returns the posture spec for a named posture, or nil if the config
// has no supply subsystem or the name is unknown.
func (c *Config) Posture(name string) *PostureSpec {
	if c.Supply == nil {
		return nil
	}
	for i := range c.Supply.Postures {
		if c.Supply.Postures[i].Name == name {
			return &c.Supply.Postures[i]
		}
	}
	return nil
}

// Valuation computes the fixed linear combination Σ stream * multiplier.
// All-zero streams yield zero; multipliers are non-negative by validation.
func (c *Config) Valuation(revenue map[string]float64) float64 {
	val := 0.0
	for _, s := range c.Streams {
		val += revenue[s.Name] * s.Multiplier
	}
	return val
}

// Validate checks names and parameter ranges. Called after YAML load and on
// the built-in presets in tests.
func (c *Config) Validate() error {
	if !ValidVariants[c.Variant] {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.QuartersTotal <= 0 {
		return fmt.Errorf("quarters_total must be positive, got %d", c.QuartersTotal)
	}
	if len(c.Streams) == 0 {
		return fmt.Errorf("config needs at least one revenue stream")
	}
	for _, s := range c.Streams {
		if s.Multiplier < 0 {
			return fmt.Errorf("stream %q: multiplier must be non-negative, got %f", s.Name, s.Multiplier)
		}
		if s.Margin < 0 || s.Margin > 1 {
			return fmt.Errorf("stream %q: margin must be in [0,1], got %f", s.Name, s.Margin)
		}
		if s.Cannibalization < 0 || s.Cannibalization > 1 {
			return fmt.Errorf("stream %q: cannibalization must be in [0,1], got %f", s.Name, s.Cannibalization)
		}
	}
	if c.DecayStream != "" && c.Stream(c.DecayStream) == nil {
		return fmt.Errorf("decay_stream %q is not a configured stream", c.DecayStream)
	}
	for _, m := range c.Metrics {
		if m.Driver != "" && c.Spend(m.Driver) == nil {
			return fmt.Errorf("metric %q: driver %q is not a configured spend category", m.Name, m.Driver)
		}
		if m.Initial < 0 || m.Initial > 100 {
			return fmt.Errorf("metric %q: initial must be in [0,100], got %f", m.Name, m.Initial)
		}
	}
	for _, sp := range c.Spends {
		if sp.Min > sp.Max {
			return fmt.Errorf("spend %q: min %f exceeds max %f", sp.Name, sp.Min, sp.Max)
		}
	}
	for _, st := range c.Strategies {
		if st.Stream != "" && c.Stream(st.Stream) == nil {
			return fmt.Errorf("strategy %q: stream %q is not configured", st.Name, st.Stream)
		}
		for _, g := range st.Gates {
			if c.metricSpec(g.Metric) == nil {
				return fmt.Errorf("strategy %q: gate metric %q is not configured", st.Name, g.Metric)
			}
			if g.Min < 0 || g.Min > 1 {
				return fmt.Errorf("strategy %q: gate on %q must be in [0,1], got %f", st.Name, g.Metric, g.Min)
			}
		}
		for _, f := range st.Factors {
			if c.metricSpec(f) == nil {
				return fmt.Errorf("strategy %q: factor metric %q is not configured", st.Name, f)
			}
		}
	}
	for _, sh := range c.Shocks {
		if sh.Quarter < 1 || sh.Quarter > c.QuartersTotal {
			return fmt.Errorf("shock at quarter %d outside game of %d quarters", sh.Quarter, c.QuartersTotal)
		}
		if sh.Probability < 0 || sh.Probability > 1 {
			return fmt.Errorf("shock at quarter %d: probability must be in [0,1], got %f", sh.Quarter, sh.Probability)
		}
		if sh.Severity != "" && !ValidSeverities[sh.Severity] {
			return fmt.Errorf("shock at quarter %d: unknown severity %q", sh.Quarter, sh.Severity)
		}
	}
	if c.Supply != nil {
		if len(c.Supply.Postures) == 0 {
			return fmt.Errorf("supply config needs at least one posture")
		}
		for _, p := range c.Supply.Postures {
			if p.StockoutProb < 0 || p.StockoutProb > 1 {
				return fmt.Errorf("posture %q: stockout_prob must be in [0,1], got %f", p.Name, p.StockoutProb)
			}
		}
	}
	if c.Contracts != nil && c.Contracts.ShiftCapDivisor <= 0 {
		return fmt.Errorf("contracts: shift_cap_divisor must be positive, got %f", c.Contracts.ShiftCapDivisor)
	}
	if c.Demand != nil {
		for _, name := range []string{c.Demand.HardwareStream, c.Demand.PartsStream, c.Demand.ServiceStream} {
			if c.Stream(name) == nil {
				return fmt.Errorf("demand: stream %q is not configured", name)
			}
		}
	}
	return nil
}

func (c *Config) metricSpec(name string) *MetricSpec {
	for i := range c.Metrics {
		if c.Metrics[i].Name == name {
			return &c.Metrics[i]
		}
	}
	return nil
}
