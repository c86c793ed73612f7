// Built-in variant parameter records. Apex is the 4-stream transformation
// game; Orion is the contract-mix / supply-chain game. External YAML configs
// loaded via LoadConfig follow the same schema.

package sim

import "fmt"

// ApexConfig returns the 4-stream business-transformation preset.
func ApexConfig() *Config {
	return &Config{
		Variant:           VariantApex,
		Name:              "Apex Precision",
		QuartersTotal:     12,
		StartingCash:      15.0,
		FixedBurn:         1.0,
		WinningValuation:  150.0,
		SurvivorValuation: 80.0,
		Streams: []StreamSpec{
			{Name: "Traditional", Initial: 12.0, Margin: 0.15, Multiplier: 1.0},
			{Name: "Service", Initial: 0.0, Margin: 0.35, Multiplier: 3.0, Cannibalization: 0.3},
			{Name: "Process", Initial: 0.0, Margin: 0.55, Multiplier: 6.0, Cannibalization: 0.1},
			{Name: "Cloud", Initial: 0.0, Margin: 0.85, Multiplier: 10.0},
		},
		Metrics: []MetricSpec{
			{Name: "Tech_Maturity", Initial: 10.0, Driver: "R&D", Rate: 4, Decay: 1},
			{Name: "Sales_Morale", Initial: 80.0, Driver: "Change Mgmt", Rate: 3,
				MinSpend: 0.5, PenaltyDelta: -10,
				PenaltyMessage: "Sales team demoralized due to lack of training!"},
			{Name: "Customer_Trust", Initial: 40.0, Driver: "Go-To-Market", Rate: 3, Decay: 0.5},
		},
		Spends: []SpendSpec{
			{Name: "R&D", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
			{Name: "Change Mgmt", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
			{Name: "Go-To-Market", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
		},
		DecayStream: "Traditional",
		DecayRate:   0.95,
		Strategies: []StrategySpec{
			{Name: "Defend Core (Hardware)", Defend: 1.03},
			{Name: "Launch Service (Predictive Maint)", Stream: "Service",
				BaseGrowth: 1.5, Factors: []string{"Sales_Morale"},
				InfoMessage: "Service contracts growing. Spare parts revenue declining."},
			{Name: "Launch Process (Optimization)", Stream: "Process",
				BaseGrowth: 1.2, Factors: []string{"Tech_Maturity", "Customer_Trust"},
				Gates:       []Gate{{Metric: "Customer_Trust", Min: 0.5}},
				FailMessage: "Process Launch Failed! Trust too low."},
			{Name: "Launch Cloud (Platform)", Stream: "Cloud",
				BaseGrowth: 1.0, Compounding: 0.4,
				Gates: []Gate{
					{Metric: "Tech_Maturity", Min: 0.7},
					{Metric: "Customer_Trust", Min: 0.7},
				},
				FailCash: 2.0, FailMetric: "Customer_Trust", FailMetricDelta: -10,
				FailMessage:    "Cloud Launch Disaster! Product buggy or no trust.",
				SuccessMessage: "Cloud Platform scaling!"},
		},
		Shocks: []ShockSpec{
			{Quarter: 4, Probability: 0.7, Severity: SeverityWarning,
				Message:     "Competitor slashes hardware prices by 20%. Core revenue hit.",
				StreamScale: map[string]float64{"Traditional": 0.8}},
			{Quarter: 8, MetricBelow: "Tech_Maturity", MetricThreshold: 50, Severity: SeverityDanger,
				Message:     "Major sensor failure at client site! Trust tanks.",
				MetricDelta: map[string]float64{"Customer_Trust": -20}, CashDelta: -1.0},
		},
	}
}

// OrionConfig returns the contract-mix / supply-chain preset.
func OrionConfig() *Config {
	return &Config{
		Variant:            VariantOrion,
		Name:               "Orion Logistics",
		QuartersTotal:      12,
		StartingCash:       20.0,
		FixedBurn:          1.2,
		DeductSpendUpfront: true,
		WinningValuation:   90.0,
		SurvivorValuation:  45.0,
		Streams: []StreamSpec{
			{Name: "Hardware", Initial: 18.0, Margin: 0.12, Multiplier: 0.8},
			{Name: "Parts", Initial: 2.5, Margin: 0.45, Multiplier: 1.0},
			{Name: "Service", Initial: 1.0, Margin: 0.30, Multiplier: 5.0},
		},
		Metrics: []MetricSpec{
			{Name: "Data_Accuracy", Initial: 30.0, Driver: "Data Platform", Rate: 4, Decay: 1},
			{Name: "Sales_Culture", Initial: 55.0, Driver: "Sales Enablement", Rate: 3,
				MinSpend: 0.5, PenaltyDelta: -10,
				PenaltyMessage: "Account teams revert to box-selling without enablement!"},
			{Name: "Customer_Trust", Initial: 50.0, Driver: "Customer Success", Rate: 3, Decay: 0.5},
		},
		Spends: []SpendSpec{
			{Name: "Data Platform", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
			{Name: "Sales Enablement", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
			{Name: "Customer Success", Min: 0, Max: 5, Step: 0.5, Default: 0.5},
		},
		DecayStream: "Hardware",
		DecayRate:   0.96,
		Contracts: &ContractConfig{
			InitialOutcomePct: 20,
			ShiftCapDivisor:   10,
			CultureMetric:     "Sales_Culture",
			TrustMetric:       "Customer_Trust",
		},
		Supply: &SupplyConfig{
			InstalledBase:       600,
			BreakdownRate:       0.05,
			PreventableFraction: 0.6,
			AccuracyMetric:      "Data_Accuracy",
			AccuracyRelief:      0.2,
			Postures: []PostureSpec{
				{Name: "Lean", HoldingCost: 0.15, StockoutProb: 0.30},
				{Name: "Balanced", HoldingCost: 0.35, StockoutProb: 0.15},
				{Name: "Flush", HoldingCost: 0.60, StockoutProb: 0.05},
			},
			StockoutCashPenalty: 1.5,
			StockoutTrustDelta:  -8,
			TrustMetric:         "Customer_Trust",
			RevenuePerBreakdown: 0.08,
		},
		Demand: &DemandConfig{
			HardwareStream:          "Hardware",
			PartsStream:             "Parts",
			ServiceStream:           "Service",
			InitialPriceIndex:       100,
			BaseDemandFactor:        0.82,
			TrustDemandWeight:       0.3,
			TrustMetric:             "Customer_Trust",
			ServicePerPoint:         0.06,
			ServiceRenewalGrowth:    0.06,
			ServiceCostPerBreakdown: 0.02,
		},
		Shocks: []ShockSpec{
			{Quarter: 3, Probability: 0.6, Severity: SeverityWarning,
				Message:         "Competitor undercuts list prices across the installed base.",
				PriceIndexDelta: -15},
			{Quarter: 7, MetricBelow: "Data_Accuracy", MetricThreshold: 50, Severity: SeverityDanger,
				Message:     "Field failure wave! Sensors misreport and clients lose patience.",
				MetricDelta: map[string]float64{"Customer_Trust": -12}, CashDelta: -1.5},
		},
	}
}

// LookupVariant returns the built-in preset for a variant name.
func LookupVariant(name string) (*Config, error) {
	switch Variant(name) {
	case VariantApex:
		return ApexConfig(), nil
	case VariantOrion:
		return OrionConfig(), nil
	default:
		return nil, fmt.Errorf("unknown variant %q (want %q or %q)", name, VariantApex, VariantOrion)
	}
}
