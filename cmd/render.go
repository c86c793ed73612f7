// Terminal rendering for session state: the dashboard between turns and the
// final scorecard. Money values go through shopspring/decimal so displayed
// figures round consistently instead of trailing float noise.

package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	sim "github.com/strategy-sim/strategy-sim/sim"
)

// money formats a million-USD float as e.g. "$11.7M".
func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).Round(1).StringFixed(1) + "M"
}

// bar renders a 0-100 score as a 20-char meter.
func bar(v float64) string {
	filled := int(v / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 20-filled) + "]"
}

// renderDashboard prints the between-turns view: position, org health,
// revenue mix, and the recent event log (newest first).
func renderDashboard(s *sim.Session) {
	cfg := s.Config()
	st := s.State

	fmt.Printf("\n=== %s — Quarter %d / %d ===\n", cfg.Name, st.Quarter, cfg.QuartersTotal)
	fmt.Printf("Cash Reserves     : %s\n", money(st.Cash))
	fmt.Printf("Company Valuation : %s\n", money(cfg.Valuation(st.Revenue)))

	fmt.Println("\nOrganization Health")
	for _, m := range cfg.Metrics {
		fmt.Printf("  %-16s %s %5.1f\n", m.Name, bar(st.Metrics[m.Name]), st.Metrics[m.Name])
	}

	fmt.Println("\nRevenue Mix")
	for _, str := range cfg.Streams {
		fmt.Printf("  %-16s %s\n", str.Name, money(st.Revenue[str.Name]))
	}
	if cfg.Contracts != nil {
		fmt.Printf("  Contract mix     T%.0f / O%.0f   Competitor index %.0f\n",
			st.External.TransactionalPct(), st.External.OutcomePct,
			st.External.CompetitorPriceIndex)
	}

	if st.Log.Len() > 0 {
		fmt.Println("\nEvent Log")
		for _, ev := range st.Log.Recent(4) {
			fmt.Printf("  %s\n", ev)
		}
	}
}

// renderOutcome prints the end-of-game scorecard.
func renderOutcome(s *sim.Session) {
	switch s.Status() {
	case sim.StatusBankrupt:
		fmt.Println("\nBANKRUPTCY! You ran out of cash. The Board has fired you.")
	case sim.StatusComplete:
		val, tier := s.FinalScore()
		fmt.Println("\nSimulation Complete!")
		fmt.Printf("FINAL SCORE: %s\n", money(val))
		fmt.Printf("GRADE: %s (%s)\n%s\n", tier.Grade, tier.Title, tier.Verdict)
	}
}
