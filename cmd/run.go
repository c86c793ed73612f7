// Scripted autopilot: plays a full game with a simple built-in policy.
// Useful for demos, balance checks, and generating history CSVs without
// sitting through the REPL.

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/strategy-sim/strategy-sim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation with a scripted decision policy",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadVariant()
		session, err := sim.NewSession(cfg, seed)
		if err != nil {
			logrus.Fatalf("Failed to start session: %v", err)
		}

		maxTurns := cfg.QuartersTotal
		if quarters > 0 && quarters < maxTurns {
			maxTurns = quarters
		}
		for i := 0; i < maxTurns && session.Status() == sim.StatusActive; i++ {
			events, err := session.ExecuteQuarter(autopilotDecision(session))
			if err != nil {
				logrus.Fatalf("turn rejected: %v", err)
			}
			for _, ev := range events {
				logrus.Infof("%s", ev)
			}
		}

		renderDashboard(session)
		renderOutcome(session)

		if historyOut != "" {
			f, err := os.Create(historyOut)
			if err != nil {
				logrus.Fatalf("Failed to create history file: %v", err)
			}
			defer f.Close()
			if err := sim.WriteHistoryCSV(f, session.State.History); err != nil {
				logrus.Fatalf("Failed to write history: %v", err)
			}
			fmt.Printf("\nHistory written to %s\n", historyOut)
		}
	},
}

// autopilotDecision is a deliberately simple balanced policy: steady
// investment everywhere, defend the core while capabilities build, then
// chase the high-multiplier stream once its gates are in reach.
func autopilotDecision(s *sim.Session) sim.Decision {
	cfg := s.Config()
	st := s.State
	d := sim.DefaultDecision(cfg, st)
	for _, sp := range cfg.Spends {
		d.Spend[sp.Name] = clampTo(1.0, sp.Min, sp.Max)
	}

	if len(cfg.Strategies) > 0 {
		d.Strategy = pickStrategy(cfg, st)
	}
	if cfg.Contracts != nil {
		// Push the mix toward outcome contracts a few points per quarter.
		d.TargetOutcomePct = st.External.OutcomePct + 6
	}
	if cfg.Supply != nil {
		d.Posture = "Balanced"
		if st.Metrics[cfg.Supply.AccuracyMetric] > 70 {
			d.Posture = "Lean"
		}
	}
	return d
}

// pickStrategy chooses the most ambitious move whose gates currently hold,
// falling back to the defend move.
func pickStrategy(cfg *sim.Config, st *sim.State) string {
	best := cfg.Strategies[0].Name
	for _, strat := range cfg.Strategies {
		if strat.Defend > 0 {
			continue
		}
		ok := true
		for _, g := range strat.Gates {
			if st.Metrics[g.Metric]/100 < g.Min {
				ok = false
				break
			}
		}
		if ok {
			// Strategies are declared in ascending ambition; keep the last
			// one that passes.
			best = strat.Name
		}
	}
	return best
}

func clampTo(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	runCmd.Flags().IntVar(&quarters, "quarters", 0, "Stop after N quarters (0 = full game)")
	runCmd.Flags().StringVar(&historyOut, "history-out", "", "Write the per-quarter history CSV to this path")
}
