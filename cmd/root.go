package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/strategy-sim/strategy-sim/sim"
)

var (
	// CLI flags shared by play and run
	variant    string // built-in variant preset name
	configPath string // external YAML variant config (overrides --variant)
	seed       int64  // master seed for market and supply draws
	logLevel   string // log verbosity level

	// run-only flags
	quarters   int    // 0 = play the configured full game
	historyOut string // CSV path for the per-quarter history
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "strategy-sim",
	Short: "Turn-based business-strategy simulator",
	Long: "Quarterly budget-allocation simulator: pick investments and a strategic\n" +
		"move each quarter, survive the cash trough, and grow company valuation.",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadVariant resolves the variant config from --config or --variant.
func loadVariant() *sim.Config {
	if configPath != "" {
		cfg, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load variant config: %v", err)
		}
		return cfg
	}
	cfg, err := sim.LookupVariant(variant)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return cfg
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "apex", "Built-in variant preset (apex, orion)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "External YAML variant config (overrides --variant)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for market shock and stockout draws")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
}
