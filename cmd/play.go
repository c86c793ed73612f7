// Interactive play: the read-eval-print loop around the engine. Render
// state, collect one quarter's decisions from stdin, apply the turn, repeat
// until the game ends, then offer a restart.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/strategy-sim/strategy-sim/sim"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the simulation interactively",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadVariant()
		session, err := sim.NewSession(cfg, seed)
		if err != nil {
			logrus.Fatalf("Failed to start session: %v", err)
		}
		playLoop(session, bufio.NewScanner(os.Stdin))
	},
}

// playLoop drives the session until stdin closes or the player quits.
func playLoop(s *sim.Session, in *bufio.Scanner) {
	for {
		renderDashboard(s)
		if s.Status() != sim.StatusActive {
			renderOutcome(s)
			if !promptYesNo(in, "Restart simulation?") {
				return
			}
			s.Restart()
			continue
		}
		d, ok := promptDecision(s, in)
		if !ok {
			return
		}
		if _, err := s.ExecuteQuarter(d); err != nil {
			// Only possible between the status check and here if the caller
			// raced itself; single-threaded play never hits it.
			logrus.Errorf("turn rejected: %v", err)
			return
		}
	}
}

// promptDecision collects one quarter's decisions. Returns ok=false on EOF.
func promptDecision(s *sim.Session, in *bufio.Scanner) (sim.Decision, bool) {
	cfg := s.Config()
	d := sim.DefaultDecision(cfg, s.State)

	fmt.Println("\nQuarterly Decisions (enter = default)")
	for _, sp := range cfg.Spends {
		v, ok := promptFloat(in, fmt.Sprintf("  %s ($M, %.1f-%.1f) [%.1f]: ", sp.Name, sp.Min, sp.Max, sp.Default), sp.Default)
		if !ok {
			return d, false
		}
		d.Spend[sp.Name] = v
	}

	if len(cfg.Strategies) > 0 {
		fmt.Println("  Strategic priority:")
		for i, st := range cfg.Strategies {
			fmt.Printf("    %d. %s\n", i+1, st.Name)
		}
		idx, ok := promptFloat(in, "  Select [1]: ", 1)
		if !ok {
			return d, false
		}
		i := int(idx) - 1
		if i < 0 || i >= len(cfg.Strategies) {
			i = 0
		}
		d.Strategy = cfg.Strategies[i].Name
	}

	if cfg.Contracts != nil {
		v, ok := promptFloat(in, fmt.Sprintf("  Target outcome-contract %% (0-100) [%.0f]: ", d.TargetOutcomePct), d.TargetOutcomePct)
		if !ok {
			return d, false
		}
		d.TargetOutcomePct = v
	}
	if cfg.Supply != nil {
		names := make([]string, len(cfg.Supply.Postures))
		for i, p := range cfg.Supply.Postures {
			names[i] = p.Name
		}
		v, ok := promptChoice(in, fmt.Sprintf("  Inventory posture (%s) [%s]: ", strings.Join(names, "/"), d.Posture), names, d.Posture)
		if !ok {
			return d, false
		}
		d.Posture = v
	}
	return d, true
}

// promptFloat reads one float, returning the fallback on blank input and
// ok=false when stdin is exhausted.
func promptFloat(in *bufio.Scanner, prompt string, fallback float64) (float64, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		return 0, false
	}
	text := strings.TrimSpace(in.Text())
	if text == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		fmt.Printf("  (not a number, using %.1f)\n", fallback)
		return fallback, true
	}
	return v, true
}

// promptChoice reads one name from a fixed set, case-insensitively.
func promptChoice(in *bufio.Scanner, prompt string, valid []string, fallback string) (string, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		return "", false
	}
	text := strings.TrimSpace(in.Text())
	if text == "" {
		return fallback, true
	}
	for _, v := range valid {
		if strings.EqualFold(v, text) {
			return v, true
		}
	}
	fmt.Printf("  (unknown choice, using %s)\n", fallback)
	return fallback, true
}

func promptYesNo(in *bufio.Scanner, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	if !in.Scan() {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(in.Text()))
	return text == "y" || text == "yes"
}
