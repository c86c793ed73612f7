// Package sim implements the quarterly turn engine for a business-strategy
// simulator: allocate a budget, pick a strategic move, and watch revenue
// streams, org capabilities, and company valuation respond.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - state.go: State and its invariants (metric clamps, mix sum)
//   - engine.go: ApplyTurn, the ordered step pipeline that is the whole game
//   - config.go: the parameter record that makes one engine play two games
//
// # Variants
//
// Two built-in parameter records live in variants.go: Apex (4-stream
// transformation model with gated launches, cannibalization, and a
// compounding Cloud stream) and Orion (contract-mix model with a supply
// chain: breakdowns, inventory postures, stockout draws, and demand
// functions). Only the genuinely branching subsystems (contracts.go,
// supply.go, demand.go) check the variant sections; everything else is data.
//
// # Determinism
//
// All randomness flows through PartitionedRNG (rng.go): per-subsystem
// seeded streams so that market shock draws never perturb stockout draws.
// Two sessions with the same seed and config produce identical trajectories.
//
// # Sessions
//
// The engine applies turns and nothing else. Session (session.go) owns the
// lifecycle: it refuses turns once the game is bankrupt or complete and
// handles restarts. The CLI in cmd/ is a thin read-eval-print shell over it.
package sim
