// Session owns one playthrough: the state, the engine, and the seeded RNG.
// It enforces the terminal-state contract the engine deliberately doesn't:
// once the game is bankrupt or complete, no further turns are accepted.

package sim

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSessionOver is returned by ExecuteQuarter once the game has reached a
// terminal state. The caller must restart to play again.
var ErrSessionOver = errors.New("session has ended; no further turns accepted")

// Session is a single-player playthrough. Not safe for concurrent use; the
// game is one player, one state, one decision per turn.
type Session struct {
	ID    uuid.UUID
	State *State

	engine *Engine
	rng    *PartitionedRNG
	seed   int64
}

// NewSession validates the config and creates a fresh session seeded for
// reproducible play.
func NewSession(cfg *Config, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:     uuid.New(),
		State:  NewState(cfg),
		engine: NewEngine(cfg),
		rng:    NewPartitionedRNG(NewSimulationKey(seed)),
		seed:   seed,
	}
	logrus.Debugf("session %s: variant=%s seed=%d", s.ID, cfg.Variant, seed)
	return s, nil
}

// Config returns the variant configuration this session runs under.
func (s *Session) Config() *Config {
	return s.engine.Config()
}

// Status reports whether the session is still accepting turns.
func (s *Session) Status() Status {
	return s.State.Status(s.engine.Config())
}

// ExecuteQuarter applies one turn, or returns ErrSessionOver if the game has
// already ended. The turn itself cannot fail.
func (s *Session) ExecuteQuarter(d Decision) ([]Event, error) {
	if s.Status() != StatusActive {
		return nil, ErrSessionOver
	}
	return s.engine.ApplyTurn(s.State, d, s.rng), nil
}

// FinalScore returns the valuation at the last computed state and its grade.
// Meaningful once Status is Complete; callable at any time for display.
func (s *Session) FinalScore() (float64, Tier) {
	cfg := s.engine.Config()
	val := cfg.Valuation(s.State.Revenue)
	return val, cfg.GradeFinal(val)
}

// Restart discards the state and starts over with the same config and seed
// under a fresh session ID. Old state is never migrated.
func (s *Session) Restart() {
	s.ID = uuid.New()
	s.State = NewState(s.engine.Config())
	s.rng = NewPartitionedRNG(NewSimulationKey(s.seed))
}
