package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Session is everything that belongs to one round, from the welcome screen
// to the restart after a crash. The Game replaces it wholesale on reset.
type Session struct {
	Phase   core.Phase
	Bird    *Bird
	Pipes   []*Pipe // oldest first
	Score   *ScoreTracker
	Paused  bool
	Elapsed float64 // seconds since the session began, pauses excluded
	BaseX   float64 // ground scroll offset, in (-(baseW-width), 0]

	Night     bool
	BirdColor assets.BirdColor
	PipeColor assets.PipeColor

	deadFor float64
	landed  bool
}

// DeadFor returns how long the bird has been dead.
func (s *Session) DeadFor() float64 { return s.deadFor }

// Landed reports whether the dead bird has reached the ground.
func (s *Session) Landed() bool { return s.landed }

// kill ends the flight.
func (s *Session) kill() {
	s.Phase = core.PhaseGameOver
	s.Bird.Alive = false
	s.Paused = false
	s.deadFor = 0
	s.landed = false
}
