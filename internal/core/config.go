package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the top-level mode of a game session.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "WELCOME"
	case PhasePlaying:
		return "PLAYING"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     Phase // Current session phase
	Score     int   // Current score
	HighScore int   // Best score known to the game
	GameOver  bool  // Whether the game has ended
	Paused    bool  // Whether the game is paused
}

// Event is a side-effect notification emitted by a simulation tick.
// The platform maps events to sounds; games never play audio themselves.
type Event string

// Events emitted by the flappy simulation. The names double as audio cue names.
const (
	EventWing   Event = "wing"   // Flap while playing
	EventPoint  Event = "point"  // One obstacle cleared
	EventHit    Event = "hit"    // Collision detected
	EventDie    Event = "die"    // Dead bird reached the ground
	EventSwoosh Event = "swoosh" // Round started
)

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// Count returns how many times the given event occurred during the tick.
func (r StepResult) Count(e Event) int {
	n := 0
	for _, ev := range r.Events {
		if ev == e {
			n++
		}
	}
	return n
}
