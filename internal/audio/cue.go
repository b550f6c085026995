// Package audio plays short sound cues for game events.
// Audio is optional: when the output device cannot be opened the game keeps
// running with a silent player.
package audio

import "github.com/vovakirdan/tui-flappy/internal/core"

// Cue names a sound effect.
type Cue string

const (
	CueWing   Cue = "wing"
	CuePoint  Cue = "point"
	CueDie    Cue = "die"
	CueHit    Cue = "hit"
	CueSwoosh Cue = "swoosh"
)

// Cues lists every known cue.
func Cues() []Cue {
	return []Cue{CueWing, CuePoint, CueDie, CueHit, CueSwoosh}
}

// CueFor maps a simulation event to its cue.
func CueFor(e core.Event) (Cue, bool) {
	switch e {
	case core.EventWing:
		return CueWing, true
	case core.EventPoint:
		return CuePoint, true
	case core.EventDie:
		return CueDie, true
	case core.EventHit:
		return CueHit, true
	case core.EventSwoosh:
		return CueSwoosh, true
	default:
		return "", false
	}
}

// Player plays cues. Implementations must never block the game loop and
// never fail: missing audio is silence.
type Player interface {
	Play(c Cue)
	SetMuted(muted bool)
	Muted() bool
	Close()
}

// PlayEvents plays the cue of every event in order.
func PlayEvents(p Player, events []core.Event) {
	for _, e := range events {
		if c, ok := CueFor(e); ok {
			p.Play(c)
		}
	}
}

// Nop is a Player that records nothing and plays nothing.
type Nop struct {
	muted bool
}

func (n *Nop) Play(Cue)            {}
func (n *Nop) SetMuted(muted bool) { n.muted = muted }
func (n *Nop) Muted() bool         { return n.muted }
func (n *Nop) Close()              {}
