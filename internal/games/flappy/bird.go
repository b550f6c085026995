package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Mode selects how Integrate moves the bird.
type Mode int

const (
	ModeFlight Mode = iota // gravity, velocity clamp and rotation
	ModeIdle               // welcome-screen bob around the anchor
)

// Physics is the per-tick motion model applied to a bird.
type Physics struct {
	Gravity      float64
	MaxFallSpeed float64
	Rotation     RotationPolicy
	Wobble       Wobble
}

// Wobble describes the idle bob.
type Wobble struct {
	Amplitude float64
	Speed     float64 // rad/s
}

// Bird is the player. Y grows downward; X, Y is the top-left corner.
type Bird struct {
	X, Y      float64
	W, H      int
	VelocityY float64 // px/s, positive is down
	Rotation  float64 // degrees, positive is nose up
	Frame     int     // wing phase, see assets.Bird
	Alive     bool

	animTimer   float64
	anchorY     float64
	wobblePhase float64
}

// NewBird places a live bird at rest with its top-left at (x, y).
func NewBird(x, y float64, w, h int) *Bird {
	return &Bird{X: x, Y: y, W: w, H: h, Alive: true, anchorY: y}
}

// Integrate advances the bird by dt seconds.
func (b *Bird) Integrate(dt float64, p Physics, mode Mode) {
	switch mode {
	case ModeIdle:
		b.wobblePhase += p.Wobble.Speed * dt
		b.Y = b.anchorY + p.Wobble.Amplitude*math.Sin(b.wobblePhase)
		b.VelocityY = 0
		b.Rotation = 0
	default:
		b.VelocityY = math.Min(b.VelocityY+p.Gravity*dt, p.MaxFallSpeed)
		b.Y += b.VelocityY * dt
		if p.Rotation != nil {
			b.Rotation = p.Rotation.Next(b.Rotation, b.VelocityY, dt)
		}
	}
}

// ApplyImpulse sets the vertical velocity to -magnitude. Dead birds ignore it.
func (b *Bird) ApplyImpulse(magnitude float64) {
	if !b.Alive {
		return
	}
	b.VelocityY = -magnitude
}

// AdvanceAnimation steps the wing frame once per interval. A live bird cycles
// through all flap phases; a dead one flutters between the first two.
func (b *Bird) AdvanceAnimation(dt, interval float64) {
	b.animTimer += dt
	if b.animTimer < interval {
		return
	}
	b.animTimer = 0

	frames := assets.FlapPhases
	if !b.Alive {
		frames = 2
	}
	b.Frame = (b.Frame + 1) % frames
}

// Rect returns the bird's bounding box snapped to whole pixels.
func (b *Bird) Rect() core.Rect {
	return core.NewRect(pixel(b.X), pixel(b.Y), b.W, b.H)
}

// Bottom returns the unrounded lower edge.
func (b *Bird) Bottom() float64 {
	return b.Y + float64(b.H)
}

func pixel(v float64) int {
	return int(math.Floor(v + 0.5))
}
