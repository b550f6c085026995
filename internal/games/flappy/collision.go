package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

// World is what a collider looks at on one tick.
type World struct {
	Bird       *Bird
	BirdSprite *sprite.Sprite // current unrotated frame
	Pipes      []*Pipe
	PipeTop    *sprite.Mask // mask of the upper column (flipped sprite)
	PipeBottom *sprite.Mask
}

// Collider decides whether the bird has crashed.
type Collider interface {
	Collides(w World) bool
}

// Bounds are the vertical limits shared by all colliders.
type Bounds struct {
	GroundY      int
	Tolerance    int // the ground counts as hit this many pixels early
	SolidCeiling bool
}

// Hits reports whether r touches the ground or, when solid, the ceiling.
func (b Bounds) Hits(r core.Rect) bool {
	if r.Bottom() >= b.GroundY-b.Tolerance {
		return true
	}
	return b.SolidCeiling && r.Y <= 0
}

// RectCollider tests axis-aligned boxes. The bird box shrinks on all sides,
// pipe boxes only horizontally.
type RectCollider struct {
	Bounds
	BirdInset int
	PipeInset int
}

func (c RectCollider) Collides(w World) bool {
	r := w.Bird.Rect().Inset(c.BirdInset, c.BirdInset)
	if c.Hits(r) {
		return true
	}
	for _, p := range w.Pipes {
		if r.Intersects(p.TopRect().Inset(c.PipeInset, 0)) || r.Intersects(p.BottomRect().Inset(c.PipeInset, 0)) {
			return true
		}
	}
	return false
}

// MaskCollider tests the rotated bird's opaque pixels against the pipes'.
// The ground and ceiling still use the unrotated box.
type MaskCollider struct {
	Bounds
}

func (c MaskCollider) Collides(w World) bool {
	if c.Hits(w.Bird.Rect()) {
		return true
	}

	rotated, at := birdPose(w.Bird, w.BirdSprite)
	mask := rotated.Mask()
	for _, p := range w.Pipes {
		for _, part := range []struct {
			rect core.Rect
			mask *sprite.Mask
		}{
			{p.TopRect(), w.PipeTop},
			{p.BottomRect(), w.PipeBottom},
		} {
			if !at.Intersects(part.rect) {
				continue
			}
			if mask.Overlap(part.mask, part.rect.X-at.X, part.rect.Y-at.Y) {
				return true
			}
		}
	}
	return false
}

// birdPose rotates the frame and centers it on the bird's box.
func birdPose(b *Bird, frame *sprite.Sprite) (*sprite.Sprite, core.Rect) {
	rotated := frame.Rotate(b.Rotation)
	cx, cy := b.Rect().Center()
	return rotated, core.CenteredOn(cx, cy, rotated.Width(), rotated.Height())
}

// NewCollider builds the strategy named in cfg.
func NewCollider(cfg config.CollisionConfig, groundY int) (Collider, error) {
	bounds := Bounds{GroundY: groundY, Tolerance: cfg.GroundTolerance, SolidCeiling: cfg.SolidCeiling}
	switch cfg.Strategy {
	case config.CollisionRect:
		return RectCollider{Bounds: bounds, BirdInset: cfg.BirdInset, PipeInset: cfg.PipeInset}, nil
	case config.CollisionMask:
		return MaskCollider{Bounds: bounds}, nil
	default:
		return nil, fmt.Errorf("flappy: unknown collision strategy %q", cfg.Strategy)
	}
}
