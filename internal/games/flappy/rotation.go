package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RotationPolicy maps vertical velocity to the bird's tilt.
type RotationPolicy interface {
	// Next returns the rotation after dt seconds at velocity v.
	Next(rotation, velocity, dt float64) float64
}

// NewRotationPolicy builds the policy named in cfg.
func NewRotationPolicy(cfg config.RotationConfig) (RotationPolicy, error) {
	switch cfg.Policy {
	case config.RotationLinear:
		return LinearRotation{Response: cfg.Response, Scale: cfg.Scale, Min: cfg.Min, Max: cfg.Max}, nil
	case config.RotationSlope:
		return SlopeRotation{
			Response:  cfg.Response,
			FallScale: cfg.FallScale,
			FallMax:   cfg.FallMax,
			RiseScale: cfg.RiseScale,
			RiseMax:   cfg.RiseMax,
		}, nil
	case config.RotationSnap:
		return SnapRotation{Up: cfg.Up, Floor: cfg.Floor, DecayRate: cfg.DecayRate}, nil
	default:
		return nil, fmt.Errorf("flappy: unknown rotation policy %q", cfg.Policy)
	}
}

// LinearRotation eases toward Scale*v clamped to [Min, Max].
type LinearRotation struct {
	Response float64
	Scale    float64
	Min, Max float64
}

func (r LinearRotation) Next(rotation, v, dt float64) float64 {
	target := core.ClampF(r.Scale*v, r.Min, r.Max)
	return ease(rotation, target, r.Response, dt)
}

// SlopeRotation uses separate gains for rising and falling, so the dive can
// be steeper than the climb.
type SlopeRotation struct {
	Response  float64
	FallScale float64
	FallMax   float64
	RiseScale float64
	RiseMax   float64
}

func (r SlopeRotation) Next(rotation, v, dt float64) float64 {
	var target float64
	if v > 0 {
		target = -math.Min(r.FallMax, v*r.FallScale)
	} else {
		target = math.Min(r.RiseMax, -v*r.RiseScale)
	}
	return ease(rotation, target, r.Response, dt)
}

// SnapRotation points the nose to Up while rising and otherwise turns down
// at DecayRate until Floor.
type SnapRotation struct {
	Up        float64
	Floor     float64
	DecayRate float64 // deg/s
}

func (r SnapRotation) Next(rotation, v, dt float64) float64 {
	if v < 0 {
		return r.Up
	}
	return math.Max(r.Floor, rotation-r.DecayRate*dt)
}

// ease moves current toward target by response*dt of the remaining distance,
// never overshooting.
func ease(current, target, response, dt float64) float64 {
	return current + (target-current)*math.Min(1, response*dt)
}
