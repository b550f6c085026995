// Package config provides YAML-based variant configuration loading and
// difficulty management for the flappy simulation.
//
// All distances are playfield pixels and all times are seconds.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tuning for one game variant.
type FlappyConfig struct {
	Name       string           `yaml:"name"`
	Title      string           `yaml:"title"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Rotation   RotationConfig   `yaml:"rotation"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Collision  CollisionConfig  `yaml:"collision"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	HighScore  HighScoreConfig  `yaml:"high_score"`
}

// FlappyPhysics defines the bird's vertical motion and the scroll speed.
type FlappyPhysics struct {
	Gravity           float64 `yaml:"gravity"`             // px/s²
	JumpImpulse       float64 `yaml:"jump_impulse"`        // upward speed set by a flap, px/s
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`      // terminal velocity, px/s
	BaseSpeed         float64 `yaml:"base_speed"`          // pipe and ground scroll speed, px/s
	DeathGravityScale float64 `yaml:"death_gravity_scale"` // gravity multiplier after a crash
}

// Rotation policy names.
const (
	RotationLinear = "linear"
	RotationSlope  = "slope"
	RotationSnap   = "snap"
)

// RotationConfig selects and tunes how the bird's tilt follows its velocity.
// Angles are degrees, positive is nose up.
type RotationConfig struct {
	Policy   string  `yaml:"policy"`
	Response float64 `yaml:"response"` // easing rate for linear and slope, 1/s

	// linear
	Scale float64 `yaml:"scale"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`

	// slope
	FallScale float64 `yaml:"fall_scale"`
	FallMax   float64 `yaml:"fall_max"`
	RiseScale float64 `yaml:"rise_scale"`
	RiseMax   float64 `yaml:"rise_max"`

	// snap
	Up        float64 `yaml:"up"`
	Floor     float64 `yaml:"floor"`
	DecayRate float64 `yaml:"decay_rate"` // deg/s
}

// FlappyObstacles defines pipe spawning and placement.
type FlappyObstacles struct {
	SpawnInterval float64    `yaml:"spawn_interval"`
	SpawnOffset   int        `yaml:"spawn_offset"` // spawn x beyond the right edge
	GapSize       int        `yaml:"gap_size"`     // base gap before difficulty
	TopMargin     int        `yaml:"top_margin"`
	BottomMargin  int        `yaml:"bottom_margin"` // measured up from the ground
	PruneMargin   int        `yaml:"prune_margin"`
	Bias          BiasConfig `yaml:"bias"`
}

// BiasConfig adds a sinusoidal offset to each spawned gap center.
type BiasConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"` // rad/s of session time
}

// FlappyPlayer defines the bird's placement and idle animation.
type FlappyPlayer struct {
	XRatio            float64      `yaml:"x_ratio"` // bird x as a fraction of playfield width
	Wobble            WobbleConfig `yaml:"wobble"`
	AnimationInterval float64      `yaml:"animation_interval"`
}

// WobbleConfig is the idle bob on the welcome screen.
type WobbleConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Speed     float64 `yaml:"speed"` // rad/s
}

// Collision strategy names.
const (
	CollisionRect = "rect"
	CollisionMask = "mask"
)

// CollisionConfig selects and tunes the collision detector.
type CollisionConfig struct {
	Strategy        string `yaml:"strategy"`
	BirdInset       int    `yaml:"bird_inset"`
	PipeInset       int    `yaml:"pipe_inset"`
	GroundTolerance int    `yaml:"ground_tolerance"`
	SolidCeiling    bool   `yaml:"solid_ceiling"`
}

// TimingConfig holds session timers and the platform frame clamp.
type TimingConfig struct {
	RestartDelay float64 `yaml:"restart_delay"`
	MaxFrameTime float64 `yaml:"max_frame_time"`
}

// HighScoreConfig controls persistence of the best score.
type HighScoreConfig struct {
	Persist bool   `yaml:"persist"`
	File    string `yaml:"file"`
}

// Validate reports the first inconsistency in the configuration.
// Playfield-dependent checks (gap bounds against the ground) happen when a
// game is built, since the playfield size comes from the sprite catalog.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive")
	check(c.Physics.JumpImpulse > 0, "physics.jump_impulse must be positive")
	check(c.Physics.MaxFallSpeed > 0, "physics.max_fall_speed must be positive")
	check(c.Physics.BaseSpeed > 0, "physics.base_speed must be positive")
	check(c.Physics.DeathGravityScale > 0, "physics.death_gravity_scale must be positive")

	switch c.Rotation.Policy {
	case RotationLinear, RotationSlope:
		check(c.Rotation.Response > 0, "rotation.response must be positive")
	case RotationSnap:
		check(c.Rotation.DecayRate > 0, "rotation.decay_rate must be positive")
	default:
		check(false, "rotation.policy %q is not one of linear, slope, snap", c.Rotation.Policy)
	}

	check(c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive")
	check(c.Obstacles.GapSize > 0, "obstacles.gap_size must be positive")
	check(c.Obstacles.TopMargin >= 0 && c.Obstacles.BottomMargin >= 0, "obstacles margins must not be negative")
	check(c.Obstacles.PruneMargin >= 0, "obstacles.prune_margin must not be negative")

	check(c.Player.XRatio > 0 && c.Player.XRatio < 1, "player.x_ratio must be in (0, 1)")
	check(c.Player.AnimationInterval > 0, "player.animation_interval must be positive")

	switch c.Collision.Strategy {
	case CollisionRect, CollisionMask:
	default:
		check(false, "collision.strategy %q is not one of rect, mask", c.Collision.Strategy)
	}
	check(c.Collision.BirdInset >= 0 && c.Collision.PipeInset >= 0, "collision insets must not be negative")
	check(c.Collision.GroundTolerance >= 0, "collision.ground_tolerance must not be negative")

	if c.Difficulty.Enabled {
		check(c.Difficulty.MinGap > 0, "difficulty.min_gap must be positive")
		check(c.Difficulty.MinGap <= c.Obstacles.GapSize, "difficulty.min_gap must not exceed obstacles.gap_size")
		check(c.Difficulty.Every > 0, "difficulty.every must be positive")
		check(c.Difficulty.Step >= 0, "difficulty.step must not be negative")
	}

	check(c.Timing.RestartDelay >= 0, "timing.restart_delay must not be negative")
	check(c.Timing.MaxFrameTime > 0, "timing.max_frame_time must be positive")
	check(!c.HighScore.Persist || c.HighScore.File != "", "high_score.file is required when persisting")

	if len(errs) > 0 {
		return fmt.Errorf("config %s: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

// MinGap returns the narrowest gap the configuration can ever produce.
func (c FlappyConfig) MinGap() int {
	if c.Difficulty.Enabled {
		return c.Difficulty.MinGap
	}
	return c.Obstacles.GapSize
}

// DifficultyConfig describes the step-function gap shrink.
// gap = max(min_gap, gap_size - floor(score/every)*step)
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
	MinGap  int  `yaml:"min_gap"`
	Every   int  `yaml:"every"`
	Step    int  `yaml:"step"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the variant's own tuning untouched.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Obstacles.GapSize += 2
		if cfg.Difficulty.Enabled {
			cfg.Difficulty.MinGap += 2
			cfg.Difficulty.Every *= 2
		}
	case DifficultyHard:
		cfg.Physics.BaseSpeed *= 1.2
		if !cfg.Difficulty.Enabled {
			cfg.Difficulty = DifficultyConfig{
				Enabled: true,
				MinGap:  cfg.Obstacles.GapSize,
				Every:   1,
				Step:    0,
			}
		}
		cfg.Difficulty.MinGap = max(cfg.Difficulty.MinGap-2, 1)
		cfg.Difficulty.Every = max(cfg.Difficulty.Every/2, 1)
		cfg.Difficulty.Step = max(cfg.Difficulty.Step, 1)
	}
}
