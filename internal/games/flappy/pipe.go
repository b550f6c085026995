package flappy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is one obstacle: a top and a bottom column around a gap.
type Pipe struct {
	X          float64 // left edge
	GapCenterY int
	GapSize    int
	Width      int
	Height     int // height of each column sprite
	Speed      float64
	Passed     bool
}

// GapTop is the first open row.
func (p *Pipe) GapTop() int { return p.GapCenterY - p.GapSize/2 }

// GapBottom is the first solid row of the bottom column.
func (p *Pipe) GapBottom() int { return p.GapTop() + p.GapSize }

// TopRect is the upper column, ending at the gap.
func (p *Pipe) TopRect() core.Rect {
	return core.NewRect(pixel(p.X), p.GapTop()-p.Height, p.Width, p.Height)
}

// BottomRect is the lower column, starting at the gap.
func (p *Pipe) BottomRect() core.Rect {
	return core.NewRect(pixel(p.X), p.GapBottom(), p.Width, p.Height)
}

// Right returns the unrounded right edge.
func (p *Pipe) Right() float64 { return p.X + float64(p.Width) }

// Advance scrolls the pipe left.
func (p *Pipe) Advance(dt float64) { p.X -= p.Speed * dt }

// AdvancePipes scrolls every pipe.
func AdvancePipes(pipes []*Pipe, dt float64) {
	for _, p := range pipes {
		p.Advance(dt)
	}
}

// PrunePipes drops pipes whose right edge is more than margin left of x=0.
func PrunePipes(pipes []*Pipe, margin int) []*Pipe {
	return slices.DeleteFunc(pipes, func(p *Pipe) bool {
		return p.Right() < float64(-margin)
	})
}

// SpawnerConfig holds everything a PipeSpawner needs.
type SpawnerConfig struct {
	Interval     float64
	SpawnX       float64
	BaseGap      int
	TopMargin    int
	BottomMargin int
	GroundY      int
	PipeWidth    int
	PipeHeight   int
	Speed        float64
	Bias         config.BiasConfig
	Difficulty   config.DifficultyConfig
}

// PipeSpawner emits pipes on a fixed timer with random gap centers.
type PipeSpawner struct {
	cfg        SpawnerConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	timer      float64
}

// NewPipeSpawner validates cfg against the playfield and creates a spawner.
func NewPipeSpawner(cfg SpawnerConfig, rng *rand.Rand) (*PipeSpawner, error) {
	s := &PipeSpawner{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rng,
	}

	var errs []error
	if cfg.Interval <= 0 {
		errs = append(errs, errors.New("spawn interval must be positive"))
	}
	if cfg.PipeHeight < cfg.GroundY {
		errs = append(errs, fmt.Errorf("pipe height %d is shorter than the playfield %d", cfg.PipeHeight, cfg.GroundY))
	}
	for _, gap := range []int{cfg.BaseGap, s.GapFor(math.MaxInt32)} {
		if lo, hi := s.CenterBounds(gap); lo > hi {
			errs = append(errs, fmt.Errorf("gap %d does not fit between the margins", gap))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("flappy: pipe spawner: %w", errors.Join(errs...))
	}
	return s, nil
}

// Update advances the spawn timer and returns a new pipe when it fires.
func (s *PipeSpawner) Update(dt float64, score int, elapsed float64) (*Pipe, bool) {
	s.timer += dt
	if s.timer < s.cfg.Interval {
		return nil, false
	}
	s.timer = 0
	return s.Spawn(score, elapsed), true
}

// GapFor returns the gap size for the given score.
func (s *PipeSpawner) GapFor(score int) int {
	return s.difficulty.GapSize(s.cfg.BaseGap, score)
}

// CenterBounds returns the inclusive range of legal gap centers.
func (s *PipeSpawner) CenterBounds(gap int) (lo, hi int) {
	lo = s.cfg.TopMargin + gap/2
	hi = s.cfg.GroundY - s.cfg.BottomMargin - (gap - gap/2)
	return lo, hi
}

// Spawn creates a pipe at the spawn line. The center is uniform in the legal
// range, shifted by the bias wave and clamped back into range.
func (s *PipeSpawner) Spawn(score int, elapsed float64) *Pipe {
	gap := s.GapFor(score)
	lo, hi := s.CenterBounds(gap)

	center := lo + s.rng.Intn(hi-lo+1)
	if s.cfg.Bias.Amplitude != 0 {
		center += int(math.Round(s.cfg.Bias.Amplitude * math.Sin(elapsed*s.cfg.Bias.Frequency)))
		center = core.Clamp(center, lo, hi)
	}

	return &Pipe{
		X:          s.cfg.SpawnX,
		GapCenterY: center,
		GapSize:    gap,
		Width:      s.cfg.PipeWidth,
		Height:     s.cfg.PipeHeight,
		Speed:      s.cfg.Speed,
	}
}

// Reset restarts the spawn timer.
func (s *PipeSpawner) Reset() {
	s.timer = 0
}
