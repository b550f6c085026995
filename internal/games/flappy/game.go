// Package flappy implements the Flappy Bird simulation: bird physics, pipe
// spawning, collision detection, scoring and the round state machine.
// It has no terminal or audio dependencies; the platform feeds it input and
// elapsed time and consumes the events it reports.
package flappy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

// HighScoreStore persists the best score. Save must never lower the stored
// value, since several games may share one store. Save errors are ignored.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}

// Playfield is the simulation area in pixels, taken from the sprites.
type Playfield struct {
	W, H    int
	GroundY int // first row of the ground strip
}

// Game implements registry.Game for one variant.
type Game struct {
	id       string
	cfg      config.FlappyConfig
	sprites  *spriteSet
	field    Playfield
	flight   Physics
	death    Physics
	collider Collider
	spawner  *PipeSpawner
	score    *ScoreTracker
	scores   HighScoreStore
	rng      *rand.Rand
	runtime  core.RuntimeConfig
	session  *Session
	canvas   *sprite.Canvas
}

// New builds a game from a validated configuration and a sprite catalog.
// scores may be nil, in which case the best score lives only as long as the game.
func New(id string, cfg config.FlappyConfig, cat *assets.Catalog, scores HighScoreStore) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sprites, err := loadSprites(cat)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	field := Playfield{
		W:       sprites.backgrounds[0].Width(),
		H:       sprites.backgrounds[0].Height(),
		GroundY: sprites.backgrounds[0].Height() - sprites.base.Height(),
	}
	if field.GroundY <= 0 {
		return nil, fmt.Errorf("flappy: ground sprite is taller than the background")
	}

	rotation, err := NewRotationPolicy(cfg.Rotation)
	if err != nil {
		return nil, err
	}
	collider, err := NewCollider(cfg.Collision, field.GroundY)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(1))
	pipe := sprites.pipes[assets.PipeGreen].bottom
	spawner, err := NewPipeSpawner(SpawnerConfig{
		Interval:     cfg.Obstacles.SpawnInterval,
		SpawnX:       float64(field.W + cfg.Obstacles.SpawnOffset),
		BaseGap:      cfg.Obstacles.GapSize,
		TopMargin:    cfg.Obstacles.TopMargin,
		BottomMargin: cfg.Obstacles.BottomMargin,
		GroundY:      field.GroundY,
		PipeWidth:    pipe.Width(),
		PipeHeight:   pipe.Height(),
		Speed:        cfg.Physics.BaseSpeed,
		Bias:         cfg.Obstacles.Bias,
		Difficulty:   cfg.Difficulty,
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", cfg.Name, err)
	}

	best := 0
	save := func(int) {}
	if scores != nil {
		best = scores.Load()
		save = func(n int) { _ = scores.Save(n) }
	}

	flight := Physics{
		Gravity:      cfg.Physics.Gravity,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
		Rotation:     rotation,
		Wobble:       Wobble{Amplitude: cfg.Player.Wobble.Amplitude, Speed: cfg.Player.Wobble.Speed},
	}
	death := flight
	death.Gravity *= cfg.Physics.DeathGravityScale

	g := &Game{
		id:       id,
		cfg:      cfg,
		sprites:  sprites,
		field:    field,
		flight:   flight,
		death:    death,
		collider: collider,
		spawner:  spawner,
		score:    NewScoreTracker(best, save),
		scores:   scores,
		rng:      rng,
		canvas:   sprite.NewCanvas(field.W, field.H),
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the variant name.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.cfg.Title
}

// Config returns the variant configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Playfield returns the simulation area.
func (g *Game) Playfield() Playfield {
	return g.field
}

// Session returns the current round. Callers must not keep it across Step.
func (g *Game) Session() *Session {
	return g.session
}

// Reset reseeds the random source and starts a fresh round on the welcome
// screen. The best score is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.rng.Seed(cfg.Seed)
	g.session = nil
	g.newSession()
}

// newSession replaces the round. The background alternates between rounds.
// The best score is reloaded since other games may share the store.
func (g *Game) newSession() {
	g.score.Reset()
	if g.scores != nil {
		g.score.Best = max(g.score.Best, g.scores.Load())
	}
	g.spawner.Reset()

	s := &Session{
		Phase:     core.PhaseWelcome,
		Score:     g.score,
		Night:     g.session != nil && !g.session.Night,
		BirdColor: assets.BirdColors[g.rng.Intn(len(assets.BirdColors))],
		PipeColor: assets.PipeColors[g.rng.Intn(len(assets.PipeColors))],
	}

	frame := g.sprites.birds[s.BirdColor][0]
	x := math.Round(g.cfg.Player.XRatio * float64(g.field.W))
	y := float64((g.field.GroundY - frame.Height()) / 2)
	s.Bird = NewBird(x, y, frame.Width(), frame.Height())

	g.session = s
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	s := g.session

	if in.Has(core.ActionPause) && s.Phase == core.PhasePlaying {
		s.Paused = !s.Paused
	}
	if s.Paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	s.Elapsed += dt
	g.scrollGround(dt)

	switch s.Phase {
	case core.PhaseWelcome:
		if in.Flap() {
			s.Phase = core.PhasePlaying
			s.Bird.ApplyImpulse(g.cfg.Physics.JumpImpulse)
			events = append(events, core.EventSwoosh)
			events = g.stepPlaying(dt, false, events)
			break
		}
		s.Bird.Integrate(dt, g.flight, ModeIdle)
		s.Bird.AdvanceAnimation(dt, g.cfg.Player.AnimationInterval)

	case core.PhasePlaying:
		events = g.stepPlaying(dt, in.Flap(), events)

	case core.PhaseGameOver:
		events = g.stepGameOver(dt, in, events)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) stepPlaying(dt float64, flap bool, events []core.Event) []core.Event {
	s := g.session
	b := s.Bird

	if flap {
		b.ApplyImpulse(g.cfg.Physics.JumpImpulse)
		events = append(events, core.EventWing)
	}
	b.Integrate(dt, g.flight, ModeFlight)
	b.AdvanceAnimation(dt, g.cfg.Player.AnimationInterval)

	// A pipe spawned this tick starts exactly on the spawn line.
	AdvancePipes(s.Pipes, dt)
	if p, ok := g.spawner.Update(dt, s.Score.Current, s.Elapsed); ok {
		s.Pipes = append(s.Pipes, p)
	}
	s.Pipes = PrunePipes(s.Pipes, g.cfg.Obstacles.PruneMargin)

	crashed := g.collider.Collides(g.world())

	for range s.Score.OnTick(b, s.Pipes) {
		events = append(events, core.EventPoint)
	}

	if crashed {
		s.kill()
		events = append(events, core.EventHit)
	}
	return events
}

// stepGameOver lets the dead bird fall to the ground and waits for a restart.
func (g *Game) stepGameOver(dt float64, in core.InputFrame, events []core.Event) []core.Event {
	s := g.session
	b := s.Bird
	s.deadFor += dt

	if !s.landed {
		b.Integrate(dt, g.death, ModeFlight)
		if floor := float64(g.field.GroundY - b.H); b.Y >= floor {
			b.Y = floor
			b.VelocityY = 0
			s.landed = true
			events = append(events, core.EventDie)
		}
	}
	b.AdvanceAnimation(dt, g.cfg.Player.AnimationInterval)

	if s.deadFor >= g.cfg.Timing.RestartDelay && (in.Flap() || in.Has(core.ActionRestart)) {
		g.newSession()
	}
	return events
}

// scrollGround moves the base strip with the pipes and wraps it once the
// right end would come into view.
func (g *Game) scrollGround(dt float64) {
	s := g.session
	s.BaseX -= g.cfg.Physics.BaseSpeed * dt
	if wrap := float64(g.sprites.base.Width() - g.field.W); s.BaseX <= -wrap {
		s.BaseX = 0
	}
}

func (g *Game) world() World {
	s := g.session
	skin := g.sprites.pipes[s.PipeColor]
	return World{
		Bird:       s.Bird,
		BirdSprite: g.birdFrame(),
		Pipes:      s.Pipes,
		PipeTop:    skin.topMask,
		PipeBottom: skin.bottomMask,
	}
}

func (g *Game) birdFrame() *sprite.Sprite {
	s := g.session
	return g.sprites.birds[s.BirdColor][s.Bird.Frame]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Phase:     s.Phase,
		Score:     s.Score.Current,
		HighScore: s.Score.Best,
		GameOver:  s.Phase == core.PhaseGameOver,
		Paused:    s.Paused,
	}
}
