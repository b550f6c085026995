package flappy

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const tick = 1.0 / 60

func newTestGame(t *testing.T, variant string, scores HighScoreStore) *Game {
	t.Helper()
	cfg, err := config.Default(variant)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := assets.Default()
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(variant, cfg, cat, scores)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", variant, err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// playUntil steps with no input until cond holds, failing after limit ticks.
func playUntil(t *testing.T, g *Game, limit int, cond func(core.StepResult) bool) []core.StepResult {
	t.Helper()
	var results []core.StepResult
	for i := 0; i < limit; i++ {
		r := g.Step(input(), tick)
		results = append(results, r)
		if cond(r) {
			return results
		}
	}
	t.Fatalf("condition not reached within %d ticks", limit)
	return nil
}

func TestGameStartsOnWelcome(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)

	for i := 0; i < 300; i++ {
		r := g.Step(input(), tick)
		if r.State.Phase != core.PhaseWelcome {
			t.Fatalf("phase = %s without input", r.State.Phase)
		}
		if len(r.Events) != 0 {
			t.Fatalf("welcome screen emitted %v", r.Events)
		}
	}
	s := g.Session()
	if len(s.Pipes) != 0 {
		t.Errorf("welcome screen spawned %d pipes", len(s.Pipes))
	}
	if s.Bird.X != 18 {
		t.Errorf("bird x = %f, expected a quarter of the width", s.Bird.X)
	}
}

func TestFlapStartsRound(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)

	r := g.Step(input(core.ActionJump), tick)
	if r.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %s after flap", r.State.Phase)
	}
	if !r.Has(core.EventSwoosh) || r.Has(core.EventWing) {
		t.Errorf("events = %v, expected swoosh only", r.Events)
	}
	if g.Session().Bird.VelocityY >= 0 {
		t.Error("first flap should send the bird up")
	}

	r = g.Step(input(core.ActionConfirm), tick)
	if !r.Has(core.EventWing) {
		t.Errorf("events = %v, expected wing", r.Events)
	}
}

func TestCrashEmitsHitThenDieOnce(t *testing.T) {
	for _, variant := range config.Variants() {
		t.Run(variant, func(t *testing.T) {
			g := newTestGame(t, variant, nil)
			g.Step(input(core.ActionJump), tick)

			results := playUntil(t, g, 600, func(r core.StepResult) bool { return r.State.GameOver })
			last := results[len(results)-1]
			if last.Count(core.EventHit) != 1 {
				t.Errorf("crash tick events = %v", last.Events)
			}
			if g.Session().Bird.Alive {
				t.Error("bird should be dead after the crash")
			}

			dies := 0
			for i := 0; i < 600; i++ {
				r := g.Step(input(), tick)
				dies += r.Count(core.EventDie)
				if r.Has(core.EventHit) {
					t.Fatal("hit emitted twice")
				}
			}
			if dies != 1 {
				t.Errorf("die emitted %d times, expected once", dies)
			}
			s := g.Session()
			if !s.Landed() || s.Bird.Rect().Bottom() != g.Playfield().GroundY {
				t.Errorf("dead bird should rest on the ground, rect %+v", s.Bird.Rect())
			}
		})
	}
}

func TestRestartAfterDelay(t *testing.T) {
	store := &fakeStore{best: 4}
	g := newTestGame(t, config.VariantClassic, store)
	g.Step(input(core.ActionJump), tick)
	playUntil(t, g, 600, func(r core.StepResult) bool { return r.State.GameOver })

	r := g.Step(input(core.ActionJump), tick)
	if r.State.Phase != core.PhaseGameOver {
		t.Fatal("restart should wait for the restart delay")
	}

	for i := 0; i < 60; i++ {
		g.Step(input(), tick)
	}
	r = g.Step(input(core.ActionRestart), tick)
	if r.State.Phase != core.PhaseWelcome {
		t.Fatalf("phase = %s after restart", r.State.Phase)
	}

	s := g.Session()
	if r.State.Score != 0 || len(s.Pipes) != 0 || !s.Bird.Alive || s.Bird.Frame != 0 {
		t.Error("restart should begin a fresh session")
	}
	if !s.Night {
		t.Error("background should alternate on restart")
	}
	if r.State.HighScore != 4 {
		t.Errorf("HighScore = %d, expected the stored best", r.State.HighScore)
	}
}

func TestPauseFreezesPlay(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)

	if r := g.Step(input(core.ActionPause), tick); r.State.Paused {
		t.Fatal("pause should be ignored on the welcome screen")
	}

	g.Step(input(core.ActionJump), tick)
	r := g.Step(input(core.ActionPause), tick)
	if !r.State.Paused {
		t.Fatal("expected paused")
	}

	s := g.Session()
	y, v, elapsed := s.Bird.Y, s.Bird.VelocityY, s.Elapsed
	for i := 0; i < 30; i++ {
		g.Step(input(core.ActionJump), tick)
	}
	if s.Bird.Y != y || s.Bird.VelocityY != v || s.Elapsed != elapsed {
		t.Error("paused game should not advance")
	}

	r = g.Step(input(core.ActionPause), tick)
	if r.State.Paused {
		t.Fatal("expected unpaused")
	}
	g.Step(input(), tick)
	if s.Bird.Y == y {
		t.Error("unpaused game should advance")
	}
}

func TestScoringThroughGame(t *testing.T) {
	store := &fakeStore{}
	g := newTestGame(t, config.VariantClassic, store)
	g.Step(input(core.ActionJump), tick)

	s := g.Session()
	_, cy := s.Bird.Rect().Center()
	s.Pipes = append(s.Pipes, &Pipe{
		X:          s.Bird.X - 7,
		GapCenterY: cy,
		GapSize:    14,
		Width:      6,
		Height:     40,
		Speed:      g.Config().Physics.BaseSpeed,
	})

	r := g.Step(input(), tick)
	if r.Count(core.EventPoint) != 1 || r.State.Score != 1 || r.State.HighScore != 1 {
		t.Fatalf("state = %+v events = %v", r.State, r.Events)
	}
	if store.best != 1 {
		t.Errorf("stored best = %d, expected 1", store.best)
	}

	r = g.Step(input(), tick)
	if r.Has(core.EventPoint) || r.State.Score != 1 {
		t.Error("a pipe must score only once")
	}
}

// passPipes scores n points by placing a cleared pipe behind the bird each tick.
func passPipes(g *Game, n int) {
	for i := 0; i < n; i++ {
		s := g.Session()
		_, cy := s.Bird.Rect().Center()
		s.Pipes = append(s.Pipes, &Pipe{
			X:          s.Bird.X - 7,
			GapCenterY: cy,
			GapSize:    14,
			Width:      6,
			Height:     40,
			Speed:      g.Config().Physics.BaseSpeed,
		})
		g.Step(input(), tick)
	}
}

func TestSharedStoreKeepsHighestBest(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), storage.DefaultHighScoreFile))
	if err := store.Save(5); err != nil {
		t.Fatal(err)
	}
	a := newTestGame(t, config.VariantClassic, store)
	b := newTestGame(t, config.VariantSmooth, store)

	a.Step(input(core.ActionJump), tick)
	passPipes(a, 10)
	if got := a.State().Score; got != 10 {
		t.Fatalf("game A score = %d, expected 10", got)
	}

	b.Step(input(core.ActionJump), tick)
	passPipes(b, 6)
	if got := b.State().HighScore; got != 6 {
		t.Fatalf("game B best = %d, expected 6", got)
	}

	if got := store.Load(); got != 10 {
		t.Errorf("stored best = %d, a lower score from another game overwrote it", got)
	}

	b.Reset(core.RuntimeConfig{Seed: 7})
	if got := b.State().HighScore; got != 10 {
		t.Errorf("HighScore = %d after reset, expected the shared best", got)
	}
}

func TestSpawnedPipeStartsOnSpawnLine(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	cfg := g.Config()
	spawnX := float64(g.Playfield().W + cfg.Obstacles.SpawnOffset)
	s := g.Session()

	// Hover around mid-height so the bird outlives the first spawn.
	hover := func() core.StepResult {
		if s.Bird.Y > float64(g.Playfield().GroundY)/2 {
			return g.Step(input(core.ActionJump), tick)
		}
		return g.Step(input(), tick)
	}

	g.Step(input(core.ActionJump), tick)
	var first *Pipe
	for i := 0; i < 600 && first == nil; i++ {
		hover()
		if len(s.Pipes) > 0 {
			first = s.Pipes[0]
		}
	}
	if first == nil {
		t.Fatal("no pipe spawned")
	}
	if first.X != spawnX {
		t.Fatalf("pipe X = %v on its spawn tick, expected %v", first.X, spawnX)
	}

	for k := 1; k <= 30; k++ {
		if r := hover(); r.State.GameOver {
			t.Fatal("bird crashed while tracking the pipe")
		}
		want := spawnX - cfg.Physics.BaseSpeed*tick*float64(k)
		if math.Abs(first.X-want) > 1e-9 {
			t.Fatalf("after %d ticks X = %v, expected %v", k, first.X, want)
		}
	}
}

func TestGroundScrollWraps(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	limit := -float64(g.sprites.base.Width() - g.Playfield().W)

	wrapped := false
	prev := g.Session().BaseX
	for i := 0; i < 300; i++ {
		g.Step(input(), tick)
		x := g.Session().BaseX
		if x <= limit || x > 0 {
			t.Fatalf("BaseX = %f outside (%f, 0]", x, limit)
		}
		if x > prev {
			wrapped = true
		}
		prev = x
	}
	if !wrapped {
		t.Error("ground should wrap around")
	}
}

func TestGameDeterminism(t *testing.T) {
	for _, variant := range config.Variants() {
		t.Run(variant, func(t *testing.T) {
			run := func() (core.GameState, []int, float64) {
				g := newTestGame(t, variant, nil)
				var state core.GameState
				for i := 0; i < 1500; i++ {
					var in core.InputFrame
					if i%17 == 0 {
						in = input(core.ActionJump)
					}
					state = g.Step(in, tick).State
				}
				var centers []int
				for _, p := range g.Session().Pipes {
					centers = append(centers, p.GapCenterY)
				}
				return state, centers, g.Session().Bird.Y
			}

			s1, c1, y1 := run()
			s2, c2, y2 := run()
			if s1 != s2 || y1 != y2 || len(c1) != len(c2) {
				t.Fatalf("runs diverged: %+v y=%f vs %+v y=%f", s1, y1, s2, y2)
			}
			for i := range c1 {
				if c1[i] != c2[i] {
					t.Fatalf("pipe %d gap differs: %d vs %d", i, c1[i], c2[i])
				}
			}
		})
	}
}

func TestResetRestoresWelcome(t *testing.T) {
	g := newTestGame(t, config.VariantRetro, nil)
	for i := 0; i < 200; i++ {
		g.Step(input(core.ActionJump), tick)
	}

	g.Reset(core.RuntimeConfig{Seed: 42})
	s := g.Session()
	if s.Phase != core.PhaseWelcome || len(s.Pipes) != 0 || s.Score.Current != 0 || s.Elapsed != 0 {
		t.Errorf("Reset() left session %+v", s)
	}
	if s.Night {
		t.Error("a hard reset starts in daylight")
	}
}

func TestNewRejectsImpossibleGap(t *testing.T) {
	cfg, err := config.Default(config.VariantClassic)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := assets.Default()
	if err != nil {
		t.Fatal(err)
	}

	cfg.Obstacles.GapSize = 40
	if _, err := New("classic", cfg, cat, nil); err == nil {
		t.Error("expected error for a gap taller than the playfield")
	}
	if _, err := New("classic", cfg, nil, nil); err == nil {
		t.Error("expected error without a catalog")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	// 72x44 pixels project to 72x22 cells, centered.
	cell := scr.GetCell(4, 1)
	if cell.Rune != sprite.HalfBlock || !cell.Fg.Set || !cell.Bg.Set {
		t.Errorf("top-left playfield cell = %+v", cell)
	}
	if scr.Get(0, 0) != ' ' || scr.Get(79, 23) != ' ' {
		t.Error("cells outside the playfield should stay blank")
	}

	g.Step(input(core.ActionJump), tick)
	g.Step(input(core.ActionPause), tick)
	scr.Clear()
	g.Render(scr)
	found := false
	for y := 0; y < scr.Height(); y++ {
		if strings.Contains(scr.Row(y), "PAUSED") {
			found = true
		}
	}
	if !found {
		t.Error("paused game should say so")
	}

	// Smaller than the playfield: clipped, no panic.
	g.Render(core.NewScreen(20, 5))
}

func screenHas(scr *core.Screen, text string) bool {
	for y := 0; y < scr.Height(); y++ {
		if strings.Contains(scr.Row(y), text) {
			return true
		}
	}
	return false
}

func TestRenderRestartPrompt(t *testing.T) {
	g := newTestGame(t, config.VariantClassic, nil)
	g.Step(input(core.ActionJump), tick)
	playUntil(t, g, 600, func(r core.StepResult) bool { return r.State.GameOver })

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if screenHas(scr, "RESTART") {
		t.Fatal("restart prompt shown before the restart delay")
	}

	for g.Session().DeadFor() < g.Config().Timing.RestartDelay {
		g.Step(input(), tick)
	}
	scr.Clear()
	g.Render(scr)
	if !screenHas(scr, "SPACE TO RESTART") {
		t.Error("expected a restart prompt once restart is allowed")
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, variant := range config.Variants() {
		g, err := registry.Create(variant, registry.Options{})
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", variant, err)
		}
		if g.ID() != variant || g.Title() == "" {
			t.Errorf("%s: ID=%q Title=%q", variant, g.ID(), g.Title())
		}
		if g.State().Phase != core.PhaseWelcome {
			t.Errorf("%s: new game should be on the welcome screen", variant)
		}
	}

	bad, _ := config.Default(config.VariantClassic)
	bad.Physics.Gravity = 0
	if _, err := registry.Create(config.VariantClassic, registry.Options{Config: &bad}); err == nil {
		t.Error("expected error for invalid config")
	}
}
