package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// app holds the collaborators shared by every game a command starts.
type app struct {
	logger  *log.Logger
	logFile io.Closer
	history *storage.Store
	prefs   *storage.Prefs
	audio   audio.Player
	sprites *assets.Catalog // nil uses the embedded sheet

	mu     sync.Mutex
	scores map[string]storage.HighScoreStore
}

// appOptions choose which collaborators a command needs.
type appOptions struct {
	logTo     io.Writer // nil logs to the --log file
	withAudio bool
	soundDir  string
	assetPath string
}

// newApp opens logging, history, preferences and audio. Only a broken sprite
// sheet is fatal; everything else degrades to a silent default.
func newApp(opts appOptions) (*app, error) {
	a := &app{scores: make(map[string]storage.HighScoreStore)}

	w := opts.logTo
	if w == nil {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			// Nowhere to put it; the alt screen would swallow stderr output.
			w = io.Discard
		} else {
			w, a.logFile = f, f
		}
	}
	a.logger = newLogger(w)

	if opts.assetPath != "" {
		cat, err := assets.LoadFile(opts.assetPath)
		if err != nil {
			a.close()
			return nil, err
		}
		a.sprites = cat
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		a.logger.Warn("run history disabled", "err", err)
	} else {
		a.history = store
	}

	prefs, err := storage.OpenPrefs(storage.AppName)
	if err != nil {
		a.logger.Debug("preferences kept in memory", "err", err)
	}
	a.prefs = prefs

	a.audio = &audio.Nop{}
	if opts.withAudio {
		player, err := audio.NewPlayer(opts.soundDir)
		if err != nil {
			a.logger.Warn("audio", "err", err)
		}
		a.audio = player
	}
	a.audio.SetMuted(a.prefs.Get().Muted)

	return a, nil
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// close releases everything newApp opened.
func (a *app) close() {
	if a.audio != nil {
		a.audio.Close()
	}
	if a.history != nil {
		a.history.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// launcher builds games from the variant configs, with the preset applied
// on top and persistence attached.
func (a *app) launcher(configPath string) tui.Launcher {
	return func(variant string, preset config.DifficultyPreset) (tui.Launch, error) {
		cfg, err := config.Load(variant, configPath)
		if err != nil {
			return tui.Launch{}, err
		}
		if preset != "" {
			config.ApplyPreset(&cfg, preset)
		}

		game, err := registry.Create(variant, registry.Options{
			Assets:     a.sprites,
			Config:     &cfg,
			HighScores: a.highScores(variant, cfg.HighScore),
		})
		if err != nil {
			return tui.Launch{}, err
		}
		a.logger.Debug("game created", "variant", variant, "difficulty", preset, "collision", cfg.Collision.Strategy)
		return tui.Launch{Game: game, MaxFrameTime: cfg.Timing.MaxFrameTime}, nil
	}
}

// highScores returns the best-score store for a variant. Persistent variants
// sharing a file share one store. Its Save keeps the higher value, so a
// session never lowers a best another session set.
func (a *app) highScores(variant string, hs config.HighScoreConfig) storage.HighScoreStore {
	key := "memory:" + variant
	if hs.Persist {
		file := hs.File
		if file == "" {
			file = storage.DefaultHighScoreFile
		}
		key = "file:" + file
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.scores[key]; ok {
		return s
	}
	var inner storage.HighScoreStore = storage.NewMemoryStore()
	if hs.Persist {
		inner = storage.NewFileStore(key[len("file:"):])
	}
	s := &loggedScores{inner: inner, logger: a.logger.With("store", key)}
	a.scores[key] = s
	return s
}

// rememberChoice saves the variant and difficulty for the next launch.
func (a *app) rememberChoice(variant string, preset config.DifficultyPreset) {
	err := a.prefs.Update(func(p *storage.Preferences) {
		p.Variant = variant
		p.Difficulty = string(preset)
	})
	if err != nil {
		a.logger.Debug("could not save preferences", "err", err)
	}
}

// rememberMute is the mute callback handed to the game model.
func (a *app) rememberMute(muted bool) {
	if err := a.prefs.Update(func(p *storage.Preferences) { p.Muted = muted }); err != nil {
		a.logger.Debug("could not save preferences", "err", err)
	}
}

// modelOptions are the collaborators for a local game.
func (a *app) modelOptions(maxFrame float64) tui.ModelOptions {
	return tui.ModelOptions{
		Store:        a.history,
		Audio:        a.audio,
		Logger:       a.logger,
		MaxFrameTime: maxFrame,
		OnMute:       a.rememberMute,
	}
}

// loggedScores reports persistence failures that the game itself ignores.
type loggedScores struct {
	inner  storage.HighScoreStore
	logger *log.Logger
}

type scoreReader interface {
	Read() (int, error)
}

func (s *loggedScores) Load() int {
	if r, ok := s.inner.(scoreReader); ok {
		score, err := r.Read()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("high score unreadable, starting from 0", "err", err)
		}
		return score
	}
	return s.inner.Load()
}

func (s *loggedScores) Save(score int) error {
	err := s.inner.Save(score)
	if err != nil {
		s.logger.Warn("could not save high score", "score", score, "err", err)
	} else {
		s.logger.Debug("high score saved", "score", score)
	}
	return err
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// resolvePreset parses a --difficulty value, falling back to the saved one.
func resolvePreset(flag, saved string) (config.DifficultyPreset, error) {
	if flag != "" {
		return config.ParsePreset(flag)
	}
	if p, err := config.ParsePreset(saved); err == nil {
		return p, nil
	}
	return config.DifficultyNormal, nil
}

// checkVariant reports an unknown variant in one line.
func checkVariant(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q (run 'flappy list')", id)
	}
	return nil
}
