package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ModelOptions are the collaborators of a running game. Zero fields are
// replaced by silent defaults.
type ModelOptions struct {
	Store        *storage.Store // run history; nil disables it
	Audio        audio.Player
	Logger       *log.Logger
	Renderer     *lipgloss.Renderer
	MaxFrameTime float64    // seconds; longer gaps between ticks are clamped
	OnMute       func(bool) // called after the player toggles mute
}

// RunRecord describes a finished round.
type RunRecord struct {
	GameID   string
	Score    int
	Duration time.Duration
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	opts       ModelOptions
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	played     float64 // seconds of PLAYING in the current round
	lastRun    *RunRecord
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		renderer:   NewScreenRenderer(opts.Renderer),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keyMapper.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionMute:
		muted := !m.opts.Audio.Muted()
		m.opts.Audio.SetMuted(muted)
		if m.opts.OnMute != nil {
			m.opts.OnMute(muted)
		}
		m.opts.Logger.Debug("audio toggled", "muted", muted)

	case action == core.ActionBack:
		if m.gameState.Phase != core.PhasePlaying || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The playfield has a fixed
// size, so the round continues and is re-centered.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step with the elapsed wall time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := FrameDelta(m.lastTick, now, m.config.TickRate, m.opts.MaxFrameTime)
	m.lastTick = now

	prev := m.gameState
	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State
	m.inputFrame.Clear()

	audio.PlayEvents(m.opts.Audio, result.Events)

	if prev.Phase == core.PhasePlaying && !prev.Paused {
		m.played += dt
	}
	if m.gameState.Phase == core.PhaseGameOver && prev.Phase != core.PhaseGameOver {
		m.finishRound()
	}
	if m.gameState.Phase == core.PhaseWelcome && prev.Phase == core.PhaseGameOver {
		m.played = 0
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// finishRound records the round once, when the game reports the crash.
func (m *Model) finishRound() {
	run := RunRecord{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Duration: time.Duration(m.played * float64(time.Second)),
	}
	m.lastRun = &run
	m.opts.Logger.Info("round over", "game", run.GameID, "score", run.Score, "best", m.gameState.HighScore, "duration", run.Duration)

	if m.opts.Store == nil || run.Score == 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(run.GameID, run.Score, run.Duration); err != nil {
		m.opts.Logger.Warn("could not record run", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	status := m.help.View(m.keyMapper.Keys)
	if m.opts.Audio.Muted() {
		status = "[muted]  " + status
	}
	return m.renderer.Render(m.screen) + "\n" + statusStyle.Render(status)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastRun returns the most recent finished round, if any.
func (m Model) LastRun() *RunRecord {
	return m.lastRun
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game and returns the
// final model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) (Model, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click flaps
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return model, nil
}
