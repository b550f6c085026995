package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Launch is a game ready to run, plus the frame clamp its config asks for.
type Launch struct {
	Game         registry.Game
	MaxFrameTime float64
}

// Launcher builds a game for a variant and difficulty. The command layer
// owns config loading and high-score persistence and hands this to the UI.
type Launcher func(variant string, preset config.DifficultyPreset) (Launch, error)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard reachable from the menu. It is the top-level model of an
// SSH session.
type SessionModel struct {
	launch     Launcher
	store      *storage.Store
	opts       ModelOptions
	config     core.RuntimeConfig
	menuOpts   MenuOptions
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	err        error
	quitting   bool
}

// NewSessionModel creates a new session model. opts.Store doubles as the
// history shown in the menu and scoreboard.
func NewSessionModel(launch Launcher, cfg core.RuntimeConfig, opts ModelOptions, menuOpts MenuOptions) SessionModel {
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		launch:   launch,
		store:    opts.Store,
		opts:     opts,
		config:   cfg,
		menuOpts: menuOpts,
		menu:     NewMenuModel(opts.Store, cfg, menuOpts),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Stale tick from a game that just ended.
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		m.menuOpts = MenuOptions{Variant: m.menu.Selected().GameID, Difficulty: m.menu.Difficulty()}
		launch, err := m.launch(m.menuOpts.Variant, m.menuOpts.Difficulty)
		if err != nil {
			m.opts.Logger.Error("could not start game", "variant", m.menuOpts.Variant, "err", err)
			m.err = err
			m.resetMenu()
			return m, nil
		}
		m.err = nil

		opts := m.opts
		opts.MaxFrameTime = launch.MaxFrameTime
		gm := NewModel(launch.Game, m.config, opts)
		m.gameModel = &gm
		return m, gm.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	// The game model quits its own program on back; here it returns to the menu.
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.resetMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// resetMenu rebuilds the menu so best scores are current.
func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.store, m.config, m.menuOpts)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(errorStyle.Render(m.err.Error()), m.config.ScreenW)
	}
	return view
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e86a17"))
