package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, D to change the difficulty
and Tab for the scoreboard. After a game you return to the menu. The last
variant and difficulty are remembered.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  D            - Cycle difficulty
  Tab          - Scoreboard
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	menuCmd.Flags().StringVar(&flagSounds, "sounds", "", "Directory of <cue>.wav files replacing the built-in sounds")
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp(appOptions{withAudio: true, soundDir: flagSounds})
	if err != nil {
		return err
	}
	defer a.close()

	saved := a.prefs.Get()
	preset, _ := resolvePreset("", saved.Difficulty)
	menuOpts := tui.MenuOptions{Variant: saved.Variant, Difficulty: preset}
	launch := a.launcher(flagConfig)
	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(a.history, cfg, menuOpts)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		menuOpts.Difficulty = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(a.history, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		menuOpts.Variant = menuResult.GameID
		a.rememberChoice(menuOpts.Variant, menuOpts.Difficulty)

		l, err := launch(menuOpts.Variant, menuOpts.Difficulty)
		if err != nil {
			// Config errors are the player's to fix; keep the menu up.
			a.logger.Error("could not start game", "variant", menuOpts.Variant, "err", err)
			fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
			continue
		}

		// Fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		final, err := tui.Run(l.Game, cfg, a.modelOptions(l.MaxFrameTime))
		if err != nil {
			return err
		}
		if final.IsQuitting() {
			return nil
		}
		// Back to the menu
	}
}
