package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagSounds     string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (classic when omitted).

Controls:
  Space/Up/W/Enter/Click - Flap
  P                      - Pause
  R                      - Restart (after game over)
  M                      - Mute
  Q/Esc/Ctrl+C           - Quit

Difficulty options:
  easy   - Wider gaps, slower narrowing
  normal - The variant's own tuning
  hard   - Narrower gaps that shrink faster
  fixed  - No progression, the gap never shrinks

Examples:
  flappy play
  flappy play smooth --difficulty easy
  flappy play retro --difficulty fixed
  flappy play classic --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagAssets, "assets", "", "Path to a custom sprite sheet YAML or a directory of PNG sprites")
	cmd.Flags().StringVar(&flagSounds, "sounds", "", "Directory of <cue>.wav files replacing the built-in sounds")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := config.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}
	if err := checkVariant(variant); err != nil {
		return err
	}

	preset, err := resolvePreset(flagDifficulty, "")
	if err != nil {
		return err
	}

	a, err := newApp(appOptions{withAudio: true, soundDir: flagSounds, assetPath: flagAssets})
	if err != nil {
		return err
	}
	defer a.close()
	if flagMute {
		a.audio.SetMuted(true)
	}

	launch, err := a.launcher(flagConfig)(variant, preset)
	if err != nil {
		return err
	}

	final, err := tui.Run(launch.Game, terminalConfig(), a.modelOptions(launch.MaxFrameTime))
	if err != nil {
		return err
	}
	if run := final.LastRun(); run != nil {
		a.logger.Debug("last run", "score", run.Score, "duration", run.Duration)
	}
	return nil
}
