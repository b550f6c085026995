// flappy is a Flappy Bird game for the terminal.
//
// Usage:
//
//	flappy                   - Play the classic variant
//	flappy play [variant]    - Play a variant
//	flappy menu              - Pick a variant interactively
//	flappy list              - List available variants
//	flappy scores [variant]  - Show the run history of a variant
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flappy/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagVerbose bool
)

func main() {
	os.Exit(run())
}

// run executes the root command. A panic that escapes the terminal program
// is reported in one line; bubbletea has already restored the terminal.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "flappy: fatal: %v\n", r)
			code = 1
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "flappy: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird rendered with half-block pixels in the terminal.

Without a subcommand the classic variant starts right away.

Available commands:
  play     - Play a specific variant
  menu     - Interactive variant picker
  list     - Show all variants
  scores   - View run history
  serve    - Start SSH server for remote play

Examples:
  flappy
  flappy play retro --difficulty hard
  flappy menu
  flappy serve --ssh :2222`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPlay(cmd, nil)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "~/.flappy/flappy.log", "Log file for local play")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Play flags also apply to the bare command
	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
