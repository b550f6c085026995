package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all variants",
	Long:  `Shows every registered variant with its rotation and collision style.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	games := registry.List()
	out := cmd.OutOrStdout()

	if len(games) == 0 {
		fmt.Fprintln(out, "No variants available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-22s  %s\n", maxIDLen, "ID", "Title", "Style")
	fmt.Fprintf(out, "  %-*s  %-22s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		style := ""
		if cfg, err := config.Default(g.ID); err == nil {
			style = fmt.Sprintf("%s rotation, %s collision", cfg.Rotation.Policy, cfg.Collision.Strategy)
		}
		fmt.Fprintf(out, "  %-*s  %-22s  %s\n", maxIDLen, g.ID, g.Title, style)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'flappy play <id>' to play a variant.")
}
