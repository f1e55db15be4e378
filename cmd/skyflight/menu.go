package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflight/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start Sky Flight in interactive menu mode.

Menu entries:
  Start Game   - Play rounds until you go back
  Settings     - Toggle sound (S) and the hit sound (H)
  High Score   - Best score and round history

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  skyflight menu
  skyflight menu --fps 30
  skyflight menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	svc, cleanup, err := localServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunSession(svc, runtimeConfig())
}
