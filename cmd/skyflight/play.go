package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflight/internal/audio"
	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start playing right away, skipping the menu.

Controls:
  Space/Up/W/Click  - Fly
  P/Esc             - Pause
  R/Enter/Click     - Retry (after game over)
  Esc               - Quit (while paused or after game over)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot to ~/.skyflight/screenshots

Examples:
  skyflight play
  skyflight play --seed 42
  skyflight play --config ./my-flight.yaml
  skyflight play --highscore-file ./highscore.txt`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	svc, cleanup, err := localServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(svc, runtimeConfig())
}

// localServices wires the services of a local terminal session. Config
// errors are fatal; storage and audio degrade to working fallbacks.
func localServices() (tui.Services, func(), error) {
	flightCfg, err := loadFlight()
	if err != nil {
		return tui.Services{}, nil, err
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return tui.Services{}, nil, err
	}

	store := openStore(logger)
	scores, err := highScoreStore(store, flight.ID)
	if err != nil {
		if store != nil {
			store.Close()
		}
		closeLog()
		return tui.Services{}, nil, err
	}

	settingsPath := config.DefaultSettingsPath()
	settings := config.DefaultSettings()
	if settingsPath != "" {
		if s, loadErr := config.LoadSettings(settingsPath); loadErr != nil {
			logger.Warn("could not load settings", "path", settingsPath, "error", loadErr)
		} else {
			settings = s
		}
	}

	player := audio.New(logger)
	svc := tui.Services{
		Flight:       flightCfg,
		Scores:       scores,
		Audio:        audio.NewGate(player, settings),
		SettingsPath: settingsPath,
		Logger:       logger,
	}
	// Only set when open, so the interfaces stay nil otherwise
	if store != nil {
		svc.History = store
		svc.Board = store
	}

	cleanup := func() {
		player.Close()
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return svc, cleanup, nil
}
