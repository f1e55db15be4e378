// skyflight is a terminal side-scroller: keep the caped hero airborne through
// the gaps between city towers, and grab shields to pass through them safely.
//
// Usage:
//
//	skyflight                 - Start the main menu (same as "skyflight menu")
//	skyflight play            - Jump straight into a round
//	skyflight scores          - Show the high score and round history
//	skyflight serve           - Start SSH server for remote play
//	skyflight sim             - Run rounds headless with the autopilot
//	skyflight config          - Print the effective flight config as YAML
//
// Global flags:
//
//	--fps <rate>              - Set tick rate (default: 60)
//	--seed <value>            - Set RNG seed for reproducible rounds
//	--db <path>               - Set database path (default: ~/.skyflight/scores.db)
//	--config <path>           - Use a custom flight config YAML
//	--highscore-file <path>   - Keep the best score in a plain text file instead of the database
//	--log-level <level>       - debug, info, warn or error (default: info)
//	--log-file <path>         - Log destination while the TUI runs
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/storage"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagDBPath        string
	flagConfig        string
	flagHighScoreFile string
	flagLogLevel      string
	flagLogFile       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyflight",
	Short: "Sky Flight - fly between the towers in your terminal",
	Long: `Sky Flight is a terminal side-scroller. Tap to fly up, fall with gravity,
and pass through the gaps between towers. Every second tower passed drops a
shield that lets you fly through anything for ten seconds.

Available commands:
  menu     - Main menu with settings and high scores (default)
  play     - Start a round directly
  scores   - View the high score and round history
  serve    - Start SSH server for remote play
  sim      - Run rounds headless with the autopilot
  config   - Print the effective flight config

Examples:
  skyflight
  skyflight play --seed 42
  skyflight serve --ssh :2222
  skyflight sim --rounds 5`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyflight/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom flight config YAML")
	rootCmd.PersistentFlags().StringVar(&flagHighScoreFile, "highscore-file", "", "Keep the best score in this text file instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.skyflight/skyflight.log", "Log file used while the full-screen UI runs")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger for a command writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyflight",
		Level:           level,
	}), nil
}

// newFileLogger logs to --log-file so output does not tear the alt screen.
// The returned closer must be called when the UI exits.
func newFileLogger() (*log.Logger, func(), error) {
	path, err := config.ExpandHome(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadFlight loads and validates the flight config named by --config.
func loadFlight() (config.FlightConfig, error) {
	return config.LoadFlight(flagConfig)
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. A failure is logged and yields nil:
// the game still runs, keeping the best score in the fallback file.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// highScoreStore picks where the best score lives: --highscore-file, then the
// database slot, then ~/.skyflight/highscore.txt.
func highScoreStore(store *storage.Store, slot string) (storage.HighScoreStore, error) {
	if flagHighScoreFile != "" {
		return storage.NewFileStore(flagHighScoreFile)
	}
	if store != nil {
		return store.Slot(slot), nil
	}
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(filepath.Join(dir, "highscore.txt"))
}
