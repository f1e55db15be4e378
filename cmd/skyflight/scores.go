package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/platform/tui"
	"github.com/vovakirdan/skyflight/internal/storage"
)

var (
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and round history",
	Long: `Display the best score and the top rounds from the scores database.

Examples:
  skyflight scores
  skyflight scores --recent --limit 20
  skyflight scores --tui
  skyflight scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the most recent rounds instead of the best")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to list")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and the stored best score")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive high score screen")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	best, err := highScoreStore(store, flight.ID)
	if err != nil {
		return err
	}

	if flagScoresClear {
		if err := store.ClearScores(flight.ID); err != nil {
			return err
		}
		if fs, ok := best.(*storage.FileStore); ok {
			if err := os.Remove(fs.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		rc := runtimeConfig()
		svc := tui.Services{Scores: best, Board: store, Logger: logger}
		return tui.RunScoreboard(svc, flight.ID, rc.ScreenW, rc.ScreenH)
	}

	var entries []storage.ScoreEntry
	if flagScoresRecent {
		entries, err = store.RecentScores(flight.ID, flagScoresLimit)
	} else {
		entries, err = store.TopScores(flight.ID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", flight.Title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyflight play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "#", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range entries {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if value, err := best.Load(); err != nil {
		logger.Warn("could not read high score", "error", err)
	} else {
		fmt.Printf("Best: %d\n", value)
	}
	if stats, err := store.GetGameStats(flight.ID); err == nil {
		fmt.Printf("Rounds: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}
