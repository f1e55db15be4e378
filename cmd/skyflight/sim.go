package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflight/internal/audio"
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/loop"
	"github.com/vovakirdan/skyflight/internal/platform/tui"
)

var (
	flagSimRounds   int
	flagSimRealtime bool
	flagSimShow     bool
	flagSimSound    bool
	flagSimPersist  bool
	flagSimBias     int
	flagSimTimeout  time.Duration
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run rounds headless with the autopilot",
	Long: `Play rounds without a terminal UI, steered by the autopilot, and print
each round's result. Useful to check a custom config for fairness.

By default rounds run as fast as possible and scores are kept in memory.

Examples:
  skyflight sim
  skyflight sim --rounds 20 --seed 7
  skyflight sim --realtime --show
  skyflight sim --config ./hard.yaml --persist`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRounds, "rounds", 3, "Number of rounds to play")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagSimShow, "show", false, "Draw every frame to the terminal (use with --realtime)")
	simCmd.Flags().BoolVar(&flagSimSound, "sound", false, "Play sound effects")
	simCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Submit scores to the real high score store")
	simCmd.Flags().IntVar(&flagSimBias, "bias", 0, "Autopilot floor offset in board units")
	simCmd.Flags().DurationVar(&flagSimTimeout, "timeout", time.Minute, "Stop after this long (0 = no limit)")
}

// termRenderer draws each snapshot over the previous frame.
type termRenderer struct {
	screen *core.Screen
	out    io.Writer
}

// Draw implements loop.Renderer.
func (r *termRenderer) Draw(snap flight.Snapshot) error {
	flight.RenderSnapshot(r.screen, snap)
	_, err := fmt.Fprint(r.out, "\x1b[H"+tui.RenderScreen(r.screen))
	return err
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimRounds <= 0 {
		return errors.New("--rounds must be positive")
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	flightCfg, err := loadFlight()
	if err != nil {
		return err
	}

	game, err := flight.New(flightCfg)
	if err != nil {
		return err
	}

	rc := runtimeConfig()
	runner := &loop.Runner{
		Game:    game,
		Input:   loop.Autopilot{Bias: flagSimBias},
		Logger:  logger,
		Runtime: rc,
		OnRoundEnd: func(s loop.RoundSummary) bool {
			return s.Round < flagSimRounds
		},
	}

	if flagSimRealtime {
		runner.Pacer = loop.NewTickerPacer(flagFPS)
	} else {
		runner.Pacer = loop.FreeRunPacer{}
	}

	if flagSimShow {
		runner.Renderer = &termRenderer{
			screen: core.NewScreen(rc.ScreenW, rc.ScreenH),
			out:    os.Stdout,
		}
		fmt.Print("\x1b[2J")
	}

	if flagSimSound {
		player := audio.New(logger)
		defer player.Close()
		runner.Audio = player
	}

	if flagSimPersist {
		store := openStore(logger)
		if store != nil {
			defer store.Close()
			runner.History = store
		}
		scores, err := highScoreStore(store, flight.ID)
		if err != nil {
			return err
		}
		runner.Scores = scores
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagSimTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagSimTimeout)
		defer cancel()
	}

	summaries, err := runner.Run(ctx)
	printSummaries(os.Stdout, summaries)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		fmt.Printf("Stopped after %d of %d rounds.\n", len(summaries), flagSimRounds)
		return nil
	}
	return err
}

// printSummaries writes one line per finished round plus the total.
func printSummaries(w io.Writer, summaries []loop.RoundSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No rounds finished.")
		return
	}

	fmt.Fprintf(w, "  %-5s  %-6s  %-7s  %-14s  %s\n", "Round", "Score", "Ticks", "End", "Best")
	fmt.Fprintf(w, "  %-5s  %-6s  %-7s  %-14s  %s\n", "-----", "-----", "-----", "---", "----")

	total := 0
	for _, s := range summaries {
		best := fmt.Sprintf("%d", s.Outcome.Best)
		if s.Outcome.NewRecord {
			best += " (new)"
		}
		fmt.Fprintf(w, "  %-5d  %-6d  %-7d  %-14s  %s\n",
			s.Round, s.Result.Score, s.Result.Ticks, s.Result.Reason, best)
		total += s.Result.Score
	}
	fmt.Fprintf(w, "\nAverage score: %.1f\n", float64(total)/float64(len(summaries)))
}
