// Package loop runs the flight game without a terminal UI, using the
// Input -> Update -> Draw cycle at a fixed tick rate. It backs the sim
// command and scripted playthroughs.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflight/internal/audio"
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/storage"
)

// ErrQuit is returned by Run when the input source asked to quit.
var ErrQuit = errors.New("loop: quit requested")

// Pacer blocks until the next tick is due.
type Pacer interface {
	Wait(ctx context.Context) error
	Stop()
}

// InputSource produces the actions for the next tick.
type InputSource interface {
	Next(snap flight.Snapshot) core.InputFrame
}

// Renderer draws a frame. Optional.
type Renderer interface {
	Draw(snap flight.Snapshot) error
}

// RoundSummary is reported to OnRoundEnd after the score was submitted.
type RoundSummary struct {
	Round   int // 1-based round number
	Result  flight.Result
	Outcome storage.Outcome
}

// Runner drives rounds of a Game until the caller stops it.
type Runner struct {
	Game     *flight.Game
	Pacer    Pacer
	Input    InputSource
	Renderer Renderer
	Audio    audio.Player
	Scores   storage.HighScoreStore
	History  storage.History
	Logger   *log.Logger
	Runtime  core.RuntimeConfig

	// OnRoundEnd decides whether to play another round. Nil stops after one.
	OnRoundEnd func(RoundSummary) bool
}

// Run plays rounds until OnRoundEnd declines, the input quits or ctx ends.
// It returns the summaries of every finished round. Quit and cancellation
// are checked at the top of every tick, before the simulation runs.
func (r *Runner) Run(ctx context.Context) ([]RoundSummary, error) {
	if r.Game == nil || r.Pacer == nil || r.Input == nil {
		return nil, errors.New("loop: runner needs a game, a pacer and an input source")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := r.Audio
	if player == nil {
		player = audio.Silent{}
	}
	scores := r.Scores
	if scores == nil {
		scores = &storage.MemoryStore{}
	}

	defer r.Pacer.Stop()
	player.StartTheme()
	defer player.StopTheme()

	var summaries []RoundSummary
	r.Game.Reset(r.Runtime)

	for round := 1; ; {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}

		// ===== INPUT PHASE =====
		in := r.Input.Next(r.Game.Snapshot())
		if in.Has(core.ActionQuit) {
			return summaries, ErrQuit
		}

		// ===== UPDATE PHASE =====
		res := r.Game.Step(in)
		for _, cue := range res.Cues {
			player.Play(cue)
		}

		// ===== DRAW PHASE =====
		if r.Renderer != nil {
			if err := r.Renderer.Draw(r.Game.Snapshot()); err != nil {
				return summaries, fmt.Errorf("loop: draw: %w", err)
			}
		}

		if res.State.GameOver {
			result := r.Game.Result()
			outcome := storage.Submit(scores, result.Score, logger)
			storage.Record(r.History, flight.ID, result.Score, logger)

			summary := RoundSummary{Round: round, Result: result, Outcome: outcome}
			summaries = append(summaries, summary)
			logger.Info("round over",
				"round", round,
				"score", result.Score,
				"reason", result.Reason,
				"ticks", result.Ticks,
				"best", outcome.Best,
			)

			if r.OnRoundEnd == nil || !r.OnRoundEnd(summary) {
				return summaries, nil
			}
			round++
			r.Game.Reset(r.nextRuntime(round))
		}

		// ===== FRAME TIMING =====
		if err := r.Pacer.Wait(ctx); err != nil {
			return summaries, err
		}
	}
}

// nextRuntime derives the runtime config of a later round. A fixed seed is
// offset per round so rounds differ but replay identically.
func (r *Runner) nextRuntime(round int) core.RuntimeConfig {
	rc := r.Runtime
	if rc.Seed != 0 {
		rc.Seed += int64(round - 1)
	}
	return rc
}

// TickerPacer paces ticks with a time.Ticker.
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer returns a pacer firing rate times per second.
func NewTickerPacer(rate int) *TickerPacer {
	if rate <= 0 {
		rate = 60
	}
	return &TickerPacer{ticker: time.NewTicker(time.Second / time.Duration(rate))}
}

// Wait blocks until the next tick or until ctx is done.
func (p *TickerPacer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// FreeRunPacer never waits. Used to simulate as fast as possible.
type FreeRunPacer struct{}

// Wait returns at once unless ctx is done.
func (FreeRunPacer) Wait(ctx context.Context) error { return ctx.Err() }

// Stop is a no-op.
func (FreeRunPacer) Stop() {}
