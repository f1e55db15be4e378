package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/storage"
)

var errBudget = errors.New("tick budget exhausted")

// countingPacer never sleeps and fails after limit waits (0 = unlimited).
type countingPacer struct {
	waits   int
	limit   int
	stopped bool
}

func (p *countingPacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.waits++
	if p.limit > 0 && p.waits >= p.limit {
		return errBudget
	}
	return nil
}

func (p *countingPacer) Stop() { p.stopped = true }

type constRand struct{ v int }

func (r constRand) Intn(n int) int { return r.v % n }

type countingRenderer struct{ frames int }

func (r *countingRenderer) Draw(flight.Snapshot) error {
	r.frames++
	return nil
}

type memHistory struct{ scores []int }

func (h *memHistory) SaveScore(_ string, score int) (int64, error) {
	h.scores = append(h.scores, score)
	return int64(len(h.scores)), nil
}

func newTestGame(t *testing.T) *flight.Game {
	t.Helper()
	g, err := flight.New(config.DefaultFlightConfig(),
		flight.WithRandFactory(func(int64) flight.Rand { return constRand{v: 150} }))
	if err != nil {
		t.Fatalf("flight.New() error = %v", err)
	}
	return g
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestRunnerSingleRound(t *testing.T) {
	pacer := &countingPacer{}
	renderer := &countingRenderer{}
	history := &memHistory{}
	scores := &storage.MemoryStore{Value: 5}

	r := &Runner{
		Game:     newTestGame(t),
		Pacer:    pacer,
		Input:    &Script{},
		Renderer: renderer,
		Scores:   scores,
		History:  history,
		Runtime:  testRuntime(),
	}

	// With no input the flyer falls off the bottom of the board
	summaries, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}

	s := summaries[0]
	if s.Result.Reason != flight.EndOutOfBounds || s.Result.Score != 0 {
		t.Errorf("result = %+v", s.Result)
	}
	if s.Outcome != (storage.Outcome{Score: 0, Best: 5}) {
		t.Errorf("outcome = %+v", s.Outcome)
	}
	if len(history.scores) != 1 {
		t.Errorf("history = %v, want one entry", history.scores)
	}
	if renderer.frames != int(s.Result.Ticks) {
		t.Errorf("rendered %d frames for %d ticks", renderer.frames, s.Result.Ticks)
	}
	if !pacer.stopped {
		t.Error("pacer not stopped")
	}
}

func TestRunnerRestartsRounds(t *testing.T) {
	rounds := 0
	r := &Runner{
		Game:    newTestGame(t),
		Pacer:   &countingPacer{},
		Input:   &Script{},
		Runtime: testRuntime(),
		OnRoundEnd: func(s RoundSummary) bool {
			rounds++
			if s.Round != rounds {
				t.Errorf("round number = %d, want %d", s.Round, rounds)
			}
			return rounds < 3
		},
	}

	summaries, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summaries) != 3 {
		t.Errorf("got %d summaries, want 3", len(summaries))
	}
}

func TestRunnerQuitTakesPriority(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionImpulse)
	in.Set(core.ActionQuit)

	g := newTestGame(t)
	r := &Runner{
		Game:    g,
		Pacer:   &countingPacer{},
		Input:   &Script{Frames: []core.InputFrame{in}},
		Runtime: testRuntime(),
	}

	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, want ErrQuit", err)
	}
	if g.Round().Tick() != 0 {
		t.Errorf("simulation stepped %d ticks after quit", g.Round().Tick())
	}
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGame(t)
	r := &Runner{Game: g, Pacer: &countingPacer{}, Input: &Script{}, Runtime: testRuntime()}

	_, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if g.Round().Tick() != 0 {
		t.Error("simulation stepped after cancellation")
	}
}

func TestRunnerRequiresParts(t *testing.T) {
	if _, err := (&Runner{}).Run(context.Background()); err == nil {
		t.Error("Run() with no game succeeded")
	}
}

func TestAutopilotPassesConstantGaps(t *testing.T) {
	g := newTestGame(t)
	r := &Runner{
		Game:    g,
		Pacer:   &countingPacer{limit: 600},
		Input:   Autopilot{},
		Runtime: testRuntime(),
	}

	summaries, err := r.Run(context.Background())
	if !errors.Is(err, errBudget) {
		t.Fatalf("Run() error = %v, summaries = %+v", err, summaries)
	}
	if got := g.State().Score; got < 5 {
		t.Errorf("autopilot score = %d after 600 ticks, want at least 5", got)
	}
}

func TestAutopilotDecision(t *testing.T) {
	snap := flight.Snapshot{
		BoardH: 700,
		Phase:  flight.PhaseRunning,
		Player: core.NewRect(100, 300, 60, 60),
		Obstacles: []core.Rect{
			core.NewRect(200, 0, 80, 250),
			core.NewRect(200, 450, 80, 250),
		},
	}

	if (Autopilot{}).Next(snap).Has(core.ActionImpulse) {
		t.Error("flapped with the flyer well inside the gap")
	}

	snap.Player.Y = 380
	snap.PlayerVY = 2
	if !(Autopilot{}).Next(snap).Has(core.ActionImpulse) {
		t.Error("did not flap when about to sink below the gap floor")
	}

	snap.Phase = flight.PhaseEnded
	if !(Autopilot{}).Next(snap).Empty() {
		t.Error("autopilot acted after the round ended")
	}
}

func TestScriptReplaysThenIdles(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionImpulse)
	s := &Script{Frames: []core.InputFrame{in}}

	if !s.Next(flight.Snapshot{}).Has(core.ActionImpulse) {
		t.Error("first frame lost")
	}
	if !s.Next(flight.Snapshot{}).Empty() {
		t.Error("script did not idle after its frames")
	}
}
