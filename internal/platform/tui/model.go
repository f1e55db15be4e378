package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflight/internal/audio"
	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
	"github.com/vovakirdan/skyflight/internal/storage"
)

// Services are the collaborators shared by every screen of a session.
type Services struct {
	Flight       config.FlightConfig
	Scores       storage.HighScoreStore // Best score of the session's slot
	History      storage.History        // Optional per-round history
	Board        ScoreSource            // Optional source for the high-score screen
	Audio        *audio.Gate
	SettingsPath string // Empty disables saving settings
	Logger       *log.Logger
}

// withDefaults fills optional services with no-op implementations.
func (s Services) withDefaults() Services {
	if s.Scores == nil {
		s.Scores = &storage.MemoryStore{}
	}
	if s.Audio == nil {
		s.Audio = audio.NewGate(audio.Silent{}, config.DefaultSettings())
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	return s
}

// GameModel is the Bubble Tea model of the game screen.
type GameModel struct {
	game      *flight.Game
	svc       Services
	screen    *core.Screen
	config    core.RuntimeConfig
	baseSeed  int64
	round     int
	tickGen   int
	input     core.InputFrame
	state     core.GameState
	outcome   *storage.Outcome // Set once per round end
	keyMapper *KeyMapper
	help      help.Model
	embedded  bool // Inside a session: back returns to the menu instead of quitting

	quitting   bool
	backToMenu bool
}

// tickGens hands out tick generations; sessions share it across goroutines.
var tickGens atomic.Int64

// NewGameModel creates the game screen. The flight config must already be valid.
func NewGameModel(svc Services, cfg core.RuntimeConfig) (GameModel, error) {
	svc = svc.withDefaults()
	game, err := flight.New(svc.Flight)
	if err != nil {
		return GameModel{}, err
	}
	return GameModel{
		game:      game,
		svc:       svc,
		screen:    core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		config:    cfg,
		baseSeed:  cfg.Seed,
		round:     1,
		tickGen:   int(tickGens.Add(1)),
		input:     core.NewInputFrame(),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}, nil
}

// gameRows leaves one terminal row for the help bar.
func gameRows(h int) int {
	return max(h-1, 1)
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.roundConfig())
	m.svc.Audio.StartTheme()
	return tickCmd(m.config.TickRate, m.tickGen)
}

// roundConfig returns the runtime config of the current round. A fixed seed
// is offset per round so retries differ but replay identically.
func (m GameModel) roundConfig() core.RuntimeConfig {
	rc := m.config
	if m.baseSeed != 0 {
		rc.Seed = m.baseSeed + int64(m.round-1)
	}
	return rc
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		return m.handleAction(m.keyMapper.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(m.keyMapper.MapMouse(msg))

	case tea.WindowSizeMsg:
		// The board is scaled to the terminal, so a resize keeps the round.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleAction queues or applies one input action.
func (m GameModel) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		m.svc.Audio.StopTheme()
		return m, tea.Quit

	case core.ActionBack:
		if m.state.GameOver || m.state.Paused {
			return m.leave()
		}
		m.input.Set(core.ActionPause)

	case core.ActionImpulse:
		if m.state.GameOver {
			// A click or flap on the game over screen retries
			m.input.Set(core.ActionRestart)
		} else {
			m.input.Set(core.ActionImpulse)
		}

	case core.ActionNone:

	default:
		m.input.Set(a)
	}
	return m, nil
}

// leave returns to the menu, or quits when running standalone.
func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.svc.Audio.StopTheme()
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// handleTick runs one simulation step and schedules the next.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	defer m.input.Clear()

	if m.state.GameOver {
		if m.input.Has(core.ActionRestart) {
			m.round++
			m.game.Reset(m.roundConfig())
			m.state = m.game.State()
			m.outcome = nil
		}
		return m, tickCmd(m.config.TickRate, m.tickGen)
	}

	res := m.game.Step(m.input)
	m.state = res.State
	m.svc.Audio.PlayAll(res.Cues)

	// Compare with the stored best exactly once per round end
	if m.state.GameOver && m.outcome == nil {
		result := m.game.Result()
		outcome := storage.Submit(m.svc.Scores, result.Score, m.svc.Logger)
		storage.Record(m.svc.History, flight.ID, result.Score, m.svc.Logger)
		m.outcome = &outcome
		m.svc.Logger.Debug("round over", "score", result.Score, "reason", result.Reason, "best", outcome.Best)
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.outcome != nil {
		flight.DrawGameOver(m.screen, m.outcome.Score, m.outcome.Best, m.outcome.NewRecord)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Outcome returns the result of the last finished round, or nil while playing.
func (m GameModel) Outcome() *storage.Outcome {
	return m.outcome
}

// saveScreenshot writes the current frame as plain text under the data dir.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	base, err := config.DataDir()
	if err != nil {
		return
	}
	dir := filepath.Join(base, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", flight.ID, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// Run plays the game screen on the local terminal until the player quits.
func Run(svc Services, cfg core.RuntimeConfig) error {
	model, err := NewGameModel(svc, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		gm.svc.Audio.StopTheme()
	}
	return err
}
