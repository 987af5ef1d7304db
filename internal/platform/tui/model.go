package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// resultRecorder is implemented by modes whose finished races can be stored.
type resultRecorder interface {
	Record() (storage.RaceRecord, bool)
}

// trackSelector is implemented by modes that race on a chosen circuit.
type trackSelector interface {
	SelectTrack(id string)
}

// Model is the Bubble Tea model running one race.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	keys    *KeyMapper
	hold    *HoldTracker
	oneShot core.InputFrame // pause and restart, consumed by the next tick

	lastTick time.Time
	state    core.GameState

	standalone bool // quit instead of returning to a menu
	quitting   bool
	backToMenu bool
	saved      bool
}

// NewModel creates a model for game and lines up the first race.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    NewKeyMapper(),
		hold:    NewHoldTracker(),
		oneShot: core.NewInputFrame(),
		state:   game.State(),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.state.GameOver || m.state.Paused {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	case core.ActionPause:
		m.oneShot.Set(core.ActionPause)
	case core.ActionRestart:
		if m.state.GameOver {
			m.oneShot.Set(core.ActionRestart)
		}
	case core.ActionNone:
	default:
		m.hold.Press(action, now)
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now)
	m.lastTick = now

	if m.oneShot.Has(core.ActionRestart) && m.state.GameOver {
		m.oneShot.Clear()
		if err := m.restart(); err != nil {
			m.logger.Error("could not restart race", "mode", m.game.ID(), "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.config.TickRate)
	}

	in := m.hold.Frame(now)
	in.Merge(m.oneShot)
	m.oneShot.Clear()

	res := m.game.Step(dt, in)
	m.state = res.State
	for _, n := range res.Notices {
		m.logger.Debug("race event", "mode", m.game.ID(), "notice", n)
	}

	if m.state.GameOver && !m.saved {
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) restart() error {
	m.config.Seed = time.Now().UnixNano()
	if err := m.game.Reset(m.config); err != nil {
		return err
	}
	m.state = m.game.State()
	m.hold.Reset()
	m.saved = false
	return nil
}

// saveResult stores the finished race once. Failures are logged and the
// race screen stays up.
func (m *Model) saveResult() {
	m.saved = true
	rec, ok := m.record()
	if !ok {
		return
	}
	m.logger.Info("race finished",
		"mode", rec.Mode,
		"track", rec.Track,
		"position", rec.Position,
		"prize", rec.Prize,
		"time", rec.TotalTime,
	)
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRaceResult(rec)
	if err != nil {
		m.logger.Warn("could not save race result", "error", err)
		return
	}
	m.logger.Debug("race result saved", "id", id)
}

func (m *Model) record() (storage.RaceRecord, bool) {
	r, ok := m.game.(resultRecorder)
	if !ok {
		return storage.RaceRecord{}, false
	}
	return r.Record()
}

// saveScreenshot writes the current screen to ~/.racer/screenshots.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".racer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// BackToMenu reports whether the player left the race for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current race.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run plays game in the terminal until the player quits.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model, err := NewModel(game, store, logger, cfg)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// SelectTrack points game at a circuit when the mode supports it.
func SelectTrack(game registry.Game, trackID string) {
	if trackID == "" {
		return
	}
	if ts, ok := game.(trackSelector); ok {
		ts.SelectTrack(trackID)
	}
}
