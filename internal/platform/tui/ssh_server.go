package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address to listen on (e.g., ":23234")
	Address string

	// HostKeyPath is the path to the SSH host key.
	// A key is generated there when missing.
	HostKeyPath string

	// DBPath is the results database shared by all sessions.
	DBPath string

	// IdleTimeout disconnects idle sessions.
	IdleTimeout time.Duration

	// Tracks offered in the session menu.
	Tracks []TrackChoice

	// TickRate is the race frame rate per session.
	TickRate int
}

// DefaultSSHServerConfig returns sensible defaults for the SSH server.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.racer/results.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer serves races over SSH, one Bubble Tea program per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a server. Results are not saved when the database
// cannot be opened.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "racer-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".racer", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	logger := s.logger.With("user", sess.User())

	return NewSessionModel(s.store, logger, s.config.Tracks, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops the server and closes the results database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenRace
	screenResults
)

// SessionModel drives one SSH session: menu, races and the results board.
type SessionModel struct {
	store   *storage.Store
	logger  *log.Logger
	tracks  []TrackChoice
	config  core.RuntimeConfig
	screen  sessionScreen
	menu    MenuModel
	race    Model
	results ResultsModel

	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(store *storage.Store, logger *log.Logger, tracks []TrackChoice, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:  store,
		logger: logger,
		tracks: tracks,
		config: cfg,
		menu:   NewMenuModel(store, tracks, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenRace:
		return m.updateRace(msg)
	case screenResults:
		return m.updateResults(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsResults():
		m.results = NewResultsModel(m.store, m.tracks, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenResults
		return m, m.results.Init()

	case m.menu.Selected() != nil:
		return m.startRace(*m.menu.Selected())
	}

	return m, cmd
}

func (m SessionModel) startRace(item MenuItem) (tea.Model, tea.Cmd) {
	game, err := registry.Create(item.GameID)
	if err != nil {
		m.logger.Error("unknown mode", "mode", item.GameID, "error", err)
		return m.toMenu()
	}
	SelectTrack(game, item.TrackID)

	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()
	race, err := NewModel(game, m.store, m.logger, cfg)
	if err != nil {
		m.logger.Error("could not start race", "mode", item.GameID, "track", item.TrackID, "error", err)
		return m.toMenu()
	}
	m.logger.Info("race started", "mode", item.GameID, "track", item.TrackID)

	m.race = race
	m.screen = screenRace
	return m, m.race.Init()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.tracks, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m SessionModel) updateRace(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.race.Update(msg)
	if rm, ok := next.(Model); ok {
		m.race = rm
	}

	if m.race.BackToMenu() {
		return m.toMenu()
	}
	if m.race.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.results.Update(msg)
	if rm, ok := next.(ResultsModel); ok {
		m.results = rm
	}

	if m.results.IsGoingBack() {
		return m.toMenu()
	}
	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenRace:
		return m.race.View()
	case screenResults:
		return m.results.View()
	}
	return m.menu.View()
}
