package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// TrackChoice is a circuit offered by the menu.
type TrackChoice struct {
	ID       string
	Name     string
	LengthKm float64
}

// TrackChoices lists the configured circuits for the menu.
func TrackChoices(cfg config.RaceFileConfig) []TrackChoice {
	tracks := make([]TrackChoice, len(cfg.Tracks))
	for i, t := range cfg.Tracks {
		tracks[i] = TrackChoice{ID: t.ID, Name: t.Name, LengthKm: t.LengthKm}
	}
	return tracks
}

// MenuItem is the menu selection: a mode on a track.
type MenuItem struct {
	GameID  string
	Title   string
	TrackID string
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursor     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for picking a race.
type MenuModel struct {
	items       []MenuItem
	tracks      []TrackChoice
	bestLaps    map[string]float64
	cursor      int
	track       int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem
	openResults bool
}

// NewMenuModel creates a menu listing every registered mode. Personal best
// laps are read from store when it is available.
func NewMenuModel(store *storage.Store, tracks []TrackChoice, cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes))
	for _, g := range modes {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	best := make(map[string]float64, len(tracks))
	if store != nil {
		for _, t := range tracks {
			if lap, err := store.BestLap(t.ID); err == nil && lap > 0 {
				best[t.ID] = lap
			}
		}
	}

	return MenuModel{
		items:     items,
		tracks:    tracks,
		bestLaps:  best,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if len(m.tracks) > 0 {
			m.track = (m.track + len(m.tracks) - 1) % len(m.tracks)
		}

	case MenuActionRight:
		if len(m.tracks) > 0 {
			m.track = (m.track + 1) % len(m.tracks)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			if len(m.tracks) > 0 {
				selected.TrackID = m.tracks[m.track].ID
			}
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T U I   R A C E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a race", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursor.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.tracks) > 0 {
		t := m.tracks[m.track]
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("< %s >", t.Name), m.width))
		b.WriteString("\n")
		info := fmt.Sprintf("%.1f km", t.LengthKm)
		if lap, ok := m.bestLaps[t.ID]; ok {
			info += "  |  best lap " + racer.FormatLapTime(lap)
		}
		b.WriteString(centerText(menuDimStyle.Render(info), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Mode  |  Left/Right: Track  |  Enter: Race  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if the user asked for the results board.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string
	TrackID      string
	Config       core.RuntimeConfig
	WantsResults bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, tracks []TrackChoice, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, tracks, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsResults():
		result.WantsResults = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.TrackID = m.Selected().TrackID
	default:
		result.Quit = true
	}
	return result, nil
}
