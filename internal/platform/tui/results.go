package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 24
	maxResults         = 50
)

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTrack, k.PrevTrack, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTrack, k.PrevTrack},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextTrack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev track"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	resultsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	resultsDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	resultsBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// ResultsModel shows the best finishes on each track.
type ResultsModel struct {
	tracks    []TrackChoice
	cursor    int
	store     *storage.Store
	results   []storage.RaceRecord
	stats     *storage.TrackStats
	table     table.Model
	help      help.Model
	keys      ResultsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewResultsModel creates a results board over tracks.
func NewResultsModel(store *storage.Store, tracks []TrackChoice, width, height int) ResultsModel {
	m := ResultsModel{
		tracks: tracks,
		store:  store,
		keys:   DefaultResultsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ResultsModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Pos", Width: 5},
		{Title: "Time", Width: 10},
		{Title: "Best lap", Width: 10},
		{Title: "Prize", Width: 10},
		{Title: "Mode", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current track's results and stats.
func (m *ResultsModel) load() {
	m.results = nil
	m.stats = nil
	if m.store != nil && len(m.tracks) > 0 {
		id := m.tracks[m.cursor].ID
		if res, err := m.store.TopResults(id, maxResults); err == nil {
			m.results = res
		}
		if stats, err := m.store.GetTrackStats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(resultRows(m.results))
	m.table.GotoTop()
}

func resultRows(results []storage.RaceRecord) []table.Row {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("P%d/%d", r.Position, r.FieldSize),
			racer.FormatLapTime(r.TotalTime),
			racer.FormatLapTime(r.BestLap),
			racer.FormatMoney(r.Prize),
			r.Mode,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the results board.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTrack):
			if len(m.tracks) > 0 {
				m.cursor = (m.cursor + 1) % len(m.tracks)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevTrack):
			if len(m.tracks) > 0 {
				m.cursor = (m.cursor + len(m.tracks) - 1) % len(m.tracks)
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(resultRows(m.results))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "RESULTS"
	if len(m.tracks) > 0 {
		title = "RESULTS - " + m.tracks[m.cursor].Name
	}
	b.WriteString(centerText(resultsTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(resultsDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	body := resultsBoxStyle.Render(m.tableContent())
	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.trackTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	b.WriteString(resultsDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ResultsModel) statsLine() string {
	s := m.stats
	if s == nil || s.Races == 0 {
		return "No races yet"
	}
	line := fmt.Sprintf("%d races  |  %d wins  |  %d podiums  |  best P%d  |  %s won",
		s.Races, s.Wins, s.Podiums, s.BestPosition, racer.FormatMoney(int(s.TotalPrize)))
	if s.BestLap > 0 {
		line += "  |  best lap " + racer.FormatLapTime(s.BestLap)
	}
	return line
}

func (m ResultsModel) sidebar() string {
	style := resultsBoxStyle.Width(sidebarWidth)

	var sb strings.Builder
	sb.WriteString("Tracks\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, t := range m.tracks {
		name := t.Name
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.cursor {
			sb.WriteString(resultsTitleStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (m ResultsModel) trackTabs() string {
	if len(m.tracks) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >", m.tracks[m.cursor].Name)
}

func (m ResultsModel) tableContent() string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No results on this track yet.\nFinish a race to set a time!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants the menu again.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board. It returns true when the user went
// back to the menu.
func RunResults(store *storage.Store, tracks []TrackChoice, width, height int) (bool, error) {
	p := tea.NewProgram(NewResultsModel(store, tracks, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
