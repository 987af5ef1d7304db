package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

func testTracks() []TrackChoice {
	return []TrackChoice{
		{ID: "monza", Name: "Autodromo di Monza", LengthKm: 5.793},
		{ID: "spa", Name: "Spa-Francorchamps", LengthKm: 7.004},
	}
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm
}

func TestTrackChoices(t *testing.T) {
	cfg := config.DefaultRaceConfig()
	tracks := TrackChoices(cfg)
	if len(tracks) != len(cfg.Tracks) {
		t.Fatalf("got %d tracks, expected %d", len(tracks), len(cfg.Tracks))
	}
	if tracks[0].ID != cfg.Tracks[0].ID || tracks[0].Name != cfg.Tracks[0].Name {
		t.Errorf("tracks[0] = %+v", tracks[0])
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testTracks(), core.DefaultConfig())
	if len(m.items) != 2 || m.items[0].GameID != "endurance" || m.items[1].GameID != "race" {
		t.Fatalf("items = %+v, expected endurance and race", m.items)
	}

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	view := m.View()
	if !strings.Contains(view, "Grand Prix") || !strings.Contains(view, "Spa-Francorchamps") {
		t.Errorf("View() = %q", view)
	}

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if sel.GameID != "race" || sel.TrackID != "spa" {
		t.Errorf("Selected() = %+v, expected race on spa", *sel)
	}
}

func TestMenuResultsAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testTracks(), core.DefaultConfig())
	if r := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab}); !r.WantsResults() {
		t.Error("tab should open the results board")
	}
	q := menuUpdate(t, m, runeKey("q"))
	if !q.IsQuitting() || q.View() != "" {
		t.Error("q should quit")
	}

	resized := menuUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cfg := resized.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v, expected the new size", cfg)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("abc", 9); got != "   abc" {
		t.Errorf("centerText() = %q, expected %q", got, "   abc")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText() = %q, expected the text unchanged", got)
	}
}
