package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-racer/internal/storage"
)

func TestResultsBoard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	for _, pos := range []int{2, 1} {
		rec := storage.RaceRecord{Track: "monza", Mode: "race", Position: pos, FieldSize: 5, Prize: 25000, TotalTime: 300, BestLap: 95, Laps: 3, LapTimes: []float64{95}}
		if _, err := store.SaveRaceResult(rec); err != nil {
			t.Fatalf("SaveRaceResult() error: %v", err)
		}
	}

	m := NewResultsModel(store, testTracks(), 120, 30)
	if len(m.results) != 2 || m.results[0].Position != 1 {
		t.Fatalf("results = %+v, expected the win first", m.results)
	}

	view := m.View()
	for _, want := range []string{"RESULTS - Autodromo di Monza", "2 races", "1 wins", "$50,000 won", "1:35.000"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ResultsModel)
	if len(m.results) != 0 || !strings.Contains(m.View(), "No races yet") {
		t.Error("spa should have no results")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ResultsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestResultsBoardWithoutStore(t *testing.T) {
	m := NewResultsModel(nil, testTracks(), 60, 20)
	if !strings.Contains(m.View(), "No results on this track yet") {
		t.Error("empty board should say so")
	}
	next, _ := m.Update(runeKey("q"))
	if !next.(ResultsModel).IsQuitting() {
		t.Error("q should quit")
	}
}
