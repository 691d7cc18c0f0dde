package cli

import (
	"math/big"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/posetrank/posetrank/pkg/order/rank"
)

func viewerResult() *rank.Result {
	return &rank.Result{
		Labels:     []string{"a", "b"},
		Extensions: big.NewInt(1),
		RankProb: [][]float64{
			{1, 0},
			{0, 1},
		},
		RelativeRank: [][]float64{
			{0, 0},
			{1, 0},
		},
		ExpectedRank: []float64{1, 2},
		RankSpread:   []float64{0, 0},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResultModelNavigation(t *testing.T) {
	m := NewResultModel(viewerResult())

	next, _ := m.Update(keyMsg("j"))
	m = next.(ResultModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	// Cursor is clamped at the last element.
	next, _ = m.Update(keyMsg("j"))
	m = next.(ResultModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(ResultModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Pane cycles forward and wraps backward.
	next, _ = m.Update(keyMsg("l"))
	m = next.(ResultModel)
	if m.Pane != paneRelative {
		t.Errorf("Pane = %d, want %d", m.Pane, paneRelative)
	}
	next, _ = m.Update(keyMsg("h"))
	m = next.(ResultModel)
	if m.Pane != paneRankProb {
		t.Errorf("Pane = %d, want %d", m.Pane, paneRankProb)
	}
	next, _ = m.Update(keyMsg("h"))
	m = next.(ResultModel)
	if m.Pane != paneSummary {
		t.Errorf("Pane = %d, want %d", m.Pane, paneSummary)
	}
}

func TestResultModelQuit(t *testing.T) {
	m := NewResultModel(viewerResult())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestResultModelView(t *testing.T) {
	m := NewResultModel(viewerResult())

	view := m.View()
	if !strings.Contains(view, "Rank Statistics") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "a") || !strings.Contains(view, "b") {
		t.Errorf("view missing element labels:\n%s", view)
	}

	m.Pane = paneSummary
	view = m.View()
	if !strings.Contains(view, "Expected rank") {
		t.Errorf("summary pane missing header:\n%s", view)
	}
}
