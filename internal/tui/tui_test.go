package tui

import (
	"aineoo/internal/article"
	"aineoo/internal/assets"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Expected model, got %T", next)
	}
	return nm, cmd
}

func TestNavigation(t *testing.T) {
	m := InitialModel("out", []assets.Summary{{Slug: "a"}, {Slug: "b"}})

	m, _ = update(t, m, key("up"))
	if m.selectedIdx != 0 {
		t.Errorf("Expected selection to stay at 0, got %d", m.selectedIdx)
	}
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	if m.selectedIdx != 1 {
		t.Errorf("Expected selection clamped to 1, got %d", m.selectedIdx)
	}

	m, cmd := update(t, m, key("q"))
	if !m.quitting || cmd == nil {
		t.Error("Expected q to quit")
	}
}

func TestRescore(t *testing.T) {
	out := t.TempDir()
	a, err := article.BuildRuleBased("企业如何落地AI客服", "AI客服")
	if err != nil {
		t.Fatalf("BuildRuleBased failed: %v", err)
	}
	d := assets.Open(out, "ai-kefu")
	if err := d.WriteArticle(a); err != nil {
		t.Fatalf("WriteArticle failed: %v", err)
	}

	m := InitialModel(out, []assets.Summary{{Slug: "ai-kefu", Title: a.Title}})
	m, cmd := update(t, m, key("r"))
	if cmd == nil {
		t.Fatal("Expected a re-score command")
	}

	msg := cmd()
	m, _ = update(t, m, msg)
	report, ok := m.reports["ai-kefu"]
	if !ok {
		t.Fatalf("Expected report to be stored, status %q", m.status)
	}
	if len(report.Checks) != 12 {
		t.Errorf("Expected 12 checks, got %d", len(report.Checks))
	}
	if !strings.Contains(m.View(), "Quality") {
		t.Error("Expected detail pane to show the quality report")
	}
}

func TestRescore_Missing(t *testing.T) {
	m := InitialModel(t.TempDir(), []assets.Summary{{Slug: "gone"}})
	m, _ = update(t, m, rescoredMsg{slug: "gone", err: errors.New("boom")})
	if !strings.Contains(m.status, "Re-score failed") {
		t.Errorf("Expected failure status, got %q", m.status)
	}
}

func TestView_Empty(t *testing.T) {
	m := InitialModel("out", nil)
	view := m.View()
	if !strings.Contains(view, "No articles in out") {
		t.Errorf("Expected empty message, got %s", view)
	}
	if !strings.Contains(view, "Nothing selected") {
		t.Error("Expected empty detail pane")
	}
}

