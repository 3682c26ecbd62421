package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/podium/pkg/document"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestChapterListModel(t *testing.T) {
	chapters := []document.Chapter{
		{Title: "Intro", Page: 0},
		{Title: "Method", Page: 4},
		{Title: "Details", Page: 6, Level: 1},
		{Title: "Results", Page: 9},
	}
	m := NewChapterListModel(chapters, 1)
	if m.Cursor != 1 {
		t.Fatalf("cursor starts at %d, want the active chapter", m.Cursor)
	}

	steps := []tea.Msg{
		tea.KeyMsg{Type: tea.KeyDown},
		runeKey("j"),
		runeKey("j"),
		tea.KeyMsg{Type: tea.KeyUp},
	}
	for _, msg := range steps {
		next, _ := m.Update(msg)
		m = next.(ChapterListModel)
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	if !strings.Contains(m.View(), "Details") {
		t.Errorf("view missing chapter:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ChapterListModel)
	if !m.Closed || m.Selected != 2 {
		t.Errorf("enter: closed=%v selected=%d", m.Closed, m.Selected)
	}
}

func TestChapterListModelEscape(t *testing.T) {
	m := NewChapterListModel(nil, -1)
	if !strings.Contains(m.View(), "no outline") {
		t.Errorf("empty view = %q", m.View())
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ChapterListModel)
	if !m.Closed || m.Selected != -1 {
		t.Errorf("enter on empty list: closed=%v selected=%d", m.Closed, m.Selected)
	}
}

func TestChapterListScroll(t *testing.T) {
	chapters := make([]document.Chapter, 30)
	for i := range chapters {
		chapters[i] = document.Chapter{Title: "c", Page: i}
	}
	m := NewChapterListModel(chapters, 25)
	if m.Offset > 25 || m.Offset+m.Height <= 25 {
		t.Errorf("offset %d height %d hides the cursor", m.Offset, m.Height)
	}
}
