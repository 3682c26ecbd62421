package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/podium/pkg/document"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ChapterListModel - Interactive chapter selection
// =============================================================================

// ChapterListModel is the bubbletea model for jumping to a chapter. It is
// embedded in the presenter console while the chapter picker is open.
type ChapterListModel struct {
	Chapters []document.Chapter
	Active   int // chapter containing the current page, or -1
	Cursor   int
	Selected int // chosen chapter, or -1
	Closed   bool
	Height   int
	Offset   int
}

// NewChapterListModel creates a chapter list with the cursor on the active
// chapter.
func NewChapterListModel(chapters []document.Chapter, active int) ChapterListModel {
	m := ChapterListModel{
		Chapters: chapters,
		Active:   active,
		Selected: -1,
		Height:   15,
	}
	if active >= 0 && active < len(chapters) {
		m.Cursor = active
	}
	m.scroll()
	return m
}

func (m ChapterListModel) Init() tea.Cmd {
	return nil
}

func (m ChapterListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "g":
			m.Closed = true
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Chapters)-1 {
				m.Cursor++
			}
		case "home":
			m.Cursor = 0
		case "end":
			m.Cursor = max(len(m.Chapters)-1, 0)
		case "enter":
			if len(m.Chapters) > 0 {
				m.Selected = m.Cursor
			}
			m.Closed = true
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ChapterListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ChapterListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Chapters"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ jump  esc close"))
	b.WriteString("\n\n")

	if len(m.Chapters) == 0 {
		b.WriteString(listDimStyle.Render("  This document has no outline."))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Chapters))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		ch := m.Chapters[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		title := strings.Repeat("  ", ch.Level) + ch.Title
		rows = append(rows, []string{cursor, title, fmt.Sprintf("%d", ch.Page+1)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Chapter", "Page").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case idx == m.Active:
				return listNormalStyle.Foreground(colorGreen)
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Chapters))))
	return b.String()
}
