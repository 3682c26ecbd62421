package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/display/selector"
	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/presenter"
	"github.com/matzehuels/podium/pkg/render/compositor"
	"github.com/matzehuels/podium/pkg/render/sink"
)

// Terminal cells are mapped to pixels when sizing the console preview.
const (
	cellWidth  = 8
	cellHeight = 16
)

// Console styles
var (
	consolePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1)
	consoleLabelStyle   = lipgloss.NewStyle().Foreground(colorGray)
	consoleTimerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	consoleRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	consoleBadgeStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	consoleErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Messages
// =============================================================================

type tickMsg time.Time

// resizeDueMsg fires after the debounce delay of a console resize.
type resizeDueMsg struct{ token uint64 }

// docLoadedMsg reports that an asynchronously opened document finished
// loading.
type docLoadedMsg struct{ err error }

// displaysChangedMsg reports a hotplug event already applied to the
// topology.
type displaysChangedMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// ConsoleModel - the presenter console
// =============================================================================

// ConsoleModel is the bubbletea model of the presenter console. All state
// changes go through the controller on the bubbletea event loop.
type ConsoleModel struct {
	ctx  context.Context
	ctrl *presenter.Controller

	// framePath receives the audience frame as PNG after every change.
	framePath string
	// audience is the audience surface size in pixels.
	audience image.Point

	view   presenter.View
	width  int
	height int

	chapters *ChapterListModel
	// mapCursor is the highlighted display while the display map is open,
	// or -1.
	mapCursor int

	status string
	failed bool
}

// NewConsoleModel returns a console driving ctrl.
func NewConsoleModel(ctx context.Context, ctrl *presenter.Controller, audience image.Point, framePath string) *ConsoleModel {
	return &ConsoleModel{
		ctx:       ctx,
		ctrl:      ctrl,
		framePath: framePath,
		audience:  audience,
		view:      ctrl.View(),
		mapCursor: -1,
	}
}

func (m *ConsoleModel) Init() tea.Cmd {
	m.refresh()
	return tick()
}

func (m *ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.chapters != nil {
			next, _ := m.chapters.Update(msg)
			cl := next.(ChapterListModel)
			m.chapters = &cl
		}
		target := compositor.Target{Size: consolePreviewSize(msg.Width, msg.Height), Scale: 1}
		if token, ok := m.ctrl.Resize(compositor.SurfaceConsole, target); ok {
			return m, tea.Tick(m.ctrl.DebounceDelay(), func(time.Time) tea.Msg {
				return resizeDueMsg{token: token}
			})
		}

	case resizeDueMsg:
		if m.ctrl.ResizeDue(msg.token) {
			m.refresh()
		}

	case tickMsg:
		m.view = m.ctrl.View()
		return m, tick()

	case docLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus("Loaded %s", m.ctrl.Document().Title())
		m.refresh()

	case displaysChangedMsg:
		m.view = m.ctrl.View()
		if m.view.Visibility != display.ShowMap {
			m.mapCursor = -1
		}
		m.setStatus("Displays changed")
	}
	return m, nil
}

func (m *ConsoleModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.chapters != nil {
		next, _ := m.chapters.Update(msg)
		cl := next.(ChapterListModel)
		m.chapters = &cl
		if cl.Closed {
			m.chapters = nil
			if cl.Selected >= 0 && m.ctrl.ActivateChapter(cl.Selected) {
				m.refresh()
			}
		}
		return nil
	}
	if m.mapCursor >= 0 {
		m.handleMapKey(msg.String())
		return nil
	}

	switch msg.String() {
	case "g":
		cl := NewChapterListModel(m.ctrl.Chapters(), m.ctrl.ActiveChapter())
		if m.height > 0 {
			cl.Height = max(m.height-10, 5)
		}
		m.chapters = &cl
		return nil
	case "m":
		if m.view.Visibility == display.ShowMap {
			m.mapCursor = max(m.view.Assignment.Audience, 0)
		}
		return nil
	}

	changed, quit := m.ctrl.Handle(m.ctx, presenter.ActionFor(msg.String()))
	if quit {
		return tea.Quit
	}
	if changed {
		m.refresh()
	}
	return nil
}

// handleMapKey moves the display map cursor and assigns surfaces.
func (m *ConsoleModel) handleMapKey(key string) {
	n := len(m.displays())
	switch key {
	case "left", "h", "up", "k":
		if m.mapCursor > 0 {
			m.mapCursor--
		}
	case "right", "l", "down", "j":
		if m.mapCursor < n-1 {
			m.mapCursor++
		}
	case "a", "c":
		target := selector.Audience
		if key == "c" {
			target = selector.Console
		}
		a, err := m.ctrl.ApplySelection(m.ctx, selector.Change{Target: target, Index: m.mapCursor})
		if err != nil {
			m.setError(err)
			return
		}
		m.setStatus("Audience on %d, console on %d", a.Audience, a.Console)
		m.refresh()
	case "esc", "m", "q":
		m.mapCursor = -1
	}
}

func (m *ConsoleModel) displays() []display.Descriptor {
	if t := m.ctrl.Topology(); t != nil {
		return t.Displays()
	}
	return nil
}

// refresh renders every surface and rewrites the audience frame.
func (m *ConsoleModel) refresh() {
	view, err := m.ctrl.Render(m.ctx)
	m.view = view
	if err != nil {
		m.setError(err)
		return
	}
	if m.framePath == "" || view.Audience == nil {
		return
	}
	frame := m.ctrl.AudienceFrame(m.audience, true)
	data, err := sink.RenderPNG(frame)
	if err == nil {
		err = os.WriteFile(m.framePath, data, 0o644)
	}
	if err != nil {
		m.setError(perrors.Wrap(perrors.ErrCodeInternal, err, "write audience frame"))
	}
}

func (m *ConsoleModel) setStatus(format string, args ...any) {
	m.status, m.failed = fmt.Sprintf(format, args...), false
}

func (m *ConsoleModel) setError(err error) {
	m.status, m.failed = perrors.UserMessage(err), true
}

// consolePreviewSize maps the terminal size to the console preview target:
// the left half of the screen below the header.
func consolePreviewSize(cols, rows int) image.Point {
	return image.Pt(max(cols/2, 1)*cellWidth, max(rows-6, 1)*cellHeight)
}

// =============================================================================
// View
// =============================================================================

func (m *ConsoleModel) View() string {
	if m.chapters != nil {
		return m.chapters.View()
	}
	v := m.view

	var b strings.Builder
	b.WriteString(m.header(v))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.slidePanel(v), " ", m.sidePanel(v)))
	b.WriteString("\n")
	if m.status != "" {
		style := StyleDim
		if m.failed {
			style = consoleErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help(v))
	return b.String()
}

func (m *ConsoleModel) header(v presenter.View) string {
	parts := []string{StyleTitle.Render(v.Title)}
	switch v.Status {
	case document.StatusReady:
		parts = append(parts, StyleNumber.Render(fmt.Sprintf("%d/%d", v.Page+1, v.PageCount)))
	case document.StatusLoading:
		parts = append(parts, consoleBadgeStyle.Render("loading…"))
	default:
		parts = append(parts, consoleErrorStyle.Render(v.Status.String()))
	}
	parts = append(parts, consoleLabelStyle.Render("mode "+v.Mode.String()))
	if v.Split {
		parts = append(parts, consoleBadgeStyle.Render("split"))
	}
	if m.ctrl.AspectLock().Locked() {
		parts = append(parts, consoleBadgeStyle.Render("aspect lock"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func (m *ConsoleModel) slidePanel(v presenter.View) string {
	var b strings.Builder
	b.WriteString(consoleLabelStyle.Render("Current"))
	b.WriteString("\n")
	b.WriteString(describeSlide(v.Console))
	b.WriteString("\n\n")
	b.WriteString(consoleLabelStyle.Render("Notes"))
	b.WriteString("\n")
	if v.Notes != nil {
		b.WriteString(describeSlide(v.Notes))
	} else {
		b.WriteString(v.NotesText)
	}
	b.WriteString("\n\n")
	b.WriteString(consoleLabelStyle.Render("Next"))
	b.WriteString("\n")
	if v.NextEnd {
		b.WriteString(StyleDim.Render("End of presentation"))
	} else {
		b.WriteString(describeSlide(v.Next))
	}
	style := consolePanelStyle
	if m.width > 0 {
		style = style.Width(max(m.width/2-2, 20))
	}
	return style.Render(b.String())
}

func (m *ConsoleModel) sidePanel(v presenter.View) string {
	var b strings.Builder

	timer := consoleTimerStyle
	if v.TimerRunning {
		timer = consoleRunningStyle
	}
	b.WriteString(consoleLabelStyle.Render("Clock ") + StyleValue.Render(v.Clock))
	b.WriteString("\n")
	b.WriteString(consoleLabelStyle.Render("Timer ") + timer.Render(v.Timer))
	b.WriteString("\n\n")

	if len(v.Chapters) > 0 {
		b.WriteString(consoleLabelStyle.Render("Chapter "))
		if v.Chapter >= 0 {
			b.WriteString(StyleHighlight.Render(v.Chapters[v.Chapter].Title))
		} else {
			b.WriteString(StyleDim.Render("—"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.displayPanel(v))
	return consolePanelStyle.Render(b.String())
}

func (m *ConsoleModel) displayPanel(v presenter.View) string {
	ds := m.displays()
	if len(ds) == 0 {
		return StyleDim.Render("No display management")
	}
	var b strings.Builder
	b.WriteString(consoleLabelStyle.Render("Displays"))
	b.WriteString("\n")
	for _, d := range ds {
		cursor := "  "
		if d.Index == m.mapCursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d %s", cursor, d.Index, d.Name)
		if hosts := surfacesOn(d.Index, v.Assignment); hosts != "" {
			line += " " + StyleHighlight.Render("["+hosts+"]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	switch {
	case m.mapCursor >= 0:
		b.WriteString(StyleDim.Render("a audience here  c console here  esc done"))
	case v.Visibility == display.ShowSwap:
		b.WriteString(StyleDim.Render("s swap displays"))
	case v.Visibility == display.ShowMap:
		b.WriteString(StyleDim.Render("m reassign displays"))
	}
	return b.String()
}

func (m *ConsoleModel) help(v presenter.View) string {
	var parts []string
	for _, bnd := range presenter.Bindings {
		if bnd.Action == presenter.ActionSwapDisplays && v.Visibility != display.ShowSwap {
			continue
		}
		parts = append(parts, styleCommand.Render(keyLabel(bnd.Keys[0]))+" "+StyleDim.Render(bnd.Action.String()))
	}
	parts = append(parts, styleCommand.Render("g")+" "+StyleDim.Render("chapters"))
	return strings.Join(parts, "  ")
}

// keyLabel shortens bubbletea key names for the help line.
func keyLabel(k string) string {
	switch k {
	case "right":
		return "→"
	case "left":
		return "←"
	case " ":
		return "space"
	}
	return k
}

// describeSlide summarizes a rendered slide for the terminal.
func describeSlide(s *compositor.Slide) string {
	if s == nil || s.Image == nil {
		return StyleDim.Render("not rendered")
	}
	size := s.Image.Bounds().Size()
	return fmt.Sprintf("Slide %d  %s", s.Page+1, StyleDim.Render(fmt.Sprintf("%dx%d px", size.X, size.Y)))
}
