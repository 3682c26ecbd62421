package cli

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/document"
	"github.com/matzehuels/podium/pkg/presenter"
	"github.com/matzehuels/podium/pkg/render/compositor"
	"github.com/matzehuels/podium/pkg/render/overlay"
)

// newTestConsole builds a console over the demo deck and the given
// displays.
func newTestConsole(t *testing.T, specs ...string) (*ConsoleModel, string) {
	t.Helper()
	ctx := context.Background()

	enum, err := display.ParseStatic(specs)
	if err != nil {
		t.Fatal(err)
	}
	audience := display.NewVirtualWindow("audience", image.Rectangle{})
	console := display.NewVirtualWindow("console", image.Rectangle{})
	topo := display.NewTopology(enum, audience, console, display.Options{})
	if err := topo.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := topo.Place(ctx, display.Preferences{}); err != nil {
		t.Fatal(err)
	}

	ctrl := presenter.New(document.NewDemo(), presenter.Options{Topology: topo, Audience: audience, Console: console})
	size := image.Pt(320, 180)
	ctrl.Resize(compositor.SurfaceAudience, compositor.Target{Size: size, Scale: 1})
	ctrl.Resize(compositor.SurfaceConsole, compositor.Target{Size: size, Scale: 1})
	ctrl.Resize(compositor.SurfaceNext, compositor.Target{Size: image.Pt(160, 90), Scale: 1})

	frame := filepath.Join(t.TempDir(), "frame.png")
	m := NewConsoleModel(ctx, ctrl, size, frame)
	m.Init()
	return m, frame
}

func press(m *ConsoleModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestConsoleNavigation(t *testing.T) {
	m, frame := newTestConsole(t, "a=1920x1080+0+0", "b=1920x1080+1920+0")
	if m.view.Audience == nil {
		t.Fatal("Init did not render")
	}
	if _, err := os.Stat(frame); err != nil {
		t.Fatalf("audience frame not written: %v", err)
	}

	press(m, tea.KeyMsg{Type: tea.KeyRight}, runeKey(" "), tea.KeyMsg{Type: tea.KeyLeft})
	if m.view.Page != 1 {
		t.Errorf("page = %d, want 1", m.view.Page)
	}
	if !m.view.TimerRunning {
		t.Error("timer not started by next")
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	if !m.view.NextEnd {
		t.Error("last page still has a next slide")
	}
	if !strings.Contains(m.View(), "End of presentation") {
		t.Errorf("view does not announce the end:\n%s", m.View())
	}

	press(m, runeKey("l"))
	if m.view.Mode != overlay.ModeLaser {
		t.Errorf("mode = %v, want laser", m.view.Mode)
	}
}

func TestConsoleQuit(t *testing.T) {
	m, _ := newTestConsole(t, "a=1920x1080+0+0")
	cmd := press(m, runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestConsoleChapters(t *testing.T) {
	m, _ := newTestConsole(t, "a=1920x1080+0+0")
	press(m, runeKey("g"))
	if m.chapters == nil {
		t.Fatal("g did not open the chapter list")
	}
	if !strings.Contains(m.View(), "Pointing") {
		t.Errorf("chapter list missing a chapter:\n%s", m.View())
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.chapters != nil {
		t.Error("chapter list still open")
	}
	if m.view.Page != 2 || m.view.Chapter != 1 {
		t.Errorf("page %d chapter %d after jump, want 2 and 1", m.view.Page, m.view.Chapter)
	}
}

func TestConsoleSplitShowsNotes(t *testing.T) {
	m, _ := newTestConsole(t, "a=1920x1080+0+0")
	if !strings.Contains(m.View(), "Notes for Slide 1") && !strings.Contains(m.View(), "speaker half") {
		t.Errorf("notes text missing:\n%s", m.View())
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.view.Split || m.view.Notes == nil {
		t.Error("split mode did not produce a notes slide")
	}
}

func TestConsoleDisplayMap(t *testing.T) {
	m, _ := newTestConsole(t, "a=1920x1080+0+0", "b=1920x1080+1920+0", "c=1920x1080+3840+0")
	if m.view.Assignment != (display.Assignment{Audience: 1, Console: 0}) {
		t.Fatalf("initial assignment = %+v", m.view.Assignment)
	}

	press(m, runeKey("m"))
	if m.mapCursor != 1 {
		t.Fatalf("map cursor = %d, want the audience display", m.mapCursor)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight}, runeKey("a"))
	if got := m.view.Assignment; got != (display.Assignment{Audience: 2, Console: 0}) {
		t.Errorf("assignment after moving audience = %+v", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, runeKey("a"))
	if got := m.view.Assignment; got != (display.Assignment{Audience: 0, Console: 2}) {
		t.Errorf("collision not resolved: %+v", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mapCursor != -1 {
		t.Error("esc did not close the map")
	}
}

func TestConsoleResizeDebounce(t *testing.T) {
	m, _ := newTestConsole(t, "a=1920x1080+0+0")
	cmd := press(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd == nil {
		t.Fatal("resize did not schedule a render")
	}
	due, ok := cmd().(resizeDueMsg)
	if !ok {
		t.Fatal("resize command did not produce resizeDueMsg")
	}
	press(m, due)
	want := consolePreviewSize(100, 40)
	if got := m.view.Console.Image.Bounds().Size(); got.X > want.X || got.Y > want.Y {
		t.Errorf("console raster %v exceeds the preview %v", got, want)
	}
}

func TestConsolePreviewSize(t *testing.T) {
	if got := consolePreviewSize(120, 40); got != image.Pt(480, 544) {
		t.Errorf("consolePreviewSize = %v", got)
	}
	if got := consolePreviewSize(0, 0); got.X <= 0 || got.Y <= 0 {
		t.Errorf("degenerate terminal gave %v", got)
	}
}
