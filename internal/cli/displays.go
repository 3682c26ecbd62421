package cli

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/display/selector"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/render/sink"
	"github.com/matzehuels/podium/pkg/settings"
)

// fallbackDisplay is used when no display server answers and no
// --display flag was given.
const fallbackDisplay = "default=1920x1080+0+0"

// displayFlags selects where displays come from.
type displayFlags struct {
	specs []string // name=WxH+X+Y, one per display
}

func (f *displayFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.specs, "display", nil, "use a fixed display name=WxH+X+Y instead of asking X11 (repeatable)")
}

// enumerator returns the display source and a function releasing it.
// Without --display flags it asks the X server, falling back to a single
// 1920x1080 display when none is reachable.
func (c *CLI) enumerator(f displayFlags) (display.Enumerator, func(), error) {
	if len(f.specs) > 0 {
		e, err := display.ParseStatic(f.specs)
		return e, func() {}, err
	}
	x, err := display.NewX11Enumerator(c.Logger)
	if err == nil {
		return x, func() { x.Close() }, nil
	}
	c.Logger.Warn("X11 unavailable, assuming one display", "err", err)
	e, err := display.ParseStatic([]string{fallbackDisplay})
	return e, func() {}, err
}

// topology enumerates the displays and places two virtual windows the way
// the presenter would, honoring the remembered display identities.
func (c *CLI) topology(ctx context.Context, enum display.Enumerator, s settings.Settings) (*display.Topology, *display.VirtualWindow, *display.VirtualWindow, error) {
	audience := display.NewVirtualWindow("audience", image.Rectangle{})
	console := display.NewVirtualWindow("console", image.Rectangle{})
	topo := display.NewTopology(enum, audience, console, display.Options{
		ConsoleSize: s.ConsoleSize(),
		Logger:      c.Logger,
	})
	if err := topo.Refresh(ctx); err != nil {
		return nil, nil, nil, err
	}
	if _, err := topo.Place(ctx, s.Preferences()); err != nil {
		return nil, nil, nil, err
	}
	return topo, audience, console, nil
}

// displaysOpts holds the command-line flags for the displays command.
type displaysOpts struct {
	displays displayFlags
	mapPath  string // write the display map PNG here
	mapSize  string // display map size, WxH
}

// displaysCommand creates the displays command.
func (c *CLI) displaysCommand() *cobra.Command {
	opts := displaysOpts{mapSize: "480x300"}

	cmd := &cobra.Command{
		Use:   "displays",
		Short: "List displays and where the audience and console would go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDisplays(cmd.Context(), &opts)
		},
	}

	opts.displays.register(cmd)
	cmd.Flags().StringVar(&opts.mapPath, "map", "", "write the display map as PNG")
	cmd.Flags().StringVar(&opts.mapSize, "map-size", opts.mapSize, "display map size WxH")

	return cmd
}

func (c *CLI) runDisplays(ctx context.Context, opts *displaysOpts) error {
	s, err := c.loadSettings()
	if err != nil {
		return err
	}
	enum, release, err := c.enumerator(opts.displays)
	if err != nil {
		return err
	}
	defer release()

	topo, _, _, err := c.topology(ctx, enum, s)
	if err != nil {
		return err
	}
	ds := topo.Displays()
	a := topo.Assignment()

	fmt.Println(displayTable(ds, a))
	printKeyValue("Visibility", describeVisibility(topo.Visibility()))

	if opts.mapPath == "" {
		return nil
	}
	size, err := parseSize(opts.mapSize)
	if err != nil {
		return err
	}
	w := selector.New(size)
	w.SetTopology(ds, a)
	img, err := w.Paint()
	if err != nil {
		return err
	}
	data, err := sink.RenderPNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.mapPath, data, 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "write %s", opts.mapPath)
	}
	printFile(opts.mapPath)
	return nil
}

// displayTable renders ds with the surfaces each one hosts.
func displayTable(ds []display.Descriptor, a display.Assignment) string {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Index),
			d.Name,
			display.FormatGeometry(d.Geometry),
			surfacesOn(d.Index, a),
		})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Display", "Geometry", "Hosts").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// surfacesOn names the surfaces placed on display i.
func surfacesOn(i int, a display.Assignment) string {
	switch {
	case a.Audience == i && a.Console == i:
		return "audience, console"
	case a.Audience == i:
		return "audience"
	case a.Console == i:
		return "console"
	}
	return ""
}

// describeVisibility explains the display control shown for the topology.
func describeVisibility(v display.Visibility) string {
	switch v {
	case display.ShowSwap:
		return "swap button (press s to exchange the two displays)"
	case display.ShowMap:
		return "display map (drag the markers to reassign)"
	default:
		return "no display controls (single display)"
	}
}
