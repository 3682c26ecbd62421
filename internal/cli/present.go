package cli

import (
	"context"
	"errors"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/presenter"
	"github.com/matzehuels/podium/pkg/render/compositor"
)

// Surface sizes in pixels used when the topology cannot tell.
var (
	defaultAudienceFrame = image.Pt(1920, 1080)
	defaultNextPreview   = image.Pt(400, 225)
)

// presentOpts holds the command-line flags for the present command.
type presentOpts struct {
	displays displayFlags
	frame    string // audience frame PNG, rewritten after each change
	split    bool   // start in split mode
	noCache  bool   // bypass the raster cache
	noSave   bool   // leave the settings file untouched on exit
}

// presentCommand creates the present command, the interactive presenter
// console.
func (c *CLI) presentCommand() *cobra.Command {
	var opts presentOpts

	cmd := &cobra.Command{
		Use:   "present [file]",
		Short: "Present a PDF or Markdown deck",
		Long: `Start the presenter console for a PDF or Markdown deck (the built-in demo
deck when no file is given).

The audience output goes to the display chosen by the topology; the
console runs in this terminal. With --frame the audience frame, including
the laser pointer and annotations, is written to a PNG after every change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPresent(cmd.Context(), input, &opts, cmd.Flags().Changed("split"))
		},
	}

	opts.displays.register(cmd)
	cmd.Flags().StringVar(&opts.frame, "frame", "", "write the audience frame to this PNG after every change")
	cmd.Flags().BoolVar(&opts.split, "split", false, "start in split mode (overrides the saved setting)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the raster cache")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not save settings on exit")

	return cmd
}

// loadDocument opens input in the background so the console appears at
// once. The demo deck is returned directly.
func (c *CLI) loadDocument(ctx context.Context, input string, noCache bool) (document.Document, *document.Pending, error) {
	if input == "" {
		return document.NewDemo(), nil, nil
	}
	if err := perrors.ValidateDocumentPath(input); err != nil {
		return nil, nil, err
	}
	opts, err := c.documentOptions(noCache)
	if err != nil {
		return nil, nil, err
	}
	p := document.Load(ctx, input, func(context.Context) (document.Document, error) {
		return document.Open(input, opts)
	})
	return p, p, nil
}

func (c *CLI) runPresent(ctx context.Context, input string, opts *presentOpts, splitSet bool) error {
	s, err := c.loadSettings()
	if err != nil {
		return err
	}
	if splitSet {
		s.View.Split = opts.split
	}

	enum, release, err := c.enumerator(opts.displays)
	if err != nil {
		return err
	}
	defer release()
	topo, audienceWin, consoleWin, err := c.topology(ctx, enum, s)
	if err != nil {
		return err
	}

	doc, pending, err := c.loadDocument(ctx, input, opts.noCache)
	if err != nil {
		return err
	}
	defer doc.Close()

	ctrl := presenter.New(doc, presenter.Options{
		Settings: s,
		Topology: topo,
		Audience: audienceWin,
		Console:  consoleWin,
		Logger:   c.Logger,
	})
	ctrl.SetAudienceFullScreen(s.Window.AudienceFullScreen)
	ctrl.SetConsoleFullScreen(s.Window.ConsoleFullScreen)

	audience := audienceWin.Geometry().Size()
	if audience.X <= 0 || audience.Y <= 0 {
		audience = defaultAudienceFrame
	}
	ctrl.Resize(compositor.SurfaceAudience, compositor.Target{Size: audience, Scale: 1})
	ctrl.Resize(compositor.SurfaceNext, compositor.Target{Size: defaultNextPreview, Scale: 1})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewConsoleModel(runCtx, ctrl, audience, opts.frame)
	p := tea.NewProgram(model, tea.WithContext(runCtx), tea.WithAltScreen())

	go func() {
		if err := topo.Run(runCtx, func() { p.Send(displaysChangedMsg{}) }); err != nil && !errors.Is(err, context.Canceled) {
			c.Logger.Debug("display watch stopped", "err", err)
		}
	}()
	if pending != nil {
		go func() {
			select {
			case <-pending.Done():
				p.Send(docLoadedMsg{err: pending.Err()})
			case <-runCtx.Done():
			}
		}()
	}

	_, runErr := p.Run()
	cancel()

	if !opts.noSave {
		if err := c.saveSettings(ctrl.Settings(s)); err != nil {
			c.Logger.Warn("settings not saved", "err", err)
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return runErr
}
