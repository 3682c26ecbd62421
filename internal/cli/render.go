package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/document"
	perrors "github.com/matzehuels/podium/pkg/errors"
	"github.com/matzehuels/podium/pkg/presenter"
	"github.com/matzehuels/podium/pkg/render/compositor"
	"github.com/matzehuels/podium/pkg/render/overlay"
	"github.com/matzehuels/podium/pkg/render/sink"
)

const (
	formatPNG = "png"
	formatPDF = "pdf"

	defaultAudienceSize = "1920x1080"
	defaultConsoleSize  = "800x450"
	defaultNextSize     = "400x225"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output directory
	formats  []string // output formats: "png", "pdf"
	page     int      // 1-based page number
	split    bool     // treat the right half of each page as notes
	audience string   // audience surface size, WxH
	console  string   // console preview size, WxH
	next     string   // next-slide preview size, WxH
	scale    float64  // device pixels per logical pixel
	mode     string   // overlay mode painted on the audience frame
	pointer  string   // pointer position in the audience frame, X,Y
	noCache  bool     // bypass the raster cache
}

// renderCommand creates the render command, which writes every surface of
// one page to image files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		output:   ".",
		page:     1,
		audience: defaultAudienceSize,
		console:  defaultConsoleSize,
		next:     defaultNextSize,
		scale:    1,
		mode:     overlay.ModeDefault.String(),
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the audience, console, notes and next-slide surfaces of one page",
		Long: `Render one page the way the presenter would show it and write each surface
to a file. Without a file the built-in demo deck is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s) for the audience frame: png (default), pdf (comma-separated)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", opts.page, "page number (1-based)")
	cmd.Flags().BoolVar(&opts.split, "split", false, "split mode: right half of each page holds notes")
	cmd.Flags().StringVar(&opts.audience, "audience", opts.audience, "audience surface size WxH")
	cmd.Flags().StringVar(&opts.console, "console", opts.console, "console preview size WxH")
	cmd.Flags().StringVar(&opts.next, "next", opts.next, "next-slide preview size WxH")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "device pixel ratio")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "overlay mode: normal, laser, magnifier")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "pointer position X,Y in the audience frame")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the raster cache")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatPNG: true, formatPDF: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'png' or 'pdf')", f)
		}
	}
	return nil
}

// parseMode maps a --mode value to the overlay change that selects it.
func parseMode(s string) (overlay.Change, error) {
	switch strings.ToLower(s) {
	case "", "normal", "default":
		return overlay.ChangeNormal, nil
	case "laser":
		return overlay.ChangeLaser, nil
	case "magnifier", "zoom":
		return overlay.ChangeToggleMagnifier, nil
	default:
		return overlay.ChangeNormal, fmt.Errorf("invalid mode: %s (must be 'normal', 'laser' or 'magnifier')", s)
	}
}

// openDocument opens input, or the demo deck when input is empty.
func (c *CLI) openDocument(input string, noCache bool) (document.Document, error) {
	if input == "" {
		return document.NewDemo(), nil
	}
	if err := perrors.ValidateDocumentPath(input); err != nil {
		return nil, err
	}
	opts, err := c.documentOptions(noCache)
	if err != nil {
		return nil, err
	}
	return document.Open(input, opts)
}

// renderSizes holds the parsed surface flags.
type renderSizes struct {
	audience, console, next image.Point
}

func (o *renderOpts) sizes() (renderSizes, error) {
	var s renderSizes
	var err error
	if s.audience, err = parseSize(o.audience); err != nil {
		return s, err
	}
	if s.console, err = parseSize(o.console); err != nil {
		return s, err
	}
	if s.next, err = parseSize(o.next); err != nil {
		return s, err
	}
	return s, nil
}

// runRender drives a presenter controller through one page and writes the
// resulting surfaces.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	sizes, err := opts.sizes()
	if err != nil {
		return err
	}
	change, err := parseMode(opts.mode)
	if err != nil {
		return err
	}
	s, err := c.loadSettings()
	if err != nil {
		return err
	}

	doc, err := c.openDocument(input, opts.noCache)
	if err != nil {
		return err
	}
	defer doc.Close()
	if err := perrors.ValidatePageIndex(opts.page-1, doc.PageCount()); err != nil {
		return err
	}

	ctrl := presenter.New(doc, presenter.Options{Settings: s, Logger: c.Logger})
	ctrl.GoTo(opts.page - 1)
	ctrl.SetSplit(opts.split)
	ctrl.SetOverlayMode(change)
	ctrl.Resize(compositor.SurfaceAudience, compositor.Target{Size: sizes.audience, Scale: opts.scale})
	ctrl.Resize(compositor.SurfaceConsole, compositor.Target{Size: sizes.console, Scale: opts.scale})
	ctrl.Resize(compositor.SurfaceNext, compositor.Target{Size: sizes.next, Scale: opts.scale})
	if opts.pointer != "" {
		p, err := parsePoint(opts.pointer)
		if err != nil {
			return err
		}
		ctrl.PointerMove(p)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering page %d of %s...", opts.page, doc.Title()))
	spinner.Start()
	defer spinner.Stop()
	view, err := ctrl.Render(ctx)
	if err != nil {
		return err
	}
	frame := ctrl.AudienceFrame(geometryPhysical(sizes.audience, opts.scale), true)

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "create %s", opts.output)
	}
	base := filepath.Join(opts.output, outputStem(input, opts.page))

	var written []string
	for _, f := range opts.formats {
		path := base + "-audience." + f
		spinner.Update("Writing %s", filepath.Base(path))
		if err := writeSurface(path, f, frame, view.Title); err != nil {
			return err
		}
		written = append(written, path)
	}
	for _, out := range []struct {
		name  string
		slide *compositor.Slide
	}{
		{"console", view.Console},
		{"notes", view.Notes},
		{"next", view.Next},
	} {
		if out.slide == nil || out.slide.Image == nil {
			continue
		}
		path := base + "-" + out.name + "." + formatPNG
		spinner.Update("Writing %s", filepath.Base(path))
		if err := writeSurface(path, formatPNG, out.slide.Image, view.Title); err != nil {
			return err
		}
		written = append(written, path)
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Rendered page %d/%d", view.Page+1, view.PageCount))
	for _, p := range written {
		printFile(p)
	}
	if view.NextEnd {
		printDetail("End of presentation: no next slide")
	} else if view.Notes == nil {
		printDetail("%s", view.NotesText)
	}
	return nil
}

// geometryPhysical converts a logical surface size to device pixels.
func geometryPhysical(size image.Point, scale float64) image.Point {
	return compositor.Target{Size: size, Scale: scale}.Physical()
}

// outputStem names output files after the input and page.
func outputStem(input string, page int) string {
	name := "demo"
	if input != "" {
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	return fmt.Sprintf("%s-p%d", name, page)
}

// writeSurface encodes img in format and writes it to path.
func writeSurface(path, format string, img image.Image, title string) error {
	var data []byte
	var err error
	switch format {
	case formatPDF:
		data, err = sink.RenderPDF(img, sink.WithTitle(title))
	default:
		data, err = sink.RenderPNG(img)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
