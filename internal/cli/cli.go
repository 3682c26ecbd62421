// Package cli implements the podium command-line interface.
package cli

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podium/pkg/buildinfo"
	"github.com/matzehuels/podium/pkg/cache"
	"github.com/matzehuels/podium/pkg/document"
	"github.com/matzehuels/podium/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "podium"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsPath overrides the settings file location (--config).
	settingsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetVerbose switches to debug logging and reports render, cache and display
// events through the logger.
func (c *CLI) SetVerbose(verbose bool) {
	if !verbose {
		c.SetLogLevel(LogInfo)
		observability.Reset()
		return
	}
	c.SetLogLevel(LogDebug)
	installLogHooks(c.Logger)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Podium presents PDF slides on two screens",
		Long:         `Podium is a dual-screen presentation console: the audience sees the slide full screen while the presenter gets a preview, notes, the next slide and a timer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/podium/settings.toml)")

	root.AddCommand(c.presentCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.deckCommand())
	root.AddCommand(c.displaysCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Document Factory
// =============================================================================

// documentOptions builds backend options sharing the CLI logger and the
// raster cache.
func (c *CLI) documentOptions(noCache bool) (document.Options, error) {
	rc, err := newCache(noCache)
	if err != nil {
		return document.Options{}, err
	}
	return document.Options{Cache: rc, Logger: c.Logger}, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/podium/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseSize parses a "WxH" flag value.
func parseSize(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	x, errW := strconv.Atoi(w)
	y, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	return image.Pt(x, y), nil
}

// parsePoint parses an "X,Y" flag value.
func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid point %q (want X,Y)", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return image.Point{}, fmt.Errorf("invalid point %q (want X,Y)", s)
	}
	return image.Pt(x, y), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatPNG}
	}
	return strings.Split(s, ",")
}
