package settings

import (
	"image"
	"image/color"
	"regexp"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/podium/pkg/display"
	"github.com/matzehuels/podium/pkg/render/overlay"
)

// Label font size limits.
const (
	MinFontSize = 10
	MaxFontSize = 72

	MinPenThickness = 1.0
	MaxPenThickness = 20.0
)

// Settings is the persisted preference set.
type Settings struct {
	Overlay  Overlay  `toml:"overlay"`
	View     View     `toml:"view"`
	Window   Window   `toml:"window"`
	Topology Topology `toml:"topology"`
	Clock    Label    `toml:"clock"`
	Timer    Label    `toml:"timer"`
}

// Overlay holds laser, magnifier and pen styles.
type Overlay struct {
	LaserSize     int     `toml:"laser_size"`
	LaserOpacity  int     `toml:"laser_opacity"`
	LaserColor    string  `toml:"laser_color"`
	MagnifierSize int     `toml:"magnifier_size"`
	Magnification float64 `toml:"magnification"`
	PenColor      string  `toml:"pen_color"`
	PenThickness  float64 `toml:"pen_thickness"`
	PenStyle      string  `toml:"pen_style"`
}

type View struct {
	Split bool `toml:"split"`
}

type Window struct {
	ConsoleFullScreen  bool `toml:"console_fullscreen"`
	AudienceFullScreen bool `toml:"audience_fullscreen"`
	AspectLock         bool `toml:"aspect_lock"`
	ConsoleWidth       int  `toml:"console_width"`
	ConsoleHeight      int  `toml:"console_height"`
}

// Topology remembers which displays the surfaces were on.
type Topology struct {
	Audience string `toml:"audience"`
	Console  string `toml:"console"`
}

// Label styles the clock or timer text.
type Label struct {
	FontSize int    `toml:"font_size"`
	Color    string `toml:"color"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Overlay: Overlay{
			LaserSize:     overlay.DefaultPointerSize,
			LaserOpacity:  overlay.DefaultPointerOpacity,
			LaserColor:    "#ff0000",
			MagnifierSize: overlay.DefaultMagnifierSize,
			Magnification: overlay.DefaultMagnification,
			PenColor:      "#ff0000",
			PenThickness:  3,
			PenStyle:      overlay.LineSolid.String(),
		},
		Window: Window{
			AudienceFullScreen: true,
			ConsoleWidth:       display.DefaultConsoleSize.X,
			ConsoleHeight:      display.DefaultConsoleSize.Y,
		},
		Clock: Label{FontSize: 20, Color: "#ffffff"},
		Timer: Label{FontSize: 28, Color: "#ffffff"},
	}
}

// SetDefaults fills unset fields from Default and clamps the rest into
// range.
func (s *Settings) SetDefaults() {
	d := Default()
	o := &s.Overlay
	if o.LaserSize == 0 {
		o.LaserSize = d.Overlay.LaserSize
	}
	if o.LaserOpacity == 0 {
		o.LaserOpacity = d.Overlay.LaserOpacity
	}
	if o.MagnifierSize == 0 {
		o.MagnifierSize = d.Overlay.MagnifierSize
	}
	if o.Magnification == 0 {
		o.Magnification = d.Overlay.Magnification
	}
	if o.PenThickness == 0 {
		o.PenThickness = d.Overlay.PenThickness
	}
	o.LaserColor = validColor(o.LaserColor, d.Overlay.LaserColor)
	o.PenColor = validColor(o.PenColor, d.Overlay.PenColor)
	o.PenStyle = overlay.ParseLineStyle(o.PenStyle).String()

	p := s.PointerStyle()
	o.LaserSize, o.LaserOpacity = p.Size, p.Opacity
	m := s.MagnifierStyle()
	o.MagnifierSize, o.Magnification = m.Size, m.Magnification
	o.PenThickness = min(max(o.PenThickness, MinPenThickness), MaxPenThickness)

	if s.Window.ConsoleWidth <= 0 || s.Window.ConsoleHeight <= 0 {
		s.Window.ConsoleWidth, s.Window.ConsoleHeight = d.Window.ConsoleWidth, d.Window.ConsoleHeight
	}
	s.Clock.setDefaults(d.Clock)
	s.Timer.setDefaults(d.Timer)
}

func (l *Label) setDefaults(d Label) {
	if l.FontSize == 0 {
		l.FontSize = d.FontSize
	}
	l.FontSize = min(max(l.FontSize, MinFontSize), MaxFontSize)
	l.Color = validColor(l.Color, d.Color)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func validColor(s, fallback string) string {
	if hexColor.MatchString(s) {
		return s
	}
	return fallback
}

// Color parses a "#rgb", "#rrggbb" or "#rrggbbaa" value.
func Color(s string) color.RGBA {
	return canvas.Hex(s)
}

// =============================================================================
// Conversions
// =============================================================================

// PointerStyle returns the clamped laser style.
func (s Settings) PointerStyle() overlay.PointerStyle {
	return overlay.PointerStyle{
		Size:    s.Overlay.LaserSize,
		Opacity: s.Overlay.LaserOpacity,
		Color:   Color(s.Overlay.LaserColor),
	}.Clamp()
}

// MagnifierStyle returns the clamped lens style.
func (s Settings) MagnifierStyle() overlay.MagnifierStyle {
	return overlay.MagnifierStyle{Size: s.Overlay.MagnifierSize, Magnification: s.Overlay.Magnification}.Clamp()
}

// Pen returns the annotation pen.
func (s Settings) Pen() overlay.Pen {
	return overlay.Pen{
		Color:     Color(s.Overlay.PenColor),
		Thickness: s.Overlay.PenThickness,
		Style:     overlay.ParseLineStyle(s.Overlay.PenStyle),
	}
}

// SetOverlay records the styles currently in use.
func (s *Settings) SetOverlay(p overlay.PointerStyle, m overlay.MagnifierStyle, pen overlay.Pen) {
	s.Overlay = Overlay{
		LaserSize:     p.Size,
		LaserOpacity:  p.Opacity,
		LaserColor:    hex(p.Color),
		MagnifierSize: m.Size,
		Magnification: m.Magnification,
		PenColor:      hex(pen.Color),
		PenThickness:  pen.Thickness,
		PenStyle:      pen.Style.String(),
	}
}

// ConsoleSize returns the console window size.
func (s Settings) ConsoleSize() image.Point {
	return image.Pt(s.Window.ConsoleWidth, s.Window.ConsoleHeight)
}

// Preferences returns the remembered display identities.
func (s Settings) Preferences() display.Preferences {
	return display.Preferences{
		Audience: display.Identity(s.Topology.Audience),
		Console:  display.Identity(s.Topology.Console),
	}
}

// SetPreferences records display identities.
func (s *Settings) SetPreferences(p display.Preferences) {
	s.Topology = Topology{Audience: string(p.Audience), Console: string(p.Console)}
}

func hex(c color.RGBA) string {
	if c.A == 255 {
		return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
	}
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B) + hexByte(c.A)
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}
