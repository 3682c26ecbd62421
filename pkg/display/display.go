package display

import (
	"context"
	"fmt"
	"image"
	"regexp"
	"sort"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/podium/pkg/errors"
)

// ErrNoDisplays is returned when an operation needs at least one display.
var ErrNoDisplays = perrors.New(perrors.ErrCodeDisplayUnavailable, "no displays connected")

// Descriptor describes one connected display. Index is its position in the
// enumeration it came from and is only meaningful within that enumeration.
type Descriptor struct {
	Index     int
	Name      string
	Geometry  image.Rectangle
	Available image.Rectangle
}

// Identity returns a key that survives re-enumeration as long as the
// display keeps its name and geometry.
func (d Descriptor) Identity() Identity {
	return Identity(fmt.Sprintf("%s@%s", d.Name, FormatGeometry(d.Geometry)))
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%d: %s %s", d.Index, d.Name, FormatGeometry(d.Geometry))
}

// Identity names a display independently of its enumeration index.
type Identity string

// Assignment is the pair of display indices hosting the two surfaces.
// An index of -1 means the surface has not been placed.
type Assignment struct {
	Audience int
	Console  int
}

// EventKind is the type of a hotplug notification.
type EventKind int

const (
	DisplayAdded EventKind = iota
	DisplayRemoved
)

func (k EventKind) String() string {
	if k == DisplayAdded {
		return "added"
	}
	return "removed"
}

// Event reports a display appearing or disappearing.
type Event struct {
	Kind    EventKind
	Display Descriptor
}

// Enumerator lists displays and reports configuration changes.
type Enumerator interface {
	// Displays returns the connected displays ordered by position, with
	// Index set to the position in the returned slice.
	Displays(ctx context.Context) ([]Descriptor, error)

	// Watch delivers events until ctx is cancelled, then closes the
	// channel.
	Watch(ctx context.Context) (<-chan Event, error)
}

// =============================================================================
// Visibility
// =============================================================================

// Visibility is the topology control appropriate for a display count.
type Visibility int

const (
	// ShowNothing hides topology controls (zero or one display).
	ShowNothing Visibility = iota
	// ShowSwap offers a single swap action (exactly two displays).
	ShowSwap
	// ShowMap offers the drag-based topology map (three or more).
	ShowMap
)

func (v Visibility) String() string {
	switch v {
	case ShowSwap:
		return "swap"
	case ShowMap:
		return "map"
	default:
		return "none"
	}
}

// VisibilityFor returns the control to show for n displays.
func VisibilityFor(n int) Visibility {
	switch {
	case n >= 3:
		return ShowMap
	case n == 2:
		return ShowSwap
	default:
		return ShowNothing
	}
}

// =============================================================================
// Geometry strings
// =============================================================================

var geometryPattern = regexp.MustCompile(`^(\d+)x(\d+)([+-]\d+)([+-]\d+)$`)

// ParseGeometry parses an X11-style geometry such as "1920x1080+1920+0".
func ParseGeometry(s string) (image.Rectangle, error) {
	m := geometryPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return image.Rectangle{}, perrors.New(perrors.ErrCodeInvalidDisplay,
			"invalid geometry %q, expected WxH+X+Y", s)
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return image.Rectangle{}, perrors.Wrap(perrors.ErrCodeInvalidDisplay, err, "parse geometry")
		}
		v[i] = n
	}
	if v[0] == 0 || v[1] == 0 {
		return image.Rectangle{}, perrors.New(perrors.ErrCodeInvalidDisplay,
			"geometry %q has zero size", s)
	}
	return image.Rect(v[2], v[3], v[2]+v[0], v[3]+v[1]), nil
}

// FormatGeometry is the inverse of ParseGeometry.
func FormatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}

// ParseDescriptor parses "name=WxH+X+Y" or a bare geometry. Bare
// geometries are named after their position.
func ParseDescriptor(s string, index int) (Descriptor, error) {
	name := fmt.Sprintf("display-%d", index)
	if i := strings.IndexByte(s, '='); i >= 0 {
		name, s = strings.TrimSpace(s[:i]), s[i+1:]
		if name == "" {
			return Descriptor{}, perrors.New(perrors.ErrCodeInvalidDisplay, "empty display name")
		}
	}
	r, err := ParseGeometry(s)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Index: index, Name: name, Geometry: r, Available: r}, nil
}

// sortDescriptors orders displays left to right, then top to bottom, and
// renumbers them.
func sortDescriptors(ds []Descriptor) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Geometry.Min, ds[j].Geometry.Min
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	for i := range ds {
		ds[i].Index = i
	}
}

// indexOf returns the index of the display with the given identity, or -1.
func indexOf(ds []Descriptor, id Identity) int {
	if id == "" {
		return -1
	}
	for _, d := range ds {
		if d.Identity() == id {
			return d.Index
		}
	}
	return -1
}

// indexAt returns the index of the display containing p, or -1.
func indexAt(ds []Descriptor, p image.Point) int {
	for _, d := range ds {
		if p.In(d.Geometry) {
			return d.Index
		}
	}
	return -1
}

// diff reports which displays appeared or disappeared between two
// enumerations, keyed by identity.
func diff(before, after []Descriptor) []Event {
	var events []Event
	for _, d := range before {
		if indexOf(after, d.Identity()) < 0 {
			events = append(events, Event{Kind: DisplayRemoved, Display: d})
		}
	}
	for _, d := range after {
		if indexOf(before, d.Identity()) < 0 {
			events = append(events, Event{Kind: DisplayAdded, Display: d})
		}
	}
	return events
}
