package overlay

// Mode is the active pointer treatment.
type Mode int

const (
	ModeDefault Mode = iota
	ModeLaser
	ModeMagnifier
	ModeAnnotation
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "normal"
	case ModeLaser:
		return "laser"
	case ModeMagnifier:
		return "magnifier"
	case ModeAnnotation:
		return "annotate"
	default:
		return "unknown"
	}
}

// Change is a request to switch modes.
type Change int

const (
	// ChangeNormal returns to the default cursor.
	ChangeNormal Change = iota
	// ChangeLaser turns the laser on, whatever was active.
	ChangeLaser
	ChangeToggleLaser
	ChangeToggleMagnifier
	ChangeToggleAnnotation
)

// Transition returns the mode that results from applying c in mode m.
// Toggling a mode that is already active returns to ModeDefault; toggling
// any other mode replaces the current one.
func Transition(m Mode, c Change) Mode {
	toggle := func(target Mode) Mode {
		if m == target {
			return ModeDefault
		}
		return target
	}
	switch c {
	case ChangeNormal:
		return ModeDefault
	case ChangeLaser:
		return ModeLaser
	case ChangeToggleLaser:
		return toggle(ModeLaser)
	case ChangeToggleMagnifier:
		return toggle(ModeMagnifier)
	case ChangeToggleAnnotation:
		return toggle(ModeAnnotation)
	default:
		return m
	}
}

// Flags is the independent on/off form of the pointer state.
type Flags struct {
	Laser      bool
	Magnifier  bool
	Annotation bool
}

// Resolve picks the mode that wins when several flags are set.
func Resolve(f Flags) Mode {
	switch {
	case f.Annotation:
		return ModeAnnotation
	case f.Magnifier:
		return ModeMagnifier
	case f.Laser:
		return ModeLaser
	default:
		return ModeDefault
	}
}

// Flags returns m as flags with exactly one (or no) flag set.
func (m Mode) Flags() Flags {
	return Flags{Laser: m == ModeLaser, Magnifier: m == ModeMagnifier, Annotation: m == ModeAnnotation}
}
