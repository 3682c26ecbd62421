package presenter

// Action is a presenter command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionFirst
	ActionLast
	ActionLaser
	ActionNormal
	ActionToggleMagnifier
	ActionToggleAnnotation
	ActionClearInk
	ActionUndoStroke
	ActionToggleTimer
	ActionToggleSplit
	ActionSwapDisplays
	ActionToggleFullScreen
	ActionToggleConsoleFullScreen
	ActionToggleAspectLock
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:                    "none",
	ActionNext:                    "next slide",
	ActionPrev:                    "previous slide",
	ActionFirst:                   "first slide",
	ActionLast:                    "last slide",
	ActionLaser:                   "laser pointer",
	ActionNormal:                  "normal pointer",
	ActionToggleMagnifier:         "toggle magnifier",
	ActionToggleAnnotation:        "toggle annotation",
	ActionClearInk:                "clear annotations",
	ActionUndoStroke:              "undo stroke",
	ActionToggleTimer:             "start/pause timer",
	ActionToggleSplit:             "toggle split mode",
	ActionSwapDisplays:            "swap displays",
	ActionToggleFullScreen:        "audience fullscreen",
	ActionToggleConsoleFullScreen: "console fullscreen",
	ActionToggleAspectLock:        "aspect lock",
	ActionQuit:                    "quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Binding lists the keys that trigger an action. Key names follow
// bubbletea's KeyMsg.String.
type Binding struct {
	Keys   []string
	Action Action
}

// Bindings is the default keymap, in help order.
var Bindings = []Binding{
	{[]string{"right", "down", " ", "pgdown"}, ActionNext},
	{[]string{"left", "up", "backspace", "pgup"}, ActionPrev},
	{[]string{"home"}, ActionFirst},
	{[]string{"end"}, ActionLast},
	{[]string{"l"}, ActionLaser},
	{[]string{"n"}, ActionNormal},
	{[]string{"z"}, ActionToggleMagnifier},
	{[]string{"d"}, ActionToggleAnnotation},
	{[]string{"c"}, ActionClearInk},
	{[]string{"u"}, ActionUndoStroke},
	{[]string{"p"}, ActionToggleTimer},
	{[]string{"ctrl+s"}, ActionToggleSplit},
	{[]string{"s"}, ActionSwapDisplays},
	{[]string{"f"}, ActionToggleFullScreen},
	{[]string{"F"}, ActionToggleConsoleFullScreen},
	{[]string{"a"}, ActionToggleAspectLock},
	{[]string{"q", "ctrl+c"}, ActionQuit},
}

var keymap = func() map[string]Action {
	m := make(map[string]Action)
	for _, b := range Bindings {
		for _, k := range b.Keys {
			m[k] = b.Action
		}
	}
	return m
}()

// ActionFor returns the action bound to key, or ActionNone.
func ActionFor(key string) Action {
	return keymap[key]
}
