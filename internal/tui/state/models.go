package state

import "strings"

// InputMode represents the host's current input mode.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeLocked
	ModeResize
	ModePane
	ModeTab
	ModeScroll
	ModeEnterSearch
	ModeSearch
	ModeRenameTab
	ModeRenamePane
	ModeSession
	ModeMove
	ModePrompt
	ModeTmux
)

// modeLabels is the display table for modes. Rendering goes through it
// instead of any formatting of the enum value.
var modeLabels = [...]string{
	ModeNormal:      "Normal",
	ModeLocked:      "Locked",
	ModeResize:      "Resize",
	ModePane:        "Pane",
	ModeTab:         "Tab",
	ModeScroll:      "Scroll",
	ModeEnterSearch: "EnterSearch",
	ModeSearch:      "Search",
	ModeRenameTab:   "RenameTab",
	ModeRenamePane:  "RenamePane",
	ModeSession:     "Session",
	ModeMove:        "Move",
	ModePrompt:      "Prompt",
	ModeTmux:        "Tmux",
}

// Modes lists every input mode in declaration order.
func Modes() []InputMode {
	out := make([]InputMode, len(modeLabels))
	for i := range modeLabels {
		out[i] = InputMode(i)
	}
	return out
}

// Label returns the display name of the mode.
func (m InputMode) Label() string {
	if m < 0 || int(m) >= len(modeLabels) {
		return "Unknown"
	}
	return modeLabels[m]
}

func (m InputMode) String() string { return m.Label() }

// ParseInputMode maps a label back to its mode, ignoring case.
func ParseInputMode(label string) (InputMode, bool) {
	label = strings.TrimSpace(label)
	for i, l := range modeLabels {
		if strings.EqualFold(l, label) {
			return InputMode(i), true
		}
	}
	return ModeNormal, false
}

// Tab is one entry of the host's tab list. Position is the 1-based display index.
type Tab struct {
	Position int
	Name     string
	Active   bool
}

// RenderState is everything the status line renders from.
type RenderState struct {
	Mode    InputMode
	Tabs    []Tab
	Session string // empty when the host has not supplied one
	Palette Palette

	// Counter increments once per timer event.
	Counter int
	// Actions counts trigger key presses.
	Actions int
}

// NewRenderState returns the initial state.
func NewRenderState() RenderState {
	return RenderState{
		Mode:    ModeNormal,
		Palette: DefaultPalette(),
	}
}

// HasSession reports whether a session identity is known.
func (s RenderState) HasSession() bool { return s.Session != "" }

// Clone returns a copy that shares no slices or maps with s.
func (s RenderState) Clone() RenderState {
	out := s
	out.Tabs = cloneTabs(s.Tabs)
	out.Palette = s.Palette.Clone()
	return out
}

func cloneTabs(tabs []Tab) []Tab {
	if tabs == nil {
		return nil
	}
	return append([]Tab(nil), tabs...)
}
