package state

// EventKind identifies the notification a host delivers.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindModeChanged
	KindTabsChanged
	KindTimer
	KindKey
)

func (k EventKind) String() string {
	switch k {
	case KindModeChanged:
		return "mode"
	case KindTabsChanged:
		return "tabs"
	case KindTimer:
		return "timer"
	case KindKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a notification from the host.
type Event interface {
	Kind() EventKind
}

// ModeChanged carries the new mode together with the session identity and
// palette; all three replace the previous values.
type ModeChanged struct {
	Mode    InputMode
	Session string
	Palette Palette
}

// TabsChanged carries the complete, ordered tab list.
type TabsChanged struct {
	Tabs []Tab
}

// TimerFired is delivered when a requested timeout elapses.
type TimerFired struct{}

// KeyPressed carries a key in its display form ("t", "ctrl+a", ...).
type KeyPressed struct {
	Key string
}

func (ModeChanged) Kind() EventKind { return KindModeChanged }
func (TabsChanged) Kind() EventKind { return KindTabsChanged }
func (TimerFired) Kind() EventKind  { return KindTimer }
func (KeyPressed) Kind() EventKind  { return KindKey }
