package plugin

import (
	"time"

	"zj-status/internal/tui/state"
)

// Host is the session manager the plugin runs inside. Implementations
// deliver events to Plugin.Update one at a time.
type Host interface {
	// SetSelectable controls whether the plugin pane can take focus.
	SetSelectable(selectable bool)
	// Subscribe registers interest in the given event kinds.
	Subscribe(kinds ...state.EventKind)
	// SetTimeout asks for a single TimerFired after d.
	SetTimeout(d time.Duration)
}

// Subscriptions is the fixed list of events the status line listens to.
func Subscriptions() []state.EventKind {
	return []state.EventKind{state.KindModeChanged, state.KindTabsChanged, state.KindTimer, state.KindKey}
}
