package state

// ApplyModeChanged replaces mode, session and palette wholesale.
func ApplyModeChanged(s RenderState, ev ModeChanged) RenderState {
	s.Mode = ev.Mode
	s.Session = ev.Session
	s.Palette = ev.Palette.Clone()
	return s
}

// ApplyTabsChanged replaces the tab list. Tabs missing from ev are gone.
func ApplyTabsChanged(s RenderState, ev TabsChanged) RenderState {
	s.Tabs = cloneTabs(ev.Tabs)
	return s
}

// Tick advances the timer counter by one.
func Tick(s RenderState) RenderState {
	s.Counter++
	return s
}

// CountAction records one trigger key press.
func CountAction(s RenderState) RenderState {
	s.Actions++
	return s
}

// ActiveTab returns the first active tab, if any.
func ActiveTab(s RenderState) (Tab, bool) {
	for _, t := range s.Tabs {
		if t.Active {
			return t, true
		}
	}
	return Tab{}, false
}
