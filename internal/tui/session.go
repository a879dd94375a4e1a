package tui

import (
	"strconv"

	"zj-status/internal/tui/state"
)

// DefaultSessionName is shown when no name is configured.
const DefaultSessionName = "preview"

// session stands in for the terminal multiplexer during preview.
type session struct {
	mode    state.InputMode
	tabs    []state.Tab
	name    string
	named   bool
	palette state.Palette
}

func newSession(name string, tabs int, palette state.Palette) session {
	if tabs < 1 {
		tabs = 1
	}
	if name == "" {
		name = DefaultSessionName
	}
	s := session{mode: state.ModeNormal, name: name, named: true, palette: palette}
	for i := 1; i <= tabs; i++ {
		s.tabs = append(s.tabs, state.Tab{Position: i, Name: "Tab #" + strconv.Itoa(i), Active: i == 1})
	}
	return s
}

func (s *session) cycleMode(step int) {
	modes := state.Modes()
	idx := 0
	for i, m := range modes {
		if m == s.mode {
			idx = i
			break
		}
	}
	idx = (idx + step + len(modes)) % len(modes)
	s.mode = modes[idx]
}

func (s *session) active() int {
	for i, t := range s.tabs {
		if t.Active {
			return i
		}
	}
	return 0
}

func (s *session) setActive(idx int) {
	for i := range s.tabs {
		s.tabs[i].Active = i == idx
	}
}

func (s *session) newTab() {
	pos := len(s.tabs) + 1
	s.tabs = append(s.tabs, state.Tab{Position: pos, Name: "Tab #" + strconv.Itoa(pos)})
	s.setActive(len(s.tabs) - 1)
}

// closeTab removes the active tab and renumbers the rest. The last tab
// cannot be closed.
func (s *session) closeTab() bool {
	if len(s.tabs) <= 1 {
		return false
	}
	idx := s.active()
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
	for i := range s.tabs {
		s.tabs[i].Position = i + 1
	}
	if idx > 0 {
		idx--
	}
	s.setActive(idx)
	return true
}

func (s *session) focus(step int) {
	n := len(s.tabs)
	if n == 0 {
		return
	}
	s.setActive((s.active() + step + n) % n)
}

func (s *session) modeEvent() state.ModeChanged {
	ev := state.ModeChanged{Mode: s.mode, Palette: s.palette.Clone()}
	if s.named {
		ev.Session = s.name
	}
	return ev
}

func (s *session) tabsEvent() state.TabsChanged {
	return state.TabsChanged{Tabs: append([]state.Tab(nil), s.tabs...)}
}
