package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"zj-status/internal/tui/state"
)

type tickMsg struct{}

// bridge is the plugin.Host side of the preview. Timeout requests are
// queued and turned into tea commands after each update.
type bridge struct {
	selectable bool
	subscribed map[state.EventKind]bool
	timeouts   []time.Duration
}

func newBridge() *bridge {
	return &bridge{subscribed: map[state.EventKind]bool{}}
}

func (b *bridge) SetSelectable(selectable bool) { b.selectable = selectable }

func (b *bridge) Subscribe(kinds ...state.EventKind) {
	for _, k := range kinds {
		b.subscribed[k] = true
	}
}

func (b *bridge) SetTimeout(d time.Duration) { b.timeouts = append(b.timeouts, d) }

func (b *bridge) drain() tea.Cmd {
	if len(b.timeouts) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(b.timeouts))
	for _, d := range b.timeouts {
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{} }))
	}
	b.timeouts = nil
	return tea.Batch(cmds...)
}
