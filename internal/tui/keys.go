package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"zj-status/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	NextMode      key.Binding
	PrevMode      key.Binding
	NewTab        key.Binding
	CloseTab      key.Binding
	NextTab       key.Binding
	PrevTab       key.Binding
	ToggleSession key.Binding
	Copy          key.Binding
	Diff          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m/M", "next/prev mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("m/M", "next/prev mode"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev tab"),
		),
		ToggleSession: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle session name"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy line"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "frame diff"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// yield disables every binding that would swallow the trigger key. Quit
// always stays live.
func (k *keyMap) yield(trigger string) {
	for _, b := range []*key.Binding{
		&k.NextMode, &k.PrevMode, &k.NewTab, &k.CloseTab, &k.NextTab,
		&k.PrevTab, &k.ToggleSession, &k.Copy, &k.Diff, &k.Help,
	} {
		if slices.Contains(b.Keys(), trigger) {
			b.SetEnabled(false)
		}
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) Sections() []helpoverlay.Section {
	return []helpoverlay.Section{
		{Title: "Session", Bindings: []key.Binding{k.NextMode, k.NewTab, k.CloseTab, k.NextTab, k.PrevTab, k.ToggleSession}},
		{Title: "Preview", Bindings: []key.Binding{k.Copy, k.Diff, k.Help, k.Quit}},
	}
}
