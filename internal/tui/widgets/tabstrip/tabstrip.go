package tabstrip

import (
	"strconv"
	"strings"

	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
)

// View renders the tab positions in the order given, joined by single
// spaces. The active tab is bold in the green role; when the resolver emits
// no color it is bracketed instead so it stays visible.
func View(tabs []state.Tab, r util.Resolver) string {
	if len(tabs) == 0 {
		return ""
	}
	active := r.Resolve(state.RoleGreen, true)

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		parts = append(parts, renderTab(t, active, r.Plain()))
	}
	return strings.Join(parts, " ")
}

func renderTab(t state.Tab, active util.Directive, plain bool) string {
	label := strconv.Itoa(t.Position)
	if !t.Active {
		return label
	}
	if plain {
		return "[" + label + "]"
	}
	return active.Render(label)
}
