package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// View lists every enabled binding, grouped by section, one per line. Lines
// are cut to width when width is positive.
func View(title string, sections []Section, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, kb := range sec.Bindings {
			if !kb.Enabled() {
				continue
			}
			h := kb.Help()
			line := fmt.Sprintf("  %s: %s", h.Key, h.Desc)
			if width > 0 {
				line = ansi.Truncate(line, width, "…")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Short renders a one-line hint such as "? help  ctrl+c quit".
func Short(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
