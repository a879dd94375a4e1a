package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"zj-status/internal/tui/state"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// ParseProfile maps a configured profile name to a termenv profile.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truecolor":
		return termenv.TrueColor, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ascii", "none":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color profile %q", name)
	}
}

// Resolver turns palette roles into styles. Its renderer is pinned to one
// profile, so the same role, emphasis and color always produce the same bytes.
type Resolver struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile
	palette  state.Palette
}

// NewResolver builds a resolver for palette under the given profile.
func NewResolver(profile termenv.Profile, palette state.Palette) Resolver {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return Resolver{renderer: r, profile: profile, palette: palette}
}

// Plain reports whether the resolver emits no styling at all.
func (r Resolver) Plain() bool { return r.profile == termenv.Ascii }

// Directive is a resolved style waiting for text.
type Directive struct {
	style lipgloss.Style
	plain bool
}

// Render wraps text in the directive's styling sequences.
func (d Directive) Render(text string) string {
	if d.plain || text == "" {
		return text
	}
	return d.style.Render(text)
}

// Resolve styles text in the color of role. An unknown role yields a
// directive that leaves text untouched.
func (r Resolver) Resolve(role state.Role, bold bool) Directive {
	fg, ok := r.palette[role]
	if !ok || r.Plain() {
		return Directive{plain: true}
	}
	s := r.renderer.NewStyle().Foreground(lipgloss.Color(fg.String()))
	if bold {
		s = s.Bold(true)
	}
	return Directive{style: s}
}

// ResolveOn is Resolve with a background role. Both roles must exist.
func (r Resolver) ResolveOn(fgRole, bgRole state.Role, bold bool) Directive {
	fg, okFg := r.palette[fgRole]
	bg, okBg := r.palette[bgRole]
	if !okFg || !okBg || r.Plain() {
		return Directive{plain: true}
	}
	s := r.renderer.NewStyle().
		Foreground(lipgloss.Color(fg.String())).
		Background(lipgloss.Color(bg.String()))
	if bold {
		s = s.Bold(true)
	}
	return Directive{style: s}
}
