package statusbar

import (
	"time"

	"github.com/muesli/termenv"

	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
)

// Variant selects which segments the bar shows.
type Variant string

const (
	// Full shows left, a centered clock, and right.
	Full Variant = "full"
	// Compact shows left and right only.
	Compact Variant = "compact"
)

// DefaultBrand is the label shown after the leading spacer.
const DefaultBrand = "Zellij"

// Options controls what the bar renders.
type Options struct {
	Variant     Variant
	Brand       string
	ShowCounter bool
	ShowActions bool
	Profile     termenv.Profile
}

// DefaultOptions returns the full bar in true color with the tick counter.
func DefaultOptions() Options {
	return Options{
		Variant:     Full,
		Brand:       DefaultBrand,
		ShowCounter: true,
		Profile:     termenv.TrueColor,
	}
}

type StatusBar struct {
	opts Options
	now  func() time.Time
}

func NewStatusBar(opts Options) StatusBar {
	if opts.Variant == "" {
		opts.Variant = Full
	}
	if opts.Brand == "" {
		opts.Brand = DefaultBrand
	}
	return StatusBar{opts: opts, now: time.Now}
}

// WithClock returns a copy that reads the time from now.
func (b StatusBar) WithClock(now func() time.Time) StatusBar {
	b.now = now
	return b
}

// Options returns the options the bar was built with.
func (b StatusBar) Options() Options { return b.opts }

// View renders s as one line of exactly cols visible cells.
func (b StatusBar) View(s state.RenderState, cols int) string {
	seg := b.Build(s)
	return Compose(seg.Left, seg.Center, seg.Right, cols)
}

func (b StatusBar) resolver(s state.RenderState) util.Resolver {
	return util.NewResolver(b.opts.Profile, s.Palette)
}
