package statusbar

import (
	"strconv"
	"strings"

	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
	"zj-status/internal/tui/widgets/tabstrip"
)

const separator = " "

// Segment is styled text together with the cells it occupies.
type Segment struct {
	Text  string
	Width int
}

// NewSegment measures text.
func NewSegment(text string) Segment {
	return Segment{Text: text, Width: util.VisibleWidth(text)}
}

// Segments are the three blocks of the line. Center is nil for the compact
// variant.
type Segments struct {
	Left   Segment
	Center *Segment
	Right  Segment
}

// Build assembles the segments for s. Widths are not reconciled here;
// Compose does that.
func (b StatusBar) Build(s state.RenderState) Segments {
	r := b.resolver(s)

	left := []string{
		" ",
		b.opts.Brand,
		modeLabel(s.Mode, r),
		tabstrip.View(s.Tabs, r),
	}

	var right []string
	if s.HasSession() {
		right = append(right, "("+s.Session+")")
	}
	if b.opts.ShowCounter {
		right = append(right, strconv.Itoa(s.Counter))
	}
	if b.opts.ShowActions {
		right = append(right, "runs:"+strconv.Itoa(s.Actions))
	}
	right = append(right, " ")

	seg := Segments{
		Left:  NewSegment(strings.Join(left, separator)),
		Right: NewSegment(strings.Join(right, separator)),
	}
	if b.opts.Variant == Full {
		center := NewSegment(b.clock())
		seg.Center = &center
	}
	return seg
}

// modeLabel highlights Normal and leaves every other mode bare.
func modeLabel(m state.InputMode, r util.Resolver) string {
	label := m.Label()
	if m != state.ModeNormal {
		return label
	}
	return r.ResolveOn(state.RoleBlack, state.RoleGreen, true).Render(label)
}

func (b StatusBar) clock() string {
	now := b.now()
	return now.Format("15:04") + separator + now.Format("2006-01-02")
}
