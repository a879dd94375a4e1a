package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
)

var fixedNow = time.Date(2024, time.March, 9, 7, 5, 0, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func exampleState() state.RenderState {
	s := state.NewRenderState()
	s.Mode = state.ModeNormal
	s.Tabs = []state.Tab{{Position: 1}, {Position: 2, Active: true}}
	s.Session = "work"
	s.Counter = 5
	return s
}

func TestViewEndToEndExample(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Compact, ShowCounter: true, Profile: termenv.TrueColor})
	s := exampleState()

	line := bar.View(s, 40)

	require.Equal(t, 40, util.VisibleWidth(line))
	plain := util.Strip(line)
	require.True(t, strings.HasPrefix(plain, "  Zellij Normal 1 2"), plain)
	require.True(t, strings.HasSuffix(plain, "(work) 5  "), plain)
	require.Equal(t, "  Zellij Normal 1 2"+strings.Repeat(" ", 11)+"(work) 5  ", plain)

	r := util.NewResolver(termenv.TrueColor, s.Palette)
	require.Contains(t, line, r.Resolve(state.RoleGreen, true).Render("2"))
	require.Contains(t, line, r.ResolveOn(state.RoleBlack, state.RoleGreen, true).Render("Normal"))
}

func TestBuildLeftSegment(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Compact, Profile: termenv.Ascii})
	s := exampleState()
	s.Tabs = []state.Tab{{Position: 1}, {Position: 2}, {Position: 3}}

	seg := bar.Build(s)
	require.Equal(t, "  Zellij Normal 1 2 3", seg.Left.Text)
	require.Equal(t, 21, seg.Left.Width)
	require.Nil(t, seg.Center)
}

func TestBuildOnlyNormalIsHighlighted(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Compact, Profile: termenv.TrueColor})
	s := state.NewRenderState()

	s.Mode = state.ModeLocked
	seg := bar.Build(s)
	require.Equal(t, "  Zellij Locked ", seg.Left.Text)

	s.Mode = state.ModeNormal
	seg = bar.Build(s)
	require.NotEqual(t, "  Zellij Normal ", seg.Left.Text)
	require.Equal(t, "  Zellij Normal ", util.Strip(seg.Left.Text))
	require.Equal(t, 16, seg.Left.Width)
}

func TestBuildRightSegment(t *testing.T) {
	s := exampleState()
	s.Actions = 3

	tests := []struct {
		name string
		opts Options
		sess string
		want string
	}{
		{name: "session only", opts: Options{}, sess: "work", want: "(work)  "},
		{name: "no session", opts: Options{}, want: " "},
		{name: "counter", opts: Options{ShowCounter: true}, sess: "work", want: "(work) 5  "},
		{name: "counter no session", opts: Options{ShowCounter: true}, want: "5  "},
		{name: "actions", opts: Options{ShowCounter: true, ShowActions: true}, sess: "work", want: "(work) 5 runs:3  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Variant = Compact
			tt.opts.Profile = termenv.Ascii
			s.Session = tt.sess
			seg := NewStatusBar(tt.opts).Build(s)
			require.Equal(t, tt.want, seg.Right.Text)
		})
	}
}

func TestBuildCenterClock(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Full, Profile: termenv.Ascii}).WithClock(fixedClock)
	seg := bar.Build(state.NewRenderState())
	require.NotNil(t, seg.Center)
	require.Equal(t, "07:05 2024-03-09", seg.Center.Text)
}

func TestViewCenterStraddlesMidpoint(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Full, Profile: termenv.Ascii}).WithClock(fixedClock)
	line := bar.View(state.NewRenderState(), 80)

	require.Equal(t, 80, util.VisibleWidth(line))
	// left is 16 cells, center 16: 80/2 - 16 - 8 = 16 spaces of left padding.
	require.Equal(t, 32, strings.Index(line, "07:05"))
}

func TestComposeTwoSegmentsExactWidth(t *testing.T) {
	left := NewSegment("  Zellij \x1b[1;32mNormal\x1b[0m 1 2")
	right := NewSegment("(work) 5  ")
	for cols := 0; cols <= 120; cols++ {
		line := Compose(left, nil, right, cols)
		require.Equal(t, cols, util.VisibleWidth(line), "cols=%d", cols)
	}
}

func TestComposeThreeSegmentsExactWidth(t *testing.T) {
	left := NewSegment("  Zellij Normal \x1b[1;32m1\x1b[0m")
	center := NewSegment("07:05 2024-03-09")
	right := NewSegment("(a-rather-long-session-name)  ")
	for cols := 0; cols <= 160; cols++ {
		line := Compose(left, &center, right, cols)
		require.Equal(t, cols, util.VisibleWidth(line), "cols=%d", cols)
	}
}

func TestComposeThreeSegmentsMatchesMidpointFormula(t *testing.T) {
	left := NewSegment("left")
	center := NewSegment("center")
	right := NewSegment("right")
	cols := 60

	line := Compose(left, &center, right, cols)
	lp := cols/2 - left.Width - center.Width/2
	rp := cols - left.Width - lp - center.Width - right.Width
	require.GreaterOrEqual(t, lp, 0)
	require.Equal(t, "left"+strings.Repeat(" ", lp)+"center"+strings.Repeat(" ", rp)+"right", line)
}

func TestComposeWideRightShiftsCenter(t *testing.T) {
	left := NewSegment("L")
	center := NewSegment("CCCC")
	right := NewSegment(strings.Repeat("R", 14))

	line := Compose(left, &center, right, 20)
	require.Equal(t, "L CCCC"+strings.Repeat("R", 14), line)
}

func TestComposeDropsCenterWhenItDoesNotFit(t *testing.T) {
	left := NewSegment("  Zellij Normal 1 2")
	center := NewSegment("07:05 2024-03-09")
	right := NewSegment("(work) 5  ")

	line := Compose(left, &center, right, 40)
	require.Equal(t, 40, util.VisibleWidth(line))
	require.NotContains(t, line, "07:05")
}

func TestComposeNarrowTerminalTruncates(t *testing.T) {
	left := NewSegment("  Zellij \x1b[1mNormal\x1b[0m 1 2 3 4")
	right := NewSegment("(work)  ")

	line := Compose(left, nil, right, 10)
	require.Equal(t, 10, util.VisibleWidth(line))
	require.Equal(t, "  Zellij N", util.Strip(line))

	require.Equal(t, "", Compose(left, nil, right, 0))
	require.Equal(t, "", Compose(left, nil, right, -3))
}

func TestViewAnyStateFillsWidth(t *testing.T) {
	bar := NewStatusBar(Options{Variant: Full, ShowCounter: true, ShowActions: true, Profile: termenv.ANSI256}).WithClock(fixedClock)
	s := exampleState()
	for i := 3; i <= 12; i++ {
		s.Tabs = append(s.Tabs, state.Tab{Position: i})
	}
	for _, m := range state.Modes() {
		s.Mode = m
		for _, cols := range []int{1, 7, 20, 33, 40, 57, 80, 132, 200} {
			require.Equal(t, cols, util.VisibleWidth(bar.View(s, cols)), "mode=%s cols=%d", m, cols)
		}
	}
}
