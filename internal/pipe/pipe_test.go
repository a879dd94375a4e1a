package pipe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zj-status/internal/plugin"
	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
	"zj-status/internal/tui/widgets/statusbar"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func frames(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newPlugin() *plugin.Plugin {
	bar := statusbar.NewStatusBar(statusbar.Options{
		Variant:     statusbar.Compact,
		ShowCounter: true,
		Profile:     termenv.Ascii,
	})
	return plugin.New(bar, plugin.Options{}, nil, nil)
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		line string
		want state.Event
	}{
		{name: "mode", line: `{"type":"mode","mode":"Locked","session":"work"}`, want: state.ModeChanged{Mode: state.ModeLocked, Session: "work"}},
		{name: "mode palette", line: `{"type":"mode","mode":"normal","palette":{"green":"#00ff00"}}`, want: state.ModeChanged{Mode: state.ModeNormal, Palette: state.Palette{state.RoleGreen: state.RGBColor(0, 255, 0)}}},
		{name: "tabs", line: `{"type":"tabs","tabs":[{"position":1,"name":"a"},{"position":2,"active":true}]}`, want: state.TabsChanged{Tabs: []state.Tab{{Position: 1, Name: "a"}, {Position: 2, Active: true}}}},
		{name: "empty tabs", line: `{"type":"tabs"}`, want: state.TabsChanged{Tabs: []state.Tab{}}},
		{name: "timer", line: `{"type":"timer"}`, want: state.TimerFired{}},
		{name: "key", line: `{"type":"key","key":"t"}`, want: state.KeyPressed{Key: "t"}},
		{name: "resize", line: `{"type":"resize","cols":120,"rows":2}`, want: Resize{Cols: 120, Rows: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.line))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"type":"mouse"}`))
	assert.True(t, errors.Is(err, ErrUnknownEvent))

	for _, line := range []string{
		`not json`,
		`{"type":"mode","mode":"Flying"}`,
		`{"type":"mode","mode":"Normal","palette":{"green":"#nothex"}}`,
		`{"type":"key"}`,
		`{"type":"resize","cols":-1}`,
	} {
		_, err := Decode([]byte(line))
		assert.Error(t, err, line)
	}
}

func TestRunRendersFramePerRenderEvent(t *testing.T) {
	in := strings.Join([]string{
		`{"type":"mode","mode":"Normal","session":"work"}`,
		`{"type":"tabs","tabs":[{"position":1},{"position":2,"active":true}]}`,
		``,
		`garbage`,
		`{"type":"key","key":"x"}`,
		`{"type":"timer"}`,
		`{"type":"resize","cols":50}`,
	}, "\n")
	var out bytes.Buffer

	h := New(newPlugin(), strings.NewReader(in), &out, Options{Cols: 40}, nil)
	require.NoError(t, h.Run(context.Background()))

	got := frames(out.String())
	require.Len(t, got, 4)
	assert.True(t, strings.HasPrefix(got[0], "  Zellij Normal "))
	assert.True(t, strings.HasSuffix(got[0], "(work) 0  "))
	assert.True(t, strings.HasPrefix(got[1], "  Zellij Normal 1 [2] "))
	assert.Equal(t, 40, util.VisibleWidth(got[0]))
	assert.Equal(t, 40, util.VisibleWidth(got[2]))
	assert.Equal(t, 50, util.VisibleWidth(got[3]))
	assert.True(t, strings.HasSuffix(got[2], "(work) 1  "))
}

func TestRunRenderOnLoad(t *testing.T) {
	var out bytes.Buffer
	h := New(newPlugin(), strings.NewReader(""), &out, Options{Cols: 12, RenderOnLoad: true}, nil)
	require.NoError(t, h.Run(context.Background()))

	got := frames(out.String())
	require.Len(t, got, 1)
	assert.Equal(t, 12, util.VisibleWidth(got[0]))
}

func TestRunStopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- New(newPlugin(), r, io.Discard, Options{}, nil).Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunServesTimerRequests(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = New(newPlugin(), r, out, Options{Cols: 30}, nil).Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(frames(out.String())) >= 1
	}, 4*time.Second, 20*time.Millisecond)
	assert.True(t, strings.HasSuffix(frames(out.String())[0], "1  "))
}
