package pipe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"zj-status/internal/logger"
	"zj-status/internal/plugin"
	"zj-status/internal/tui/state"
)

const (
	DefaultCols = 80
	maxLineSize = 1 << 20
)

// Options sizes the initial render area.
type Options struct {
	Cols int
	Rows int
	// RenderOnLoad writes a frame before the first event arrives.
	RenderOnLoad bool
}

// Host drives a plugin from newline-delimited JSON events and writes one
// frame per render, each followed by a newline.
type Host struct {
	plugin *plugin.Plugin
	in     io.Reader
	out    io.Writer
	log    *logger.Logger

	cols, rows int
	renderLoad bool
	subscribed map[state.EventKind]bool
	selectable bool

	timers  chan struct{}
	pending *time.Timer
}

func New(p *plugin.Plugin, in io.Reader, out io.Writer, opts Options, log *logger.Logger) *Host {
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = 1
	}
	return &Host{
		plugin:     p,
		in:         in,
		out:        out,
		log:        log,
		cols:       opts.Cols,
		rows:       opts.Rows,
		renderLoad: opts.RenderOnLoad,
		subscribed: map[state.EventKind]bool{},
		timers:     make(chan struct{}, 1),
	}
}

func (h *Host) SetSelectable(selectable bool) {
	h.selectable = selectable
	h.log.Debug("selectable", "value", selectable)
}

func (h *Host) Subscribe(kinds ...state.EventKind) {
	for _, k := range kinds {
		h.subscribed[k] = true
	}
}

// SetTimeout arms a single timer. The callback only signals the run loop.
func (h *Host) SetTimeout(d time.Duration) {
	if h.pending != nil {
		h.pending.Stop()
	}
	h.pending = time.AfterFunc(d, func() {
		select {
		case h.timers <- struct{}{}:
		default:
		}
	})
}

// Run loads the plugin and serves events until the input ends or ctx is
// cancelled. Bad lines are logged and skipped.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.plugin.Load(h)
	defer func() {
		if h.pending != nil {
			h.pending.Stop()
		}
	}()
	if h.renderLoad {
		if err := h.render(); err != nil {
			return err
		}
	}

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go h.read(ctx, lines, readErr)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				err := <-readErr
				h.log.Info("input closed")
				return err
			}
			if err := h.handle(line); err != nil {
				return err
			}
		case <-h.timers:
			if err := h.deliver(state.TimerFired{}); err != nil {
				return err
			}
		}
	}
}

func (h *Host) read(ctx context.Context, lines chan<- []byte, errs chan<- error) {
	defer close(lines)
	sc := bufio.NewScanner(h.in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		select {
		case lines <- append([]byte(nil), line...):
		case <-ctx.Done():
			errs <- nil
			return
		}
	}
	if err := sc.Err(); err != nil {
		errs <- fmt.Errorf("read events: %w", err)
		return
	}
	errs <- nil
}

func (h *Host) handle(line []byte) error {
	ev, err := Decode(line)
	if err != nil {
		h.log.Warn("skipping event", "error", err.Error(), "line", string(line))
		return nil
	}
	if rs, ok := ev.(Resize); ok {
		if rs.Cols > 0 {
			h.cols = rs.Cols
		}
		if rs.Rows > 0 {
			h.rows = rs.Rows
		}
		return h.render()
	}
	return h.deliver(ev)
}

func (h *Host) deliver(ev state.Event) error {
	if !h.subscribed[ev.Kind()] {
		return nil
	}
	if !h.plugin.Update(ev) {
		return nil
	}
	return h.render()
}

func (h *Host) render() error {
	if err := h.plugin.Render(h.out, h.rows, h.cols); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := io.WriteString(h.out, "\n"); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
