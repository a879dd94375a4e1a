package plugin

import (
	"io"

	"zj-status/internal/logger"
	"zj-status/internal/proc"
	"zj-status/internal/tui/state"
	"zj-status/internal/tui/widgets/statusbar"
)

// Plugin is the status line as a host sees it: load once, feed events,
// render on request.
type Plugin struct {
	bar        statusbar.StatusBar
	opts       Options
	dispatcher proc.Dispatcher
	log        *logger.Logger

	ctrl *Controller
}

func New(bar statusbar.StatusBar, opts Options, dispatcher proc.Dispatcher, log *logger.Logger) *Plugin {
	opts.ShowActions = bar.Options().ShowActions
	p := &Plugin{bar: bar, opts: opts, dispatcher: dispatcher, log: log}
	p.ctrl = NewController(nil, dispatcher, opts, log)
	return p
}

// Load registers with host and requests the first timer callback.
func (p *Plugin) Load(host Host) {
	p.ctrl = NewController(host, p.dispatcher, p.opts, p.log)
	host.SetSelectable(false)
	host.Subscribe(Subscriptions()...)
	host.SetTimeout(TickInterval)
	p.log.Info("status line loaded", "trigger_key", p.ctrl.opts.TriggerKey)
}

// Update applies ev and reports whether Render should be called.
func (p *Plugin) Update(ev state.Event) bool {
	return p.ctrl.Apply(ev)
}

// State returns a snapshot of the current render state.
func (p *Plugin) State() state.RenderState {
	return p.ctrl.State()
}

// Line composes the current line at cols cells.
func (p *Plugin) Line(cols int) string {
	return p.bar.View(p.ctrl.State(), cols)
}

// Render writes the line in a single write with no trailing newline. rows is
// ignored; the line is always one row.
func (p *Plugin) Render(w io.Writer, rows, cols int) error {
	_, err := io.WriteString(w, p.Line(cols))
	return err
}
