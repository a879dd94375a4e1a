package plugin

import (
	"time"

	"zj-status/internal/logger"
	"zj-status/internal/proc"
	"zj-status/internal/tui/state"
)

// TickInterval is the delay requested after every timer event.
const TickInterval = time.Second

// DefaultTriggerKey launches the configured command.
const DefaultTriggerKey = "t"

// Options configures the controller.
type Options struct {
	TriggerKey  string
	Command     []string
	ShowActions bool
	// Palette is used until the host sends one. Nil means the default.
	Palette state.Palette
}

// Controller owns the render state and applies host events to it.
type Controller struct {
	state      state.RenderState
	host       Host
	dispatcher proc.Dispatcher
	opts       Options
	log        *logger.Logger
}

func NewController(host Host, dispatcher proc.Dispatcher, opts Options, log *logger.Logger) *Controller {
	if opts.TriggerKey == "" {
		opts.TriggerKey = DefaultTriggerKey
	}
	opts.Command = append([]string(nil), opts.Command...)
	if opts.Palette == nil {
		opts.Palette = state.DefaultPalette()
	} else {
		opts.Palette = opts.Palette.Clone()
	}
	initial := state.NewRenderState()
	initial.Palette = opts.Palette.Clone()
	return &Controller{
		state:      initial,
		host:       host,
		dispatcher: dispatcher,
		opts:       opts,
		log:        log,
	}
}

// Apply folds ev into the state and reports whether the line must be
// redrawn.
func (c *Controller) Apply(ev state.Event) bool {
	if ev == nil {
		return false
	}
	switch e := ev.(type) {
	case state.ModeChanged:
		if e.Palette == nil {
			e.Palette = c.opts.Palette
		}
		c.state = state.ApplyModeChanged(c.state, e)
		c.log.Debug("mode changed", "mode", e.Mode.Label(), "session", e.Session)
		return true
	case state.TabsChanged:
		c.state = state.ApplyTabsChanged(c.state, e)
		c.log.Debug("tabs changed", "tabs", len(e.Tabs))
		return true
	case state.TimerFired:
		c.state = state.Tick(c.state)
		if c.host != nil {
			c.host.SetTimeout(TickInterval)
		}
		return true
	case state.KeyPressed:
		return c.keyPressed(e)
	default:
		c.log.Debug("event ignored", "kind", ev.Kind().String())
		return false
	}
}

func (c *Controller) keyPressed(e state.KeyPressed) bool {
	if e.Key != c.opts.TriggerKey {
		return false
	}
	c.state = state.CountAction(c.state)
	c.log.Debug("trigger key", "key", e.Key, "actions", c.state.Actions)
	if len(c.opts.Command) > 0 && c.dispatcher != nil {
		c.dispatcher.Dispatch(append([]string(nil), c.opts.Command...))
	}
	return c.opts.ShowActions
}

// State returns a snapshot that shares no memory with the controller.
func (c *Controller) State() state.RenderState {
	return c.state.Clone()
}

// Options returns the controller options.
func (c *Controller) Options() Options {
	out := c.opts
	out.Command = append([]string(nil), c.opts.Command...)
	out.Palette = c.opts.Palette.Clone()
	return out
}
