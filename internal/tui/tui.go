package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"zj-status/internal/logger"
	"zj-status/internal/plugin"
	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
	"zj-status/internal/tui/widgets/diff"
	"zj-status/internal/tui/widgets/helpoverlay"
)

const fallbackWidth = 80

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Options seeds the simulated session.
type Options struct {
	Session    string
	Tabs       int
	Palette    state.Palette
	TriggerKey string
}

// Run starts the interactive preview on the alt screen.
func Run(p *plugin.Plugin, opts Options, log *logger.Logger) error {
	m := NewModel(p, opts, log)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Model hosts the plugin inside bubbletea and drives it from a simulated
// session.
type Model struct {
	plugin *plugin.Plugin
	host   *bridge
	sess   session
	keys   keyMap
	log    *logger.Logger

	width    int
	line     string
	prev     string
	cur      string
	showDiff bool
	showHelp bool
	status   string

	copy func(string) error
}

func NewModel(p *plugin.Plugin, opts Options, log *logger.Logger) *Model {
	if opts.Tabs <= 0 {
		opts.Tabs = 3
	}
	if opts.Palette == nil {
		opts.Palette = state.DefaultPalette()
	}
	keys := defaultKeyMap()
	if opts.TriggerKey != "" {
		keys.yield(opts.TriggerKey)
	}
	return &Model{
		plugin: p,
		host:   newBridge(),
		sess:   newSession(opts.Session, opts.Tabs, opts.Palette),
		keys:   keys,
		log:    log,
		copy:   clipboard.WriteAll,
	}
}

func (m *Model) Init() tea.Cmd {
	m.plugin.Load(m.host)
	m.deliver(m.sess.modeEvent())
	m.deliver(m.sess.tabsEvent())
	m.redraw()
	return m.host.drain()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		m.redraw()
		return m, nil
	case tickMsg:
		m.deliver(state.TimerFired{})
		return m, m.host.drain()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, m.host.drain()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.NextMode):
		m.sess.cycleMode(1)
		m.deliver(m.sess.modeEvent())
	case key.Matches(msg, m.keys.PrevMode):
		m.sess.cycleMode(-1)
		m.deliver(m.sess.modeEvent())
	case key.Matches(msg, m.keys.NewTab):
		m.sess.newTab()
		m.deliver(m.sess.tabsEvent())
	case key.Matches(msg, m.keys.CloseTab):
		if m.sess.closeTab() {
			m.deliver(m.sess.tabsEvent())
		} else {
			m.status = "cannot close the last tab"
		}
	case key.Matches(msg, m.keys.NextTab):
		m.sess.focus(1)
		m.deliver(m.sess.tabsEvent())
	case key.Matches(msg, m.keys.PrevTab):
		m.sess.focus(-1)
		m.deliver(m.sess.tabsEvent())
	case key.Matches(msg, m.keys.ToggleSession):
		m.sess.named = !m.sess.named
		m.deliver(m.sess.modeEvent())
	case key.Matches(msg, m.keys.Copy):
		m.copyLine()
	case key.Matches(msg, m.keys.Diff):
		m.showDiff = !m.showDiff
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	default:
		m.deliver(state.KeyPressed{Key: msg.String()})
	}
}

// deliver forwards ev if the plugin subscribed to it and redraws when asked.
func (m *Model) deliver(ev state.Event) {
	if !m.host.subscribed[ev.Kind()] {
		return
	}
	if m.plugin.Update(ev) {
		m.redraw()
	}
}

func (m *Model) redraw() {
	m.line = m.plugin.Line(m.cols())
	m.prev = m.cur
	m.cur = util.Strip(m.line)
}

func (m *Model) copyLine() {
	if err := m.copy(m.cur); err != nil {
		m.log.Error(err, "copy to clipboard failed")
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied status line"
}

func (m *Model) cols() int {
	if m.width > 0 {
		return m.width
	}
	return fallbackWidth
}

func (m *Model) View() string {
	w := m.cols()
	var b strings.Builder
	b.WriteString(m.line + "\n")
	if m.status != "" {
		b.WriteString(faintStyle.Render(ansi.Truncate(m.status, w, "…")) + "\n")
	}
	if m.showDiff {
		b.WriteString("\n" + titleStyle.Render(ansi.Truncate(diff.Header(m.prev, m.cur), w, "…")) + "\n")
		for _, line := range diff.Frames(m.prev, m.cur) {
			b.WriteString(ansi.Truncate(line, w, "…") + "\n")
		}
	}
	if m.showHelp {
		b.WriteString("\n" + helpoverlay.View("Preview keys", m.keys.Sections(), w))
	}
	b.WriteString("\n" + faintStyle.Render(ansi.Truncate(helpoverlay.Short(m.keys.ShortHelp()), w, "…")))
	return b.String()
}
