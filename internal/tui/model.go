package tui

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calcscout/internal/app"
	"github.com/csheth/calcscout/internal/calc"
	"github.com/csheth/calcscout/internal/chart"
	"github.com/csheth/calcscout/internal/hints"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Service      calc.Service
	Endpoint     string
	ExportDir    string
	Graph        app.GraphDefaults
	HintsVisible bool
	Hints        *hints.Rotator
	Logger       *slog.Logger
	Now          func() time.Time
}

type model struct {
	config Config
	logger *slog.Logger

	orch     *app.Orchestrator
	form     *form
	canvas   *chart.TermCanvas
	handlers map[app.EventName]app.Handler
	jobs     *jobBus
	running  map[string]jobSnapshot
	lastJob  *jobSnapshot

	layout      pageLayout
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	helpView    viewport.Model
	helpVisible bool
	notice      string
	noticeErr   bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.ExportDir == "" {
		config.ExportDir = "."
	}

	layout := newPageLayout()
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(layout.contentWidth, 16)
	vp.MouseWheelEnabled = true

	m := &model{
		config:   config,
		logger:   logger,
		form:     newForm(layout.inputWidth),
		canvas:   chart.NewTermCanvas(layout.chartWidth, layout.chartHeight),
		handlers: map[app.EventName]app.Handler{},
		jobs:     newJobBus(logger),
		running:  map[string]jobSnapshot{},
		layout:   layout,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  spin,
		helpView: vp,
	}
	m.orch = app.New(m.form, app.Options{
		Service:      config.Service,
		Canvas:       m.canvas,
		Hints:        config.Hints,
		HintsVisible: config.HintsVisible,
		Graph:        config.Graph,
		Now:          config.Now,
		Logger:       logger,
	})
	m.orch.Bind(m)
	m.form.activate(m.orch.State().VisiblePanel())
	return m
}

// Handle implements app.EventSource.
func (m *model) Handle(name app.EventName, handler app.Handler) {
	m.handlers[name] = handler
}

// fire delivers an event to its handler and schedules any resulting task on
// the job bus.
func (m *model) fire(ev app.Event) tea.Cmd {
	handler, ok := m.handlers[ev.Name]
	if !ok {
		m.logger.Warn("unbound event", "event", ev.Name)
		return nil
	}
	task := handler(ev)
	if task == nil {
		return nil
	}
	return tea.Batch(m.jobs.Start(jobKindFor(ev.Name), taskJob(task)), m.spinner.Tick)
}

func (m *model) Init() tea.Cmd {
	return m.form.activate(m.orch.State().VisiblePanel())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if m.orch.State().AnyPending() || len(m.running) > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		snapshot := msg.Snapshot
		m.lastJob = &snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case completionMsg:
		m.orch.Complete(msg.completion)
		return m, nil
	case exportResultMsg:
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
		} else {
			m.setNotice("Chart saved to "+msg.path, false)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.helpVisible {
			var cmd tea.Cmd
			m.helpView, cmd = m.helpView.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpVisible {
		switch {
		case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
			m.helpVisible = false
			return m, nil
		case msg.Type == tea.KeyCtrlC:
			return m.quit()
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	state := m.orch.State()
	panel := state.VisiblePanel()
	for idx, binding := range m.keys.Tabs {
		if key.Matches(msg, binding) {
			return m, m.selectTab(calc.Modes()[idx])
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.NextTab):
		return m, m.selectTab(state.Mode.Offset(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.selectTab(state.Mode.Offset(-1))
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.moveFocus(panel, 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.moveFocus(panel, -1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.fire(app.Event{Name: m.submitEvent(panel)})
	case key.Matches(msg, m.keys.ToBase):
		if panel != calc.PanelProgrammer {
			return m, nil
		}
		return m, m.fire(app.Event{Name: app.EventToBase})
	case key.Matches(msg, m.keys.Clear):
		return m, m.fire(app.Event{Name: clearEvents[panel]})
	case key.Matches(msg, m.keys.Hints):
		return m, m.fire(app.Event{Name: app.EventHints})
	case key.Matches(msg, m.keys.Export):
		return m, m.exportChart()
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
		return m, nil
	}
	return m, m.form.update(panel, msg)
}

var submitEvents = map[calc.Panel]app.EventName{
	calc.PanelExpression: app.EventCalc,
	calc.PanelGraph:      app.EventPlot,
	calc.PanelProgrammer: app.EventBitwise,
	calc.PanelDate:       app.EventDate,
}

var clearEvents = map[calc.Panel]app.EventName{
	calc.PanelExpression: app.EventCalcClear,
	calc.PanelGraph:      app.EventPlotClear,
	calc.PanelProgrammer: app.EventProgClear,
	calc.PanelDate:       app.EventDateClear,
}

// quit abandons in-flight requests before leaving the program.
func (m *model) quit() (tea.Model, tea.Cmd) {
	m.jobs.Shutdown()
	return m, tea.Quit
}

// submitEvent picks the action for enter. In the programmer panel the number
// and base fields convert; the operation fields run the bitwise op.
func (m *model) submitEvent(panel calc.Panel) app.EventName {
	if panel == calc.PanelProgrammer {
		if name, _ := m.form.focused(panel); name == app.FieldNumber || name == app.FieldBase {
			return app.EventToBase
		}
	}
	return submitEvents[panel]
}

func (m *model) selectTab(mode calc.Mode) tea.Cmd {
	cmd := m.fire(app.Event{Name: app.EventTab, Mode: mode})
	m.clearNotice()
	return tea.Batch(cmd, m.form.activate(calc.PanelFor(mode)))
}

func (m *model) exportChart() tea.Cmd {
	var buf bytes.Buffer
	if err := m.orch.ExportChart(&buf, exportWidth, exportHeight); err != nil {
		m.setNotice(fmt.Sprintf("Export failed: %v", err), true)
		return nil
	}
	m.setNotice("Exporting chart...", false)
	return m.jobs.Start(jobKindExport, exportChartJob(m.config.ExportDir, buf.Bytes(), m.config.Now()))
}

const (
	exportWidth  = 1024
	exportHeight = 640
)

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.canvas.Resize(m.layout.chartWidth, m.layout.chartHeight)
	m.form.setWidth(m.layout.inputWidth)
	m.help.Width = m.layout.contentWidth
	m.helpView.Width = m.layout.contentWidth
	m.helpView.Height = height - 4
	if m.helpVisible {
		m.helpView.SetContent(renderHelp(m.layout.contentWidth))
	}
}

func (m *model) openHelp() {
	m.helpVisible = true
	m.helpView.SetContent(renderHelp(m.layout.contentWidth))
	m.helpView.GotoTop()
}

func (m *model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *model) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}
