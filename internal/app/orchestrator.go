// Package app holds the calculator's interaction logic: which panel is shown,
// how a submit becomes a request, and how outcomes land on screen. It knows
// nothing about terminals; hosts bind it to an EventSource and a Form.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/csheth/calcscout/internal/calc"
	"github.com/csheth/calcscout/internal/chart"
	"github.com/csheth/calcscout/internal/hints"
)

// ErrNoChart is returned when exporting with no live chart.
var ErrNoChart = errors.New("no chart to export")

// GraphDefaults seeds the graph range fields at startup.
type GraphDefaults struct {
	XMin    string
	XMax    string
	Samples string
}

// Options configures an Orchestrator. Service and Canvas are required.
type Options struct {
	Service      calc.Service
	Canvas       chart.Canvas
	Hints        *hints.Rotator
	HintsVisible bool
	Graph        GraphDefaults
	Now          func() time.Time
	Logger       *slog.Logger
}

// Orchestrator owns the application state and the single chart.
type Orchestrator struct {
	form       Form
	dispatcher *calc.Dispatcher
	charts     *chart.Manager
	hints      *hints.Rotator
	logger     *slog.Logger

	state  State
	tokens map[Region]uint64
}

// New builds an orchestrator in the standard mode and pre-fills the form.
func New(form Form, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rotator := opts.Hints
	if rotator == nil {
		rotator = hints.Default(nil)
	}
	graph := opts.Graph
	if graph.XMin == "" {
		graph.XMin = "-10"
	}
	if graph.XMax == "" {
		graph.XMax = "10"
	}
	if graph.Samples == "" {
		graph.Samples = "400"
	}

	o := &Orchestrator{
		form:       form,
		dispatcher: calc.NewDispatcher(opts.Service, logger),
		charts:     chart.NewManager(opts.Canvas),
		hints:      rotator,
		logger:     logger,
		state:      newState(),
		tokens:     map[Region]uint64{},
	}

	today := now().Format(calc.DateLayout)
	form.SetValue(FieldDate1, today)
	form.SetValue(FieldDate2, today)
	form.SetValue(FieldXMin, graph.XMin)
	form.SetValue(FieldXMax, graph.XMax)
	form.SetValue(FieldSamples, graph.Samples)
	if form.Value(FieldBase) == "" {
		form.SetValue(FieldBase, "2")
	}
	if form.Value(FieldOp) == "" {
		form.SetValue(FieldOp, calc.OpBitAnd)
	}
	if form.Value(FieldDateOp) == "" {
		form.SetValue(FieldDateOp, calc.DateOpDiff)
	}
	if opts.HintsVisible {
		o.state.HintsVisible = true
		o.state.Hint = rotator.Next()
	}
	return o
}

// Bind registers every handler on the event source.
func (o *Orchestrator) Bind(src EventSource) {
	src.Handle(EventTab, func(ev Event) Task {
		o.SelectTab(ev.Mode)
		return nil
	})
	src.Handle(EventCalc, func(Event) Task { return o.SubmitExpression() })
	src.Handle(EventCalcClear, func(Event) Task {
		o.ClearExpression()
		return nil
	})
	src.Handle(EventPlot, func(Event) Task { return o.SubmitGraph() })
	src.Handle(EventPlotClear, func(Event) Task {
		o.ClearGraph()
		return nil
	})
	src.Handle(EventToBase, func(Event) Task { return o.SubmitToBase() })
	src.Handle(EventBitwise, func(Event) Task { return o.SubmitBitwise() })
	src.Handle(EventProgClear, func(Event) Task {
		o.ClearProgrammer()
		return nil
	})
	src.Handle(EventDate, func(Event) Task { return o.SubmitDate() })
	src.Handle(EventDateClear, func(Event) Task {
		o.ClearDate()
		return nil
	})
	src.Handle(EventHints, func(Event) Task {
		o.ToggleHints()
		return nil
	})
}

// State returns a snapshot of the current state.
func (o *Orchestrator) State() State {
	return o.state.clone()
}

// Chart returns the spec of the live chart, if any.
func (o *Orchestrator) Chart() (chart.Spec, bool) {
	return o.charts.Current()
}

// SelectTab switches to mode. Any mode is reachable from any other.
func (o *Orchestrator) SelectTab(mode calc.Mode) {
	o.state.Mode = mode
	o.state.Title = mode.Label()
	o.state.clearDisplays()
	o.state.Status = StatusReady
	o.logger.Debug("mode selected", "mode", mode)
}

// SubmitExpression evaluates the expression field in the current mode.
func (o *Orchestrator) SubmitExpression() Task {
	req, ok := calc.NewExpressionRequest(o.state.Mode, o.form.Value(FieldExpression))
	if !ok {
		o.state.Status = StatusNeedExpression
		return nil
	}
	return o.calculate(RegionExpression, StatusCalculating, req)
}

// ClearExpression empties the expression field and its result.
func (o *Orchestrator) ClearExpression() {
	o.form.SetValue(FieldExpression, "")
	delete(o.state.displays, RegionExpression)
	o.state.Status = StatusReady
}

// SubmitGraph requests a series for the graph expression.
func (o *Orchestrator) SubmitGraph() Task {
	req, ok := calc.NewGraphRequest(
		o.form.Value(FieldGraphExpression),
		o.form.Value(FieldXMin),
		o.form.Value(FieldXMax),
		o.form.Value(FieldSamples),
	)
	if !ok {
		o.state.Status = StatusNeedFunction
		return nil
	}
	token := o.begin(RegionGraph, StatusPlotting)
	dispatcher := o.dispatcher
	return func(ctx context.Context) Completion {
		out := dispatcher.Graph(ctx, req)
		return Completion{
			Region:     RegionGraph,
			Token:      token,
			Outcome:    out.Outcome,
			Series:     out.Series,
			Expression: req.Expression,
		}
	}
}

// ClearGraph empties the graph expression and destroys the chart.
func (o *Orchestrator) ClearGraph() {
	o.form.SetValue(FieldGraphExpression, "")
	o.charts.Clear()
	delete(o.state.displays, RegionGraph)
	o.state.Status = StatusReady
}

// SubmitToBase converts the programmer number to the selected base.
func (o *Orchestrator) SubmitToBase() Task {
	req := calc.NewToBaseRequest(o.form.Value(FieldNumber), o.form.Value(FieldBase))
	return o.calculate(RegionProgrammer, StatusConverting, req)
}

// SubmitBitwise applies the selected bitwise operation.
func (o *Orchestrator) SubmitBitwise() Task {
	req := calc.NewBitwiseRequest(o.form.Value(FieldOp), o.form.Value(FieldNumber), o.form.Value(FieldOther))
	return o.calculate(RegionProgrammer, StatusCalculating, req)
}

// ClearProgrammer empties the programmer result.
func (o *Orchestrator) ClearProgrammer() {
	delete(o.state.displays, RegionProgrammer)
	o.state.Status = StatusReady
}

// SubmitDate runs the selected date operation.
func (o *Orchestrator) SubmitDate() Task {
	req := calc.NewDateRequest(
		o.form.Value(FieldDateOp),
		o.form.Value(FieldDate1),
		o.form.Value(FieldDate2),
		o.form.Value(FieldDays),
	)
	return o.calculate(RegionDate, StatusCalculating, req)
}

// ClearDate empties the date result.
func (o *Orchestrator) ClearDate() {
	delete(o.state.displays, RegionDate)
	o.state.Status = StatusReady
}

// ToggleHints flips hint visibility. A new tip is drawn only when the hints
// go from hidden to shown.
func (o *Orchestrator) ToggleHints() {
	o.state.HintsVisible = !o.state.HintsVisible
	if o.state.HintsVisible {
		o.state.Hint = o.hints.Next()
	}
}

// Complete applies a finished task. It returns false when the completion was
// superseded by a later submit to the same region and was dropped.
func (o *Orchestrator) Complete(c Completion) bool {
	if latest := o.tokens[c.Region]; c.Token != latest {
		o.logger.Info("stale completion dropped", "region", c.Region, "token", c.Token, "latest", latest)
		return false
	}
	o.state.pending[c.Region] = false
	if c.Region == RegionGraph {
		o.renderGraph(c)
		return true
	}
	o.render(c.Region, c.Outcome)
	return true
}

// ExportChart writes the live chart as a PNG.
func (o *Orchestrator) ExportChart(w io.Writer, width, height int) error {
	spec, ok := o.charts.Current()
	if !ok {
		return ErrNoChart
	}
	return chart.WritePNG(w, spec, width, height)
}

func (o *Orchestrator) calculate(region Region, status string, req calc.CalculationRequest) Task {
	token := o.begin(region, status)
	dispatcher := o.dispatcher
	return func(ctx context.Context) Completion {
		return Completion{
			Region:  region,
			Token:   token,
			Outcome: dispatcher.Calculate(ctx, req),
		}
	}
}

func (o *Orchestrator) begin(region Region, status string) uint64 {
	o.tokens[region]++
	o.state.pending[region] = true
	o.state.Status = status
	return o.tokens[region]
}
