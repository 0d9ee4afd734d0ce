package app

import "github.com/csheth/calcscout/internal/calc"

// Marked prefixes an outcome with its success or failure glyph.
func Marked(out calc.Outcome) string {
	if out.OK() {
		return successMark + out.Result
	}
	return failureMark + out.Message
}

// StatusFor maps an outcome to its status line token.
func StatusFor(out calc.Outcome) string {
	switch out.Kind {
	case calc.OutcomeSuccess:
		return StatusOK
	case calc.OutcomeTransportFailure:
		return StatusNetworkError
	default:
		return StatusError
	}
}

func (o *Orchestrator) render(region Region, out calc.Outcome) {
	o.state.displays[region] = Marked(out)
	o.state.Status = StatusFor(out)
}

// renderGraph hands a successful series to the chart manager instead of
// writing text. Failures are written to the graph region.
func (o *Orchestrator) renderGraph(c Completion) {
	if !c.Outcome.OK() {
		o.render(RegionGraph, c.Outcome)
		return
	}
	if err := o.charts.Replace(c.Series, c.Expression); err != nil {
		o.logger.Error("chart replace failed", "expression", c.Expression, "error", err)
		o.render(RegionGraph, calc.Failure(err.Error()))
		return
	}
	delete(o.state.displays, RegionGraph)
	o.state.Status = StatusOK
}
