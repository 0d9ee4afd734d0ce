package app

import (
	"context"

	"github.com/csheth/calcscout/internal/calc"
	"github.com/csheth/calcscout/internal/chart"
)

// EventName identifies a user action.
type EventName string

const (
	EventTab       EventName = "tab"
	EventCalc      EventName = "calc"
	EventCalcClear EventName = "calc-clear"
	EventPlot      EventName = "plot"
	EventPlotClear EventName = "plot-clear"
	EventToBase    EventName = "to-base"
	EventBitwise   EventName = "bitwise"
	EventProgClear EventName = "prog-clear"
	EventDate      EventName = "date"
	EventDateClear EventName = "date-clear"
	EventHints     EventName = "hints"
)

// Events lists every event the orchestrator binds.
func Events() []EventName {
	return []EventName{
		EventTab, EventCalc, EventCalcClear, EventPlot, EventPlotClear,
		EventToBase, EventBitwise, EventProgClear, EventDate, EventDateClear, EventHints,
	}
}

// Event is one occurrence of a user action. Mode is only meaningful for tab events.
type Event struct {
	Name EventName
	Mode calc.Mode
}

// Completion is the result of a Task, applied with Orchestrator.Complete.
type Completion struct {
	Region     Region
	Token      uint64
	Outcome    calc.Outcome
	Series     chart.Series
	Expression string
}

// Task is the blocking half of a submit. Hosts run it off the event loop and
// feed its Completion back in.
type Task func(ctx context.Context) Completion

// Handler reacts to an event. It returns nil when no request is needed.
type Handler func(ev Event) Task

// EventSource delivers named user actions to registered handlers.
type EventSource interface {
	Handle(name EventName, handler Handler)
}
