package app

import "github.com/csheth/calcscout/internal/calc"

// Field names an input the orchestrator reads from or writes to.
type Field string

const (
	FieldExpression      Field = "expression"
	FieldGraphExpression Field = "graph_expression"
	FieldXMin            Field = "x_min"
	FieldXMax            Field = "x_max"
	FieldSamples         Field = "samples"
	FieldNumber          Field = "number"
	FieldBase            Field = "base"
	FieldOp              Field = "op"
	FieldOther           Field = "other"
	FieldDateOp          Field = "date_op"
	FieldDate1           Field = "date1"
	FieldDate2           Field = "date2"
	FieldDays            Field = "days"
)

// Form is the set of input values owned by the host.
type Form interface {
	Value(field Field) string
	SetValue(field Field, value string)
}

// Region is an output area. Each submit target writes to exactly one.
type Region string

const (
	RegionExpression Region = "expression"
	RegionGraph      Region = "graph"
	RegionProgrammer Region = "programmer"
	RegionDate       Region = "date"
)

// Regions lists every output region.
func Regions() []Region {
	return []Region{RegionExpression, RegionGraph, RegionProgrammer, RegionDate}
}

const (
	StatusReady          = "Ready."
	StatusOK             = "OK."
	StatusError          = "Error."
	StatusNetworkError   = "Network error."
	StatusNeedExpression = "Enter an expression."
	StatusNeedFunction   = "Enter a function f(x)."
	StatusCalculating    = "Calculating..."
	StatusConverting     = "Converting..."
	StatusPlotting       = "Plotting..."
	successMark          = "✓ "
	failureMark          = "✗ "
)

// State is the orchestrator's view of the screen. Hosts render from it and
// never mutate it.
type State struct {
	Mode         calc.Mode
	Title        string
	Status       string
	HintsVisible bool
	Hint         string

	displays map[Region]string
	pending  map[Region]bool
}

func newState() State {
	return State{
		Mode:     calc.ModeStandard,
		Title:    calc.ModeStandard.Label(),
		Status:   StatusReady,
		displays: map[Region]string{},
		pending:  map[Region]bool{},
	}
}

// Display returns the text shown in a region.
func (s State) Display(region Region) string {
	return s.displays[region]
}

// Pending reports whether the latest request for a region is still in flight.
func (s State) Pending(region Region) bool {
	return s.pending[region]
}

// AnyPending reports whether any region is waiting on the service.
func (s State) AnyPending() bool {
	for _, waiting := range s.pending {
		if waiting {
			return true
		}
	}
	return false
}

// VisiblePanel is the one panel shown for the active mode.
func (s State) VisiblePanel() calc.Panel {
	return calc.PanelFor(s.Mode)
}

// PanelVisible reports whether panel is the one currently shown.
func (s State) PanelVisible(panel calc.Panel) bool {
	return s.VisiblePanel() == panel
}

// ActiveTab reports whether the tab for mode is the active one.
func (s State) ActiveTab(mode calc.Mode) bool {
	return s.Mode == mode
}

func (s *State) clearDisplays() {
	for _, region := range Regions() {
		delete(s.displays, region)
	}
}

func (s State) clone() State {
	out := s
	out.displays = make(map[Region]string, len(s.displays))
	for k, v := range s.displays {
		out.displays[k] = v
	}
	out.pending = make(map[Region]bool, len(s.pending))
	for k, v := range s.pending {
		out.pending[k] = v
	}
	return out
}
