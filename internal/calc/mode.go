package calc

import "fmt"

// Mode is one of the calculator operating modes. Exactly one is active at a time.
type Mode string

const (
	ModeStandard   Mode = "standard"
	ModeScientific Mode = "scientific"
	ModeGraph      Mode = "graph"
	ModeProgrammer Mode = "programmer"
	ModeDate       Mode = "date"
)

var modeSequence = []Mode{
	ModeStandard,
	ModeScientific,
	ModeGraph,
	ModeProgrammer,
	ModeDate,
}

var modeLabels = map[Mode]string{
	ModeStandard:   "Standard",
	ModeScientific: "Scientific",
	ModeGraph:      "Graph",
	ModeProgrammer: "Programmer",
	ModeDate:       "Date arithmetic",
}

// Modes returns every mode in tab order.
func Modes() []Mode {
	return append([]Mode(nil), modeSequence...)
}

// ParseMode resolves a mode identifier.
func ParseMode(value string) (Mode, error) {
	for _, mode := range modeSequence {
		if string(mode) == value {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", value)
}

func (m Mode) String() string {
	return string(m)
}

// Label is the title shown for the mode. Modes without a label fall back to
// their raw identifier.
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return string(m)
}

// Index reports the tab position of the mode, or -1.
func (m Mode) Index() int {
	for idx, mode := range modeSequence {
		if mode == m {
			return idx
		}
	}
	return -1
}

// Offset returns the mode delta tabs away, wrapping around.
func (m Mode) Offset(delta int) Mode {
	idx := m.Index()
	if idx < 0 {
		return ModeStandard
	}
	n := len(modeSequence)
	return modeSequence[((idx+delta)%n+n)%n]
}

// Panel is a visual input region bound to one or more modes.
type Panel string

const (
	PanelExpression Panel = "expression"
	PanelGraph      Panel = "graph"
	PanelProgrammer Panel = "programmer"
	PanelDate       Panel = "date"
)

// Panels lists every panel in render order.
func Panels() []Panel {
	return []Panel{PanelExpression, PanelGraph, PanelProgrammer, PanelDate}
}

// PanelFor returns the panel bound to a mode. Standard and scientific share
// the expression panel.
func PanelFor(mode Mode) Panel {
	switch mode {
	case ModeGraph:
		return PanelGraph
	case ModeProgrammer:
		return PanelProgrammer
	case ModeDate:
		return PanelDate
	default:
		return PanelExpression
	}
}
