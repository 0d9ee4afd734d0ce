package chart

import (
	"errors"
	"fmt"
)

// ErrCanvasInUse is returned by a canvas asked to bind a second chart.
var ErrCanvasInUse = errors.New("chart: canvas already in use")

// Spec describes the chart to build.
type Spec struct {
	Label  string
	Series Series
}

// Instance is a live chart bound to a canvas. Destroy releases the canvas.
type Instance interface {
	Destroy()
}

// Canvas is the rendering surface a chart binds to.
type Canvas interface {
	NewChart(spec Spec) (Instance, error)
}

// Manager holds at most one chart instance. It always destroys the current
// instance before asking the canvas for a new one.
type Manager struct {
	canvas  Canvas
	current Instance
	spec    Spec
}

// NewManager binds a manager to its canvas.
func NewManager(canvas Canvas) *Manager {
	return &Manager{canvas: canvas}
}

// Replace destroys the live chart, if any, and builds a new one from the
// series labelled with the submitted expression.
func (m *Manager) Replace(series Series, expression string) error {
	m.Clear()
	spec := Spec{Label: Label(expression), Series: series}
	instance, err := m.canvas.NewChart(spec)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	m.current = instance
	m.spec = spec
	return nil
}

// Clear destroys the live chart and leaves the canvas empty.
func (m *Manager) Clear() {
	if m.current == nil {
		return
	}
	m.current.Destroy()
	m.current = nil
	m.spec = Spec{}
}

// Active reports whether a chart is live.
func (m *Manager) Active() bool {
	return m.current != nil
}

// Current returns the spec of the live chart.
func (m *Manager) Current() (Spec, bool) {
	if m.current == nil {
		return Spec{}, false
	}
	return m.spec, true
}
