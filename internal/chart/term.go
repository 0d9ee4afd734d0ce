package chart

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

// Below this the axes and tick labels leave no room for the line.
const (
	minPlotColumns = 12
	minPlotRows    = 4
)

var (
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// TermCanvas is a fixed terminal region that hosts one chart at a time.
// Binding a second chart before the first is destroyed fails with
// ErrCanvasInUse.
type TermCanvas struct {
	width  int
	height int
	bound  *termChart
}

// NewTermCanvas returns an empty canvas of the given cell size.
func NewTermCanvas(width, height int) *TermCanvas {
	return &TermCanvas{width: width, height: height}
}

// Resize changes the cell size; a bound chart is re-rendered on next View.
func (c *TermCanvas) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Size reports the cell size.
func (c *TermCanvas) Size() (int, int) {
	return c.width, c.height
}

// NewChart binds a chart to the canvas.
func (c *TermCanvas) NewChart(spec Spec) (Instance, error) {
	if c.bound != nil {
		return nil, ErrCanvasInUse
	}
	chart := &termChart{canvas: c, spec: spec}
	c.bound = chart
	return chart, nil
}

// Bound reports whether a chart currently owns the canvas.
func (c *TermCanvas) Bound() bool {
	return c.bound != nil
}

// View renders the bound chart, or an empty string.
func (c *TermCanvas) View() string {
	if c.bound == nil {
		return ""
	}
	return renderPlot(c.bound.spec, c.width, c.height)
}

type termChart struct {
	canvas    *TermCanvas
	spec      Spec
	destroyed bool
}

func (t *termChart) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.canvas.bound == t {
		t.canvas.bound = nil
	}
}

func renderPlot(spec Spec, width, height int) string {
	label := labelStyle.Render(spec.Label)
	minX, maxX, minY, maxY, ok := spec.Series.Bounds()
	if !ok {
		return label + "\n" + axisStyle.Render("No defined points in range.")
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}
	if maxX == minX {
		minX, maxX = minX-1, maxX+1
	}
	rows := height - 1
	if width < minPlotColumns || rows < minPlotRows {
		return label
	}

	plot := linechart.New(width, rows, minX, maxX, minY, maxY)
	plot.AxisStyle = axisStyle
	plot.LabelStyle = axisStyle
	plot.DrawXYAxisAndLabel()
	// Each segment is drawn on its own so gaps stay open.
	for _, segment := range spec.Series.Segments() {
		prev := canvas.Float64Point{X: segment[0].X, Y: segment[0].Y}
		if len(segment) == 1 {
			plot.DrawBrailleLineWithStyle(prev, prev, lineStyle)
			continue
		}
		for _, p := range segment[1:] {
			next := canvas.Float64Point{X: p.X, Y: p.Y}
			plot.DrawBrailleLineWithStyle(prev, next, lineStyle)
			prev = next
		}
	}
	return label + "\n" + plot.View()
}
