package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingCanvas struct {
	live      int
	created   int
	destroyed int
	events    []string
}

type recordingInstance struct {
	canvas *recordingCanvas
}

func (c *recordingCanvas) NewChart(spec Spec) (Instance, error) {
	if c.live > 0 {
		return nil, ErrCanvasInUse
	}
	c.live++
	c.created++
	c.events = append(c.events, "create:"+spec.Label)
	return &recordingInstance{canvas: c}, nil
}

func (i *recordingInstance) Destroy() {
	i.canvas.live--
	i.canvas.destroyed++
	i.canvas.events = append(i.canvas.events, "destroy")
}

func ptr(v float64) *float64 { return &v }

func TestNewSeriesMarksNullAsGap(t *testing.T) {
	series := NewSeries([]float64{0, 1, 2}, []*float64{ptr(1), nil, ptr(3)})

	require.Equal(t, 3, series.Len())
	require.True(t, math.IsNaN(series.Y[1]))
	require.Equal(t, 3.0, series.Y[2])
}

func TestNewSeriesTruncatesToShorterSide(t *testing.T) {
	series := NewSeries([]float64{0, 1, 2, 3}, []*float64{ptr(1), ptr(2)})
	require.Equal(t, 2, series.Len())
}

func TestSegmentsBreakAtGaps(t *testing.T) {
	series := NewSeries(
		[]float64{0, 1, 2, 3, 4, 5},
		[]*float64{ptr(0), ptr(1), nil, ptr(3), ptr(4), nil},
	)

	segments := series.Segments()
	require.Len(t, segments, 2)
	require.Equal(t, []Point{{0, 0}, {1, 1}}, segments[0])
	require.Equal(t, []Point{{3, 3}, {4, 4}}, segments[1])
}

func TestSegmentsEmptyWhenAllUndefined(t *testing.T) {
	series := NewSeries([]float64{0, 1}, []*float64{nil, nil})
	require.Empty(t, series.Segments())
	_, _, _, _, ok := series.Bounds()
	require.False(t, ok)
}

func TestManagerReplaceDestroysBeforeCreating(t *testing.T) {
	canvas := &recordingCanvas{}
	manager := NewManager(canvas)
	series := NewSeries([]float64{0, 1}, []*float64{ptr(0), ptr(1)})

	require.NoError(t, manager.Replace(series, "x"))
	require.NoError(t, manager.Replace(series, "x**2"))

	require.Equal(t, 1, canvas.live)
	require.Equal(t, 2, canvas.created)
	require.Equal(t, 1, canvas.destroyed)
	require.Equal(t, []string{"create:f(x) = x", "destroy", "create:f(x) = x**2"}, canvas.events)

	spec, ok := manager.Current()
	require.True(t, ok)
	require.Equal(t, "f(x) = x**2", spec.Label)
}

func TestManagerClear(t *testing.T) {
	canvas := &recordingCanvas{}
	manager := NewManager(canvas)

	manager.Clear()
	require.Equal(t, 0, canvas.destroyed)

	require.NoError(t, manager.Replace(Series{}, "x"))
	require.True(t, manager.Active())
	manager.Clear()
	require.False(t, manager.Active())
	require.Equal(t, 0, canvas.live)

	_, ok := manager.Current()
	require.False(t, ok)
}

func TestTermCanvasRejectsSecondChart(t *testing.T) {
	canvas := NewTermCanvas(40, 10)
	first, err := canvas.NewChart(Spec{Label: "a"})
	require.NoError(t, err)

	_, err = canvas.NewChart(Spec{Label: "b"})
	require.ErrorIs(t, err, ErrCanvasInUse)

	first.Destroy()
	require.False(t, canvas.Bound())
	require.Empty(t, canvas.View())

	_, err = canvas.NewChart(Spec{Label: "b"})
	require.NoError(t, err)
}

func TestTermCanvasStaleDestroyKeepsNewChart(t *testing.T) {
	canvas := NewTermCanvas(40, 10)
	first, err := canvas.NewChart(Spec{Label: "a"})
	require.NoError(t, err)
	first.Destroy()
	_, err = canvas.NewChart(Spec{Label: "b"})
	require.NoError(t, err)

	first.Destroy()
	require.True(t, canvas.Bound())
}

func TestTermCanvasViewRendersPlot(t *testing.T) {
	xs := make([]float64, 50)
	ys := make([]*float64, 50)
	for i := range xs {
		xs[i] = float64(i)/5 - 5
		if i == 25 {
			continue
		}
		ys[i] = ptr(math.Sin(xs[i]))
	}
	canvas := NewTermCanvas(60, 12)
	_, err := canvas.NewChart(Spec{Label: "f(x) = sin(x)", Series: NewSeries(xs, ys)})
	require.NoError(t, err)

	view := canvas.View()
	lines := strings.Split(view, "\n")
	require.Contains(t, lines[0], "f(x) = sin(x)")
	require.LessOrEqual(t, len(lines), 12)
	require.True(t, strings.ContainsFunc(view, isBraille), "no braille dots in:\n%s", view)
}

func TestTermCanvasViewWithoutPoints(t *testing.T) {
	canvas := NewTermCanvas(60, 12)
	_, err := canvas.NewChart(Spec{Label: "f(x) = log(x)", Series: NewSeries([]float64{-1}, []*float64{nil})})
	require.NoError(t, err)
	require.Contains(t, canvas.View(), "No defined points")
}

func isBraille(r rune) bool {
	return r > 0x2800 && r <= 0x28FF
}

// brailleRuns counts maximal runs of braille cells in line.
func brailleRuns(line string) int {
	runs, inRun := 0, false
	for _, r := range line {
		switch {
		case isBraille(r) && !inRun:
			runs++
			inRun = true
		case !isBraille(r):
			inRun = false
		}
	}
	return runs
}

func TestTermCanvasLeavesGapOpen(t *testing.T) {
	var xs []float64
	var ys []*float64
	for i := -10; i <= 10; i++ {
		xs = append(xs, float64(i)/10)
		if i > -2 && i < 2 {
			ys = append(ys, nil)
			continue
		}
		ys = append(ys, ptr(0))
	}
	canvas := NewTermCanvas(40, 10)
	_, err := canvas.NewChart(Spec{Label: "f(x) = 0/x", Series: NewSeries(xs, ys)})
	require.NoError(t, err)

	var plotted []string
	for _, line := range strings.Split(canvas.View(), "\n") {
		if strings.ContainsFunc(line, isBraille) {
			plotted = append(plotted, line)
		}
	}
	require.Len(t, plotted, 1, "a flat line occupies one row")
	require.Equal(t, 2, brailleRuns(plotted[0]), "segments must be continuous and the gap unbridged: %q", plotted[0])
}

func TestTermCanvasTooSmallShowsLabelOnly(t *testing.T) {
	canvas := NewTermCanvas(8, 3)
	_, err := canvas.NewChart(Spec{Label: "f(x) = x", Series: NewSeries([]float64{0, 1}, []*float64{ptr(0), ptr(1)})})
	require.NoError(t, err)
	require.Equal(t, "f(x) = x", strings.TrimSpace(canvas.View()))
}

func TestWritePNG(t *testing.T) {
	xs := make([]float64, 40)
	ys := make([]*float64, 40)
	for i := range xs {
		xs[i] = float64(i) / 4
		ys[i] = ptr(xs[i] * xs[i])
	}
	var buf bytes.Buffer
	err := WritePNG(&buf, Spec{Label: "f(x) = x**2", Series: NewSeries(xs, ys)}, 640, 360)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWritePNGWithoutSegments(t *testing.T) {
	var buf bytes.Buffer
	err := WritePNG(&buf, Spec{Label: "f(x) = 1/0"}, 640, 360)
	require.ErrorIs(t, err, ErrNothingToPlot)
}
