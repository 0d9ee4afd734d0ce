package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToPlot is returned when no segment has two defined points.
var ErrNothingToPlot = errors.New("chart: no plottable segment")

// WritePNG renders spec as a PNG line chart. Each gap-free segment becomes
// its own series so undefined samples stay unconnected.
func WritePNG(w io.Writer, spec Spec, width, height int) error {
	var series []gochart.Series
	for _, segment := range spec.Series.Segments() {
		if len(segment) < 2 {
			continue
		}
		xs := make([]float64, len(segment))
		ys := make([]float64, len(segment))
		for i, point := range segment {
			xs[i], ys[i] = point.X, point.Y
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    spec.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: gochart.ColorBlue,
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return ErrNothingToPlot
	}
	graph := gochart.Chart{
		Title:  spec.Label,
		Width:  width,
		Height: height,
		Series: series,
	}
	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}
