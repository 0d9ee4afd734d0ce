// Package chart owns the single live plot bound to the graph canvas.
package chart

import "math"

// Series is a sampled function. NaN in Y marks an undefined sample; the line
// is broken there instead of being bridged.
type Series struct {
	X []float64
	Y []float64
}

// Point is one plotted sample.
type Point struct {
	X float64
	Y float64
}

// NewSeries builds a series from decoded response arrays. A nil y value
// becomes a gap. Extra values on either side are dropped.
func NewSeries(xs []float64, ys []*float64) Series {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	series := Series{X: make([]float64, n), Y: make([]float64, n)}
	for i := 0; i < n; i++ {
		series.X[i] = xs[i]
		if ys[i] == nil {
			series.Y[i] = math.NaN()
			continue
		}
		series.Y[i] = *ys[i]
	}
	return series
}

// Len reports the number of samples.
func (s Series) Len() int {
	if len(s.Y) < len(s.X) {
		return len(s.Y)
	}
	return len(s.X)
}

// Segments splits the series into runs of consecutive defined points.
func (s Series) Segments() [][]Point {
	var segments [][]Point
	var current []Point
	for i := 0; i < s.Len(); i++ {
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, Point{X: x, Y: y})
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

// Bounds returns the extent of the defined points. ok is false when there
// are none.
func (s Series) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := 0; i < s.Len(); i++ {
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) {
			continue
		}
		ok = true
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return minX, maxX, minY, maxY, ok
}

// Label is the legend text for a plotted expression.
func Label(expression string) string {
	return "f(x) = " + expression
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
