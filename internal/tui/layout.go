package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const (
	minContentWidth   = 40
	horizontalPadding = 4
	minChartHeight    = 8
	// Rows taken by tabs, title, the graph panel box, status bar, tips and
	// the key help line.
	chromeRows = 17
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	inputWidth   int
	chartWidth   int
	chartHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		inputWidth:   60,
		chartWidth:   76,
		chartHeight:  12,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := width - horizontalPadding
	if inner < minContentWidth {
		inner = minContentWidth
	}
	l.contentWidth = inner
	l.inputWidth = inner - 16
	l.chartWidth = inner
	l.chartHeight = height - chromeRows
	if l.chartHeight < minChartHeight {
		l.chartHeight = minChartHeight
	}
}

func (l pageLayout) wrap(text string, padding int) string {
	width := l.contentWidth - padding
	if width < 20 {
		width = 20
	}
	return wordwrap.String(text, width)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}
