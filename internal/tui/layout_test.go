package tui

import (
	"strings"
	"testing"
)

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name         string
		width        int
		height       int
		contentWidth int
		inputWidth   int
		chartHeight  int
	}{
		{name: "narrow", width: 30, height: 20, contentWidth: 40, inputWidth: 24, chartHeight: 8},
		{name: "standard", width: 80, height: 40, contentWidth: 76, inputWidth: 60, chartHeight: 23},
		{name: "wide", width: 200, height: 60, contentWidth: 196, inputWidth: 180, chartHeight: 43},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.contentWidth != tc.contentWidth {
				t.Fatalf("content width mismatch: got %d want %d", layout.contentWidth, tc.contentWidth)
			}
			if layout.inputWidth != tc.inputWidth {
				t.Fatalf("input width mismatch: got %d want %d", layout.inputWidth, tc.inputWidth)
			}
			if layout.chartWidth != tc.contentWidth {
				t.Fatalf("chart width should follow content width: got %d want %d", layout.chartWidth, tc.contentWidth)
			}
			if layout.chartHeight != tc.chartHeight {
				t.Fatalf("chart height mismatch: got %d want %d", layout.chartHeight, tc.chartHeight)
			}
		})
	}
}

func TestPageLayoutWrap(t *testing.T) {
	layout := newPageLayout()
	layout.Update(44, 30)
	wrapped := layout.wrap(strings.Repeat("word ", 20), 0)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(strings.TrimRight(line, " ")) > 40 {
			t.Fatalf("line exceeds wrap width: %q", line)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty([]string{"a", " ", "", "b"}); got != "a\nb" {
		t.Fatalf("unexpected join: %q", got)
	}
}
