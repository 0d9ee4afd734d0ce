package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one repaint of the screen with styling kept (ANSI) and removed
// (Plain).
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	// A repaint starts with either a screen clear or the renderer moving the
	// cursor back up over the previous frame.
	repaintPattern = regexp.MustCompile(`\x1b\[[0-9;]*J|\x1b\[[0-9]+A`)
	csiPattern     = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscPattern     = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	shiftPattern   = strings.NewReplacer("\x0e", "", "\x0f", "")
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range repaintPattern.Split(stream, -1) {
		chunk = strings.TrimPrefix(strings.Trim(chunk, "\x00"), "\x1b[H")
		plain := normalizeLines(stripANSI(chunk))
		if strings.TrimSpace(plain) == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: plain})
	}
	return frames
}

// FinalFrame returns the last captured frame, or false when nothing with
// visible text was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Contains reports whether text was ever on screen. The whole stream is
// searched as well since a partial repaint can split a line across frames.
func (r *Recording) Contains(text string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.LastContaining(text); ok {
		return true
	}
	return strings.Contains(stripANSI(string(r.Raw)), text)
}

// LastContaining returns the most recent frame that shows text.
func (r *Recording) LastContaining(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if strings.Contains(r.Frames[i].Plain, text) {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

func stripANSI(s string) string {
	s = oscPattern.ReplaceAllString(s, "")
	s = csiPattern.ReplaceAllString(s, "")
	return shiftPattern.Replace(s)
}

// normalizeLines drops trailing blanks on each line and trailing empty lines.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
