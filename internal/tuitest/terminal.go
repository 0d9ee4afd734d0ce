package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs an escape sequence lipgloss or bubbletea writes at
// startup with the canned reply a real terminal would send back.
type terminalQuery struct {
	query []byte
	reply []byte
}

// Replies describe an 80x24 dark terminal with the cursor at the origin.
var terminalQueries = []terminalQuery{
	{query: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
	{query: []byte("\x1b[c"), reply: []byte("\x1b[?62;22c")},
	{query: []byte("\x1b]10;?\x07"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{query: []byte("\x1b]10;?\x1b\\"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{query: []byte("\x1b]11;?\x07"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{query: []byte("\x1b]11;?\x1b\\"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderMaxBuffer = 256
	responderTail      = 64
)

// terminalResponder answers capability queries on behalf of the PTY so the
// program under test does not stall waiting for a reply.
type terminalResponder struct {
	w       io.Writer
	buf     []byte
	answers int
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, responderMaxBuffer)}
}

// Process feeds program output to the responder. Queries split across reads
// are still detected because a tail of the previous chunk is kept.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	tr.scan()
	if len(tr.buf) > responderMaxBuffer {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

// Answers reports how many queries have been answered.
func (tr *terminalResponder) Answers() int {
	return tr.answers
}

func (tr *terminalResponder) scan() {
	for {
		answered := false
		for _, q := range terminalQueries {
			if tr.consume(q.query, q.reply) {
				answered = true
			}
		}
		if !answered {
			return
		}
	}
}

func (tr *terminalResponder) consume(query, reply []byte) bool {
	idx := bytes.Index(tr.buf, query)
	if idx < 0 {
		return false
	}
	tr.buf = tr.buf[idx+len(query):]
	_, _ = tr.w.Write(reply)
	tr.answers++
	return true
}
