package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 10 * time.Second
	pollInterval   = 20 * time.Millisecond
)

// Step is one scripted keystroke batch replayed against the pseudo terminal.
// When WaitFor is set the step first blocks until that text has appeared in
// the plain terminal output, then sleeps Delay, then writes Input.
type Step struct {
	WaitFor string
	Delay   time.Duration
	Input   []byte
}

// Config configures how the harness spawns and drives the calcscout binary.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
	// Answered counts terminal capability queries the harness replied to.
	Answered int
}

// session owns the PTY and the output captured from it so far.
type session struct {
	mu        sync.Mutex
	output    bytes.Buffer
	responder *terminalResponder
	done      chan struct{}
}

func (s *session) pump(ptmx *os.File) {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.responder.Process(buf[:n])
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) contains(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Contains(stripANSI(s.output.String()), text)
}

func (s *session) waitFor(ctx context.Context, text string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !s.contains(text) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("tuitest: waiting for %q: %w", text, ctx.Err())
		case <-s.done:
			if s.contains(text) {
				return nil
			}
			return fmt.Errorf("tuitest: program output ended before %q appeared", text)
		case <-ticker.C:
		}
	}
	return nil
}

// Run executes the configured command inside a PTY, replays the scripted
// steps and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, orDefault(cfg.Timeout, defaultTimeout))
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	winsize := &pty.Winsize{
		Rows: uint16(orDefault(cfg.Height, defaultHeight)),
		Cols: uint16(orDefault(cfg.Width, defaultWidth)),
	}
	ptmx, err := pty.StartWithSize(cmd, winsize)
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	s := &session{responder: newTerminalResponder(ptmx), done: make(chan struct{})}
	go s.pump(ptmx)

	start := time.Now()
	if err := replay(ctx, s, ptmx, cfg.Steps); err != nil {
		return nil, err
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		if err != nil && !exitAllowed(err, cfg.AllowedExitCodes) {
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}

	// Closing the PTY lets the pump finish draining.
	_ = ptmx.Close()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	raw := append([]byte(nil), s.output.Bytes()...)
	return &Recording{
		Raw:      raw,
		Frames:   parseFrames(raw),
		Duration: time.Since(start),
		Answered: s.responder.Answers(),
	}, nil
}

func replay(ctx context.Context, s *session, ptmx *os.File, steps []Step) error {
	for idx, step := range steps {
		if step.WaitFor != "" {
			if err := s.waitFor(ctx, step.WaitFor); err != nil {
				return fmt.Errorf("step %d: %w", idx, err)
			}
		}
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: step %d cancelled: %w", idx, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) > 0 {
			if _, err := ptmx.Write(step.Input); err != nil {
				return fmt.Errorf("tuitest: step %d write input: %w", idx, err)
			}
		}
	}
	return nil
}

func exitAllowed(err error, codes []int) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	for _, code := range codes {
		if exitErr.ExitCode() == code {
			return true
		}
	}
	return false
}

func orDefault[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}

// buildEnv appends extra to the current environment and pins a 256 color
// TERM unless one is given.
func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range extra {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// Type returns a step that writes text after delay.
func Type(delay time.Duration, text string) Step {
	return Step{Delay: delay, Input: []byte(text)}
}

// Press returns a step that writes a key sequence after delay.
func Press(delay time.Duration, key []byte) Step {
	return Step{Delay: delay, Input: key}
}

// After returns a step that waits for text on screen before pressing key.
func After(text string, key []byte) Step {
	return Step{WaitFor: text, Input: key}
}

var (
	KeyEnter = []byte{'\r'}
	KeyTab   = []byte{'\t'}
	KeyCtrlC = []byte{3}
	// KeyCtrlL clears the active panel.
	KeyCtrlL = []byte{12}
	KeyEsc   = []byte{27}
	// xterm encodings for the mode tabs.
	KeyF1 = []byte("\x1bOP")
	KeyF2 = []byte("\x1bOQ")
	KeyF3 = []byte("\x1bOR")
	KeyF4 = []byte("\x1bOS")
	KeyF5 = []byte("\x1b[15~")
)
