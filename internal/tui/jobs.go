package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calcscout/internal/app"
)

// jobKind names what a background job does; it shows up in the status bar
// and in job log lines.
type jobKind string

const (
	jobKindCalc    jobKind = "calc"
	jobKindGraph   jobKind = "graph"
	jobKindToBase  jobKind = "to_base"
	jobKindBitwise jobKind = "bitwise"
	jobKindDate    jobKind = "date"
	jobKindExport  jobKind = "export"
)

type jobStatus string

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCancelled jobStatus = "cancelled"
)

type jobSnapshot struct {
	ID        string
	Kind      jobKind
	Status    jobStatus
	StartedAt time.Time
	Duration  time.Duration
	Err       string
}

// jobSignalMsg announces that a job has started.
type jobSignalMsg struct {
	Snapshot jobSnapshot
}

// jobResultEnvelope carries a finished job and the message it produced.
// Payload is delivered to Update even when the job failed.
type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus turns runners into tea commands. Every job runs under the bus
// context so Shutdown abandons whatever is still in flight.
type jobBus struct {
	counter atomic.Int64
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func newJobBus(logger *slog.Logger) *jobBus {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &jobBus{logger: logger.With("component", "jobs"), ctx: ctx, cancel: cancel}
}

func (b *jobBus) nextID(kind jobKind) string {
	return fmt.Sprintf("%s-%d", kind, b.counter.Add(1))
}

// Start returns a command that first reports the job as running and then
// runs it.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	started := jobSnapshot{ID: b.nextID(kind), Kind: kind, Status: jobStatusRunning, StartedAt: time.Now()}
	announce := func() tea.Msg { return jobSignalMsg{Snapshot: started} }
	run := func() tea.Msg {
		payload, err := runner(b.ctx)
		return jobResultEnvelope{Snapshot: b.finish(started, err), Payload: payload}
	}
	return tea.Sequence(announce, run)
}

func (b *jobBus) finish(snapshot jobSnapshot, err error) jobSnapshot {
	snapshot.Duration = time.Since(snapshot.StartedAt)
	snapshot.Status = jobStatusSucceeded
	level := slog.LevelDebug
	switch {
	case err != nil && b.ctx.Err() != nil:
		snapshot.Status = jobStatusCancelled
		snapshot.Err = err.Error()
	case err != nil:
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
		level = slog.LevelWarn
	}
	b.logger.Log(context.Background(), level, "job finished",
		"id", snapshot.ID, "kind", snapshot.Kind, "status", snapshot.Status,
		"duration", snapshot.Duration, "err", snapshot.Err)
	return snapshot
}

// Shutdown cancels every job still running.
func (b *jobBus) Shutdown() {
	b.cancel()
}

var eventJobKinds = map[app.EventName]jobKind{
	app.EventCalc:    jobKindCalc,
	app.EventPlot:    jobKindGraph,
	app.EventToBase:  jobKindToBase,
	app.EventBitwise: jobKindBitwise,
	app.EventDate:    jobKindDate,
}

func jobKindFor(name app.EventName) jobKind {
	if kind, ok := eventJobKinds[name]; ok {
		return kind
	}
	return jobKind(name)
}
