package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calcscout/internal/app"
)

type completionMsg struct {
	completion app.Completion
}

type exportResultMsg struct {
	path string
	err  error
}

// taskJob runs an orchestrator task. Failed outcomes are reported to the job
// bus as errors so they show up in the job log; the completion is delivered
// either way.
func taskJob(task app.Task) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		c := task(ctx)
		if !c.Outcome.OK() {
			return completionMsg{completion: c}, errors.New(c.Outcome.Message)
		}
		return completionMsg{completion: c}, nil
	}
}

func exportChartJob(dir string, png []byte, now time.Time) jobRunner {
	data := append([]byte(nil), png...)
	return func(context.Context) (tea.Msg, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			err = fmt.Errorf("create export dir: %w", err)
			return exportResultMsg{err: err}, err
		}
		path := filepath.Join(dir, exportFileName(now))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			err = fmt.Errorf("write chart: %w", err)
			return exportResultMsg{err: err}, err
		}
		return exportResultMsg{path: path}, nil
	}
}

func exportFileName(now time.Time) string {
	return fmt.Sprintf("calcscout-chart-%s.png", now.Format("20060102-150405"))
}
