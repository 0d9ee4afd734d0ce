package tui

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calcscout/internal/app"
	"github.com/csheth/calcscout/internal/calc"
	"github.com/csheth/calcscout/internal/hints"
)

type fakeService struct {
	requests   []calc.CalculationRequest
	reply      calc.Reply
	graphReply calc.GraphReply
}

func (s *fakeService) Calculate(_ context.Context, req calc.CalculationRequest) (calc.Reply, error) {
	s.requests = append(s.requests, req)
	return s.reply, nil
}

func (s *fakeService) Graph(context.Context, calc.GraphRequest) (calc.GraphReply, error) {
	return s.graphReply, nil
}

func newTestModel(t *testing.T, svc *fakeService) *model {
	t.Helper()
	teaModel, ok := New(Config{
		Service:   svc,
		Endpoint:  "http://stub",
		ExportDir: t.TempDir(),
		Hints:     hints.New([]string{"only tip"}, rand.New(rand.NewSource(1))),
		Now:       func() time.Time { return time.Date(2024, 3, 9, 8, 30, 0, 0, time.UTC) },
	}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	teaModel.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return teaModel
}

// drain runs cmd and every command it produces, feeding messages back into
// the model. Spinner ticks are dropped so the loop terminates.
func drain(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if cmds, ok := expandCmds(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		_, follow := m.Update(msg)
		queue = append(queue, follow)
	}
}

func press(m *model, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func typeText(m *model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestInitialView(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	view := m.View()
	for _, want := range []string{"F1 Standard", "F5 Date arithmetic", "Ready.", "http://stub", "Expression"} {
		if !strings.Contains(view, want) {
			t.Fatalf("initial view missing %q:\n%s", want, view)
		}
	}
}

func TestEnterRunsExpression(t *testing.T) {
	svc := &fakeService{reply: calc.Reply{Result: json.RawMessage(`42`)}}
	m := newTestModel(t, svc)

	typeText(m, "6*7")
	drain(t, m, press(m, tea.KeyEnter))

	if len(svc.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(svc.requests))
	}
	if got := svc.requests[0].(calc.ExpressionRequest).Expression; got != "6*7" {
		t.Fatalf("unexpected expression %q", got)
	}
	if !strings.Contains(m.View(), "✓ 42") {
		t.Fatalf("result missing from view:\n%s", m.View())
	}
	if m.orch.State().Status != app.StatusOK {
		t.Fatalf("unexpected status %q", m.orch.State().Status)
	}
	if m.lastJob == nil || m.lastJob.Kind != jobKindCalc || len(m.running) != 0 {
		t.Fatalf("job bookkeeping not updated: %+v running=%d", m.lastJob, len(m.running))
	}
}

func TestEnterWithEmptyExpressionDoesNothing(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(t, svc)
	if cmd := press(m, tea.KeyEnter); cmd != nil {
		drain(t, m, cmd)
	}
	if len(svc.requests) != 0 {
		t.Fatal("empty expression should not reach the service")
	}
	if m.orch.State().Status != app.StatusNeedExpression {
		t.Fatalf("unexpected status %q", m.orch.State().Status)
	}
}

func TestFunctionKeysSwitchTabs(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	press(m, tea.KeyF3)
	if m.orch.State().Mode != calc.ModeGraph {
		t.Fatalf("f3 should select graph, got %s", m.orch.State().Mode)
	}
	if !strings.Contains(m.View(), "f(x)") {
		t.Fatal("graph panel not rendered")
	}

	press(m, tea.KeyF5)
	press(m, tea.KeyCtrlRight)
	if m.orch.State().Mode != calc.ModeStandard {
		t.Fatalf("ctrl+right should wrap to standard, got %s", m.orch.State().Mode)
	}
	press(m, tea.KeyCtrlLeft)
	if m.orch.State().Mode != calc.ModeDate {
		t.Fatalf("ctrl+left should wrap to date, got %s", m.orch.State().Mode)
	}
	if !strings.Contains(m.View(), "2024-03-09") {
		t.Fatal("date fields should be pre-filled with today")
	}
}

func TestProgrammerEnterFollowsFocus(t *testing.T) {
	svc := &fakeService{reply: calc.Reply{Result: json.RawMessage(`"ff"`)}}
	m := newTestModel(t, svc)
	press(m, tea.KeyF4)

	typeText(m, "255")
	drain(t, m, press(m, tea.KeyEnter))
	if _, ok := svc.requests[0].(calc.ToBaseRequest); !ok {
		t.Fatalf("enter on number should convert, got %T", svc.requests[0])
	}

	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	drain(t, m, press(m, tea.KeyEnter))
	if _, ok := svc.requests[1].(calc.BitwiseRequest); !ok {
		t.Fatalf("enter on operation should run bitwise, got %T", svc.requests[1])
	}

	drain(t, m, press(m, tea.KeyCtrlB))
	if _, ok := svc.requests[2].(calc.ToBaseRequest); !ok {
		t.Fatalf("ctrl+b should convert, got %T", svc.requests[2])
	}
}

func TestChoiceFieldCycles(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	press(m, tea.KeyF4)
	press(m, tea.KeyTab)
	press(m, tea.KeyRight)
	if got := m.form.Value(app.FieldBase); got != "8" {
		t.Fatalf("right should advance base to 8, got %s", got)
	}
	press(m, tea.KeyLeft)
	press(m, tea.KeyLeft)
	if got := m.form.Value(app.FieldBase); got != "16" {
		t.Fatalf("left should wrap base to 16, got %s", got)
	}
}

func TestClearKeyClearsExpression(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	typeText(m, "1+1")
	press(m, tea.KeyCtrlL)
	if got := m.form.Value(app.FieldExpression); got != "" {
		t.Fatalf("expression not cleared: %q", got)
	}
}

func TestPlotAndExport(t *testing.T) {
	a, b := 0.0, 1.0
	svc := &fakeService{graphReply: calc.GraphReply{X: []float64{0, 1}, Y: []*float64{&a, &b}}}
	m := newTestModel(t, svc)
	press(m, tea.KeyF3)

	press(m, tea.KeyCtrlE)
	if !m.noticeErr || !strings.Contains(m.notice, "no chart") {
		t.Fatalf("export without chart should fail, notice=%q", m.notice)
	}

	typeText(m, "x")
	drain(t, m, press(m, tea.KeyEnter))
	if !m.canvas.Bound() {
		t.Fatal("plot should bind a chart")
	}
	if !strings.Contains(m.View(), "f(x) = x") {
		t.Fatalf("chart label missing:\n%s", m.View())
	}

	drain(t, m, press(m, tea.KeyCtrlE))
	if m.noticeErr || !strings.HasPrefix(m.notice, "Chart saved to ") {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	path := strings.TrimPrefix(m.notice, "Chart saved to ")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") || filepath.Ext(path) != ".png" {
		t.Fatalf("export is not a png: %s", path)
	}

	press(m, tea.KeyCtrlL)
	if m.canvas.Bound() {
		t.Fatal("clearing the graph panel should destroy the chart")
	}
}

func TestHintsToggle(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	press(m, tea.KeyF6)
	if !strings.Contains(m.View(), "Tip: only tip") {
		t.Fatalf("tip not shown:\n%s", m.View())
	}
	press(m, tea.KeyF6)
	if strings.Contains(m.View(), "Tip:") {
		t.Fatal("tip should hide on second toggle")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	press(m, tea.KeyF9)
	if !m.helpVisible {
		t.Fatal("f9 should open help")
	}
	if cmd := press(m, tea.KeyEsc); cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("esc should close help, not quit")
		}
	}
	if m.helpVisible {
		t.Fatal("esc should close help")
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	cmd := press(m, tea.KeyEsc)
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc should return tea.Quit")
	}
}
