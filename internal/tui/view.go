package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/calcscout/internal/app"
	"github.com/csheth/calcscout/internal/calc"
)

var panelRegions = map[calc.Panel]app.Region{
	calc.PanelExpression: app.RegionExpression,
	calc.PanelGraph:      app.RegionGraph,
	calc.PanelProgrammer: app.RegionProgrammer,
	calc.PanelDate:       app.RegionDate,
}

func (m *model) View() string {
	state := m.orch.State()
	if m.helpVisible {
		return joinNonEmpty([]string{
			m.tabsView(state),
			helpBoxStyle.Render(m.helpView.View()),
			helperStyle.Render("↑/↓ scroll • esc or f9 closes help"),
		})
	}
	return joinNonEmpty([]string{
		m.tabsView(state),
		titleStyle.Render(state.Title),
		m.panelView(state),
		m.resultView(state),
		m.hintView(state),
		m.statusView(state),
		m.help.View(m.keys),
	})
}

func (m *model) tabsView(state app.State) string {
	tabs := make([]string, 0, len(calc.Modes()))
	for idx, mode := range calc.Modes() {
		label := fmt.Sprintf("F%d %s", idx+1, mode.Label())
		if state.ActiveTab(mode) {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *model) panelView(state app.State) string {
	panel := state.VisiblePanel()
	focusedName, _ := m.form.focused(panel)
	rows := make([]string, 0, 4)
	for _, name := range m.form.panelFields(panel) {
		fld := m.form.fields[name]
		label := labelStyle.Render(fld.label)
		if name == focusedName {
			label = focusedLabelStyle.Render(fld.label)
		}
		value := fld.input.View()
		if fld.isChoice() {
			value = choiceLabel(fld)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}
	return panelBoxStyle.Width(m.layout.contentWidth).Render(strings.Join(rows, "\n"))
}

func (m *model) resultView(state app.State) string {
	panel := state.VisiblePanel()
	region := panelRegions[panel]
	parts := []string{}
	if panel == calc.PanelGraph {
		parts = append(parts, m.canvas.View())
	}
	display := state.Display(region)
	switch {
	case state.Pending(region):
		parts = append(parts, helperStyle.Render(m.spinner.View()+" waiting for the service"))
	case display == "":
	case strings.HasPrefix(display, "✓"):
		parts = append(parts, successStyle.Render(m.layout.wrap(display, 2)))
	default:
		parts = append(parts, errorStyle.Render(m.layout.wrap(display, 2)))
	}
	return joinNonEmpty(parts)
}

func (m *model) hintView(state app.State) string {
	if !state.HintsVisible || state.Hint == "" {
		return ""
	}
	return hintStyle.Render(m.layout.wrap("Tip: "+state.Hint, 2))
}

func (m *model) statusView(state app.State) string {
	status := state.Status
	if state.AnyPending() {
		status = m.spinner.View() + " " + status
	}
	stats := []string{status}
	if m.config.Endpoint != "" {
		stats = append(stats, m.config.Endpoint)
	}
	if badge := m.jobBadge(); badge != "" {
		stats = append(stats, badge)
	}
	line := statusBarStyle.Render(strings.Join(stats, "  •  "))
	if m.notice == "" {
		return line
	}
	if m.noticeErr {
		return joinNonEmpty([]string{line, errorStyle.Render(m.notice)})
	}
	return joinNonEmpty([]string{line, helperStyle.Render(m.notice)})
}

func (m *model) jobBadge() string {
	if n := len(m.running); n > 0 {
		return fmt.Sprintf("%d running", n)
	}
	if m.lastJob == nil {
		return ""
	}
	return fmt.Sprintf("last %s %s in %s", m.lastJob.Kind, m.lastJob.Status, m.lastJob.Duration.Round(time.Millisecond))
}
