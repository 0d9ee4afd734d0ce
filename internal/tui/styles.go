package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#ff8c00")
	emberColor  = lipgloss.Color("#2b1400")
	textColor   = lipgloss.Color("#fff4d0")

	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c")).Bold(true)
	helperStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("147")).Width(11)
	focusedLabelStyle   = labelStyle.Foreground(accentColor).Bold(true)
	selectedChoiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	activeTabStyle      = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(emberColor).Border(lipgloss.RoundedBorder(), true, true, false, true).BorderForeground(accentColor).Padding(0, 1)
	inactiveTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Border(lipgloss.RoundedBorder(), true, true, false, true).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	panelBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	hintStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Italic(true)
	helpBoxStyle        = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(0, 1)
)
