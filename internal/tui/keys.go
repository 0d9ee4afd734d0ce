package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/csheth/calcscout/internal/calc"
)

type keyMap struct {
	Tabs      []key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	ToBase    key.Binding
	Clear     key.Binding
	Hints     key.Binding
	Export    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	tabs := make([]key.Binding, 0, len(calc.Modes()))
	for idx, mode := range calc.Modes() {
		fkey := "f" + string(rune('1'+idx))
		tabs = append(tabs, key.NewBinding(key.WithKeys(fkey), key.WithHelp(fkey, mode.Label())))
	}
	return keyMap{
		Tabs:      tabs,
		NextTab:   key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "prev tab")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		ToBase:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "to base")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Hints:     key.NewBinding(key.WithKeys("f6"), key.WithHelp("f6", "tips")),
		Export:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export png")),
		Help:      key.NewBinding(key.WithKeys("f9"), key.WithHelp("f9", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextField, k.Submit, k.Clear, k.Hints, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Tabs,
		{k.NextTab, k.PrevTab, k.NextField, k.PrevField},
		{k.Submit, k.ToBase, k.Clear, k.Export},
		{k.Hints, k.Help, k.Quit},
	}
}
