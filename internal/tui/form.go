package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/calcscout/internal/app"
	"github.com/csheth/calcscout/internal/calc"
)

// field is either free text or a fixed list of choices cycled with
// left/right.
type field struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func newTextField(label, placeholder string, width int) *field {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Width = width
	input.Prompt = ""
	return &field{label: label, input: input}
}

func newChoiceField(label string, choices []string) *field {
	return &field{label: label, choices: append([]string(nil), choices...)}
}

func (f *field) isChoice() bool {
	return len(f.choices) > 0
}

func (f *field) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return f.input.Value()
}

func (f *field) setValue(value string) {
	if !f.isChoice() {
		f.input.SetValue(value)
		f.input.CursorEnd()
		return
	}
	for idx, choice := range f.choices {
		if choice == value {
			f.choice = idx
			return
		}
	}
}

func (f *field) cycle(delta int) {
	if !f.isChoice() {
		return
	}
	n := len(f.choices)
	f.choice = ((f.choice+delta)%n + n) % n
}

type form struct {
	fields map[app.Field]*field
	order  map[calc.Panel][]app.Field
	focus  map[calc.Panel]int
}

func newForm(width int) *form {
	f := &form{
		fields: map[app.Field]*field{
			app.FieldExpression:      newTextField("Expression", "e.g. 2*(3+4) or sqrt(2)", width),
			app.FieldGraphExpression: newTextField("f(x)", "e.g. sin(x)/x", width),
			app.FieldXMin:            newTextField("x min", "", 12),
			app.FieldXMax:            newTextField("x max", "", 12),
			app.FieldSamples:         newTextField("Samples", "", 8),
			app.FieldNumber:          newTextField("Number", "integer", 24),
			app.FieldBase:            newChoiceField("Base", calc.Bases),
			app.FieldOp:              newChoiceField("Operation", calc.BitwiseOps),
			app.FieldOther:           newTextField("Other", "second operand", 24),
			app.FieldDateOp:          newChoiceField("Operation", calc.DateOps),
			app.FieldDate1:           newTextField("Date 1", calc.DateLayout, 12),
			app.FieldDate2:           newTextField("Date 2", calc.DateLayout, 12),
			app.FieldDays:            newTextField("Days", "number of days", 12),
		},
		order: map[calc.Panel][]app.Field{
			calc.PanelExpression: {app.FieldExpression},
			calc.PanelGraph:      {app.FieldGraphExpression, app.FieldXMin, app.FieldXMax, app.FieldSamples},
			calc.PanelProgrammer: {app.FieldNumber, app.FieldBase, app.FieldOp, app.FieldOther},
			calc.PanelDate:       {app.FieldDateOp, app.FieldDate1, app.FieldDate2, app.FieldDays},
		},
		focus: map[calc.Panel]int{},
	}
	return f
}

// Value implements app.Form.
func (f *form) Value(name app.Field) string {
	if fld, ok := f.fields[name]; ok {
		return fld.value()
	}
	return ""
}

// SetValue implements app.Form.
func (f *form) SetValue(name app.Field, value string) {
	if fld, ok := f.fields[name]; ok {
		fld.setValue(value)
	}
}

func (f *form) panelFields(panel calc.Panel) []app.Field {
	return f.order[panel]
}

func (f *form) focused(panel calc.Panel) (app.Field, *field) {
	names := f.order[panel]
	if len(names) == 0 {
		return "", nil
	}
	name := names[f.focus[panel]%len(names)]
	return name, f.fields[name]
}

// activate blurs every input and focuses the current field of panel.
func (f *form) activate(panel calc.Panel) tea.Cmd {
	for _, fld := range f.fields {
		fld.input.Blur()
	}
	if _, fld := f.focused(panel); fld != nil && !fld.isChoice() {
		return fld.input.Focus()
	}
	return nil
}

func (f *form) moveFocus(panel calc.Panel, delta int) tea.Cmd {
	n := len(f.order[panel])
	if n == 0 {
		return nil
	}
	f.focus[panel] = ((f.focus[panel]+delta)%n + n) % n
	return f.activate(panel)
}

// update routes a key to the focused field of panel.
func (f *form) update(panel calc.Panel, msg tea.KeyMsg) tea.Cmd {
	_, fld := f.focused(panel)
	if fld == nil {
		return nil
	}
	if fld.isChoice() {
		switch msg.String() {
		case "left", "h":
			fld.cycle(-1)
		case "right", "l", " ":
			fld.cycle(1)
		}
		return nil
	}
	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return cmd
}

func (f *form) setWidth(width int) {
	for _, name := range []app.Field{app.FieldExpression, app.FieldGraphExpression} {
		f.fields[name].input.Width = width
	}
}

func choiceLabel(fld *field) string {
	parts := make([]string, len(fld.choices))
	for idx, choice := range fld.choices {
		if idx == fld.choice {
			parts[idx] = selectedChoiceStyle.Render(choice)
		} else {
			parts[idx] = helperStyle.Render(choice)
		}
	}
	return "‹ " + strings.Join(parts, " ") + " ›"
}
