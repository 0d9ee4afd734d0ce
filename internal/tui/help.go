package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# calcscout

Every calculation is sent to the calculation service; nothing is evaluated locally.

## Modes

| Key | Mode | What it does |
|-----|------|--------------|
| F1 | Standard | Evaluate an arithmetic expression |
| F2 | Scientific | Same panel, with functions such as sin, log and sqrt |
| F3 | Graph | Plot f(x) between x min and x max |
| F4 | Programmer | Convert bases and apply bitwise operations |
| F5 | Date arithmetic | Difference between dates, or add and subtract days |

## Keys

- **tab / shift+tab** move between fields; **←/→** change a choice field.
- **enter** runs the panel. In Programmer mode it converts when the cursor is on
  Number or Base, and runs the bitwise operation otherwise. **ctrl+b** always converts.
- **ctrl+l** clears the current panel.
- **ctrl+e** saves the current plot as a PNG.
- **f6** shows or hides tips.
- **esc** or **ctrl+c** quits.

## Results

A ✓ marks a result from the service. A ✗ marks either an error the service
reported for your input, or "Could not reach the calculation service." when the
service is down or answered with an unexpected status.
`

func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimSpace(out)
}
