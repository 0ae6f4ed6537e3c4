package desk

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/clinic/pkg/desk/modal"
)

const helpMarkdown = `# Clinic desk

## Directory

| Key | Action |
|-----|--------|
| j / k | move |
| / | filter by name or specialty |
| r | refresh |
| y | copy selected doctor |

## Account

| Key | Action |
|-----|--------|
| l | patient login |
| a | admin login |
| d | doctor login |
| L | choose a role to log in as |
| s | patient signup |
| o | logout |

## Admin

| Key | Action |
|-----|--------|
| n | add doctor |
| x | delete selected doctor |

Press **esc** or click outside a dialog to close it. **q** quits.
`

// helpContent renders markdown help, re-rendering when the width changes
type helpContent struct {
	markdown string
	width    int
	rendered string
}

func newHelp() *helpContent {
	return &helpContent{markdown: helpMarkdown}
}

func (h *helpContent) Update(tea.Msg) tea.Cmd { return nil }

func (h *helpContent) View(width int) string {
	if h.rendered != "" && h.width == width {
		return h.rendered
	}
	h.width = width
	h.rendered = renderMarkdown(h.markdown, width)
	return h.rendered
}

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Warn("help: markdown renderer", "err", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		slog.Warn("help: render markdown", "err", err)
		return md
	}
	return out
}

// helpModal mounts the help text
var helpModal = modal.ComponentFunc(func(body *modal.Body, _ any) {
	body.Mount(newHelp())
})
