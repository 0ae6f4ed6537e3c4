package desk

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/marcus/clinic/pkg/desk/modal"
)

// Confirm actions
const (
	actionLogout       = "logout"
	actionDeleteDoctor = "deleteDoctor"
)

// confirmRequest is the data passed when opening the confirm modal
type confirmRequest struct {
	Title       string
	Description string
	Action      string
	Data        any
}

// confirmMsg reports the answer to a confirm dialog
type confirmMsg struct {
	Action     string
	Confirmed  bool
	Data       any
	generation uint64
}

func (m confirmMsg) ModalGeneration() uint64 { return m.generation }

// confirmContent wraps a huh confirm field as modal content
type confirmContent struct {
	form  *huh.Form
	value bool
}

func newConfirm(req confirmRequest, generation uint64) *confirmContent {
	c := &confirmContent{}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(req.Title).
				Description(req.Description).
				Affirmative("Yes").
				Negative("No").
				Value(&c.value),
		),
	).WithShowHelp(false)

	c.form.SubmitCmd = func() tea.Msg {
		return confirmMsg{Action: req.Action, Confirmed: c.value, Data: req.Data, generation: generation}
	}
	c.form.CancelCmd = func() tea.Msg {
		return confirmMsg{Action: req.Action, Data: req.Data, generation: generation}
	}
	return c
}

func (c *confirmContent) FocusFirst() (tea.Cmd, bool) {
	return c.form.Init(), true
}

func (c *confirmContent) Update(msg tea.Msg) tea.Cmd {
	m, cmd := c.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		c.form = f
	}
	return cmd
}

func (c *confirmContent) View(width int) string {
	return c.form.WithWidth(width).View()
}

// confirmModal expects a confirmRequest as its data
var confirmModal = modal.ComponentFunc(func(body *modal.Body, data any) {
	req, ok := data.(confirmRequest)
	if !ok {
		body.Mount(modal.Text("Nothing to confirm"))
		return
	}
	body.Mount(newConfirm(req, body.Generation()))
})
