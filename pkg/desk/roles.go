package desk

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/pkg/desk/modal"
)

// roleChosenMsg asks the desk to open the login form for a role
type roleChosenMsg struct {
	role models.Role
}

// rolePicker is a titled role list
type rolePicker struct {
	*modal.ListContent
}

func (r rolePicker) View(width int) string {
	return modal.ModalTitle.Render("Log in as") + "\n\n" + r.ListContent.View(width)
}

var rolesModal = modal.ComponentFunc(func(body *modal.Body, _ any) {
	items := []modal.ListItem{
		{ID: string(models.RolePatient), Label: "Patient"},
		{ID: string(models.RoleDoctor), Label: "Doctor"},
		{ID: string(models.RoleAdmin), Label: "Admin"},
	}
	list := modal.List("roles", items,
		modal.WithMaxVisible(len(items)),
		modal.OnSelect(func(item modal.ListItem) tea.Cmd {
			role := models.Role(item.ID)
			return func() tea.Msg { return roleChosenMsg{role: role} }
		}),
	)
	body.Mount(rolePicker{list})
})
