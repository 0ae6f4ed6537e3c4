package desk

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/clinic/pkg/desk/modal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(modal.Primary)

	routeStyle = lipgloss.NewStyle().Foreground(modal.Muted)

	userStyle = lipgloss.NewStyle().Foreground(modal.Success)

	statusStyle      = lipgloss.NewStyle().Foreground(modal.Success)
	statusErrorStyle = lipgloss.NewStyle().Foreground(modal.Error)
	hintStyle        = lipgloss.NewStyle().Foreground(modal.Muted)

	rowNormal   = lipgloss.NewStyle()
	rowSelected = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	specStyle   = lipgloss.NewStyle().Foreground(modal.Warning)
	staleStyle  = lipgloss.NewStyle().Foreground(modal.Warning).Italic(true)
)
