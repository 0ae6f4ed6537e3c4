package form

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/clinic/pkg/desk/modal"
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true)
	requiredMark  = lipgloss.NewStyle().Foreground(modal.Error).Render("*")
	promptNormal  = lipgloss.NewStyle().Foreground(modal.Primary)
	promptError   = lipgloss.NewStyle().Foreground(modal.Error)
	fieldErrStyle = modal.ErrorText
)
