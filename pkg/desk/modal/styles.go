package modal

import "github.com/charmbracelet/lipgloss"

// Colors shared by the desk and its modals
var (
	Primary      = lipgloss.Color("36")  // teal
	Error        = lipgloss.Color("196") // red
	Success      = lipgloss.Color("42")  // green
	Warning      = lipgloss.Color("214") // orange
	Muted        = lipgloss.Color("241") // gray
	BgSecondary  = lipgloss.Color("235") // modal background
	BorderNormal = lipgloss.Color("240") // default border
)

// Frame styles
var (
	ShellFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	CloseControl = lipgloss.NewStyle().
			Foreground(Muted)
)

// Text styles
var (
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
	BodyText   = lipgloss.NewStyle() // Plain body text
	ErrorText  = lipgloss.NewStyle().Foreground(Error)
	NoticeText = lipgloss.NewStyle().Foreground(Success)
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Background(lipgloss.Color("236")).
			Padding(0, 2)
)

// List styles for list content
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)
