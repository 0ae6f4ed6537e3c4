// Package output prints command results and messages.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Stderr is where Error and Warning write; tests may replace it
var Stderr io.Writer = os.Stderr

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING:")+" "+fmt.Sprintf(format, args...))
}

// Success formats a success line
func Success(format string, args ...any) string {
	return successStyle.Render(fmt.Sprintf(format, args...))
}

// Muted formats secondary text
func Muted(format string, args ...any) string {
	return mutedStyle.Render(fmt.Sprintf(format, args...))
}
