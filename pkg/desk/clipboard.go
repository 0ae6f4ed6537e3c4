package desk

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/clinic/internal/models"
)

// copiedMsg reports the outcome of a clipboard copy
type copiedMsg struct {
	what string
	err  error
}

// copyToClipboard copies text to the system clipboard.
// Uses pbcopy on macOS, xclip or xsel on Linux, clip.exe on Windows.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			return fmt.Errorf("no clipboard tool found (install xclip or xsel)")
		}
	case "windows":
		cmd = exec.Command("clip.exe")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// formatDoctorAsMarkdown formats a doctor's directory entry for the clipboard
func formatDoctorAsMarkdown(d models.Doctor) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n", d.Name))
	sb.WriteString(fmt.Sprintf("**Specialty:** %s\n", d.Specialty))
	if d.Email != "" {
		sb.WriteString(fmt.Sprintf("**Email:** %s\n", d.Email))
	}
	if d.Phone != "" {
		sb.WriteString(fmt.Sprintf("**Phone:** %s\n", d.Phone))
	}

	sb.WriteString("\n## Available times\n\n")
	if len(d.AvailableTimes) == 0 {
		sb.WriteString("Not available\n")
	}
	for _, t := range d.AvailableTimes {
		sb.WriteString("- " + t + "\n")
	}
	return sb.String()
}

// copyDoctor copies the doctor's entry off the UI thread
func copyDoctor(d models.Doctor) tea.Cmd {
	text := formatDoctorAsMarkdown(d)
	return func() tea.Msg {
		return copiedMsg{what: d.Name, err: copyToClipboard(text)}
	}
}
