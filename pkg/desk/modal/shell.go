package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth = 50
	closeLabel   = "[x]"
)

// ShellOption configures a Shell
type ShellOption func(*Shell)

// WithWidth sets the content width inside the frame (default: 50)
func WithWidth(w int) ShellOption {
	return func(s *Shell) {
		if w > len(closeLabel) {
			s.width = w
		}
	}
}

// WithoutCloseControl hides the [x] control in the frame header
func WithoutCloseControl() ShellOption {
	return func(s *Shell) {
		s.closeControl = false
	}
}

// Shell is the frame a modal is presented in. It tracks visibility, whether
// the background is locked, and where it was last drawn for hit testing.
type Shell struct {
	width        int
	closeControl bool

	visible      bool
	hidden       bool // true whenever the shell is not presented
	scrollLocked bool

	frame     Rect
	closeRect Rect
}

// NewShell returns a hidden shell
func NewShell(opts ...ShellOption) *Shell {
	s := &Shell{
		width:        defaultWidth,
		closeControl: true,
		hidden:       true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show presents the shell and locks the background
func (s *Shell) Show() {
	s.visible = true
	s.hidden = false
	s.scrollLocked = true
}

// Hide removes the shell and unlocks the background
func (s *Shell) Hide() {
	s.visible = false
	s.hidden = true
	s.scrollLocked = false
	s.frame = Rect{}
	s.closeRect = Rect{}
}

// Visible reports whether the shell is shown
func (s *Shell) Visible() bool { return s.visible }

// Hidden reports whether the shell is hidden from the user
func (s *Shell) Hidden() bool { return s.hidden }

// ScrollLocked reports whether background navigation is suspended
func (s *Shell) ScrollLocked() bool { return s.scrollLocked }

// Width is the content width inside the frame
func (s *Shell) Width() int { return s.width }

// Frame is where the shell was last drawn, including its border
func (s *Shell) Frame() Rect { return s.frame }

// CloseRect is where the close control was last drawn
func (s *Shell) CloseRect() Rect { return s.closeRect }

// HasCloseControl reports whether the [x] control is drawn
func (s *Shell) HasCloseControl() bool { return s.closeControl }

// Render draws body inside the frame centred over background and records
// the frame and close-control regions.
func (s *Shell) Render(body *Body, background string, screenW, screenH int) string {
	width := s.width
	if screenW > 0 && width+4 > screenW {
		width = max(len(closeLabel)+1, screenW-4)
	}
	body.width = width

	var sb strings.Builder
	if s.closeControl {
		sb.WriteString(strings.Repeat(" ", width-len(closeLabel)))
		sb.WriteString(CloseControl.Render(closeLabel))
		sb.WriteString("\n")
	}
	sb.WriteString(body.View())

	// Width includes padding but not the border
	box := ShellFrame.Width(width + 2).Render(sb.String())
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)

	x := max(0, (screenW-boxW)/2)
	y := max(0, (screenH-boxH)/2)
	s.frame = Rect{X: x, Y: y, W: boxW, H: boxH}
	if s.closeControl {
		// border + padding on the left, header is the first row inside the border
		s.closeRect = Rect{X: x + 2 + width - len(closeLabel), Y: y + 1, W: len(closeLabel), H: 1}
	} else {
		s.closeRect = Rect{}
	}

	return overlay(background, box, x, y, screenH)
}

// overlay splices box into background at (x, y), keeping the background
// visible around it.
func overlay(background, box string, x, y, screenH int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < screenH {
		bgLines = append(bgLines, "")
	}
	boxLines := strings.Split(box, "\n")

	for i, boxLine := range boxLines {
		row := y + i
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		line := bgLines[row]

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(boxLine), "")

		bgLines[row] = left + boxLine + right
	}

	return strings.Join(bgLines, "\n")
}
