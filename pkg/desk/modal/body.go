package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Content is what a component mounts into the body slot
type Content interface {
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
}

// Focuser is content with focusable elements. FocusFirst focuses the first
// one and reports whether there was anything to focus.
type Focuser interface {
	FocusFirst() (tea.Cmd, bool)
}

// Body is the slot modal content renders into
type Body struct {
	content    Content
	generation uint64
	width      int
}

// NewBody returns an empty body
func NewBody() *Body {
	return &Body{width: defaultWidth}
}

// Mount replaces the body's content
func (b *Body) Mount(c Content) {
	b.content = c
}

// Clear empties the body
func (b *Body) Clear() {
	b.content = nil
}

// Content returns the mounted content, or nil
func (b *Body) Content() Content {
	return b.content
}

// Empty reports whether nothing is mounted
func (b *Body) Empty() bool {
	return b.content == nil
}

// Generation is the manager generation this body was last rendered for.
// Content that starts asynchronous work should tag results with it.
func (b *Body) Generation() uint64 {
	return b.generation
}

// Width is the usable content width inside the shell
func (b *Body) Width() int {
	return b.width
}

// Update forwards msg to the mounted content
func (b *Body) Update(msg tea.Msg) tea.Cmd {
	if b.content == nil {
		return nil
	}
	return b.content.Update(msg)
}

// View renders the mounted content
func (b *Body) View() string {
	if b.content == nil {
		return ""
	}
	return b.content.View(b.width)
}

// textContent is static wrapped text
type textContent struct {
	text string
}

// Text creates static text content
func Text(s string) Content {
	return &textContent{text: s}
}

func (t *textContent) Update(tea.Msg) tea.Cmd { return nil }

func (t *textContent) View(width int) string {
	return BodyText.Width(width).Render(t.text)
}
