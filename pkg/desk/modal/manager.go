package modal

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFocusDelay is how long after opening the first input gets focus
const DefaultFocusDelay = 100 * time.Millisecond

// Name identifies a registered modal
type Name string

// Component renders a modal's content into the body
type Component interface {
	Render(body *Body, data any)
}

// ComponentFunc adapts a function to Component
type ComponentFunc func(body *Body, data any)

// Render calls f(body, data)
func (f ComponentFunc) Render(body *Body, data any) { f(body, data) }

// Cleaner is a component that must release something when its modal closes
type Cleaner interface {
	Cleanup()
}

// Generational is implemented by messages that belong to one opening of a
// modal. The manager drops them once that modal has closed.
type Generational interface {
	ModalGeneration() uint64
}

// focusMsg asks the manager to focus the first focusable content
type focusMsg struct {
	generation uint64
}

func (m focusMsg) ModalGeneration() uint64 { return m.generation }

// Option configures a Manager
type Option func(*Manager)

// WithFocusDelay overrides DefaultFocusDelay
func WithFocusDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.focusDelay = d
	}
}

// WithLogger sets the logger used for registration and configuration errors
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager keeps at most one modal open. It is not safe for concurrent use;
// call it from the bubbletea update loop only.
type Manager struct {
	modals   map[Name]Component
	cleanups map[Name]func()
	current  Name

	shell *Shell
	body  *Body

	generation uint64
	focusDelay time.Duration
	logger     *slog.Logger
}

// NewManager creates a manager presenting modals in shell and body. If
// either is nil the manager still accepts registrations but Open does
// nothing.
func NewManager(shell *Shell, body *Body, opts ...Option) *Manager {
	m := &Manager{
		modals:     make(map[Name]Component),
		cleanups:   make(map[Name]func()),
		shell:      shell,
		body:       body,
		focusDelay: DefaultFocusDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds or replaces the component for name
func (m *Manager) Register(name Name, c Component) {
	m.modals[name] = c
	m.logger.Debug("modal registered", "name", name)
}

// Registered reports whether name has a component
func (m *Manager) Registered(name Name) bool {
	_, ok := m.modals[name]
	return ok
}

// Open shows the modal registered under name, closing the current one
// first. Opening the modal that is already open does nothing. An unknown
// name or missing mount points are logged and leave the state untouched.
// The returned command delivers the delayed focus.
func (m *Manager) Open(name Name, data any) tea.Cmd {
	if m.current != "" && m.current == name {
		return nil
	}

	c, ok := m.modals[name]
	if !ok {
		m.logger.Error("modal not registered", "name", name)
		return nil
	}
	if m.shell == nil || m.body == nil {
		m.logger.Error("modal mount points not found", "name", name)
		return nil
	}

	m.CloseCurrent()

	m.body.Clear()
	m.generation++
	m.body.generation = m.generation
	c.Render(m.body, data)

	if cl, ok := c.(Cleaner); ok {
		m.cleanups[name] = cl.Cleanup
	}

	m.shell.Show()
	m.current = name

	gen := m.generation
	return tea.Tick(m.focusDelay, func(time.Time) tea.Msg {
		return focusMsg{generation: gen}
	})
}

// CloseCurrent closes the open modal, running its cleanup once. It does
// nothing when no modal is open.
func (m *Manager) CloseCurrent() {
	if m.current == "" {
		return
	}

	if cleanup, ok := m.cleanups[m.current]; ok {
		delete(m.cleanups, m.current)
		cleanup()
	}

	if m.shell != nil {
		m.shell.Hide()
	}
	if m.body != nil {
		m.body.Clear()
	}

	m.logger.Debug("modal closed", "name", m.current)
	m.current = ""
	m.generation++
}

// Close is CloseCurrent
func (m *Manager) Close() {
	m.CloseCurrent()
}

// Current returns the open modal's name, or "" when closed
func (m *Manager) Current() Name {
	return m.current
}

// IsOpen reports whether a modal is open
func (m *Manager) IsOpen() bool {
	return m.current != ""
}

// Content returns what the open modal mounted, or nil
func (m *Manager) Content() Content {
	if !m.IsOpen() || m.body == nil {
		return nil
	}
	return m.body.Content()
}

// Generation returns the current open/close generation
func (m *Manager) Generation() uint64 {
	return m.generation
}

// Update routes a message through the open modal. handled is true when the
// caller must not process msg further: keys and mouse events while a modal
// is open, and stale generational messages. Other messages are forwarded to
// the modal content and also left for the caller.
func (m *Manager) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	if g, ok := msg.(Generational); ok && g.ModalGeneration() != m.generation {
		m.logger.Debug("modal: dropped stale message", "type", fmt.Sprintf("%T", msg))
		return true, nil
	}

	if !m.IsOpen() || m.shell == nil || m.body == nil {
		return false, nil
	}

	switch msg := msg.(type) {
	case focusMsg:
		return true, m.focusFirst()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.Close()
			return true, nil
		}
		return true, m.body.Update(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.shell.HasCloseControl() && m.shell.CloseRect().Contains(msg.X, msg.Y) {
				m.Close()
				return true, nil
			}
			if frame := m.shell.Frame(); !frame.Empty() && !frame.Contains(msg.X, msg.Y) {
				// Backdrop click
				m.Close()
				return true, nil
			}
		}
		return true, m.body.Update(msg)
	}

	return false, m.body.Update(msg)
}

// focusFirst focuses the first focusable content element, if any
func (m *Manager) focusFirst() tea.Cmd {
	f, ok := m.body.Content().(Focuser)
	if !ok {
		return nil
	}
	cmd, found := f.FocusFirst()
	if !found {
		m.logger.Debug("modal: nothing to focus", "name", m.current)
	}
	return cmd
}

// View draws the open modal over background, or returns background as-is
func (m *Manager) View(background string, width, height int) string {
	if !m.IsOpen() || m.shell == nil || m.body == nil {
		return background
	}
	return m.shell.Render(m.body, background, width, height)
}
