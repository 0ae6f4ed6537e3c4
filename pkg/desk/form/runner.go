// Package form renders and submits the desk's modal forms.
//
// A Runner is built from a Config and an optional FieldCheck. Submission
// runs the FieldCheck over every field, then a presence check on required
// fields, and only then calls Config.OnSubmit inside a tea.Cmd.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/pkg/desk/modal"
)

const (
	processingText   = "Processing..."
	fixErrorsMessage = "Please fix the errors above."
	genericError     = "An error occurred. Please try again."
)

// DisplayError carries the text a form shows for a submit failure while
// keeping the underlying error for errors.Is and logging.
type DisplayError struct {
	Err     error
	Message string
}

func (e *DisplayError) Error() string { return e.Err.Error() }

func (e *DisplayError) Unwrap() error { return e.Err }

// FieldCheck validates one field's trimmed value. It returns the message to
// show and false when the value is rejected.
type FieldCheck func(f Field, value string) (string, bool)

// RuleCheck checks non-empty values against each field's Validation rule.
// Empty values pass; presence is enforced separately at submit time.
func RuleCheck(v *Validator) FieldCheck {
	return func(f Field, value string) (string, bool) {
		if f.Validation == "" || value == "" {
			return "", true
		}
		if !v.Validate(value, f.Validation) {
			return v.ErrorMessage(f.Validation), false
		}
		return "", true
	}
}

// SubmitResultMsg carries the result of Config.OnSubmit back to its runner
type SubmitResultMsg struct {
	FormID     string
	Outcome    Outcome
	Err        error
	generation uint64
}

func (m SubmitResultMsg) ModalGeneration() uint64 { return m.generation }

// SubmittedMsg is sent after a successful submit
type SubmittedMsg struct {
	FormID     string
	Message    string
	Redirect   string
	Role       models.Role
	generation uint64
}

func (m SubmittedMsg) ModalGeneration() uint64 { return m.generation }

// Option configures a Runner
type Option func(*Runner)

// WithFieldCheck sets the per-field check run on blur and before submit
func WithFieldCheck(check FieldCheck) Option {
	return func(r *Runner) {
		r.check = check
	}
}

// Runner is a live form. Call Render to (re)build its inputs.
type Runner struct {
	cfg    Config
	fields []Field
	check  FieldCheck

	inputs     map[string]*textinput.Model
	errors     map[string]string
	submitting bool
	formError  string
	notice     string
	focus      int // index into fields; len(fields) is the submit button

	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	closed     bool
}

// New creates a runner for cfg
func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		fields: append([]Field(nil), cfg.Fields...),
		inputs: make(map[string]*textinput.Model),
		errors: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the form's configuration
func (r *Runner) Config() Config { return r.cfg }

// Render rebuilds the inputs and mounts the form into body. data may be a
// map[string]string of initial values keyed by field ID or Key.
func (r *Runner) Render(body *modal.Body, data any) {
	r.inputs = make(map[string]*textinput.Model, len(r.fields))
	for _, f := range r.fields {
		in := newInput(f)
		r.inputs[f.ID] = &in
	}

	if values, ok := data.(map[string]string); ok {
		for _, f := range r.fields {
			if v, ok := values[f.ID]; ok {
				r.inputs[f.ID].SetValue(v)
			} else if v, ok := values[f.Key()]; ok {
				r.inputs[f.ID].SetValue(v)
			}
		}
	}

	if r.cancel != nil {
		r.cancel()
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.closed = false
	r.focus = 0
	r.generation = body.Generation()
	body.Mount(r)
}

func newInput(f Field) textinput.Model {
	in := textinput.New()
	in.Placeholder = f.Placeholder
	in.Prompt = "> "
	in.PromptStyle = promptNormal
	in.CharLimit = 256
	if f.Type == TypePassword {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// Cleanup cancels an in-flight submit. Results arriving later are ignored.
func (r *Runner) Cleanup() {
	if r.cancel != nil {
		r.cancel()
	}
	r.closed = true
}

// Closed reports whether Cleanup has run since the last Render
func (r *Runner) Closed() bool { return r.closed }

// Submitting reports whether a submit is in flight
func (r *Runner) Submitting() bool { return r.submitting }

// FieldError returns the inline error shown under field id
func (r *Runner) FieldError(id string) string { return r.errors[id] }

// FormError returns the form-level error
func (r *Runner) FormError() string { return r.formError }

// Notice returns the success notice
func (r *Runner) Notice() string { return r.notice }

// Value returns the raw value of field id
func (r *Runner) Value(id string) string {
	if in, ok := r.inputs[id]; ok {
		return in.Value()
	}
	return ""
}

// SetValue sets the value of field id
func (r *Runner) SetValue(id, v string) {
	if in, ok := r.inputs[id]; ok {
		in.SetValue(v)
	}
}

// FocusedField returns the focused field's id, or "" when the submit button
// has focus
func (r *Runner) FocusedField() string {
	if r.focus < len(r.fields) {
		return r.fields[r.focus].ID
	}
	return ""
}

// Data returns {Field.Key: trimmed value} for every field
func (r *Runner) Data() map[string]string {
	data := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		data[f.Key()] = strings.TrimSpace(r.Value(f.ID))
	}
	return data
}

// FocusFirst focuses the first input
func (r *Runner) FocusFirst() (tea.Cmd, bool) {
	if len(r.fields) == 0 {
		return nil, false
	}
	return r.setFocus(0), true
}

func (r *Runner) setFocus(i int) tea.Cmd {
	for _, in := range r.inputs {
		in.Blur()
	}
	r.focus = i
	if i < len(r.fields) {
		if in, ok := r.inputs[r.fields[i].ID]; ok {
			return in.Focus()
		}
	}
	return nil
}

// moveFocus blurs the current field and focuses the one delta steps away,
// wrapping around through the submit button.
func (r *Runner) moveFocus(delta int) tea.Cmd {
	if r.focus < len(r.fields) {
		r.Blur(r.fields[r.focus].ID)
	}
	n := len(r.fields) + 1
	return r.setFocus(((r.focus+delta)%n + n) % n)
}

// Blur runs the field check for a field that carries a validation rule
func (r *Runner) Blur(id string) {
	if r.check == nil {
		return
	}
	for _, f := range r.fields {
		if f.ID == id && f.Validation != "" {
			r.checkField(f)
			return
		}
	}
}

// checkField applies the field check and updates the inline error
func (r *Runner) checkField(f Field) bool {
	msg, ok := r.check(f, strings.TrimSpace(r.Value(f.ID)))
	if ok {
		delete(r.errors, f.ID)
		return true
	}
	r.errors[f.ID] = msg
	return false
}

// presenceCheck flags every required field left empty and clears the flag
// on required fields that now have a value
func (r *Runner) presenceCheck() bool {
	valid := true
	for _, f := range r.fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(r.Value(f.ID)) == "" {
			r.errors[f.ID] = fmt.Sprintf("%s is required", f.Label)
			valid = false
			continue
		}
		delete(r.errors, f.ID)
	}
	return valid
}

// Submit validates the form and returns the command that calls OnSubmit.
// It returns nil when a submit is already running or validation fails.
func (r *Runner) Submit() tea.Cmd {
	if r.submitting {
		return nil
	}

	if r.check != nil {
		valid := true
		for _, f := range r.fields {
			if !r.checkField(f) {
				valid = false
			}
		}
		if !valid {
			return nil
		}
	}

	if !r.presenceCheck() {
		r.formError = fixErrorsMessage
		return nil
	}

	if r.cfg.OnSubmit == nil {
		slog.Error("form has no submit handler", "form", r.cfg.ID)
		return nil
	}

	r.submitting = true
	r.formError = ""
	r.notice = ""

	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	submit := r.cfg.OnSubmit
	data := r.Data()
	formID := r.cfg.ID
	gen := r.generation

	return func() (msg tea.Msg) {
		result := SubmitResultMsg{FormID: formID, generation: gen}
		defer func() {
			if p := recover(); p != nil {
				slog.Error("form submit panicked", "form", formID, "panic", p)
				result.Err = fmt.Errorf("submit panicked: %v", p)
				msg = result
			}
		}()
		result.Outcome, result.Err = submit(ctx, data)
		return result
	}
}

// finish applies a submit result
func (r *Runner) finish(msg SubmitResultMsg) tea.Cmd {
	r.submitting = false

	if msg.Err != nil {
		slog.Debug("form submit failed", "form", r.cfg.ID, "err", msg.Err)
		r.formError = errorText(msg.Err)
		return nil
	}

	r.notice = msg.Outcome.Message
	redirect := msg.Outcome.Redirect
	if redirect == "" {
		redirect = r.cfg.RedirectURL
	}
	role := msg.Outcome.Role
	if role == "" {
		role = r.cfg.UserRole
	}
	submitted := SubmittedMsg{
		FormID:     r.cfg.ID,
		Message:    msg.Outcome.Message,
		Redirect:   redirect,
		Role:       role,
		generation: msg.generation,
	}
	return func() tea.Msg { return submitted }
}

func errorText(err error) string {
	var de *DisplayError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericError
}

// Update handles keys and submit results
func (r *Runner) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		if r.closed || msg.FormID != r.cfg.ID || msg.generation != r.generation {
			return nil
		}
		return r.finish(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return r.moveFocus(1)
		case "shift+tab", "up":
			return r.moveFocus(-1)
		case "enter":
			return r.Submit()
		}
	}

	if r.focus < len(r.fields) {
		if in, ok := r.inputs[r.fields[r.focus].ID]; ok {
			updated, cmd := in.Update(msg)
			*in = updated
			return cmd
		}
	}
	return nil
}

// View renders the form at width
func (r *Runner) View(width int) string {
	var sb strings.Builder

	sb.WriteString(modal.ModalTitle.Render(r.cfg.Title))
	sb.WriteString("\n\n")

	for _, f := range r.fields {
		label := labelStyle.Render(f.Label)
		if f.Required {
			label += " " + requiredMark
		}
		sb.WriteString(label)
		sb.WriteString("\n")

		if in, ok := r.inputs[f.ID]; ok {
			in.Width = max(1, width-4)
			if r.errors[f.ID] != "" {
				in.PromptStyle = promptError
			} else {
				in.PromptStyle = promptNormal
			}
			sb.WriteString(in.View())
		}
		sb.WriteString("\n")

		if msg := r.errors[f.ID]; msg != "" {
			sb.WriteString(fieldErrStyle.Width(width).Render(msg))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(r.buttonView())

	if r.formError != "" {
		sb.WriteString("\n")
		sb.WriteString(modal.ErrorText.Width(width).Render(r.formError))
	}
	if r.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(modal.NoticeText.Width(width).Render(r.notice))
	}

	return sb.String()
}

func (r *Runner) buttonView() string {
	if r.submitting {
		return modal.ButtonDisabled.Render(processingText)
	}
	if r.focus == len(r.fields) {
		return modal.ButtonFocused.Render(r.cfg.SubmitText)
	}
	return modal.Button.Render(r.cfg.SubmitText)
}

// Modal builds a fresh Runner each time the modal is opened
type Modal struct {
	build   func() *Runner
	current *Runner
}

// NewModal wraps a runner constructor as a modal component
func NewModal(build func() *Runner) *Modal {
	return &Modal{build: build}
}

// Render builds a new runner and renders it into body
func (m *Modal) Render(body *modal.Body, data any) {
	if m.current != nil {
		m.current.Cleanup()
	}
	m.current = m.build()
	m.current.Render(body, data)
}

// Cleanup releases the open runner
func (m *Modal) Cleanup() {
	if m.current != nil {
		m.current.Cleanup()
		m.current = nil
	}
}

// Runner returns the runner of the open modal, or nil
func (m *Modal) Runner() *Runner { return m.current }
