// Package modals constructs the desk's form modals on first use.
package modals

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/pkg/desk/form"
	"github.com/marcus/clinic/pkg/desk/modal"
)

// ErrModalNotFound is returned for a name with no loader entry
var ErrModalNotFound = errors.New("modal not found")

// Kind is a loadable modal
type Kind int

const (
	KindPatientLogin Kind = iota
	KindPatientSignup
	KindAddDoctor
)

// Kinds lists every loadable modal
var Kinds = []Kind{KindPatientLogin, KindPatientSignup, KindAddDoctor}

// Name is the modal name the kind is registered under
func (k Kind) Name() modal.Name {
	switch k {
	case KindPatientLogin:
		return "patientLogin"
	case KindPatientSignup:
		return "patientSignup"
	case KindAddDoctor:
		return "addDoctor"
	}
	return ""
}

func (k Kind) String() string {
	if n := k.Name(); n != "" {
		return string(n)
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a modal name to its kind
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k.Name()) == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrModalNotFound, name)
}

// Auth is the login and signup collaborator
type Auth interface {
	form.Authenticator
	form.Signupper
}

// Deps are the collaborators the loaded forms need
type Deps struct {
	Auth      Auth
	Doctors   form.DoctorSaver
	Tokens    form.TokenSource
	Validator *form.Validator
}

// Loader builds modal components on demand and caches them for the life of
// the desk
type Loader struct {
	deps  Deps
	cache map[Kind]modal.Component
}

// NewLoader creates a loader. A nil Validator gets the built-in rules.
func NewLoader(deps Deps) *Loader {
	if deps.Validator == nil {
		deps.Validator = form.NewValidator()
	}
	return &Loader{
		deps:  deps,
		cache: make(map[Kind]modal.Component),
	}
}

// LoadModal loads the component registered under name
func (l *Loader) LoadModal(name string) (modal.Component, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return l.Load(kind)
}

// Load returns the component for kind, building it on the first call
func (l *Loader) Load(kind Kind) (modal.Component, error) {
	if c, ok := l.cache[kind]; ok {
		return c, nil
	}

	var c modal.Component
	switch kind {
	case KindPatientLogin:
		m, err := form.LoginModal(models.RolePatient, l.deps.Auth, l.deps.Validator)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", kind, err)
		}
		c = m
	case KindPatientSignup:
		c = form.NewModal(func() *form.Runner {
			return form.NewSignupForm(l.deps.Auth, l.deps.Validator)
		})
	case KindAddDoctor:
		c = form.NewModal(func() *form.Runner {
			return form.NewDoctorForm(l.deps.Doctors, l.deps.Tokens, l.deps.Validator)
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrModalNotFound, kind)
	}

	slog.Debug("modal loaded", "kind", kind)
	l.cache[kind] = c
	return c, nil
}

// Loaded reports whether kind has been built
func (l *Loader) Loaded(kind Kind) bool {
	_, ok := l.cache[kind]
	return ok
}

// Lazy returns a component that loads kind the first time it is rendered
func (l *Loader) Lazy(kind Kind) modal.Component {
	return &lazy{loader: l, kind: kind}
}

type lazy struct {
	loader   *Loader
	kind     Kind
	resolved modal.Component
}

func (z *lazy) Render(body *modal.Body, data any) {
	if z.resolved == nil {
		c, err := z.loader.Load(z.kind)
		if err != nil {
			slog.Error("load modal", "kind", z.kind, "err", err)
			body.Mount(modal.Text(modal.ErrorText.Render("Could not load " + z.kind.String())))
			return
		}
		z.resolved = c
	}
	z.resolved.Render(body, data)
}

func (z *lazy) Cleanup() {
	if cl, ok := z.resolved.(modal.Cleaner); ok {
		cl.Cleanup()
	}
}

// RegisterAll registers a lazy component for every kind
func (l *Loader) RegisterAll(m *modal.Manager) {
	for _, k := range Kinds {
		m.Register(k.Name(), l.Lazy(k))
	}
}
