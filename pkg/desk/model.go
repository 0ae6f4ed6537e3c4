// Package desk is the full-screen clinic front desk: a doctor directory
// with role-aware actions, and the login, signup and admin modals.
package desk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/clinic/internal/directory"
	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/internal/session"
	"github.com/marcus/clinic/pkg/desk/form"
	"github.com/marcus/clinic/pkg/desk/modal"
	"github.com/marcus/clinic/pkg/desk/modals"
)

// Modal names registered besides the loader's
const (
	ModalAdminLogin  modal.Name = "adminLogin"
	ModalDoctorLogin modal.Name = "doctorLogin"
	ModalRoles       modal.Name = "roles"
	ModalHelp        modal.Name = "help"
	ModalConfirm     modal.Name = "confirm"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	homeRoute     = "/"
)

// Directory lists and deletes doctors
type Directory interface {
	List(ctx context.Context, f directory.Filter) (directory.Listing, error)
	Delete(ctx context.Context, id int64, token string) error
}

// Auth logs users in and out
type Auth interface {
	modals.Auth
	Logout() error
}

// Sessions reads the stored login
type Sessions interface {
	Active(now time.Time) (*session.Session, error)
	Token() string
}

// Options wires the desk to its collaborators
type Options struct {
	Directory Directory
	Auth      Auth
	Sessions  Sessions
	Doctors   form.DoctorSaver
	Validator *form.Validator

	// Offline lists doctors from the cache only
	Offline bool
	// InitialModal is opened when the program starts
	InitialModal modal.Name
}

type doctorsLoadedMsg struct {
	listing directory.Listing
	err     error
}

type doctorDeletedMsg struct {
	id  int64
	err error
}

type logoutMsg struct {
	err error
}

// Model is the desk's bubbletea model
type Model struct {
	directory Directory
	auth      Auth
	sessions  Sessions
	offline   bool
	initial   modal.Name

	modals *modal.Manager
	loader *modals.Loader
	panel  *panel

	session   *session.Session
	route     string
	status    string
	statusErr bool

	width, height int
}

// New builds the desk and registers its modals
func New(opts Options) (Model, error) {
	v := opts.Validator
	if v == nil {
		v = form.NewValidator()
	}

	mgr := modal.NewManager(modal.NewShell(modal.WithWidth(56)), modal.NewBody())

	loader := modals.NewLoader(modals.Deps{
		Auth:      opts.Auth,
		Doctors:   opts.Doctors,
		Tokens:    opts.Sessions,
		Validator: v,
	})
	loader.RegisterAll(mgr)

	for name, role := range map[modal.Name]models.Role{
		ModalAdminLogin:  models.RoleAdmin,
		ModalDoctorLogin: models.RoleDoctor,
	} {
		c, err := form.LoginModal(role, opts.Auth, v)
		if err != nil {
			return Model{}, fmt.Errorf("register %s: %w", name, err)
		}
		mgr.Register(name, c)
	}
	mgr.Register(ModalRoles, rolesModal)
	mgr.Register(ModalHelp, helpModal)
	mgr.Register(ModalConfirm, confirmModal)

	if opts.InitialModal != "" && !mgr.Registered(opts.InitialModal) {
		return Model{}, fmt.Errorf("%w: %q", modals.ErrModalNotFound, opts.InitialModal)
	}

	m := Model{
		directory: opts.Directory,
		auth:      opts.Auth,
		sessions:  opts.Sessions,
		offline:   opts.Offline,
		initial:   opts.InitialModal,
		modals:    mgr,
		loader:    loader,
		panel:     newPanel(),
		route:     homeRoute,
	}
	m.reloadSession()
	return m, nil
}

// LoginModal returns the modal name of role's login form
func LoginModal(role models.Role) (modal.Name, bool) {
	switch role {
	case models.RolePatient:
		return modals.KindPatientLogin.Name(), true
	case models.RoleAdmin:
		return ModalAdminLogin, true
	case models.RoleDoctor:
		return ModalDoctorLogin, true
	}
	return "", false
}

// Modals exposes the modal manager
func (m Model) Modals() *modal.Manager { return m.modals }

// Route is the page the last login redirected to
func (m Model) Route() string { return m.route }

// Session is the active session, or nil when logged out
func (m Model) Session() *session.Session { return m.session }

// Status is the footer message
func (m Model) Status() string { return m.status }

func (m *Model) reloadSession() {
	if m.sessions == nil {
		m.session = nil
		return
	}
	sess, err := m.sessions.Active(time.Now())
	if err != nil {
		m.session = nil
		return
	}
	m.session = sess
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) isAdmin() bool {
	return m.session != nil && m.session.Role == models.RoleAdmin
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDoctors()}
	if m.initial != "" {
		cmds = append(cmds, m.modals.Open(m.initial, nil))
	}
	return tea.Batch(cmds...)
}

func (m Model) loadDoctors() tea.Cmd {
	if m.directory == nil {
		return nil
	}
	m.panel.loading = true
	dir, offline := m.directory, m.offline
	return func() tea.Msg {
		listing, err := dir.List(context.Background(), directory.Filter{Offline: offline})
		return doctorsLoadedMsg{listing: listing, err: err}
	}
}

func (m *Model) deleteDoctor(id int64) tea.Cmd {
	token := m.sessions.Token()
	if token == "" {
		m.setStatus("Session expired. Please login again.", true)
		return nil
	}
	dir := m.directory
	return func() tea.Msg {
		return doctorDeletedMsg{id: id, err: dir.Delete(context.Background(), id, token)}
	}
}

func (m Model) logout() tea.Cmd {
	a := m.auth
	return func() tea.Msg {
		return logoutMsg{err: a.Logout()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case form.SubmitResultMsg:
		// A login stores its session before the result lands, even when the
		// modal was closed and the manager drops the result below.
		m.reloadSession()
	}

	handled, cmd := m.modals.Update(msg)
	if handled {
		return m, cmd
	}
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case form.SubmittedMsg:
		cmds = append(cmds, m.handleSubmitted(msg))

	case confirmMsg:
		m.modals.Close()
		if msg.Confirmed {
			cmds = append(cmds, m.handleConfirm(msg))
		}

	case roleChosenMsg:
		if name, ok := LoginModal(msg.role); ok {
			cmds = append(cmds, m.modals.Open(name, nil))
		}

	case doctorsLoadedMsg:
		m.panel.loading = false
		if msg.err != nil {
			slog.Warn("desk: load doctors", "err", msg.err)
			m.panel.err = msg.err
			break
		}
		m.panel.setListing(msg.listing)

	case doctorDeletedMsg:
		if msg.err != nil {
			m.setStatus("Delete failed: "+msg.err.Error(), true)
			break
		}
		m.setStatus("Doctor deleted", false)
		cmds = append(cmds, m.loadDoctors())

	case copiedMsg:
		if msg.err != nil {
			m.setStatus("Copy failed: "+msg.err.Error(), true)
			break
		}
		m.setStatus("Copied "+msg.what, false)

	case logoutMsg:
		if msg.err != nil {
			m.setStatus("Logout failed: "+msg.err.Error(), true)
			break
		}
		m.session = nil
		m.route = homeRoute
		m.setStatus("Logged out", false)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleSubmitted(msg form.SubmittedMsg) tea.Cmd {
	m.modals.Close()

	switch msg.FormID {
	case modals.KindAddDoctor.String():
		m.setStatus(msg.Message, false)
		return m.loadDoctors()
	case modals.KindPatientSignup.String():
		m.setStatus(msg.Message+" You can now log in.", false)
		return nil
	}

	m.reloadSession()
	if msg.Redirect != "" {
		m.route = msg.Redirect
	}
	user := string(msg.Role)
	if m.session != nil && m.session.User != "" {
		user = m.session.User
	}
	m.setStatus(fmt.Sprintf("Logged in as %s", user), false)
	return nil
}

func (m *Model) handleConfirm(msg confirmMsg) tea.Cmd {
	switch msg.Action {
	case actionLogout:
		return m.logout()
	case actionDeleteDoctor:
		if id, ok := msg.Data.(int64); ok {
			return m.deleteDoctor(id)
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.panel.filtering {
		switch msg.String() {
		case "esc":
			m.panel.stopFilter(false)
			return nil
		case "enter":
			m.panel.stopFilter(true)
			return nil
		}
		return m.panel.updateFilter(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		m.panel.move(1)
	case "k", "up":
		m.panel.move(-1)
	case "r":
		return m.loadDoctors()
	case "/":
		return m.panel.startFilter()
	case "y":
		if d, ok := m.panel.selected(); ok {
			return copyDoctor(d)
		}
	case "esc":
		if m.panel.filter.Value() != "" {
			m.panel.stopFilter(false)
		}

	case "l":
		return m.modals.Open(modals.KindPatientLogin.Name(), nil)
	case "a":
		return m.modals.Open(ModalAdminLogin, nil)
	case "d":
		return m.modals.Open(ModalDoctorLogin, nil)
	case "L":
		return m.modals.Open(ModalRoles, nil)
	case "s":
		return m.modals.Open(modals.KindPatientSignup.Name(), nil)
	case "?":
		return m.modals.Open(ModalHelp, nil)

	case "n":
		if !m.isAdmin() {
			m.setStatus("Admin login required", true)
			return nil
		}
		return m.modals.Open(modals.KindAddDoctor.Name(), nil)

	case "x":
		if !m.isAdmin() {
			m.setStatus("Admin login required", true)
			return nil
		}
		d, ok := m.panel.selected()
		if !ok {
			return nil
		}
		return m.modals.Open(ModalConfirm, confirmRequest{
			Title:       "Delete " + d.Name + "?",
			Description: "This removes the doctor and their availability.",
			Action:      actionDeleteDoctor,
			Data:        d.ID,
		})

	case "o":
		if m.session == nil {
			m.setStatus("Not logged in", true)
			return nil
		}
		return m.modals.Open(ModalConfirm, confirmRequest{
			Title:  "Log out?",
			Action: actionLogout,
		})
	}
	return nil
}
