package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/internal/session"
)

type stubBackend struct {
	login     *api.LoginResponse
	signup    *api.MessageResponse
	err       error
	lastEmail string
	lastUser  string
	lastSign  models.Patient
}

func (b *stubBackend) PatientLogin(_ context.Context, email, _ string) (*api.LoginResponse, error) {
	b.lastEmail = email
	return b.login, b.err
}

func (b *stubBackend) DoctorLogin(_ context.Context, email, _ string) (*api.LoginResponse, error) {
	b.lastEmail = email
	return b.login, b.err
}

func (b *stubBackend) AdminLogin(_ context.Context, username, _ string) (*api.LoginResponse, error) {
	b.lastUser = username
	return b.login, b.err
}

func (b *stubBackend) PatientSignup(_ context.Context, p models.Patient) (*api.MessageResponse, error) {
	b.lastSign = p
	return b.signup, b.err
}

func newService(t *testing.T, b *stubBackend) (*Service, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	return NewService(b, store), store
}

func TestLoginSuccessWritesSession(t *testing.T) {
	tests := []struct {
		role     models.Role
		redirect string
	}{
		{models.RolePatient, RoutePatientDashboard},
		{models.RoleDoctor, RouteDoctorDashboard},
		{models.RoleAdmin, RouteAdminDashboard},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			b := &stubBackend{login: &api.LoginResponse{Token: "tok-" + string(tt.role), Name: "Someone"}}
			svc, store := newService(t, b)

			res := svc.Login(context.Background(), tt.role, Credentials{Email: "a@b.co", Username: "root", Password: "pw"})
			if !res.Success {
				t.Fatalf("expected success, got %+v", res)
			}
			if res.Redirect != tt.redirect {
				t.Errorf("Redirect: got %q, want %q", res.Redirect, tt.redirect)
			}

			sess, err := store.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if sess.Role != tt.role || sess.Token != "tok-"+string(tt.role) {
				t.Errorf("session not written: %+v", sess)
			}
			if sess.User != "Someone" {
				t.Errorf("User: got %q", sess.User)
			}
		})
	}
}

func TestAdminLoginUsesUsername(t *testing.T) {
	b := &stubBackend{login: &api.LoginResponse{Token: "adm"}}
	svc, store := newService(t, b)

	svc.AdminLogin(context.Background(), Credentials{Username: "root", Email: "ignored@x.co", Password: "pw"})
	if b.lastUser != "root" {
		t.Errorf("expected username root, got %q", b.lastUser)
	}
	sess, _ := store.Load()
	if sess == nil || sess.User != "root" {
		t.Errorf("expected fallback user root, got %+v", sess)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend *stubBackend
		want    string
	}{
		{"api error message", &stubBackend{err: &api.Error{Status: 401, Message: "Invalid password"}}, "Invalid password"},
		{"transport error", &stubBackend{err: errors.New("dial tcp: refused")}, "Login failed"},
		{"no token with error", &stubBackend{login: &api.LoginResponse{Error: "Doctor not found"}}, "Doctor not found"},
		{"no token no error", &stubBackend{login: &api.LoginResponse{}}, "Login failed"},
		{"cancelled", &stubBackend{err: context.Canceled}, "Request cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t, tt.backend)
			res := svc.PatientLogin(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Error != tt.want {
				t.Errorf("Error: got %q, want %q", res.Error, tt.want)
			}
			if _, err := store.Load(); !errors.Is(err, session.ErrNoSession) {
				t.Errorf("failed login must not write a session, got %v", err)
			}
		})
	}
}

func TestLoginUnknownRole(t *testing.T) {
	svc, _ := newService(t, &stubBackend{})
	res := svc.Login(context.Background(), "nurse", Credentials{})
	if res.Success || res.Error != "Invalid role" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestPatientSignup(t *testing.T) {
	b := &stubBackend{signup: &api.MessageResponse{Message: "Signup successful"}}
	svc, _ := newService(t, b)

	res := svc.PatientSignup(context.Background(), models.Patient{Name: "Pat", Email: "p@x.co"})
	if !res.Success || res.Message != "Signup successful!" {
		t.Errorf("unexpected result: %+v", res)
	}
	if b.lastSign.Name != "Pat" {
		t.Errorf("patient not forwarded: %+v", b.lastSign)
	}

	b.signup = &api.MessageResponse{Error: "Email taken"}
	res = svc.PatientSignup(context.Background(), models.Patient{})
	if res.Success || res.Error != "Email taken" {
		t.Errorf("unexpected result: %+v", res)
	}

	b.err = errors.New("timeout")
	res = svc.PatientSignup(context.Background(), models.Patient{})
	if res.Success || res.Error != "Signup failed" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestLogout(t *testing.T) {
	b := &stubBackend{login: &api.LoginResponse{Token: "tok"}}
	svc, store := newService(t, b)
	svc.PatientLogin(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("expected no session after logout, got %v", err)
	}
}
