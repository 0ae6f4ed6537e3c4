package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcus/clinic/internal/auth"
	"github.com/marcus/clinic/internal/models"
)

// ErrUnknownRole is returned for a login role with no form
var (
	ErrUnknownRole = errors.New("unknown role")
	ErrLoginFailed = errors.New("login failed")
)

const loginFailed = "Login failed"

// Authenticator logs a user in for a role
type Authenticator interface {
	Login(ctx context.Context, role models.Role, c auth.Credentials) auth.Result
}

// LoginConfig returns the login form for role
func LoginConfig(role models.Role, a Authenticator) (Config, error) {
	var cfg Config
	switch role {
	case models.RolePatient:
		cfg = Config{
			ID:    "patientLogin",
			Title: "Patient Login",
			Fields: []Field{
				{ID: "email", Type: TypeEmail, Label: "Email", Placeholder: "Enter your email", Required: true, Validation: RuleEmail},
				{ID: "password", Type: TypePassword, Label: "Password", Placeholder: "Enter your password", Required: true},
			},
			SubmitID:    "patientLoginBtn",
			ErrorID:     "patientLoginError",
			RedirectURL: auth.RoutePatientDashboard,
		}
	case models.RoleAdmin:
		cfg = Config{
			ID:    "adminLogin",
			Title: "Admin Login",
			Fields: []Field{
				{ID: "username", Type: TypeText, Label: "Username", Placeholder: "Enter admin username", Required: true},
				{ID: "password", Type: TypePassword, Label: "Password", Placeholder: "Enter admin password", Required: true},
			},
			SubmitID:    "adminLoginBtn",
			ErrorID:     "adminLoginError",
			RedirectURL: auth.RouteAdminDashboard,
		}
	case models.RoleDoctor:
		cfg = Config{
			ID:    "doctorLogin",
			Title: "Doctor Login",
			Fields: []Field{
				{ID: "email", Type: TypeEmail, Label: "Email", Placeholder: "Enter doctor email", Required: true, Validation: RuleEmail},
				{ID: "password", Type: TypePassword, Label: "Password", Placeholder: "Enter doctor password", Required: true},
			},
			SubmitID:    "doctorLoginBtn",
			ErrorID:     "doctorLoginError",
			RedirectURL: auth.RouteDoctorDashboard,
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	cfg.SubmitText = "Login"
	cfg.UserRole = role
	cfg.OnSubmit = loginHandler(role, cfg.RedirectURL, a)
	return cfg, nil
}

func loginHandler(role models.Role, redirect string, a Authenticator) SubmitFunc {
	return func(ctx context.Context, data map[string]string) (Outcome, error) {
		res := a.Login(ctx, role, auth.Credentials{
			Email:    data["email"],
			Username: data["username"],
			Password: data["password"],
		})
		if !res.Success {
			msg := res.Error
			if msg == "" {
				msg = loginFailed
			}
			return Outcome{}, &DisplayError{Err: ErrLoginFailed, Message: msg}
		}
		if res.Redirect != "" {
			redirect = res.Redirect
		}
		return Outcome{Message: res.Message, Redirect: redirect, Role: role}, nil
	}
}

// NewLoginForm returns a login runner for role that checks field rules on
// blur and before submitting
func NewLoginForm(role models.Role, a Authenticator, v *Validator) (*Runner, error) {
	cfg, err := LoginConfig(role, a)
	if err != nil {
		return nil, err
	}
	return New(cfg, WithFieldCheck(RuleCheck(v))), nil
}

// LoginModal returns a modal component that builds a fresh login runner for
// role on every open
func LoginModal(role models.Role, a Authenticator, v *Validator) (*Modal, error) {
	if _, err := LoginConfig(role, a); err != nil {
		return nil, err
	}
	return NewModal(func() *Runner {
		r, _ := NewLoginForm(role, a, v)
		return r
	}), nil
}
