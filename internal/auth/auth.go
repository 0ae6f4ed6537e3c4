// Package auth performs logins and signups against the backend and records
// successful logins in the session store.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/models"
	"github.com/marcus/clinic/internal/session"
)

// Dashboard routes each role lands on after a successful login
const (
	RoutePatientDashboard = "/pages/loggedPatientDashboard.html"
	RouteAdminDashboard   = "/adminDashboard"
	RouteDoctorDashboard  = "/doctorDashboard"
)

// Result is the outcome of a login or signup. Failures are reported through
// Success=false and Error rather than a Go error so callers can show the
// backend's message as-is.
type Result struct {
	Success  bool
	Redirect string
	Message  string
	Error    string
}

// Credentials for any role; admins use Username, the others Email.
type Credentials struct {
	Email    string
	Username string
	Password string
}

// Backend is the subset of the API client the service needs
type Backend interface {
	PatientLogin(ctx context.Context, email, password string) (*api.LoginResponse, error)
	DoctorLogin(ctx context.Context, email, password string) (*api.LoginResponse, error)
	AdminLogin(ctx context.Context, username, password string) (*api.LoginResponse, error)
	PatientSignup(ctx context.Context, p models.Patient) (*api.MessageResponse, error)
}

// Sessions records a successful login
type Sessions interface {
	Start(role models.Role, token, user string) (*session.Session, error)
	Clear() error
}

// Service is the auth collaborator used by the login and signup forms
type Service struct {
	backend  Backend
	sessions Sessions
}

// NewService creates a Service
func NewService(backend Backend, sessions Sessions) *Service {
	return &Service{backend: backend, sessions: sessions}
}

// PatientLogin logs a patient in by email
func (s *Service) PatientLogin(ctx context.Context, c Credentials) Result {
	resp, err := s.backend.PatientLogin(ctx, c.Email, c.Password)
	return s.finishLogin(models.RolePatient, RoutePatientDashboard, c.Email, resp, err)
}

// DoctorLogin logs a doctor in by email
func (s *Service) DoctorLogin(ctx context.Context, c Credentials) Result {
	resp, err := s.backend.DoctorLogin(ctx, c.Email, c.Password)
	return s.finishLogin(models.RoleDoctor, RouteDoctorDashboard, c.Email, resp, err)
}

// AdminLogin logs an admin in by username
func (s *Service) AdminLogin(ctx context.Context, c Credentials) Result {
	resp, err := s.backend.AdminLogin(ctx, c.Username, c.Password)
	return s.finishLogin(models.RoleAdmin, RouteAdminDashboard, c.Username, resp, err)
}

// Login dispatches on role
func (s *Service) Login(ctx context.Context, role models.Role, c Credentials) Result {
	switch role {
	case models.RolePatient:
		return s.PatientLogin(ctx, c)
	case models.RoleDoctor:
		return s.DoctorLogin(ctx, c)
	case models.RoleAdmin:
		return s.AdminLogin(ctx, c)
	}
	return Result{Error: "Invalid role"}
}

func (s *Service) finishLogin(role models.Role, redirect, fallbackUser string, resp *api.LoginResponse, err error) Result {
	if err != nil {
		slog.Warn("auth: login failed", "role", role, "err", err)
		return Result{Error: errorMessage(err, "Login failed")}
	}
	if resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "Login failed"
		}
		return Result{Error: msg}
	}

	user := firstNonEmpty(resp.Name, resp.Username, resp.Email, fallbackUser)
	if _, err := s.sessions.Start(role, resp.Token, user); err != nil {
		slog.Error("auth: save session", "role", role, "err", err)
		return Result{Error: "Could not save session"}
	}

	slog.Info("auth: logged in", "role", role)
	return Result{Success: true, Redirect: redirect, Message: resp.Message}
}

// PatientSignup registers a patient
func (s *Service) PatientSignup(ctx context.Context, p models.Patient) Result {
	resp, err := s.backend.PatientSignup(ctx, p)
	if err != nil {
		slog.Warn("auth: signup failed", "err", err)
		return Result{Error: errorMessage(err, "Signup failed")}
	}
	if resp.Error != "" {
		return Result{Error: resp.Error}
	}
	return Result{Success: true, Message: "Signup successful!"}
}

// Logout clears the stored session
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// errorMessage prefers the backend's message over transport detail
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
