package api

import (
	"context"
	"net/http"

	"github.com/marcus/clinic/internal/models"
)

// LoginResponse is returned by all three login endpoints. Which identity
// fields are set depends on the role.
type LoginResponse struct {
	Token    string `json:"token"`
	Message  string `json:"message"`
	Error    string `json:"error"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// MessageResponse is the backend's generic {"message"|"error"} reply
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type emailLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PatientLogin authenticates a patient by email
func (c *Client) PatientLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/patient/login", emailLogin{email, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DoctorLogin authenticates a doctor by email
func (c *Client) DoctorLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/doctor/login", emailLogin{email, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin authenticates an admin by username
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", adminLogin{username, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PatientSignup registers a new patient
func (c *Client) PatientSignup(ctx context.Context, p models.Patient) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.do(ctx, http.MethodPost, "/patient", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
