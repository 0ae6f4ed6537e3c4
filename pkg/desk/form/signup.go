package form

import (
	"context"
	"errors"

	"github.com/marcus/clinic/internal/auth"
	"github.com/marcus/clinic/internal/models"
)

// ErrSignupFailed is returned when the backend rejects a signup
var ErrSignupFailed = errors.New("signup failed")

// Signupper registers a new patient
type Signupper interface {
	PatientSignup(ctx context.Context, p models.Patient) auth.Result
}

// SignupConfig returns the patient signup form
func SignupConfig(s Signupper) Config {
	return Config{
		ID:    "patientSignup",
		Title: "Patient Signup",
		Fields: []Field{
			{ID: "name", Type: TypeText, Label: "Name", Placeholder: "Name", Required: true, Validation: RuleName},
			{ID: "email", Type: TypeEmail, Label: "Email", Placeholder: "Email", Required: true, Validation: RuleEmail},
			{ID: "password", Type: TypePassword, Label: "Password", Placeholder: "Password", Required: true, Validation: RulePassword},
			{ID: "phone", Type: TypeTel, Label: "Phone", Placeholder: "Phone", Required: true, Validation: RulePhone},
			{ID: "address", Type: TypeText, Label: "Address", Placeholder: "Address", Required: true},
		},
		SubmitID:   "signupBtn",
		ErrorID:    "signupError",
		SubmitText: "Signup",
		UserRole:   models.RolePatient,
		OnSubmit: func(ctx context.Context, data map[string]string) (Outcome, error) {
			res := s.PatientSignup(ctx, models.Patient{
				Name:     data["name"],
				Email:    data["email"],
				Password: data["password"],
				Phone:    data["phone"],
				Address:  data["address"],
			})
			if !res.Success {
				msg := res.Error
				if msg == "" {
					msg = "Signup failed. Please try again later."
				}
				return Outcome{}, &DisplayError{Err: ErrSignupFailed, Message: msg}
			}
			return Outcome{Message: res.Message}, nil
		},
	}
}

// NewSignupForm returns the signup runner
func NewSignupForm(s Signupper, v *Validator) *Runner {
	return New(SignupConfig(s), WithFieldCheck(RuleCheck(v)))
}
