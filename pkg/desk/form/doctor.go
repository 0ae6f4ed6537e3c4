package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/models"
)

// RuleTimeSlots accepts a comma separated list of HH:mm-HH:mm slots
const RuleTimeSlots = "timeslots"

const (
	sessionExpired  = "Session expired. Please login again."
	addDoctorFailed = "Failed to add doctor. Please try again."
)

var (
	// ErrSessionExpired means the admin token is missing or was rejected
	ErrSessionExpired = errors.New("session expired")
	// ErrAddDoctor wraps backend failures without a usable message
	ErrAddDoctor = errors.New("add doctor failed")
)

// DoctorSaver creates doctors with an admin token
type DoctorSaver interface {
	SaveDoctor(ctx context.Context, token string, d models.Doctor) (*api.MessageResponse, error)
}

// TokenSource returns the current session token, or "" when logged out
type TokenSource interface {
	Token() string
}

// ValidTimeSlots reports whether every comma separated entry is a slot
func ValidTimeSlots(value string) bool {
	slots := SplitTimeSlots(value)
	if len(slots) == 0 {
		return false
	}
	for _, s := range slots {
		if !models.IsValidTimeSlot(s) {
			return false
		}
	}
	return true
}

// SplitTimeSlots splits and trims a comma separated slot list
func SplitTimeSlots(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DoctorConfig returns the admin add-doctor form
func DoctorConfig(saver DoctorSaver, tokens TokenSource) Config {
	return Config{
		ID:    "addDoctor",
		Title: "Add Doctor",
		Fields: []Field{
			{ID: "doctorName", Name: "name", Type: TypeText, Label: "Name", Placeholder: "Doctor name", Required: true, Validation: RuleName},
			{ID: "specialization", Name: "specialty", Type: TypeText, Label: "Specialty", Placeholder: "e.g. Cardiologist", Required: true},
			{ID: "doctorEmail", Name: "email", Type: TypeEmail, Label: "Email", Placeholder: "Doctor email", Required: true, Validation: RuleEmail},
			{ID: "doctorPassword", Name: "password", Type: TypePassword, Label: "Password", Placeholder: "Initial password", Required: true, Validation: RulePassword},
			{ID: "doctorPhone", Name: "phone", Type: TypeTel, Label: "Phone", Placeholder: "10 digits", Required: true, Validation: RulePhone},
			{ID: "availability", Name: "availableTimes", Type: TypeText, Label: "Available times", Placeholder: "09:00-10:00, 10:00-11:00", Required: true, Validation: RuleTimeSlots},
		},
		SubmitID:   "saveDoctorBtn",
		ErrorID:    "addDoctorError",
		SubmitText: "Save",
		OnSubmit: func(ctx context.Context, data map[string]string) (Outcome, error) {
			token := tokens.Token()
			if token == "" {
				return Outcome{}, &DisplayError{Err: ErrSessionExpired, Message: sessionExpired}
			}
			resp, err := saver.SaveDoctor(ctx, token, models.Doctor{
				Name:           data["name"],
				Specialty:      data["specialty"],
				Email:          data["email"],
				Password:       data["password"],
				Phone:          data["phone"],
				AvailableTimes: SplitTimeSlots(data["availableTimes"]),
			})
			if err != nil {
				return Outcome{}, saveDoctorError(err)
			}
			msg := "Doctor added successfully!"
			if resp != nil && resp.Message != "" {
				msg = resp.Message
			}
			return Outcome{Message: msg}, nil
		},
	}
}

func saveDoctorError(err error) error {
	switch api.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &DisplayError{Err: fmt.Errorf("%w: %w", ErrSessionExpired, err), Message: sessionExpired}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &DisplayError{Err: err, Message: apiErr.Message}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &DisplayError{Err: fmt.Errorf("%w: %w", ErrAddDoctor, err), Message: addDoctorFailed}
}

// NewDoctorForm returns the add-doctor runner. It registers the time slot
// rule on v if missing.
func NewDoctorForm(saver DoctorSaver, tokens TokenSource, v *Validator) *Runner {
	if !v.HasRule(RuleTimeSlots) {
		v.AddRule(RuleTimeSlots, ValidTimeSlots, "Use HH:mm-HH:mm slots separated by commas")
	}
	return New(DoctorConfig(saver, tokens), WithFieldCheck(RuleCheck(v)))
}
