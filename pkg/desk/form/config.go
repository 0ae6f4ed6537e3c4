package form

import (
	"context"

	"github.com/marcus/clinic/internal/models"
)

// FieldType selects how an input is displayed
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypePassword FieldType = "password"
	TypeTel      FieldType = "tel"
)

// Field describes one input. Order in Config.Fields is render order.
type Field struct {
	ID          string
	Name        string // key in submitted data; defaults to ID
	Type        FieldType
	Label       string
	Placeholder string
	Required    bool
	Validation  string // rule name, optional
}

// Key is the name the field's value is submitted under
func (f Field) Key() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// Outcome is what a successful submit reports back
type Outcome struct {
	Message  string
	Redirect string
	Role     models.Role
}

// SubmitFunc sends the form data somewhere. data maps Field.Key to the
// trimmed value.
type SubmitFunc func(ctx context.Context, data map[string]string) (Outcome, error)

// Config describes one form variant
type Config struct {
	ID          string
	Title       string
	Fields      []Field
	SubmitID    string
	ErrorID     string
	SubmitText  string
	OnSubmit    SubmitFunc
	RedirectURL string
	UserRole    models.Role
}
