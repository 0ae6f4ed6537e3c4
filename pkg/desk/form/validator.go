package form

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Built-in rule names
const (
	RuleEmail    = "email"
	RulePassword = "password"
	RulePhone    = "phone"
	RuleRequired = "required"
	RuleName     = "name"
)

const unknownRuleMessage = "Invalid value"

var (
	// Any Unicode space separator counts as whitespace, not just ASCII
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Predicate reports whether value satisfies a rule
type Predicate func(value string) bool

type rule struct {
	test    Predicate
	message string
}

// Validator holds named rules. Rules can be added or replaced but never
// removed.
type Validator struct {
	rules map[string]rule
}

// NewValidator returns a validator with the built-in rules
func NewValidator() *Validator {
	return &Validator{
		rules: map[string]rule{
			RuleEmail: {
				test:    emailPattern.MatchString,
				message: "Please enter a valid email address",
			},
			RulePassword: {
				test:    func(v string) bool { return utf8.RuneCountInString(v) >= 6 },
				message: "Password must be at least 6 characters",
			},
			RulePhone: {
				test:    phonePattern.MatchString,
				message: "Phone number must be 10 digits",
			},
			RuleRequired: {
				test:    func(v string) bool { return strings.TrimSpace(v) != "" },
				message: "This field is required",
			},
			RuleName: {
				test:    func(v string) bool { return utf8.RuneCountInString(strings.TrimSpace(v)) >= 2 },
				message: "Name must be at least 2 characters",
			},
		},
	}
}

// Validate checks value against the named rule. Unknown rules pass.
func (v *Validator) Validate(value, name string) bool {
	r, ok := v.rules[name]
	if !ok {
		slog.Warn("validation rule not found", "rule", name)
		return true
	}
	return r.test(value)
}

// ErrorMessage returns the message for the named rule
func (v *Validator) ErrorMessage(name string) string {
	if r, ok := v.rules[name]; ok {
		return r.message
	}
	return unknownRuleMessage
}

// AddRule registers or replaces a rule
func (v *Validator) AddRule(name string, test Predicate, message string) {
	v.rules[name] = rule{test: test, message: message}
}

// HasRule reports whether name is registered
func (v *Validator) HasRule(name string) bool {
	_, ok := v.rules[name]
	return ok
}

// Schema maps a field name to the rules it must pass, in order
type Schema map[string][]string

// Result is the outcome of ValidateAll
type Result struct {
	Valid  bool
	Errors map[string]string
}

// ValidateAll checks every field in schema and records the first failing
// rule's message per field.
func (v *Validator) ValidateAll(data map[string]string, schema Schema) Result {
	errs := make(map[string]string)
	for field, rules := range schema {
		for _, name := range rules {
			if !v.Validate(data[field], name) {
				errs[field] = v.ErrorMessage(name)
				break
			}
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Predefined schemas
var (
	SchemaPatientSignup = Schema{
		"name":     {RuleRequired, RuleName},
		"email":    {RuleRequired, RuleEmail},
		"password": {RuleRequired, RulePassword},
		"phone":    {RuleRequired, RulePhone},
		"address":  {RuleRequired},
	}

	SchemaLogin = Schema{
		"email":    {RuleRequired, RuleEmail},
		"password": {RuleRequired},
	}
)
