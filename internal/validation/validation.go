// Package validation holds the field rules for user-supplied values. Each
// check returns a *FieldError describing the violated rule, or nil. Handlers
// serialize the result as a 400; nothing in here touches the database.
package validation

import (
	"net/mail"
	"strings"
)

const MinPasswordLength = 6

// FieldError names the offending field and the rule it broke.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func Name(name string) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// Email validates address syntax. Callers are expected to pass the value
// through NormalizeEmail first; uniqueness is enforced by the database index.
func Email(email string) *FieldError {
	if email == "" {
		return &FieldError{Field: "email", Reason: "must not be empty"}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return &FieldError{Field: "email", Reason: "is not a valid email address"}
	}
	// mail.ParseAddress allows bare hostnames; public addresses need a TLD.
	domain := email[strings.LastIndex(email, "@")+1:]
	if !strings.Contains(domain, ".") {
		return &FieldError{Field: "email", Reason: "is not a valid email address"}
	}
	return nil
}

// NormalizeEmail trims and lowercases, matching how addresses are stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Password checks the plaintext rules. It must only ever see plaintext; by the
// time a password is persisted it is a bcrypt hash and no longer validated.
func Password(plain string) *FieldError {
	plain = strings.TrimSpace(plain)
	if len(plain) < MinPasswordLength {
		return &FieldError{Field: "password", Reason: "must be at least 6 characters"}
	}
	if strings.Contains(strings.ToLower(plain), "password") {
		return &FieldError{Field: "password", Reason: "must not contain the word \"password\""}
	}
	return nil
}

func Age(age int) *FieldError {
	if age < 0 {
		return &FieldError{Field: "age", Reason: "must not be negative"}
	}
	return nil
}

func TaskDescription(description string) *FieldError {
	if strings.TrimSpace(description) == "" {
		return &FieldError{Field: "description", Reason: "must not be empty"}
	}
	return nil
}
