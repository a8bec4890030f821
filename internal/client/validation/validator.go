// Package validation checks form input locally, before anything is sent to
// the API. Failures are reported per field so the CLI can show them inline.
//
// Validator is not safe for concurrent use; build one per form submission.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrValidation is matched by every *Error.
var ErrValidation = errors.New("validation failed")

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?(\d[\d-. ]+)?(\([\d-. ]+\))?(\d[\d-. ]+)\d$`)
	webRegex   = regexp.MustCompile(`^https?://[\w\-]+(\.[\w\-]+)+[/#?]?.*$`)
)

// FieldError is one failed rule. Field uses dotted paths ("address.city").
type FieldError struct {
	Field   string
	Message string
}

// Error lists every failed field in the order the rules ran.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return ErrValidation }

// Field returns the first message recorded for field, or "".
func (e *Error) Field(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Validator collects failures through a chainable API.
type Validator struct {
	errs []FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// MinLen fails if the trimmed value has fewer than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

// Email fails unless value looks like name@domain.tld.
func (v *Validator) Email(field, value string) *Validator {
	if !emailRegex.MatchString(strings.TrimSpace(value)) {
		v.add(field, "must be a valid email address")
	}
	return v
}

// Phone fails unless value is digits with optional +, spaces, dots,
// dashes or a parenthesised group.
func (v *Validator) Phone(field, value string) *Validator {
	if !phoneRegex.MatchString(strings.TrimSpace(value)) {
		v.add(field, "invalid phone format")
	}
	return v
}

// WebURL fails unless value is an http(s) URL with a dotted host. Empty
// values pass; combine with Required when the field is mandatory.
func (v *Validator) WebURL(field, value string) *Validator {
	if value = strings.TrimSpace(value); value != "" && !webRegex.MatchString(value) {
		v.add(field, "invalid URL format")
	}
	return v
}

// URI fails unless value is an absolute URI. Empty values pass.
func (v *Validator) URI(field, value string) *Validator {
	value = strings.TrimSpace(value)
	if value == "" {
		return v
	}
	if u, err := url.Parse(value); err != nil || !u.IsAbs() || u.Host == "" && u.Opaque == "" {
		v.add(field, "must be a valid URI")
	}
	return v
}

// Positive fails when value is not greater than zero.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.add(field, "is required")
	}
	return v
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns *Error when any rule failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &Error{Fields: append([]FieldError(nil), v.errs...)}
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}
