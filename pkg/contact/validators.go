package contact

import (
	"regexp"
	"strings"

	"github.com/vango-dev/techcorp/pkg/inbox"
)

// Validator checks a single field value.
type Validator interface {
	// Validate returns nil if value is acceptable, or a ValidationError.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ----------------------------------------------------------------------------
// Field Validators
// ----------------------------------------------------------------------------

// Required fails when the trimmed value is empty.
func Required(msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength fails when the trimmed value has fewer than n characters.
// Empty values pass; pair it with Required.
func MinLength(n int, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		s := strings.TrimSpace(value)
		if s == "" {
			return nil
		}
		if len([]rune(s)) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern fails when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Stripped runs v against the value as it will be stored, with markup
// removed.
func Stripped(v Validator) Validator {
	return ValidatorFunc(func(value string) error {
		return v.Validate(inbox.StripMarkup(value))
	})
}

// Accepted fails unless the checkbox value is "true".
func Accepted(msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if value != "true" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}
