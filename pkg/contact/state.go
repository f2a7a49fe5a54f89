package contact

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Field names accepted by UpdateField.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldCompany = "company"
	FieldSubject = "subject"
	FieldMessage = "message"
	FieldPrivacy = "privacyAccepted"
)

// Fields lists every form field in display order.
var Fields = []string{FieldName, FieldEmail, FieldPhone, FieldCompany, FieldSubject, FieldMessage, FieldPrivacy}

// DefaultSubject is preselected on a fresh form.
const DefaultSubject = "产品咨询"

// Subjects are the options of the subject select.
var Subjects = []string{"产品咨询", "技术支持", "商务合作", "投诉建议", "其他问题"}

// ErrUnknownField is returned when a field name is not one of Fields.
var ErrUnknownField = errors.New("contact: unknown field")

// ErrBusy is returned when the form is not editable in the current phase.
var ErrBusy = errors.New("contact: form is not editable")

// ErrDisposed is returned after the controller has been disposed.
var ErrDisposed = errors.New("contact: controller disposed")

// FormState is the content of the contact form.
type FormState struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	Subject         string `json:"subject"`
	Message         string `json:"message"`
	PrivacyAccepted bool   `json:"privacyAccepted"`
}

// NewFormState returns an empty form with the default subject selected.
func NewFormState() FormState {
	return FormState{Subject: DefaultSubject}
}

// IsSubject reports whether s is one of Subjects.
func IsSubject(s string) bool {
	for _, subject := range Subjects {
		if subject == s {
			return true
		}
	}
	return false
}

// Value returns the string value of a field. The privacy checkbox reads
// as "true" or "false".
func (f FormState) Value(field string) (string, bool) {
	switch field {
	case FieldName:
		return f.Name, true
	case FieldEmail:
		return f.Email, true
	case FieldPhone:
		return f.Phone, true
	case FieldCompany:
		return f.Company, true
	case FieldSubject:
		return f.Subject, true
	case FieldMessage:
		return f.Message, true
	case FieldPrivacy:
		return strconv.FormatBool(f.PrivacyAccepted), true
	}
	return "", false
}

// set writes value into field. Subjects outside the list fall back to
// DefaultSubject; the privacy field accepts checkbox values.
func (f *FormState) set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldCompany:
		f.Company = value
	case FieldSubject:
		if !IsSubject(value) {
			value = DefaultSubject
		}
		f.Subject = value
	case FieldMessage:
		f.Message = value
	case FieldPrivacy:
		f.PrivacyAccepted = checkboxValue(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// FormFromValues builds a FormState from posted form values. Absent fields
// are empty and an absent privacy box reads as unchecked.
func FormFromValues(v url.Values) FormState {
	f := NewFormState()
	for _, field := range Fields {
		if field == FieldSubject && !v.Has(field) {
			continue
		}
		_ = f.set(field, v.Get(field))
	}
	return f
}

func checkboxValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Errors maps a field name to its validation message.
// A nil or empty Errors means the form is valid.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// Empty reports whether there are no errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Clone returns a copy of e. The copy of a nil Errors is an empty map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
