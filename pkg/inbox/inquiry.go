package inbox

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Inquiry is one submitted contact form.
type Inquiry struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Company         string    `json:"company,omitempty"`
	Subject         string    `json:"subject"`
	Message         string    `json:"message"`
	PrivacyAccepted bool      `json:"privacy_accepted"`
	SubmittedAt     time.Time `json:"submitted_at"`
	RemoteAddr      string    `json:"remote_addr,omitempty"`
	UserAgent       string    `json:"user_agent,omitempty"`
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// StripMarkup removes every HTML element from s and returns the remaining
// text, trimmed. Entities are decoded so stored text stays readable.
func StripMarkup(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(trimmed)))
}

// Prepare returns a sanitised copy of in with ID and SubmittedAt filled in
// when they are empty.
func Prepare(in Inquiry) *Inquiry {
	out := in
	out.Name = StripMarkup(in.Name)
	out.Email = StripMarkup(in.Email)
	out.Phone = StripMarkup(in.Phone)
	out.Company = StripMarkup(in.Company)
	out.Subject = StripMarkup(in.Subject)
	out.Message = StripMarkup(in.Message)
	out.UserAgent = StripMarkup(in.UserAgent)
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.SubmittedAt.IsZero() {
		out.SubmittedAt = time.Now().UTC()
	}
	return &out
}
