package relay

import (
	"errors"
	"html"
	"net/http"
	"strings"

	"github.com/moeezmir/portfolio/internal/validation"
)

// Response bodies.
const (
	MsgMethodNotAllowed = "Invalid request method."
	MsgFieldsRequired   = "All fields are required."
	MsgInvalidEmail     = "Invalid email format."
	MsgRelayFailed      = "Sorry, something went wrong. Please try again."
)

var (
	ErrFieldsRequired = errors.New(MsgFieldsRequired)
	ErrInvalidEmail   = errors.New(MsgInvalidEmail)
)

// Submission is a contact form post after trimming. Values are raw until
// Escaped is called.
type Submission struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Subject string `validate:"required"`
	Message string `validate:"required"`
}

// ParseSubmission reads the four fields from a parsed request form.
func ParseSubmission(r *http.Request) Submission {
	return Submission{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}
}

// Escaped returns s with every field HTML-escaped.
func (s Submission) Escaped() Submission {
	return Submission{
		Name:    html.EscapeString(s.Name),
		Email:   html.EscapeString(s.Email),
		Subject: html.EscapeString(s.Subject),
		Message: html.EscapeString(s.Message),
	}
}

// Validate checks presence first, then the email address, so a post that
// is missing fields never reports a bad email.
func (s Submission) Validate() error {
	if err := validation.Struct(s); err != nil {
		return ErrFieldsRequired
	}
	if !validation.Email(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ThankYou is the success response body.
func (s Submission) ThankYou() string {
	return "Thank you, " + html.EscapeString(s.Name) + "! Your message has been sent."
}
