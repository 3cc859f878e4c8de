// Package contact implements the asynchronous contact form submission.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/moeezmir/portfolio/internal/logging"
	"github.com/moeezmir/portfolio/internal/ui"
	"github.com/moeezmir/portfolio/internal/validation"
)

// DOM contract.
const (
	FormID          = "contact-form"
	StatusID        = "form-status"
	SubmitID        = "submit-btn"
	LabelSelector   = ".btn-text"
	StatusClass     = "form-status"
	StatusError     = "error"
	StatusSuccess   = "success"
	LabelIdle       = "Send Message"
	LabelBusy       = "Sending..."
	MsgInvalid      = "Please complete all required fields correctly."
	MsgSent         = "Thanks! Your message has been sent. You will receive a confirmation shortly."
	MsgFailed       = "Sorry, something went wrong. Please try again in a moment."
	MsgNetworkError = "Network error. Please check your connection and try again."
)

var (
	// ErrInvalid is returned by Submit when the fields fail validation.
	ErrInvalid = errors.New("form fields invalid")
	// ErrBusy is returned by Submit while another submission is in flight.
	ErrBusy = errors.New("submission in flight")

	errMissingElements = errors.New("[form] Missing form/status/submitBtn/btnText elements")
)

// Fields are the contact form inputs.
type Fields struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required"`
	Message string `validate:"required"`
}

// FieldsFrom reads Fields out of form values.
func FieldsFrom(v url.Values) Fields {
	return Fields{
		Name:    v.Get("name"),
		Email:   v.Get("email"),
		Subject: v.Get("subject"),
		Message: v.Get("message"),
	}
}

// Validate applies the same constraints as the form's required and
// type=email attributes.
func (f Fields) Validate() error {
	return validation.Struct(f)
}

// Submitter handles submit events of the contact form.
type Submitter struct {
	form   ui.FormElement
	status ui.Element
	submit ui.Element
	label  ui.Element
	client Client
	log    *logging.Logger

	inFlight atomic.Bool

	// spawn runs the submission off the event callback. Tests replace it
	// to run inline.
	spawn func(func())
}

// New binds a Submitter to the page's contact form.
func New(doc ui.Document, client Client, log *logging.Logger) (*Submitter, error) {
	form := doc.Form(FormID)
	status := doc.ByID(StatusID)
	submit := doc.ByID(SubmitID)
	if form == nil || status == nil || submit == nil {
		return nil, errMissingElements
	}
	label := submit.Query(LabelSelector)
	if label == nil {
		return nil, errMissingElements
	}
	return &Submitter{
		form:   form,
		status: status,
		submit: submit,
		label:  label,
		client: client,
		log:    log,
		spawn:  func(fn func()) { go fn() },
	}, nil
}

// Bind attaches the submit handler.
func (s *Submitter) Bind(ctx context.Context) {
	s.form.On(ui.EventSubmit, func(e ui.Event) {
		if e.PreventDefault != nil {
			e.PreventDefault()
		}
		s.spawn(func() {
			outcome, err := s.Submit(ctx)
			if err != nil {
				s.log.WithFields(map[string]any{
					"failed": validation.FailedTags(err),
				}).Debug(err.Error())
				return
			}
			s.log.WithFields(map[string]any{"outcome": outcome.String()}).Debug("contact form submitted")
		})
	})
}

// Submit validates the form and, if it passes, sends exactly one request.
// The submit control is disabled for the duration of the request and
// restored whatever the outcome.
func (s *Submitter) Submit(ctx context.Context) (Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return OutcomeNone, ErrBusy
	}
	defer s.inFlight.Store(false)

	s.status.SetClassName(StatusClass)
	s.status.SetText("")

	values := s.form.Values()
	if err := FieldsFrom(values).Validate(); err != nil {
		s.show(StatusError, MsgInvalid)
		return OutcomeNone, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	method := s.form.Method()
	if method == "" {
		method = http.MethodPost
	}
	outcome := s.client.Send(ctx, Request{URL: s.form.Action(), Method: method, Values: values})

	switch outcome {
	case OutcomeSuccess:
		s.form.Reset()
		s.show(StatusSuccess, MsgSent)
	case OutcomeNetworkError:
		s.show(StatusError, MsgNetworkError)
	default:
		s.show(StatusError, MsgFailed)
	}
	return outcome, nil
}

func (s *Submitter) show(class, msg string) {
	s.status.AddClass(class)
	s.status.SetText(msg)
}

func (s *Submitter) setLoading(loading bool) {
	s.submit.SetDisabled(loading)
	if loading {
		s.label.SetText(LabelBusy)
	} else {
		s.label.SetText(LabelIdle)
	}
}

// Mount binds a Submitter, or logs a warning and returns nil when the page
// has no contact form.
func Mount(ctx context.Context, doc ui.Document, client Client, log *logging.Logger) *Submitter {
	s, err := New(doc, client, log)
	if err != nil {
		log.Warn(nil, err.Error())
		return nil
	}
	s.Bind(ctx)
	return s
}
