// Package relay implements the contact form mail relay endpoint: it
// validates a posted form and forwards it as an email to a fixed address.
package relay

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moeezmir/portfolio/internal/logging"
)

// Result labels for the request counter.
const (
	resultMethodNotAllowed = "method_not_allowed"
	resultInvalid          = "invalid"
	resultSent             = "sent"
	resultFailed           = "failed"
)

// Handler serves POST requests from the contact form. Every response is
// plain text.
type Handler struct {
	mailer   Mailer
	to       string
	log      *logging.Logger
	requests *prometheus.CounterVec
	now      func() time.Time
}

// NewHandler returns a Handler relaying to the address to. The request
// counter is registered on reg.
func NewHandler(mailer Mailer, to string, log *logging.Logger, reg prometheus.Registerer) *Handler {
	return &Handler{
		mailer: mailer,
		to:     to,
		log:    log,
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_relay_requests_total",
				Help: "Contact form relay requests by result",
			},
			[]string{"result"},
		),
		now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.requests.WithLabelValues(resultMethodNotAllowed).Inc()
		w.Header().Set("Allow", http.MethodPost)
		writeText(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	sub := ParseSubmission(r)
	if err := sub.Validate(); err != nil {
		h.requests.WithLabelValues(resultInvalid).Inc()
		msg := MsgFieldsRequired
		if errors.Is(err, ErrInvalidEmail) {
			msg = MsgInvalidEmail
		}
		writeText(w, http.StatusBadRequest, msg)
		return
	}

	msg := Compose(sub, h.to, h.now())
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.requests.WithLabelValues(resultFailed).Inc()
		h.log.Error(err, "relay contact message")
		writeText(w, http.StatusBadGateway, MsgRelayFailed)
		return
	}

	h.requests.WithLabelValues(resultSent).Inc()
	writeText(w, http.StatusOK, sub.ThankYou())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
