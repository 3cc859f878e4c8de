package relay

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moeezmir/portfolio/internal/logging"
)

// Message is a composed email.
type Message struct {
	ID      string
	From    string
	ReplyTo string
	To      string
	Subject string
	Body    string
	Date    time.Time
}

// Compose builds the message relayed for s. The sender identity is the
// submitted address, which must already be validated; every field is
// HTML-escaped in the subject and body.
func Compose(s Submission, to string, now time.Time) Message {
	safe := s.Escaped()
	return Message{
		ID:      uuid.NewString(),
		From:    s.Email,
		ReplyTo: s.Email,
		To:      to,
		Subject: "New Contact Form Submission: " + safe.Subject,
		Body: "Name: " + safe.Name + "\n" +
			"Email: " + safe.Email + "\n" +
			"Subject: " + safe.Subject + "\n" +
			"Message:\n" + safe.Message,
		Date: now,
	}
}

// Bytes renders m as an RFC 5322 message with CRLF line endings.
func (m Message) Bytes(domain string) []byte {
	var b bytes.Buffer
	writeHeader(&b, "From", m.From)
	writeHeader(&b, "Reply-To", m.ReplyTo)
	writeHeader(&b, "To", m.To)
	writeHeader(&b, "Subject", m.Subject)
	writeHeader(&b, "Date", m.Date.Format(time.RFC1123Z))
	writeHeader(&b, "Message-ID", fmt.Sprintf("<%s@%s>", m.ID, domain))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	b.WriteString("\r\n")
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}

// writeHeader folds any line breaks in value so user input cannot add
// headers.
func writeHeader(b *bytes.Buffer, name, value string) {
	value = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(value)
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// Mailer hands a message to an outbound mail system.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPConfig addresses an SMTP submission server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Envelope is the SMTP MAIL FROM address. The header From stays the
	// visitor's address.
	Envelope string
}

// SMTPMailer sends through net/smtp.
type SMTPMailer struct {
	cfg SMTPConfig
	// sendMail is smtp.SendMail, swapped in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	envelope := s.cfg.Envelope
	if envelope == "" {
		envelope = m.From
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	if err := s.sendMail(addr, auth, envelope, []string{m.To}, m.Bytes(s.cfg.Host)); err != nil {
		return fmt.Errorf("smtp send via %s: %w", addr, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log *logging.Logger
}

func NewLogMailer(log *logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (l *LogMailer) Send(_ context.Context, m Message) error {
	l.log.WithFields(map[string]any{
		"message_id": m.ID,
		"from":       m.From,
		"to":         m.To,
		"subject":    m.Subject,
		"body":       m.Body,
	}).Info("contact message (log transport)")
	return nil
}
