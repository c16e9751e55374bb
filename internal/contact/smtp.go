package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPConfig is the mail server a submission is delivered through.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	// To is the inbox that receives contact messages.
	To string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP delivers submissions as plain-text email through an SMTP server.
type SMTP struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTP validates cfg and returns the relay.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, errors.New("smtp: credentials not configured")
	}
	if cfg.Host == "" {
		return nil, errors.New("smtp: host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}, nil
}

func (s *SMTP) Send(ctx context.Context, sub Submission) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	msg := composeMessage(s.cfg, sub)

	// net/smtp has no context support; abandon the dial when ctx ends.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: smtp: %v", ErrRelay, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func composeMessage(cfg SMTPConfig, sub Submission) []byte {
	name := headerSafe(sub.Field(FieldName))
	email := headerSafe(sub.Field(FieldEmail))

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, sub.Field(FieldMessage))

	var b strings.Builder
	b.WriteString("To: " + cfg.To + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + cfg.User + "\r\n")
	if email != "" {
		b.WriteString("Reply-To: " + email + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}
