package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestSMTPSend(t *testing.T) {
	relay, err := NewSMTP(SMTPConfig{Host: "smtp.example.com", User: "me@example.com", Pass: "secret", To: "inbox@example.com"})
	if err != nil {
		t.Fatalf("NewSMTP: %v", err)
	}

	var addr, from string
	var to []string
	var msg []byte
	relay.sendMail = func(a string, _ smtp.Auth, f string, rcpt []string, m []byte) error {
		addr, from, to, msg = a, f, rcpt, m
		return nil
	}

	sub := NewSubmission(map[string]string{
		FieldName:    "Ada\r\nBcc: victim@example.com",
		FieldEmail:   "ada@example.com",
		FieldMessage: "Hello",
	})
	if err := relay.Send(context.Background(), sub); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if addr != "smtp.example.com:587" || from != "me@example.com" || len(to) != 1 || to[0] != "inbox@example.com" {
		t.Errorf("sendMail called with addr=%q from=%q to=%v", addr, from, to)
	}
	text := string(msg)
	if !strings.Contains(text, "Reply-To: ada@example.com\r\n") {
		t.Errorf("missing Reply-To header:\n%s", text)
	}
	if strings.Contains(text, "\r\nBcc:") {
		t.Errorf("header injection not neutralised:\n%s", text)
	}
	if !strings.Contains(text, "Message:\nHello") {
		t.Errorf("message body missing:\n%s", text)
	}
}

func TestSMTPFailureWrapsErrRelay(t *testing.T) {
	relay, err := NewSMTP(SMTPConfig{Host: "smtp.example.com", User: "u", Pass: "p"})
	if err != nil {
		t.Fatal(err)
	}
	relay.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}
	err = relay.Send(context.Background(), NewSubmission(nil))
	if !errors.Is(err, ErrRelay) {
		t.Fatalf("expected ErrRelay, got %v", err)
	}
}

func TestSMTPHonoursContext(t *testing.T) {
	relay, err := NewSMTP(SMTPConfig{Host: "smtp.example.com", User: "u", Pass: "p"})
	if err != nil {
		t.Fatal(err)
	}
	release := make(chan struct{})
	defer close(release)
	relay.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := relay.Send(ctx, NewSubmission(nil)); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestNewSMTPRequiresCredentials(t *testing.T) {
	if _, err := NewSMTP(SMTPConfig{Host: "smtp.example.com"}); err == nil {
		t.Fatal("expected error without credentials")
	}
}
