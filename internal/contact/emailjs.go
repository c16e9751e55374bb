package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultEmailJSEndpoint is the public EmailJS REST API.
const DefaultEmailJSEndpoint = "https://api.emailjs.com"

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSConfig identifies the EmailJS service, template and account a
// submission is sent through.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// AccessToken is the optional private key required when the account
	// enforces it for API calls.
	AccessToken string
	Endpoint    string
}

// EmailJS relays submissions through the EmailJS REST API. Form fields are
// sent as template parameters.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

// NewEmailJS validates cfg and returns the relay. A nil client means
// http.DefaultClient.
func NewEmailJS(cfg EmailJSConfig, client *http.Client) (*EmailJS, error) {
	switch {
	case cfg.ServiceID == "":
		return nil, errors.New("emailjs: service id is required")
	case cfg.TemplateID == "":
		return nil, errors.New("emailjs: template id is required")
	case cfg.PublicKey == "":
		return nil, errors.New("emailjs: public key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{cfg: cfg, client: client}, nil
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(emailJSPayload{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.AccessToken,
		TemplateParams: sub.Fields,
	})
	if err != nil {
		return fmt.Errorf("encoding emailjs payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending to emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RelayError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
