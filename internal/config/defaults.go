package config

import (
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		DBPath: "portfolio.db",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Relay: RelayConfig{
			Kind:    RelayEmailJS,
			Timeout: contact.DefaultTimeout,
			EmailJS: EmailJSConfig{
				Endpoint: contact.DefaultEmailJSEndpoint,
			},
			SMTP: SMTPConfig{
				Host: "smtp.gmail.com",
				Port: 587,
			},
		},
		Alert: AlertConfig{
			TTL: 3 * time.Second,
		},
		TUI: TUIConfig{
			Style: "auto",
		},
	}
}
