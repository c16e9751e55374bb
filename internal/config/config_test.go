package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Relay.Kind != RelayEmailJS {
		t.Errorf("expected default relay %q, got %q", RelayEmailJS, cfg.Relay.Kind)
	}
	if cfg.Alert.TTL != 3*time.Second {
		t.Errorf("expected default alert ttl 3s, got %v", cfg.Alert.TTL)
	}
	if cfg.Relay.Timeout != contact.DefaultTimeout {
		t.Errorf("expected default relay timeout %v, got %v", contact.DefaultTimeout, cfg.Relay.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	original := DefaultConfig()
	original.Relay.Kind = RelaySMTP
	original.Relay.SMTP.User = "me@example.com"
	original.Relay.Timeout = 5 * time.Second
	original.Server.Addr = ":9000"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Relay.Kind != RelaySMTP {
		t.Errorf("relay kind: got %q", loaded.Relay.Kind)
	}
	if loaded.Relay.SMTP.User != "me@example.com" {
		t.Errorf("smtp user: got %q", loaded.Relay.SMTP.User)
	}
	if loaded.Relay.Timeout != 5*time.Second {
		t.Errorf("relay timeout: got %v", loaded.Relay.Timeout)
	}
	if loaded.Server.Addr != ":9000" {
		t.Errorf("addr: got %q", loaded.Server.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "portfolio.db" {
		t.Errorf("db path: got %q", cfg.DBPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_RELAY__EMAILJS__SERVICE_ID", "service_123")
	t.Setenv("PORTFOLIO_RELAY__TIMEOUT", "2s")
	t.Setenv("PORTFOLIO_LOG__LEVEL", "debug")
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.EmailJS.ServiceID != "service_123" {
		t.Errorf("service id: got %q", cfg.Relay.EmailJS.ServiceID)
	}
	if cfg.Relay.Timeout != 2*time.Second {
		t.Errorf("timeout: got %v", cfg.Relay.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad relay", func(c *Config) { c.Relay.Kind = "pigeon" }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative ttl", func(c *Config) { c.Alert.TTL = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRelay(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.NewRelay(); err == nil {
		t.Error("expected error for emailjs without tokens")
	}

	cfg.Relay.EmailJS.ServiceID = "s"
	cfg.Relay.EmailJS.TemplateID = "t"
	cfg.Relay.EmailJS.PublicKey = "k"
	relay, err := cfg.NewRelay()
	if err != nil {
		t.Fatalf("NewRelay: %v", err)
	}
	if _, ok := relay.(*contact.EmailJS); !ok {
		t.Errorf("relay type = %T", relay)
	}

	cfg.Relay.Kind = RelaySMTP
	cfg.Relay.SMTP.User, cfg.Relay.SMTP.Pass = "u", "p"
	relay, err = cfg.NewRelay()
	if err != nil {
		t.Fatalf("NewRelay smtp: %v", err)
	}
	if _, ok := relay.(*contact.SMTP); !ok {
		t.Errorf("relay type = %T", relay)
	}
}
