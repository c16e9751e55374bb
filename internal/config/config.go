// Package config loads portfolio settings from defaults, an optional YAML
// file and PORTFOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/contact"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nesting levels: PORTFOLIO_RELAY__EMAILJS__SERVICE_ID sets
// relay.emailjs.service_id.
const EnvPrefix = "PORTFOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Hosting platforms hand out the listen port as PORT.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"SERVER__ADDR") == "" {
		cfg.Server.Addr = ":" + port
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validRelays = map[RelayKind]bool{
	RelayEmailJS: true,
	RelaySMTP:    true,
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains valid values. Missing
// relay credentials are not checked here; they surface when the relay is
// built.
func (c *Config) Validate() error {
	if !validRelays[c.Relay.Kind] {
		return fmt.Errorf("invalid relay kind %q: must be emailjs or smtp", c.Relay.Kind)
	}
	if c.Relay.Timeout < 0 {
		return fmt.Errorf("relay timeout must be non-negative")
	}
	if c.Alert.TTL < 0 {
		return fmt.Errorf("alert ttl must be non-negative")
	}
	if c.Server.Mode != "" && !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server mode %q: must be debug, release or test", c.Server.Mode)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.Log.Format)
	}
	return nil
}

// NewRelay builds the mail relay selected by the configuration.
func (c *Config) NewRelay() (contact.Relay, error) {
	switch c.Relay.Kind {
	case RelayEmailJS:
		e := c.Relay.EmailJS
		return contact.NewEmailJS(contact.EmailJSConfig{
			ServiceID:   e.ServiceID,
			TemplateID:  e.TemplateID,
			PublicKey:   e.PublicKey,
			AccessToken: e.AccessToken,
			Endpoint:    e.Endpoint,
		}, nil)
	case RelaySMTP:
		s := c.Relay.SMTP
		return contact.NewSMTP(contact.SMTPConfig{
			Host: s.Host,
			Port: s.Port,
			User: s.User,
			Pass: s.Pass,
			To:   s.To,
		})
	default:
		return nil, fmt.Errorf("unknown relay kind %q", c.Relay.Kind)
	}
}
