package config

import "time"

// RelayKind selects how contact form submissions are delivered.
type RelayKind string

const (
	RelayEmailJS RelayKind = "emailjs"
	RelaySMTP    RelayKind = "smtp"
)

// Config is the portfolio configuration, corresponding to portfolio.yml.
type Config struct {
	Server ServerConfig `yaml:"server" koanf:"server"`
	DBPath string       `yaml:"db_path" koanf:"db_path"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
	Relay  RelayConfig  `yaml:"relay" koanf:"relay"`
	Alert  AlertConfig  `yaml:"alert" koanf:"alert"`
	Admin  AdminConfig  `yaml:"admin" koanf:"admin"`
	TUI    TUIConfig    `yaml:"tui" koanf:"tui"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode" koanf:"mode"`
}

type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// RelayConfig selects and configures the mail relay.
type RelayConfig struct {
	Kind    RelayKind     `yaml:"kind" koanf:"kind"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
	EmailJS EmailJSConfig `yaml:"emailjs" koanf:"emailjs"`
	SMTP    SMTPConfig    `yaml:"smtp" koanf:"smtp"`
}

type EmailJSConfig struct {
	ServiceID   string `yaml:"service_id" koanf:"service_id"`
	TemplateID  string `yaml:"template_id" koanf:"template_id"`
	PublicKey   string `yaml:"public_key" koanf:"public_key"`
	AccessToken string `yaml:"access_token" koanf:"access_token"`
	Endpoint    string `yaml:"endpoint" koanf:"endpoint"`
}

type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}

// AlertConfig controls the "message sent" notification.
type AlertConfig struct {
	TTL time.Duration `yaml:"ttl" koanf:"ttl"`
}

// AdminConfig holds the admin dashboard credentials.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// TUIConfig holds settings for the terminal rendition.
type TUIConfig struct {
	// Style is a glamour style name or a JSON style file path.
	Style string `yaml:"style" koanf:"style"`
}
