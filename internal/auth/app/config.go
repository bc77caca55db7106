package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string `env:"ENV"        envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json, text
	LogFile   string `env:"LOG_FILE"`                     // Optional: rotated copy of the log stream

	Port                int           `env:"PORT"                  envDefault:"8080"`
	PublicURL           string        `env:"PUBLIC_URL"            envDefault:"http://localhost:8080"` // Base of the acceptance link in invitation emails
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	Issuer         string        `env:"AUTH_ISSUER"           envDefault:"tenant-access"`
	DatabaseFile   string        `env:"AUTH_DATABASE_FILE"    envDefault:"auth.db"`
	PepperFile     string        `env:"AUTH_PEPPER_FILE"      envDefault:"pepper"`
	SigningKeyFile string        `env:"AUTH_SIGNING_KEY_FILE" envDefault:"signing_key.pem"`
	SessionTTL     time.Duration `env:"AUTH_SESSION_TTL"      envDefault:"720h"`
	BootstrapToken string        `env:"BOOTSTRAP_TOKEN"` // Optional: bootstrap is disabled when empty

	SMTPHost     string `env:"SMTP_HOST"` // Optional: notices are only logged when empty
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"     envDefault:"no-reply@localhost"`

	NotifyQueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`
}

// LoadConfig reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ParseConfig()
}

// ParseConfig builds a Config from the process environment only.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.PublicURL = strings.TrimSuffix(cfg.PublicURL, "/")
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_TTL must be positive"))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	return errors.Join(errs...)
}
