package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Mail modes.
const (
	MailSMTP = "smtp"
	MailLog  = "log"
)

type Config struct {
	// Tokens
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer  string        `envconfig:"JWT_ISSUER" default:"accounts"`
	SessionTTL time.Duration `envconfig:"JWT_EXPIRES_IN" default:"24h"`
	PendingTTL time.Duration `envconfig:"PENDING_TTL" default:"10m"`

	// Links
	VerificationURL string `envconfig:"EMAIL_VERIFICATION_ROUTE" default:"http://localhost:8080/v1/registrations"`
	LoginURL        string `envconfig:"LOGIN_URL" default:"http://localhost:8080/login"`

	// Mail
	MailMode    string        `envconfig:"MAIL_MODE" default:"log"`
	EmailUser   string        `envconfig:"EMAIL_USER"`
	EmailPass   string        `envconfig:"EMAIL_PASS"`
	EmailFrom   string        `envconfig:"EMAIL_FROM"`
	SMTPHost    string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort    int           `envconfig:"SMTP_PORT" default:"465"`
	SMTPTLS     string        `envconfig:"SMTP_TLS" default:"ssl"`
	SMTPTimeout time.Duration `envconfig:"SMTP_TIMEOUT" default:"10s"`

	// Storage
	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseFile   string `envconfig:"DATABASE_FILE" default:"accounts.db"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`

	// Process
	Env                 string        `envconfig:"ENV" default:"dev"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat           string        `envconfig:"LOG_FORMAT" default:"json"`
	Port                int           `envconfig:"PORT" default:"8080"`
	ShutdownGracePeriod time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`
	SSLRedirect         bool          `envconfig:"SSL_REDIRECT" default:"false"`

	// LogOutput overrides where logs go. Stdout when nil.
	LogOutput io.Writer `ignored:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks combinations envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.PendingTTL <= 0 {
		errs = append(errs, errors.New("PENDING_TTL must be positive"))
	}
	if c.VerificationURL == "" {
		errs = append(errs, errors.New("EMAIL_VERIFICATION_ROUTE is required"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of sqlite, postgres", c.DatabaseDriver))
	}

	switch c.MailMode {
	case MailLog:
	case MailSMTP:
		if c.EmailUser == "" || c.EmailPass == "" {
			errs = append(errs, errors.New("EMAIL_USER and EMAIL_PASS are required for smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_MODE %q is not one of smtp, log", c.MailMode))
	}

	return errors.Join(errs...)
}

// From is the sender address of outgoing mail.
func (c *Config) From() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	if c.EmailUser != "" {
		return c.EmailUser
	}
	return "noreply@localhost"
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
