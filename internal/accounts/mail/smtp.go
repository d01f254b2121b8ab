package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// TLS modes for SMTPConfig.TLS.
const (
	TLSImplicit = "ssl"      // TLS from the first byte, usually port 465
	TLSStartTLS = "starttls" // upgrade required, usually port 587
	TLSNone     = "none"     // plaintext, local relays and test catchers only
)

var ErrMissingCredentials = errors.New("mail: smtp username and password are required")

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      string
	Timeout  time.Duration
}

// SMTPSender sends through an authenticated SMTP relay, dialing once per
// message.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("mail: smtp host is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	switch strings.ToLower(cfg.TLS) {
	case "", TLSImplicit:
		cfg.TLS = TLSImplicit
	case TLSStartTLS, TLSNone:
		cfg.TLS = strings.ToLower(cfg.TLS)
	default:
		return nil, fmt.Errorf("mail: unknown smtp tls mode %q", cfg.TLS)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort(cfg.TLS)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &SMTPSender{cfg: cfg}, nil
}

func defaultPort(mode string) int {
	switch mode {
	case TLSStartTLS:
		return 587
	case TLSNone:
		return 25
	default:
		return 465
	}
}

func (s *SMTPSender) options() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTimeout(s.cfg.Timeout),
	}

	switch s.cfg.TLS {
	case TLSImplicit:
		opts = append(opts, gomail.WithSSL(), gomail.WithSMTPAuth(gomail.SMTPAuthPlain))
	case TLSStartTLS:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory), gomail.WithSMTPAuth(gomail.SMTPAuthPlain))
	case TLSNone:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS), gomail.WithSMTPAuth(gomail.SMTPAuthPlainNoEnc))
	}
	return opts
}

// Send builds a multipart message (text, plus HTML when present) and
// delivers it.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return deliveryErr(err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return deliveryErr(fmt.Errorf("from: %w", err))
	}
	if err := msg.To(m.To); err != nil {
		return deliveryErr(fmt.Errorf("to: %w", err))
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, m.HTML)
	}

	client, err := gomail.NewClient(s.cfg.Host, s.options()...)
	if err != nil {
		return deliveryErr(fmt.Errorf("client: %w", err))
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return deliveryErr(err)
	}
	return nil
}
