// Package email delivers rendered notification messages through a
// transactional provider.
package email

import (
	"context"
	"strings"
	"time"

	"github.com/Marga-Ghale/club-portal/internal/config"
)

// Message is a single outbound email to one recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender submits one message and returns the provider-assigned message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// ProviderError is a delivery failure reported by the provider itself.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Config holds the settings shared by every sender.
type Config struct {
	From     string
	FromName string
	Timeout  time.Duration

	// Resend
	APIKey string
	APIURL string

	// SMTP
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
}

func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		Timeout:  cfg.EmailSendTimeout,
		APIKey:   cfg.ResendAPIKey,
		APIURL:   cfg.ResendAPIURL,
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		UseTLS:   cfg.SMTPUseTLS,
	}
}

// NewSender picks the provider named by provider. It returns a nil Sender when
// that provider has no credentials, so callers can report the service as not
// configured.
func NewSender(provider string, cfg *Config) (Sender, error) {
	switch strings.ToLower(provider) {
	case "smtp":
		if cfg.Host == "" {
			return nil, nil
		}
		return NewSMTPSender(cfg), nil
	default:
		if cfg.APIKey == "" {
			return nil, nil
		}
		sender, err := NewResendSender(cfg)
		if err != nil {
			return nil, err
		}
		return sender, nil
	}
}

// fromHeader formats the sender identity as `Name <address>`.
func (c *Config) fromHeader() string {
	if c.FromName == "" {
		return c.From
	}
	return c.FromName + " <" + c.From + ">"
}
