package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SMTPSender delivers through a plain SMTP relay, optionally over implicit TLS.
type SMTPSender struct {
	cfg *Config
}

func NewSMTPSender(cfg *Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.cfg.Host)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.cfg.fromHeader())
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "Message-ID: %s\r\n", messageID)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTML)

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: s.cfg.Host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return "", errors.Wrap(err, "dial smtp")
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return "", errors.Wrap(err, "smtp client")
	}
	defer client.Close()

	if !s.cfg.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return "", errors.Wrap(err, "starttls")
			}
		}
	}

	if s.cfg.User != "" {
		if err := client.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)); err != nil {
			return "", errors.Wrap(err, "smtp auth")
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return "", errors.Wrap(err, "smtp mail")
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", errors.Wrap(err, "smtp rcpt")
	}

	w, err := client.Data()
	if err != nil {
		return "", errors.Wrap(err, "smtp data")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return "", errors.Wrap(err, "smtp write")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "smtp close data")
	}

	_ = client.Quit()
	return messageID, nil
}
