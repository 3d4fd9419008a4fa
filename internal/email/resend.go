package email

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

const unknownProviderError = "Unknown error"

// ResendSender submits messages through the Resend API client.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(cfg *Config) (*ResendSender, error) {
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: statusRecorder{next: http.DefaultTransport},
	}
	client := resend.NewCustomClient(httpClient, cfg.APIKey)

	if cfg.APIURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrap(err, "parse resend api url")
		}
		client.BaseURL = base
	}

	return &ResendSender{client: client, from: cfg.fromHeader()}, nil
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	status := new(int)
	ctx = context.WithValue(ctx, statusKey{}, status)

	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})

	switch {
	case err == nil:
		return resp.Id, nil
	case *status >= 200 && *status < 300:
		return "", errors.Wrap(err, "decode resend response")
	case *status != 0:
		return "", &ProviderError{StatusCode: *status, Message: providerMessage(err)}
	default:
		return "", err
	}
}

// providerMessage strips the client's "[ERROR]: " prefix so recipients see
// the provider's own message.
func providerMessage(err error) string {
	var rateLimited *resend.RateLimitError
	if errors.As(err, &rateLimited) && rateLimited.Message != "" {
		return rateLimited.Message
	}

	message := strings.TrimSpace(strings.TrimPrefix(err.Error(), "[ERROR]:"))
	if message == "" || strings.EqualFold(message, unknownProviderError) {
		return unknownProviderError
	}
	return message
}

type statusKey struct{}

// statusRecorder stores the response status in the request context so a
// failed send can still report the provider's status code.
type statusRecorder struct {
	next http.RoundTripper
}

func (t statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if status, ok := req.Context().Value(statusKey{}).(*int); ok {
		*status = resp.StatusCode
	}
	return resp, nil
}
