package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Marga-Ghale/club-portal/internal/email"
	"github.com/Marga-Ghale/club-portal/internal/types"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

const (
	defaultSendTimeout  = 15 * time.Second
	defaultBatchTimeout = 60 * time.Second
)

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Request asks for one message per address in Emails.
type Request struct {
	Emails  []string `json:"emails" validate:"required,min=1,dive,required"`
	Subject string   `json:"subject" validate:"required"`
	Message string   `json:"message" validate:"required"`
	Type    string   `json:"type,omitempty" validate:"omitempty,category"`
}

type RecipientResult struct {
	Email     string `json:"email"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message"`
}

type Summary struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Result is returned for every well-formed, submitted batch, even when some
// or all recipients failed.
type Result struct {
	Success bool              `json:"success"`
	Results []RecipientResult `json:"results"`
	Summary Summary           `json:"summary"`
}

type Options struct {
	// Per-recipient send timeout.
	Timeout time.Duration

	// Deadline for a whole batch. Recipients not sent by then are failed.
	BatchTimeout time.Duration

	// Max in-flight sends; 0 means one goroutine per recipient.
	Concurrency int

	// Optional per-recipient delivery observer.
	Observer Observer
}

// Observer is told the outcome and latency of every send attempt.
type Observer interface {
	ObserveEmail(status string, took time.Duration)
}

// Dispatcher fans a notification out to every recipient through an email.Sender.
// It keeps no state between batches.
type Dispatcher struct {
	sender       email.Sender
	renderer     *email.Renderer
	validate     *validator.Validate
	timeout      time.Duration
	batchTimeout time.Duration
	concurrency  int
	observer     Observer
}

// NewDispatcher builds a dispatcher. A nil sender means the provider has no
// credentials and every well-formed batch fails with CodeNotConfigured.
func NewDispatcher(sender email.Sender, renderer *email.Renderer, opts Options) *Dispatcher {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return types.IsValidCategory(fl.Field().String())
	})

	if opts.Timeout <= 0 {
		opts.Timeout = defaultSendTimeout
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = defaultBatchTimeout
	}
	if opts.Timeout > opts.BatchTimeout {
		opts.Timeout = opts.BatchTimeout
	}

	return &Dispatcher{
		sender:       sender,
		renderer:     renderer,
		validate:     v,
		timeout:      opts.Timeout,
		batchTimeout: opts.BatchTimeout,
		concurrency:  opts.Concurrency,
		observer:     opts.Observer,
	}
}

// BatchTimeout is the longest a single Dispatch call can take.
func (d *Dispatcher) BatchTimeout() time.Duration {
	return d.batchTimeout
}

// Configured reports whether a provider is available.
func (d *Dispatcher) Configured() bool {
	return d.sender != nil
}

// DecodeRequest parses a JSON request body. An unparseable or null body is an
// internal error. Valid JSON that is not an object carries no recipients, and
// fields of the wrong shape are validation errors.
func DecodeRequest(body []byte) (*Request, error) {
	var raw struct {
		Emails  json.RawMessage `json:"emails"`
		Subject json.RawMessage `json:"subject"`
		Message json.RawMessage `json:"message"`
		Type    json.RawMessage `json:"type"`
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, internalError(errors.New("request body is null"))
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, validationError(msgNoRecipients)
		}
		return nil, internalError(errors.Wrap(err, "decode request body"))
	}

	req := &Request{}

	if len(raw.Emails) > 0 {
		var items []json.RawMessage
		if err := json.Unmarshal(raw.Emails, &items); err != nil {
			return nil, validationError(msgNoRecipients)
		}
		for _, item := range items {
			var addr string
			if err := json.Unmarshal(item, &addr); err != nil {
				return nil, validationError(msgBlankRecipient)
			}
			req.Emails = append(req.Emails, addr)
		}
	}

	if err := unmarshalString(raw.Subject, &req.Subject); err != nil {
		return nil, validationError(msgSubjectMessage)
	}
	if err := unmarshalString(raw.Message, &req.Message); err != nil {
		return nil, validationError(msgSubjectMessage)
	}
	if err := unmarshalString(raw.Type, &req.Type); err != nil {
		return nil, validationError(msgInvalidType)
	}

	return req, nil
}

func unmarshalString(raw json.RawMessage, dst *string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// Dispatch validates req, then sends to every recipient concurrently and waits
// for all of them. Cancelling ctx does not stop a submitted batch; the batch
// deadline does, and recipients still pending at that point are failed.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, validationError(msgNoRecipients)
	}
	for i := range req.Emails {
		req.Emails[i] = strings.TrimSpace(req.Emails[i])
	}
	if err := d.check(req); err != nil {
		return nil, err
	}
	if d.sender == nil {
		return nil, &Error{Code: CodeNotConfigured, Message: msgNotConfigured}
	}

	log := logger.FromContext(ctx).With(zap.String("type", req.Type))
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.batchTimeout)
	defer cancel()

	results := make([]RecipientResult, len(req.Emails))

	var g errgroup.Group
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}
	for i, addr := range req.Emails {
		g.Go(func() error {
			results[i] = d.sendOne(ctx, log, addr, req.Subject, req.Message)
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status == StatusSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	log.Info("email notification summary",
		zap.Int("total", summary.Total),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
	)

	return &Result{Success: true, Results: results, Summary: summary}, nil
}

func (d *Dispatcher) sendOne(ctx context.Context, log *zap.Logger, addr, subject, body string) (res RecipientResult) {
	if d.observer != nil {
		start := time.Now()
		defer func() { d.observer.ObserveEmail(res.Status, time.Since(start)) }()
	}

	html, err := d.renderer.Render(subject, body)
	if err == nil && ctx.Err() != nil {
		err = errors.New("batch deadline exceeded")
	}
	if err == nil {
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		var id string
		id, err = d.sender.Send(sendCtx, &email.Message{To: addr, Subject: subject, HTML: html})
		if err == nil {
			return RecipientResult{
				Email:     addr,
				Status:    StatusSent,
				MessageID: id,
				Message:   "Email sent successfully",
			}
		}
	}

	log.Warn("email send failed", zap.String("email", addr), zap.Error(err))
	return RecipientResult{
		Email:   addr,
		Status:  StatusFailed,
		Error:   err.Error(),
		Message: "Failed to send email",
	}
}

func (d *Dispatcher) check(req *Request) *Error {
	err := d.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return internalError(err)
	}

	switch field := verrs[0].StructField(); {
	case field == "Emails":
		return validationError(msgNoRecipients)
	case strings.HasPrefix(field, "Emails["):
		return validationError(msgBlankRecipient)
	case field == "Type":
		return validationError(msgInvalidType)
	default:
		return validationError(msgSubjectMessage)
	}
}
