package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/outreach/internal/telemetry"
)

// TransportConfig is passed to NewTransport at construction; the transport
// never reads the environment itself.
type TransportConfig struct {
	Provider string        // label used in logs and metrics (smtp, postmark, resend, log)
	From     string        // default sender address
	FromName string        // optional sender display name
	Timeout  time.Duration // upper bound on a single send; 0 means 30s
}

// Result is the outcome of one delivery attempt.
type Result struct {
	Delivered  bool
	MessageID  string
	Diagnostic string
	Err        error // *TransportError when Delivered is false
}

// Transport adapts a Sender to fire-and-forget delivery. Failures are logged,
// counted and reported here and only surfaced to the caller as a Result.
// Safe for concurrent use when the wrapped Sender is.
type Transport struct {
	sender  Sender
	config  TransportConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewTransport wraps sender. metrics and logger may be nil.
func NewTransport(sender Sender, config TransportConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Transport {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Provider == "" {
		config.Provider = "unknown"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		sender:  sender,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// Send attempts delivery of msg once, bounded by the configured timeout.
// A message with no recipients is reported as not delivered without
// contacting the provider.
func (t *Transport) Send(ctx context.Context, msg *Email) Result {
	if len(msg.To) == 0 {
		t.logger.Warn("email: nothing to send, message has no recipients", "subject", msg.Subject)
		t.metrics.EmailSkipped(t.config.Provider)
		return Result{Diagnostic: ErrNoRecipients.Error()}
	}

	out := *msg
	if out.From == "" {
		out.From = t.fromHeader()
	}

	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	start := time.Now()
	messageID, err := t.sender.Send(ctx, &out)
	t.metrics.ObserveEmailSend(t.config.Provider, time.Since(start), err == nil)

	if err != nil {
		terr := &TransportError{Provider: t.config.Provider, Err: err}
		t.logger.Error("email: delivery failed",
			"provider", t.config.Provider,
			"recipients", len(out.To),
			"subject", out.Subject,
			"error", err,
		)
		telemetry.CaptureError(terr, map[string]interface{}{
			"provider":   t.config.Provider,
			"recipients": len(out.To),
		})
		return Result{Diagnostic: terr.Error(), Err: terr}
	}

	t.logger.Info("email: delivered",
		"provider", t.config.Provider,
		"message_id", messageID,
		"recipients", len(out.To),
	)
	return Result{Delivered: true, MessageID: messageID, Diagnostic: "delivered"}
}

func (t *Transport) fromHeader() string {
	if t.config.FromName == "" {
		return t.config.From
	}
	return fmt.Sprintf("%s <%s>", t.config.FromName, t.config.From)
}
