package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LogSender logs messages instead of delivering them. Used in development
// and when EMAIL_PROVIDER=log.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, email *Email) (string, error) {
	s.logger.Info("email: log sender",
		"to", email.To,
		"from", email.From,
		"subject", email.Subject,
		"body", email.TextBody,
	)
	return fmt.Sprintf("log-%d", time.Now().UnixNano()), nil
}
