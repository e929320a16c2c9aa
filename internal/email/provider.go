package email

import (
	"fmt"
	"log/slog"
)

// Provider names accepted by NewSender.
const (
	ProviderSMTP     = "smtp"
	ProviderPostmark = "postmark"
	ProviderResend   = "resend"
	ProviderLog      = "log"
)

// ProviderConfig carries every provider's settings; NewSender reads the ones
// relevant to Name.
type ProviderConfig struct {
	Name          string
	SMTP          SMTPConfig
	PostmarkToken string
	ResendAPIKey  string
	From          string
}

// NewSender creates the Sender named by cfg.Name.
func NewSender(cfg ProviderConfig, logger *slog.Logger) (Sender, error) {
	switch cfg.Name {
	case ProviderSMTP:
		smtp := cfg.SMTP
		if smtp.From == "" {
			smtp.From = cfg.From
		}
		return NewSMTPSender(smtp, logger), nil
	case ProviderPostmark:
		if cfg.PostmarkToken == "" {
			return nil, fmt.Errorf("postmark: api token is required")
		}
		return NewPostmarkSender(cfg.PostmarkToken, cfg.From), nil
	case ProviderResend:
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend: api key is required")
		}
		return NewResendSender(cfg.ResendAPIKey, cfg.From), nil
	case ProviderLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", cfg.Name)
	}
}
