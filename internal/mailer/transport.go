package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/nkhandel/dietplanner-backend/pkg/config"
)

type smtpTransport struct {
	cfg config.SMTPConfig
}

func newSMTPTransport(cfg config.SMTPConfig) Transport {
	return &smtpTransport{cfg: cfg}
}

func (t *smtpTransport) Send(ctx context.Context, from string, to []string, payload []byte) error {
	var auth smtp.Auth
	if t.cfg.Username != "" {
		auth = smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
	}
	if err := smtp.SendMail(t.cfg.Addr(), auth, from, to, payload); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
