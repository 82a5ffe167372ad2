package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"smartassist/pkg/config"

	"go.uber.org/zap"
)

// Sender delivers HTML mail over SMTP. Booking approval and notification
// mails are the only consumers; delivery failures are reported to the
// caller, which decides whether they are fatal.
type Sender struct {
	cfg    *config.SMTPConfig
	auth   smtp.Auth
	logger *zap.Logger
}

func NewSender(cfg *config.SMTPConfig, logger *zap.Logger) *Sender {
	var auth smtp.Auth
	if cfg.User != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &Sender{
		cfg:    cfg,
		auth:   auth,
		logger: logger,
	}
}

// Send sends a single HTML message to one recipient.
func (s *Sender) Send(to, subject, htmlBody string) error {
	if s.cfg.From == "" {
		return fmt.Errorf("smtp sender address is not configured")
	}

	addr := s.cfg.Host + ":" + s.cfg.Port

	msg := []string{
		"From: " + sanitizeHeader(s.cfg.From),
		"To: " + sanitizeHeader(to),
		"Subject: " + sanitizeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}
	body := []byte(strings.Join(msg, "\r\n"))

	if err := smtp.SendMail(addr, s.auth, s.cfg.From, []string{to}, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// sanitizeHeader strips CRLF so user-supplied values cannot inject headers
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}
