package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"roomly/config"
	"roomly/utils"
)

// Sender delivers transactional email. The verification flow treats delivery
// failure as a hard error: a code whose email never went out is never stored
// as sent.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSenderFromConfig returns an SMTPSender when SMTP is configured and a
// LogSender otherwise, so development environments without a relay still
// surface the code.
func NewSenderFromConfig() Sender {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		utils.GetLogger().Warn("SMTP not configured; running in log-only mailer mode")
		return &LogSender{}
	}
	return &SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
}

// Send writes the message to the relay.
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	if err := smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogSender logs outgoing mail instead of delivering it.
type LogSender struct{}

func (l *LogSender) Send(_ context.Context, to, subject, body string) error {
	utils.GetLogger().Sugar().Infof("Mailer (log-only) to %s [%s]: %s", to, subject, body)
	return nil
}
