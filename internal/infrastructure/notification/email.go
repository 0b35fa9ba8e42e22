package notification

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/pkg/logger"
	"go.uber.org/zap"
)

// ErrMailNotConfigured is returned when no SMTP host is set
var ErrMailNotConfigured = errors.New("smtp not configured")

var smtpSendMail = smtp.SendMail

// SMTPSender delivers HTML email over SMTP
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send renders the MIME envelope and hands it to the SMTP server
func (s *SMTPSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	if s.cfg.Host == "" {
		return ErrMailNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("email recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := s.cfg.From
	fromHeader := from
	if s.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", s.cfg.FromName, from)
	}

	body := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		msg.HTML,
	}, "\r\n")

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtpSendMail(addr, auth, from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	logger.Debug(ctx, "Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
