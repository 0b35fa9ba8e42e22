package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/domain/ports"
	"github.com/stretchr/testify/require"
)

func withSendMail(t *testing.T, fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	t.Helper()
	orig := smtpSendMail
	t.Cleanup(func() { smtpSendMail = orig })
	smtpSendMail = fn
}

func TestSMTPSender_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody string
	withSendMail(t, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)
		require.NotNil(t, a)
		return nil
	})

	s := NewSMTPSender(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, Username: "u", Password: "p",
		From: "noreply@example.com", FromName: "Gem Auctions",
	})
	err := s.Send(context.Background(), ports.EmailMessage{To: "buyer@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", gotAddr)
	require.Equal(t, "noreply@example.com", gotFrom)
	require.Equal(t, []string{"buyer@example.com"}, gotTo)
	require.True(t, strings.HasPrefix(gotBody, "From: Gem Auctions <noreply@example.com>\r\n"))
	require.Contains(t, gotBody, "Subject: Hi\r\n")
	require.Contains(t, gotBody, "text/html")
}

func TestSMTPSender_Errors(t *testing.T) {
	err := NewSMTPSender(config.SMTPConfig{}).Send(context.Background(), ports.EmailMessage{To: "a@b.c"})
	require.ErrorIs(t, err, ErrMailNotConfigured)

	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 25, From: "a@b.c"})
	require.Error(t, s.Send(context.Background(), ports.EmailMessage{To: " "}))

	withSendMail(t, func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})
	err = s.Send(context.Background(), ports.EmailMessage{To: "a@b.c"})
	require.ErrorContains(t, err, "smtp send")
}

func TestRenderTemplates(t *testing.T) {
	msg, err := RenderPaymentConfirmation(PaymentConfirmation{
		To: "buyer@example.com", Name: "<Nimal>", Amount: 1500, Reference: "GEM-1",
	})
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", msg.To)
	require.Contains(t, msg.HTML, "LKR 1500.00")
	require.Contains(t, msg.HTML, "&lt;Nimal&gt;")

	won, err := RenderAuctionWon(AuctionWon{To: "w@example.com", Name: "W", GemName: "Ruby", Amount: 2000})
	require.NoError(t, err)
	require.Contains(t, won.Subject, "Ruby")
	require.Contains(t, won.HTML, "2000.00")

	require.Contains(t, OTPMessage("123456", "GEM-1", 7), "123456")
}
