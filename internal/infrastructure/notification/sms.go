package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	jsonContentType = "application/json"
	maxErrorBody    = 512
)

type smsAttempt struct {
	name string
	send func(ctx context.Context, phone, message string) error
}

// SMSChain tries each configured gateway shape in order. When every
// attempt fails the message is logged and Send still reports success, so
// a dead gateway never blocks a payment flow.
type SMSChain struct {
	cfg     config.SMSConfig
	http    *http.Client
	metrics *metrics.Metrics
}

// NewSMSChain creates the SMS sender
func NewSMSChain(cfg config.SMSConfig, m *metrics.Metrics) *SMSChain {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMSChain{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// Send delivers message to phone through the first gateway that accepts it
func (s *SMSChain) Send(ctx context.Context, phone, message string) error {
	to := NormalizePhone(phone)
	for _, attempt := range s.attempts() {
		err := attempt.send(ctx, to, message)
		if err == nil {
			s.metrics.ObserveSMSProvider(attempt.name, "ok")
			return nil
		}
		s.metrics.ObserveSMSProvider(attempt.name, "error")
		logger.Warn(ctx, "SMS gateway attempt failed",
			zap.String("provider", attempt.name),
			zap.String("phone", maskPhone(to)),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	s.metrics.ObserveSMSProvider("log", "ok")
	logger.Warn(ctx, "SMS delivered to log fallback",
		zap.String("phone", maskPhone(to)),
		zap.Int("length", len(message)),
	)
	return nil
}

func (s *SMSChain) attempts() []smsAttempt {
	var out []smsAttempt
	if s.cfg.PrimaryURL != "" {
		out = append(out,
			smsAttempt{name: "primary_json", send: s.sendPrimaryJSON},
			smsAttempt{name: "primary_form", send: s.sendPrimaryForm},
			smsAttempt{name: "primary_query", send: s.sendPrimaryQuery},
		)
	}
	if s.cfg.AlternateURL != "" {
		out = append(out, smsAttempt{name: "alternate", send: s.sendAlternate})
	}
	return out
}

func (s *SMSChain) sendPrimaryJSON(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"recipient": phone,
		"sender_id": s.cfg.PrimarySender,
		"type":      "plain",
		"message":   message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.PrimaryURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", jsonContentType)
	req.Header.Set("Accept", jsonContentType)
	req.Header.Set("Authorization", "Bearer "+s.cfg.PrimaryAPIKey)
	return s.do(req)
}

func (s *SMSChain) sendPrimaryForm(ctx context.Context, phone, message string) error {
	form := url.Values{}
	form.Set("api_key", s.cfg.PrimaryAPIKey)
	form.Set("recipient", phone)
	form.Set("sender_id", s.cfg.PrimarySender)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.PrimaryURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", formContentType)
	return s.do(req)
}

func (s *SMSChain) sendPrimaryQuery(ctx context.Context, phone, message string) error {
	u, err := url.Parse(s.cfg.PrimaryURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("api_key", s.cfg.PrimaryAPIKey)
	q.Set("recipient", phone)
	q.Set("sender_id", s.cfg.PrimarySender)
	q.Set("message", message)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *SMSChain) sendAlternate(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   phone,
		"text": message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AlternateURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", jsonContentType)
	if s.cfg.AlternateToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.AlternateToken)
	}
	return s.do(req)
}

// gatewayReply covers the status fields the gateways use to report a
// rejected message with a 200.
type gatewayReply struct {
	Status  string `json:"status"`
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (s *SMSChain) do(req *http.Request) error {
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var reply gatewayReply
	if json.Unmarshal(body, &reply) == nil {
		if reply.Success != nil && !*reply.Success {
			return fmt.Errorf("gateway rejected message: %s", reply.Message)
		}
		if strings.EqualFold(reply.Status, "error") || strings.EqualFold(reply.Status, "failed") {
			return fmt.Errorf("gateway rejected message: %s", reply.Message)
		}
	}
	return nil
}

// NormalizePhone converts local numbers (07XXXXXXXX) to the 94 country
// prefix and strips formatting characters.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case strings.HasPrefix(digits, "94"):
		return digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "94" + digits[1:]
	case len(digits) == 9:
		return "94" + digits
	}
	return digits
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
