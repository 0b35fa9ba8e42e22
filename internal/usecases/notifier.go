package usecases

import (
	"context"
	"time"

	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/pkg/logger"
	"go.uber.org/zap"
)

// nowFunc is the clock every usecase reads
var nowFunc = time.Now

// Notifier sends email and SMS on a best-effort basis. Failures are logged
// and counted, never returned.
type Notifier struct {
	email   ports.EmailSender
	sms     ports.SMSSender
	metrics *metrics.Metrics
}

// NewNotifier creates a new notifier; either sender may be nil
func NewNotifier(email ports.EmailSender, sms ports.SMSSender, m *metrics.Metrics) *Notifier {
	return &Notifier{email: email, sms: sms, metrics: m}
}

// Email delivers msg and reports whether it went out
func (n *Notifier) Email(ctx context.Context, msg ports.EmailMessage) bool {
	if n == nil || n.email == nil {
		return false
	}
	if err := n.email.Send(ctx, msg); err != nil {
		n.metrics.ObserveNotification("email", "failed")
		logger.Warn(ctx, "Email notification failed", zap.String("subject", msg.Subject), zap.Error(err))
		return false
	}
	n.metrics.ObserveNotification("email", "sent")
	return true
}

// SMS delivers text and reports whether it went out
func (n *Notifier) SMS(ctx context.Context, phone, text string) bool {
	if n == nil || n.sms == nil {
		return false
	}
	if err := n.sms.Send(ctx, phone, text); err != nil {
		n.metrics.ObserveNotification("sms", "failed")
		logger.Warn(ctx, "SMS notification failed", zap.Error(err))
		return false
	}
	n.metrics.ObserveNotification("sms", "sent")
	return true
}
