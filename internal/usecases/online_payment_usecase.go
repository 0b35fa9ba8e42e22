package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/internal/infrastructure/notification"
	"gem-auction.backend/pkg/crypto"
	"gem-auction.backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

const defaultCurrency = "LKR"

var generateOTP = crypto.GenerateOTP

// OnlinePaymentUsecase runs the OTP-gated card payment flow. Card details
// are validated and dropped; only the card brand is kept.
type OnlinePaymentUsecase struct {
	repo     repositories.OnlinePaymentRepository
	uow      repositories.UnitOfWork
	notifier *Notifier
	cooldown ports.Cooldown
	cfg      config.OTPConfig
	metrics  *metrics.Metrics
}

// NewOnlinePaymentUsecase creates a new online payment usecase
func NewOnlinePaymentUsecase(
	repo repositories.OnlinePaymentRepository,
	uow repositories.UnitOfWork,
	notifier *Notifier,
	cooldown ports.Cooldown,
	cfg config.OTPConfig,
	m *metrics.Metrics,
) *OnlinePaymentUsecase {
	return &OnlinePaymentUsecase{
		repo:     repo,
		uow:      uow,
		notifier: notifier,
		cooldown: cooldown,
		cfg:      cfg,
		metrics:  m,
	}
}

// Create validates the card, issues an OTP by SMS and stores a pending
// payment.
func (u *OnlinePaymentUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateOnlinePaymentInput) (*entities.OnlinePayment, error) {
	now := nowFunc()
	cardType, err := validateCard(input, now)
	if err != nil {
		return nil, err
	}
	if input.AuctionID == uuid.Nil {
		return nil, domainerrors.Validation("auctionId is required")
	}
	if input.Amount <= 0 {
		return nil, domainerrors.Validation("amount must be greater than zero")
	}
	if strings.TrimSpace(input.ContactNumber) == "" {
		return nil, domainerrors.Validation("contactNumber is required")
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	payment := &entities.OnlinePayment{
		UserID:        userID,
		AuctionID:     input.AuctionID,
		Amount:        input.Amount,
		Currency:      currency,
		CardType:      cardType,
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		OTP:           otp,
		OTPExpiry:     now.Add(u.cfg.TTL).UTC(),
		TransactionID: newTransactionID(now),
		Status:        entities.OnlinePaymentPending,
	}
	if err := u.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	u.metrics.ObservePayment("online", string(payment.Status))
	u.sendOTP(ctx, payment)
	logger.Info(ctx, "Online payment initiated",
		zap.String("paymentId", payment.ID.String()),
		zap.String("transactionId", payment.TransactionID),
		zap.String("cardType", string(cardType)),
	)
	return payment, nil
}

// VerifyOTP confirms the code of a pending payment
func (u *OnlinePaymentUsecase) VerifyOTP(ctx context.Context, userID uuid.UUID, input *entities.VerifyOTPInput) (*entities.OnlinePayment, error) {
	var payment *entities.OnlinePayment
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = u.owned(u.uow.WithLock(txCtx), userID, input.PaymentID)
		if err != nil {
			return err
		}
		if payment.Status != entities.OnlinePaymentPending {
			return domainerrors.ErrInvalidTransition
		}
		now := nowFunc()
		if !now.Before(payment.OTPExpiry) {
			return domainerrors.ErrOTPExpired
		}
		if !crypto.EqualOTP(payment.OTP, strings.TrimSpace(input.OTP)) {
			return domainerrors.ErrInvalidOTP
		}

		payment.Status = entities.OnlinePaymentVerified
		payment.VerifiedAt = null.TimeFrom(now.UTC())
		return u.repo.Update(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}
	u.metrics.ObservePayment("online", string(payment.Status))
	return payment, nil
}

// ResendOTP issues a fresh code; the old one stops working. Resends are
// throttled per payment.
func (u *OnlinePaymentUsecase) ResendOTP(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error) {
	payment, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.OnlinePaymentPending && payment.Status != entities.OnlinePaymentVerified {
		return nil, domainerrors.ErrInvalidTransition
	}

	if u.cooldown != nil {
		ok, err := u.cooldown.Acquire(ctx, id.String(), u.cfg.ResendCooldown)
		if err != nil {
			logger.Warn(ctx, "OTP cooldown unavailable", zap.Error(err))
		} else if !ok {
			return nil, fmt.Errorf("wait before requesting another code: %w", domainerrors.ErrRateLimited)
		}
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	payment.OTP = otp
	payment.OTPExpiry = nowFunc().Add(u.cfg.TTL).UTC()
	if err := u.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	u.sendOTP(ctx, payment)
	return payment, nil
}

// Complete finalises a verified payment with the gateway reference
func (u *OnlinePaymentUsecase) Complete(ctx context.Context, userID, id uuid.UUID, gatewayTxnID string) (*entities.OnlinePayment, error) {
	gatewayTxnID = strings.TrimSpace(gatewayTxnID)
	if gatewayTxnID == "" {
		return nil, domainerrors.Validation("gatewayTransactionId is required")
	}

	var payment *entities.OnlinePayment
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		payment, err = u.owned(u.uow.WithLock(txCtx), userID, id)
		if err != nil {
			return err
		}
		if payment.Status != entities.OnlinePaymentVerified {
			return domainerrors.ErrInvalidTransition
		}
		payment.Status = entities.OnlinePaymentCompleted
		payment.GatewayTransactionID = null.StringFrom(gatewayTxnID)
		payment.CompletedAt = null.TimeFrom(nowFunc().UTC())
		return u.repo.Update(txCtx, payment)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.ObservePayment("online", string(payment.Status))
	if payment.Email != "" {
		msg, err := notification.RenderPaymentConfirmation(notification.PaymentConfirmation{
			To:        payment.Email,
			Amount:    payment.Amount,
			Currency:  payment.Currency,
			Reference: payment.TransactionID,
		})
		if err == nil {
			u.notifier.Email(ctx, msg)
		}
	}
	return payment, nil
}

// Cancel lets the owner abandon a payment that is not finished
func (u *OnlinePaymentUsecase) Cancel(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error) {
	payment, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status.IsTerminal() {
		return nil, domainerrors.ErrInvalidTransition
	}
	payment.Status = entities.OnlinePaymentCancelled
	if err := u.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	u.metrics.ObservePayment("online", string(payment.Status))
	return payment, nil
}

// MarkFailed records a gateway failure; admin only
func (u *OnlinePaymentUsecase) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*entities.OnlinePayment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerrors.Validation("a failure reason is required")
	}
	payment, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status.IsTerminal() {
		return nil, domainerrors.ErrInvalidTransition
	}
	payment.Status = entities.OnlinePaymentFailed
	payment.FailureReason = null.StringFrom(reason)
	if err := u.repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	u.metrics.ObservePayment("online", string(payment.Status))
	return payment, nil
}

// Get returns a payment to its owner or an admin
func (u *OnlinePaymentUsecase) Get(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.OnlinePayment, error) {
	payment, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.AuthorizeOwnerOrAdmin(actor, payment.UserID) == policy.Deny {
		return nil, domainerrors.Forbiddenf("not your payment")
	}
	return payment, nil
}

// ListMine returns the caller's card payments
func (u *OnlinePaymentUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*entities.OnlinePayment, error) {
	return u.repo.ListByUser(ctx, userID)
}

func (u *OnlinePaymentUsecase) owned(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error) {
	payment, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainerrors.Forbiddenf("not your payment")
	}
	return payment, nil
}

func (u *OnlinePaymentUsecase) sendOTP(ctx context.Context, payment *entities.OnlinePayment) {
	minutes := int(u.cfg.TTL / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	u.notifier.SMS(ctx, payment.ContactNumber, notification.OTPMessage(payment.OTP, payment.TransactionID, minutes))
}

func newTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("GEM-%s-%s", now.UTC().Format("20060102"), suffix)
}

// validateCard checks the card form and returns the detected brand
func validateCard(in *entities.CreateOnlinePaymentInput, now time.Time) (entities.CardType, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(in.CardNumber)
	if len(number) < 13 || len(number) > 19 || !isDigits(number) {
		return "", domainerrors.Validation("card number must be 13 to 19 digits")
	}
	if !luhnValid(number) {
		return "", domainerrors.Validation("card number is invalid")
	}
	if strings.TrimSpace(in.CardHolderName) == "" {
		return "", domainerrors.Validation("cardHolderName is required")
	}
	cvv := strings.TrimSpace(in.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || !isDigits(cvv) {
		return "", domainerrors.Validation("cvv must be 3 or 4 digits")
	}
	if err := validateExpiry(in.ExpiryDate, now); err != nil {
		return "", err
	}
	return detectCardType(number), nil
}

// validateExpiry accepts MM/YY; a card is valid through the end of its month
func validateExpiry(expiry string, now time.Time) error {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return domainerrors.Validation("expiryDate must be MM/YY")
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return domainerrors.Validation("expiryDate month is invalid")
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return domainerrors.Validation("expiryDate year is invalid")
	}

	firstOfNext := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !now.UTC().Before(firstOfNext) {
		return domainerrors.Validation("card has expired")
	}
	return nil
}

func detectCardType(number string) entities.CardType {
	switch {
	case strings.HasPrefix(number, "4"):
		return entities.CardTypeVisa
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return entities.CardTypeAmex
	}
	if prefix, err := strconv.Atoi(number[:4]); err == nil {
		if (prefix >= 5100 && prefix <= 5599) || (prefix >= 2221 && prefix <= 2720) {
			return entities.CardTypeMastercard
		}
	}
	return entities.CardTypeOther
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
