package usecases

import (
	"context"
	"net/mail"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/internal/infrastructure/notification"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// PaymentUsecase handles bank deposit payments
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	files       ports.FileStore
	notifier    *Notifier
	metrics     *metrics.Metrics
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(paymentRepo repositories.PaymentRepository, files ports.FileStore, notifier *Notifier, m *metrics.Metrics) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		files:       files,
		notifier:    notifier,
		metrics:     m,
	}
}

// CreatePayment records a deposit. The slip is either an uploaded file or
// a path that was uploaded earlier.
func (u *PaymentUsecase) CreatePayment(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error) {
	auctionID, err := uuid.Parse(strings.TrimSpace(input.ReferenceID()))
	if err != nil {
		return nil, domainerrors.Validation("auctionId must be a valid id")
	}
	if input.Amount <= 0 {
		return nil, domainerrors.Validation("amount must be greater than zero")
	}
	for field, value := range map[string]string{
		"bidderName":     input.BidderName,
		"phone":          input.Phone,
		"billingAddress": input.BillingAddress,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, domainerrors.Validation("%s is required", field)
		}
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domainerrors.Validation("email is invalid")
	}

	slipPath := strings.TrimSpace(input.SlipPath)
	uploaded := false
	if slip != nil {
		slipPath, err = u.files.Save(ctx, ports.UploadCategorySlips, *slip)
		if err != nil {
			return nil, err
		}
		uploaded = true
	}
	if slipPath == "" {
		return nil, domainerrors.Validation("payment slip is required")
	}
	if !uploaded && !u.files.Owns(slipPath, ports.UploadCategorySlips) {
		return nil, domainerrors.Validation("slipPath must reference an uploaded payment slip")
	}

	payment := &entities.Payment{
		UserID:         userID,
		AuctionID:      auctionID,
		Amount:         input.Amount,
		SlipPath:       slipPath,
		BidderName:     strings.TrimSpace(input.BidderName),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:          strings.TrimSpace(input.Phone),
		BillingAddress: strings.TrimSpace(input.BillingAddress),
		Status:         entities.PaymentStatusPending,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		if uploaded {
			if delErr := u.files.Delete(ctx, slipPath); delErr != nil {
				logger.Warn(ctx, "Failed to remove slip", zap.String("path", slipPath), zap.Error(delErr))
			}
		}
		return nil, err
	}

	u.metrics.ObservePayment("bank", string(payment.Status))
	logger.Info(ctx, "Bank payment submitted",
		zap.String("paymentId", payment.ID.String()),
		zap.String("auctionId", auctionID.String()),
	)
	return payment, nil
}

// GetPayment returns a payment to its owner or an admin
func (u *PaymentUsecase) GetPayment(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.AuthorizeOwnerOrAdmin(actor, payment.UserID) == policy.Deny {
		return nil, domainerrors.Forbiddenf("not your payment")
	}
	return payment, nil
}

// ListMine returns the caller's payments
func (u *PaymentUsecase) ListMine(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	return u.list(ctx, entities.PaymentFilter{UserID: uuid.NullUUID{UUID: userID, Valid: true}}, p)
}

// List returns every payment for admins
func (u *PaymentUsecase) List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	switch status {
	case "", entities.PaymentStatusPending, entities.PaymentStatusSuccess, entities.PaymentStatusFailure:
	default:
		return nil, utils.PaginationMeta{}, domainerrors.Validation("unknown payment status %q", status)
	}
	return u.list(ctx, entities.PaymentFilter{Status: status}, p)
}

func (u *PaymentUsecase) list(ctx context.Context, filter entities.PaymentFilter, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	filter.Limit = p.Limit
	filter.Offset = p.CalculateOffset()
	payments, total, err := u.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return payments, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// UpdatePaymentStatus records the admin review of a pending deposit.
// A successful review emails a confirmation; mail failures are swallowed.
func (u *PaymentUsecase) UpdatePaymentStatus(ctx context.Context, admin policy.Subject, id uuid.UUID, status entities.PaymentStatus) (*entities.Payment, error) {
	if !status.IsReviewOutcome() {
		return nil, domainerrors.Validation("status must be success or failure")
	}
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != entities.PaymentStatusPending {
		return nil, domainerrors.ErrInvalidTransition
	}

	payment.Status = status
	payment.ReviewedBy = uuid.NullUUID{UUID: admin.UserID, Valid: true}
	payment.ReviewedAt = null.TimeFrom(nowFunc().UTC())
	if err := u.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	u.metrics.ObservePayment("bank", string(status))

	if status == entities.PaymentStatusSuccess {
		msg, err := notification.RenderPaymentConfirmation(notification.PaymentConfirmation{
			To:        payment.Email,
			Name:      payment.BidderName,
			Amount:    payment.Amount,
			Reference: payment.AuctionID.String(),
		})
		if err != nil {
			logger.Warn(ctx, "Render confirmation email failed", zap.Error(err))
		} else {
			u.notifier.Email(ctx, msg)
		}
	}
	return payment, nil
}

// DeletePayment soft-deletes a payment. A reason is mandatory.
func (u *PaymentUsecase) DeletePayment(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerrors.Validation("a delete reason is required")
	}
	if err := u.paymentRepo.SoftDelete(ctx, id, admin.UserID, reason); err != nil {
		return err
	}
	logger.Info(ctx, "Payment deleted", zap.String("paymentId", id.String()), zap.String("by", admin.UserID.String()))
	return nil
}
