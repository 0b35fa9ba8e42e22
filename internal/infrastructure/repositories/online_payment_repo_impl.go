package repositories

import (
	"context"
	"errors"
	"time"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/infrastructure/models"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// OnlinePaymentRepository implements card payment data operations
type OnlinePaymentRepository struct {
	db *gorm.DB
}

// NewOnlinePaymentRepository creates a new online payment repository
func NewOnlinePaymentRepository(db *gorm.DB) *OnlinePaymentRepository {
	return &OnlinePaymentRepository{db: db}
}

// Create inserts a card payment
func (r *OnlinePaymentRepository) Create(ctx context.Context, payment *entities.OnlinePayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	m := onlinePaymentToModel(payment)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a card payment by ID
func (r *OnlinePaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.OnlinePayment, error) {
	var m models.OnlinePayment
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return onlinePaymentToEntity(&m), nil
}

// Update writes every mutable column of a card payment
func (r *OnlinePaymentRepository) Update(ctx context.Context, payment *entities.OnlinePayment) error {
	m := onlinePaymentToModel(payment)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(&models.OnlinePayment{}).Where("id = ?", payment.ID).
		Select("*").Omit("id", "user_id", "transaction_id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// ListByUser returns a user's card payments, newest first
func (r *OnlinePaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.OnlinePayment, error) {
	var rows []models.OnlinePayment
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.OnlinePayment, 0, len(rows))
	for i := range rows {
		out = append(out, onlinePaymentToEntity(&rows[i]))
	}
	return out, nil
}

func onlinePaymentToModel(p *entities.OnlinePayment) *models.OnlinePayment {
	return &models.OnlinePayment{
		ID:                   p.ID,
		UserID:               p.UserID,
		AuctionID:            p.AuctionID,
		Amount:               p.Amount,
		Currency:             p.Currency,
		CardType:             string(p.CardType),
		ContactNumber:        p.ContactNumber,
		Email:                p.Email,
		OTP:                  p.OTP,
		OTPExpiry:            p.OTPExpiry,
		TransactionID:        p.TransactionID,
		GatewayTransactionID: stringPtr(p.GatewayTransactionID),
		Status:               string(p.Status),
		FailureReason:        stringPtr(p.FailureReason),
		VerifiedAt:           timePtr(p.VerifiedAt),
		CompletedAt:          timePtr(p.CompletedAt),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func onlinePaymentToEntity(m *models.OnlinePayment) *entities.OnlinePayment {
	return &entities.OnlinePayment{
		ID:                   m.ID,
		UserID:               m.UserID,
		AuctionID:            m.AuctionID,
		Amount:               m.Amount,
		Currency:             m.Currency,
		CardType:             entities.CardType(m.CardType),
		ContactNumber:        m.ContactNumber,
		Email:                m.Email,
		OTP:                  m.OTP,
		OTPExpiry:            m.OTPExpiry,
		TransactionID:        m.TransactionID,
		GatewayTransactionID: null.StringFromPtr(m.GatewayTransactionID),
		Status:               entities.OnlinePaymentStatus(m.Status),
		FailureReason:        null.StringFromPtr(m.FailureReason),
		VerifiedAt:           null.TimeFromPtr(m.VerifiedAt),
		CompletedAt:          null.TimeFromPtr(m.CompletedAt),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
