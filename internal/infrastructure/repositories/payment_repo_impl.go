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

// PaymentRepository implements bank deposit data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) live(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).Model(&models.Payment{}).Where("deleted = ?", false)
}

// Create inserts a deposit
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	m := paymentToModel(payment)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a deposit that has not been soft-deleted
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.live(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// Update writes every mutable column of a live deposit
func (r *PaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	m := paymentToModel(payment)
	m.UpdatedAt = time.Now()
	result := r.live(ctx).Where("id = ?", payment.ID).
		Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// List returns a page of live deposits and the total match count
func (r *PaymentRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, int64, error) {
	query := r.live(ctx)
	if filter.UserID.Valid {
		query = query.Where("user_id = ?", filter.UserID.UUID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []models.Payment
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	payments := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		payments = append(payments, paymentToEntity(&rows[i]))
	}
	return payments, total, nil
}

// SoftDelete hides a deposit from every read and records who removed it
func (r *PaymentRepository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	now := time.Now()
	result := r.live(ctx).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted":       true,
		"delete_reason": reason,
		"deleted_by":    deletedBy,
		"deleted_at":    now,
		"updated_at":    now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func paymentToModel(p *entities.Payment) *models.Payment {
	return &models.Payment{
		ID:             p.ID,
		UserID:         p.UserID,
		AuctionID:      p.AuctionID,
		Amount:         p.Amount,
		SlipPath:       p.SlipPath,
		BidderName:     p.BidderName,
		Email:          p.Email,
		Phone:          p.Phone,
		BillingAddress: p.BillingAddress,
		Status:         string(p.Status),
		ReviewedBy:     uuidPtr(p.ReviewedBy),
		ReviewedAt:     timePtr(p.ReviewedAt),
		Deleted:        p.Deleted,
		DeleteReason:   stringPtr(p.DeleteReason),
		DeletedBy:      uuidPtr(p.DeletedBy),
		DeletedAt:      timePtr(p.DeletedAt),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:             m.ID,
		UserID:         m.UserID,
		AuctionID:      m.AuctionID,
		Amount:         m.Amount,
		SlipPath:       m.SlipPath,
		BidderName:     m.BidderName,
		Email:          m.Email,
		Phone:          m.Phone,
		BillingAddress: m.BillingAddress,
		Status:         entities.PaymentStatus(m.Status),
		ReviewedBy:     nullUUID(m.ReviewedBy),
		ReviewedAt:     null.TimeFromPtr(m.ReviewedAt),
		Deleted:        m.Deleted,
		DeleteReason:   null.StringFromPtr(m.DeleteReason),
		DeletedBy:      nullUUID(m.DeletedBy),
		DeletedAt:      null.TimeFromPtr(m.DeletedAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
