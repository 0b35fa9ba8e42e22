package repositories

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// PaymentRepository defines bank deposit data operations. Soft-deleted rows
// are invisible to every read.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	Update(ctx context.Context, payment *entities.Payment) error
	List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, int64, error)
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error
}

// OnlinePaymentRepository defines card payment data operations
type OnlinePaymentRepository interface {
	Create(ctx context.Context, payment *entities.OnlinePayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.OnlinePayment, error)
	Update(ctx context.Context, payment *entities.OnlinePayment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.OnlinePayment, error)
}
