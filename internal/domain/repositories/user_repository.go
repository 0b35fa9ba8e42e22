package repositories

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// Update writes the whole document, last write wins.
	Update(ctx context.Context, user *entities.User) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error
	UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status entities.PayoutStatus) error
	List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
	// ListPendingSellers returns users awaiting seller review whose NIC is approved.
	ListPendingSellers(ctx context.Context) ([]*entities.User, error)
}

// PayoutRepository defines payout destination operations
type PayoutRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Payout, error)
	Upsert(ctx context.Context, payout *entities.Payout) error
}
