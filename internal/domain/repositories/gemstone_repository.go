package repositories

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// GemstoneRepository defines listing data operations
type GemstoneRepository interface {
	Create(ctx context.Context, gem *entities.Gemstone) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Gemstone, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Gemstone, error)
	Update(ctx context.Context, gem *entities.Gemstone) error
	List(ctx context.Context, filter entities.GemstoneFilter) ([]*entities.Gemstone, int64, error)
	// BulkUpdate applies column updates to every id and returns rows touched.
	BulkUpdate(ctx context.Context, ids []uuid.UUID, columns map[string]interface{}) (int64, error)
	SetAuctioned(ctx context.Context, id uuid.UUID, auctioned bool) error
	// Deactivate clears is_active unless the listing is being auctioned.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// SyncBid refreshes the denormalized current bid view of a listing.
	SyncBid(ctx context.Context, id uuid.UUID, amount float64) error
}
