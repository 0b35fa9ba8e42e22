package repositories

import (
	"context"
	"time"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// AuctionRepository defines auction data operations
type AuctionRepository interface {
	Create(ctx context.Context, auction *entities.Auction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Auction, error)
	// GetLiveByGemstone returns the newest non-terminal auction of a listing.
	GetLiveByGemstone(ctx context.Context, gemstoneID uuid.UUID) (*entities.Auction, error)
	Update(ctx context.Context, auction *entities.Auction) error
	List(ctx context.Context, filter entities.AuctionFilter) ([]*entities.Auction, int64, error)
	// RaiseHighestBid atomically sets the highest bid when amount is strictly
	// greater than the stored one and now is inside [start, end). It reports
	// whether the row was updated.
	RaiseHighestBid(ctx context.Context, id, bidderID uuid.UUID, amount float64, now time.Time) (bool, error)
	ListDueForSettlement(ctx context.Context, now time.Time, limit int) ([]*entities.Auction, error)
}

// BidRepository defines bid ledger operations
type BidRepository interface {
	Create(ctx context.Context, bid *entities.Bid) error
	ListByGemstone(ctx context.Context, gemstoneID uuid.UUID) ([]*entities.Bid, error)
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*entities.Bid, error)
	ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entities.BidWithGem, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.Bid, int64, error)
	// Settle marks the winning bid accepted and every other bid of the
	// auction refused.
	Settle(ctx context.Context, auctionID uuid.UUID, winningBidID uuid.NullUUID) error
	GetHighest(ctx context.Context, auctionID uuid.UUID) (*entities.Bid, error)
}
