package usecases

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
)

// BidUsecase serves the read side of the bid ledger
type BidUsecase struct {
	bidRepo  repositories.BidRepository
	gemRepo  repositories.GemstoneRepository
	userRepo repositories.UserRepository
}

// NewBidUsecase creates a new bid usecase
func NewBidUsecase(bidRepo repositories.BidRepository, gemRepo repositories.GemstoneRepository, userRepo repositories.UserRepository) *BidUsecase {
	return &BidUsecase{bidRepo: bidRepo, gemRepo: gemRepo, userRepo: userRepo}
}

// ListBidsByGem returns the bids of a listing, newest first
func (u *BidUsecase) ListBidsByGem(ctx context.Context, gemID uuid.UUID) ([]*entities.Bid, error) {
	if _, err := u.gemRepo.GetByID(ctx, gemID); err != nil {
		return nil, err
	}
	return u.bidRepo.ListByGemstone(ctx, gemID)
}

// ListBidsByAuction returns the bids of an auction, newest first
func (u *BidUsecase) ListBidsByAuction(ctx context.Context, auctionID uuid.UUID) ([]*entities.Bid, error) {
	return u.bidRepo.ListByAuction(ctx, auctionID)
}

// ListMyBids returns the caller's bids joined with their listing
func (u *BidUsecase) ListMyBids(ctx context.Context, bidderID uuid.UUID) ([]*entities.BidWithGem, error) {
	return u.bidRepo.ListByBidder(ctx, bidderID)
}

// ListAllBids is the admin view. Gems and buyers are loaded with one query
// each for the whole page.
func (u *BidUsecase) ListAllBids(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminBidView, utils.PaginationMeta, error) {
	bids, total, err := u.bidRepo.ListAll(ctx, p.Limit, p.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	gemIDs := make([]uuid.UUID, 0, len(bids))
	buyerIDs := make([]uuid.UUID, 0, len(bids))
	for _, b := range bids {
		gemIDs = append(gemIDs, b.GemstoneID)
		buyerIDs = append(buyerIDs, b.BidderID)
	}

	gems, err := u.gemRepo.GetByIDs(ctx, gemIDs)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	buyers, err := u.userRepo.GetByIDs(ctx, buyerIDs)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	views := make([]*entities.AdminBidView, 0, len(bids))
	for _, b := range bids {
		view := &entities.AdminBidView{Bid: *b}
		if g, ok := gems[b.GemstoneID]; ok {
			view.Gem = &entities.GemSummary{ID: g.ID, Name: g.Name}
		}
		if buyer, ok := buyers[b.BidderID]; ok {
			view.Buyer = &entities.BuyerSummary{ID: buyer.ID, Name: buyer.Name, Email: buyer.Email}
		}
		views = append(views, view)
	}
	return views, utils.CalculateMeta(total, p.Page, p.Limit), nil
}
