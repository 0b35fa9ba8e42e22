package usecases

import (
	"context"
	"errors"
	"time"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/internal/infrastructure/notification"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// Bid outcomes recorded in metrics
const (
	bidOutcomeAccepted  = "accepted"
	bidOutcomeTooLow    = "too_low"
	bidOutcomeInactive  = "inactive"
	bidOutcomeForbidden = "forbidden"
	bidOutcomeError     = "error"
)

// AuctionUsecase runs the auction lifecycle and bidding
type AuctionUsecase struct {
	auctionRepo repositories.AuctionRepository
	bidRepo     repositories.BidRepository
	gemRepo     repositories.GemstoneRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
	notifier    *Notifier
	metrics     *metrics.Metrics
}

// NewAuctionUsecase creates a new auction usecase
func NewAuctionUsecase(
	auctionRepo repositories.AuctionRepository,
	bidRepo repositories.BidRepository,
	gemRepo repositories.GemstoneRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier *Notifier,
	m *metrics.Metrics,
) *AuctionUsecase {
	return &AuctionUsecase{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		gemRepo:     gemRepo,
		userRepo:    userRepo,
		uow:         uow,
		notifier:    notifier,
		metrics:     m,
	}
}

// CreateAuction opens an auction on a public listing and marks the listing
// auctioned in the same transaction.
func (u *AuctionUsecase) CreateAuction(ctx context.Context, actor policy.Subject, input *entities.CreateAuctionInput) (*entities.Auction, error) {
	now := nowFunc()
	if input.StartPrice <= 0 {
		return nil, domainerrors.Validation("startPrice must be greater than zero")
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, domainerrors.Validation("startTime must be before endTime")
	}
	if !input.EndTime.After(now) {
		return nil, domainerrors.Validation("endTime must be in the future")
	}

	var auction *entities.Auction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		gem, err := u.gemRepo.GetByID(u.uow.WithLock(txCtx), input.GemstoneID)
		if err != nil {
			return err
		}
		if policy.AuthorizeOwnerOrAdmin(actor, gem.SellerID) == policy.Deny {
			return domainerrors.Forbiddenf("only the seller or an admin can auction this gemstone")
		}
		if !gem.IsPubliclyListed() {
			return domainerrors.Conflictf("gemstone must be verified and active")
		}
		if gem.IsAuctioned {
			return domainerrors.Conflictf("gemstone is already auctioned")
		}
		if input.StartPrice < gem.MinimumBid {
			return domainerrors.Validation("startPrice must be at least the minimum bid %.2f", gem.MinimumBid)
		}

		auction = &entities.Auction{
			GemstoneID:        gem.ID,
			SellerID:          gem.SellerID,
			StartPrice:        input.StartPrice,
			CurrentHighestBid: input.StartPrice,
			StartTime:         input.StartTime.UTC(),
			EndTime:           input.EndTime.UTC(),
		}
		auction.Status = entities.DeriveAuctionStatus(now, entities.AuctionStatusPending, auction.StartTime, auction.EndTime)

		if err := u.gemRepo.SetAuctioned(txCtx, gem.ID, true); err != nil {
			return err
		}
		return u.auctionRepo.Create(txCtx, auction)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Auction created",
		zap.String("auctionId", auction.ID.String()),
		zap.String("gemId", auction.GemstoneID.String()),
	)
	return auction, nil
}

// GetAuction returns an auction with its status derived at read time
func (u *AuctionUsecase) GetAuction(ctx context.Context, id uuid.UUID) (*entities.Auction, error) {
	auction, err := u.auctionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	auction.Refresh(nowFunc())
	return auction, nil
}

// ListAuctions lists auctions, filtering on derived status
func (u *AuctionUsecase) ListAuctions(ctx context.Context, status entities.AuctionStatus, p utils.PaginationParams) ([]*entities.Auction, utils.PaginationMeta, error) {
	return u.list(ctx, entities.AuctionFilter{Status: status}, p)
}

// ListByGem lists every auction of one listing
func (u *AuctionUsecase) ListByGem(ctx context.Context, gemID uuid.UUID, p utils.PaginationParams) ([]*entities.Auction, utils.PaginationMeta, error) {
	return u.list(ctx, entities.AuctionFilter{GemstoneID: uuid.NullUUID{UUID: gemID, Valid: true}}, p)
}

func (u *AuctionUsecase) list(ctx context.Context, filter entities.AuctionFilter, p utils.PaginationParams) ([]*entities.Auction, utils.PaginationMeta, error) {
	switch filter.Status {
	case "", entities.AuctionStatusPending, entities.AuctionStatusActive, entities.AuctionStatusCompleted, entities.AuctionStatusCancelled:
	default:
		return nil, utils.PaginationMeta{}, domainerrors.Validation("unknown auction status %q", filter.Status)
	}

	now := nowFunc()
	filter.Now = now
	filter.Limit = p.Limit
	filter.Offset = p.CalculateOffset()

	auctions, total, err := u.auctionRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	for _, a := range auctions {
		a.Refresh(now)
	}
	return auctions, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

// PlaceBid records a bid strictly above the current highest bid while the
// auction window is open. The highest bid is raised with a conditional
// update, so concurrent bidders can never both win the same step.
func (u *AuctionUsecase) PlaceBid(ctx context.Context, auctionID, bidderID uuid.UUID, amount float64) (*entities.BidResult, error) {
	if amount <= 0 {
		return nil, domainerrors.Validation("amount must be greater than zero")
	}

	var result *entities.BidResult
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		now := nowFunc()
		auction, err := u.auctionRepo.GetByID(txCtx, auctionID)
		if err != nil {
			return err
		}
		if err := checkBid(auction, bidderID, amount, now); err != nil {
			return err
		}
		gem, err := u.gemRepo.GetByID(txCtx, auction.GemstoneID)
		if err != nil {
			return err
		}
		if !gem.IsPubliclyListed() {
			return domainerrors.ErrInactiveAuction
		}

		raised, err := u.auctionRepo.RaiseHighestBid(txCtx, auction.ID, bidderID, amount, now)
		if err != nil {
			return err
		}
		if !raised {
			// Lost a race; re-read to report the reason.
			latest, err := u.auctionRepo.GetByID(txCtx, auctionID)
			if err != nil {
				return err
			}
			if err := checkBid(latest, bidderID, amount, nowFunc()); err != nil {
				return err
			}
			return domainerrors.ErrBidTooLow
		}

		bid := &entities.Bid{
			AuctionID:  auction.ID,
			GemstoneID: auction.GemstoneID,
			BidderID:   bidderID,
			Amount:     amount,
			Status:     entities.BidStatusPending,
		}
		if err := u.bidRepo.Create(txCtx, bid); err != nil {
			return err
		}
		if err := u.gemRepo.SyncBid(txCtx, auction.GemstoneID, amount); err != nil {
			return err
		}

		result = &entities.BidResult{
			Bid:               bid,
			AuctionID:         auction.ID,
			CurrentHighestBid: amount,
			TotalBids:         auction.TotalBids + 1,
		}
		return nil
	})

	u.metrics.ObserveBid(bidOutcome(err))
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Bid placed",
		zap.String("auctionId", auctionID.String()),
		zap.String("bidderId", bidderID.String()),
		zap.Float64("amount", amount),
	)
	return result, nil
}

// PlaceGemBid resolves the live auction of a listing and bids on it
func (u *AuctionUsecase) PlaceGemBid(ctx context.Context, gemID, bidderID uuid.UUID, amount float64) (*entities.BidResult, error) {
	gem, err := u.gemRepo.GetByID(ctx, gemID)
	if err != nil {
		return nil, err
	}
	if !gem.IsPubliclyListed() {
		u.metrics.ObserveBid(bidOutcomeInactive)
		return nil, domainerrors.ErrInactiveAuction
	}
	auction, err := u.auctionRepo.GetLiveByGemstone(ctx, gemID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.metrics.ObserveBid(bidOutcomeInactive)
			return nil, domainerrors.ErrInactiveAuction
		}
		return nil, err
	}
	return u.PlaceBid(ctx, auction.ID, bidderID, amount)
}

func checkBid(auction *entities.Auction, bidderID uuid.UUID, amount float64, now time.Time) error {
	if auction.SellerID == bidderID {
		return domainerrors.Forbiddenf("sellers cannot bid on their own auction")
	}
	if !auction.AcceptsBidsAt(now) {
		return domainerrors.ErrInactiveAuction
	}
	if amount <= auction.CurrentHighestBid {
		return domainerrors.ErrBidTooLow
	}
	return nil
}

func bidOutcome(err error) string {
	switch {
	case err == nil:
		return bidOutcomeAccepted
	case errors.Is(err, domainerrors.ErrBidTooLow):
		return bidOutcomeTooLow
	case errors.Is(err, domainerrors.ErrInactiveAuction):
		return bidOutcomeInactive
	case errors.Is(err, domainerrors.ErrForbidden):
		return bidOutcomeForbidden
	default:
		return bidOutcomeError
	}
}

// CompleteAuction closes an auction, records the highest bidder as winner
// and settles the ledger. Completing a completed auction returns it as is.
func (u *AuctionUsecase) CompleteAuction(ctx context.Context, id uuid.UUID) (*entities.Auction, error) {
	var (
		auction   *entities.Auction
		newlyDone bool
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		auction, err = u.auctionRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		switch auction.Status {
		case entities.AuctionStatusCompleted:
			return nil
		case entities.AuctionStatusCancelled:
			return domainerrors.ErrInvalidTransition
		}

		auction.Status = entities.AuctionStatusCompleted
		auction.WinnerID = auction.HighestBidderID
		auction.CompletedAt = null.TimeFrom(nowFunc().UTC())
		if err := u.auctionRepo.Update(txCtx, auction); err != nil {
			return err
		}

		winning := uuid.NullUUID{}
		highest, err := u.bidRepo.GetHighest(txCtx, auction.ID)
		switch {
		case err == nil:
			winning = uuid.NullUUID{UUID: highest.ID, Valid: true}
		case !errors.Is(err, domainerrors.ErrNotFound):
			return err
		}
		if err := u.bidRepo.Settle(txCtx, auction.ID, winning); err != nil {
			return err
		}
		newlyDone = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if newlyDone {
		logger.Info(ctx, "Auction completed",
			zap.String("auctionId", auction.ID.String()),
			zap.Bool("hasWinner", auction.WinnerID.Valid),
		)
		if auction.WinnerID.Valid {
			u.notifyWinner(ctx, auction)
		}
	}
	return auction, nil
}

// CompleteAuctionAs closes an auction on behalf of its seller or an admin
func (u *AuctionUsecase) CompleteAuctionAs(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Auction, error) {
	auction, err := u.auctionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.AuthorizeOwnerOrAdmin(actor, auction.SellerID) == policy.Deny {
		return nil, domainerrors.Forbiddenf("only the seller or an admin can complete this auction")
	}
	return u.CompleteAuction(ctx, id)
}

// CancelAuction closes an auction without a winner and releases the listing
func (u *AuctionUsecase) CancelAuction(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Auction, error) {
	var auction *entities.Auction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		auction, err = u.auctionRepo.GetByID(u.uow.WithLock(txCtx), id)
		if err != nil {
			return err
		}
		if policy.AuthorizeOwnerOrAdmin(actor, auction.SellerID) == policy.Deny {
			return domainerrors.Forbiddenf("only the seller or an admin can cancel this auction")
		}
		if auction.Status.IsTerminal() {
			return domainerrors.ErrInvalidTransition
		}

		auction.Status = entities.AuctionStatusCancelled
		auction.CancelledAt = null.TimeFrom(nowFunc().UTC())
		if err := u.auctionRepo.Update(txCtx, auction); err != nil {
			return err
		}
		if err := u.gemRepo.SetAuctioned(txCtx, auction.GemstoneID, false); err != nil {
			return err
		}
		return u.bidRepo.Settle(txCtx, auction.ID, uuid.NullUUID{})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Auction cancelled",
		zap.String("auctionId", auction.ID.String()),
		zap.String("by", actor.UserID.String()),
	)
	return auction, nil
}

// ListDueForSettlement returns auctions whose end time has passed
func (u *AuctionUsecase) ListDueForSettlement(ctx context.Context, limit int) ([]*entities.Auction, error) {
	return u.auctionRepo.ListDueForSettlement(ctx, nowFunc(), limit)
}

func (u *AuctionUsecase) notifyWinner(ctx context.Context, auction *entities.Auction) {
	winner, err := u.userRepo.GetByID(ctx, auction.WinnerID.UUID)
	if err != nil {
		logger.Warn(ctx, "Winner lookup failed", zap.String("auctionId", auction.ID.String()), zap.Error(err))
		return
	}
	gemName := "your gemstone"
	if gem, err := u.gemRepo.GetByID(ctx, auction.GemstoneID); err == nil {
		gemName = gem.Name
	}

	msg, err := notification.RenderAuctionWon(notification.AuctionWon{
		To:      winner.Email,
		Name:    winner.Name,
		GemName: gemName,
		Amount:  auction.CurrentHighestBid,
	})
	if err != nil {
		logger.Warn(ctx, "Render winner email failed", zap.Error(err))
		return
	}
	u.notifier.Email(ctx, msg)
}
