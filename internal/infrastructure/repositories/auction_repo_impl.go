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

var terminalAuctionStatuses = []string{
	string(entities.AuctionStatusCompleted),
	string(entities.AuctionStatusCancelled),
}

// AuctionRepository implements auction data operations
type AuctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(db *gorm.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

// Create inserts an auction
func (r *AuctionRepository) Create(ctx context.Context, auction *entities.Auction) error {
	if auction.ID == uuid.Nil {
		auction.ID = utils.GenerateUUIDv7()
	}
	m := auctionToModel(auction)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	auction.CreatedAt = m.CreatedAt
	auction.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an auction by ID
func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Auction, error) {
	var m models.Auction
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return auctionToEntity(&m), nil
}

// GetLiveByGemstone returns the newest auction of a listing that is not closed
func (r *AuctionRepository) GetLiveByGemstone(ctx context.Context, gemstoneID uuid.UUID) (*entities.Auction, error) {
	var m models.Auction
	err := GetDB(ctx, r.db).
		Where("gemstone_id = ? AND status NOT IN ?", gemstoneID, terminalAuctionStatuses).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return auctionToEntity(&m), nil
}

// Update writes every mutable column of the auction
func (r *AuctionRepository) Update(ctx context.Context, auction *entities.Auction) error {
	m := auctionToModel(auction)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(&models.Auction{}).Where("id = ?", auction.ID).
		Select("*").Omit("id", "gemstone_id", "seller_id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	auction.UpdatedAt = m.UpdatedAt
	return nil
}

// List returns a page of auctions and the total match count
func (r *AuctionRepository) List(ctx context.Context, filter entities.AuctionFilter) ([]*entities.Auction, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Auction{})
	if filter.Status != "" {
		query = whereDerivedStatus(query, filter.Status, filter.Now)
	}
	if filter.GemstoneID.Valid {
		query = query.Where("gemstone_id = ?", filter.GemstoneID.UUID)
	}
	if filter.SellerID.Valid {
		query = query.Where("seller_id = ?", filter.SellerID.UUID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []models.Auction
	if err := query.Order("start_time DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	auctions := make([]*entities.Auction, 0, len(rows))
	for i := range rows {
		auctions = append(auctions, auctionToEntity(&rows[i]))
	}
	return auctions, total, nil
}

// whereDerivedStatus filters on the status DeriveAuctionStatus would report
// at now, so rows the settlement job has not reached yet still match.
func whereDerivedStatus(query *gorm.DB, status entities.AuctionStatus, now time.Time) *gorm.DB {
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	switch status {
	case entities.AuctionStatusPending:
		return query.Where("status NOT IN ? AND start_time > ?", terminalAuctionStatuses, now)
	case entities.AuctionStatusActive:
		return query.Where("status NOT IN ? AND start_time <= ? AND end_time > ?", terminalAuctionStatuses, now, now)
	case entities.AuctionStatusCompleted:
		return query.Where("status = ? OR (status <> ? AND end_time <= ?)",
			string(entities.AuctionStatusCompleted), string(entities.AuctionStatusCancelled), now)
	default:
		return query.Where("status = ?", string(status))
	}
}

// RaiseHighestBid is a compare-and-set on current_highest_bid. Two racing
// bidders can never both win: the loser matches zero rows.
func (r *AuctionRepository) RaiseHighestBid(ctx context.Context, id, bidderID uuid.UUID, amount float64, now time.Time) (bool, error) {
	now = now.UTC()
	result := GetDB(ctx, r.db).Model(&models.Auction{}).
		Where("id = ? AND current_highest_bid < ? AND status NOT IN ? AND start_time <= ? AND end_time > ?",
			id, amount, terminalAuctionStatuses, now, now).
		Updates(map[string]interface{}{
			"current_highest_bid": amount,
			"highest_bidder_id":   bidderID,
			"total_bids":          gorm.Expr("total_bids + 1"),
			"status":              string(entities.AuctionStatusActive),
			"updated_at":          now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListDueForSettlement returns open auctions whose end time has passed
func (r *AuctionRepository) ListDueForSettlement(ctx context.Context, now time.Time, limit int) ([]*entities.Auction, error) {
	var rows []models.Auction
	query := GetDB(ctx, r.db).
		Where("status NOT IN ? AND end_time <= ?", terminalAuctionStatuses, now.UTC()).
		Order("end_time ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	auctions := make([]*entities.Auction, 0, len(rows))
	for i := range rows {
		auctions = append(auctions, auctionToEntity(&rows[i]))
	}
	return auctions, nil
}

func auctionToModel(a *entities.Auction) *models.Auction {
	return &models.Auction{
		ID:                a.ID,
		GemstoneID:        a.GemstoneID,
		SellerID:          a.SellerID,
		StartPrice:        a.StartPrice,
		CurrentHighestBid: a.CurrentHighestBid,
		HighestBidderID:   uuidPtr(a.HighestBidderID),
		StartTime:         a.StartTime.UTC(),
		EndTime:           a.EndTime.UTC(),
		Status:            string(a.Status),
		TotalBids:         a.TotalBids,
		WinnerID:          uuidPtr(a.WinnerID),
		CompletedAt:       timePtr(a.CompletedAt),
		CancelledAt:       timePtr(a.CancelledAt),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func auctionToEntity(m *models.Auction) *entities.Auction {
	return &entities.Auction{
		ID:                m.ID,
		GemstoneID:        m.GemstoneID,
		SellerID:          m.SellerID,
		StartPrice:        m.StartPrice,
		CurrentHighestBid: m.CurrentHighestBid,
		HighestBidderID:   nullUUID(m.HighestBidderID),
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		Status:            entities.AuctionStatus(m.Status),
		TotalBids:         m.TotalBids,
		WinnerID:          nullUUID(m.WinnerID),
		CompletedAt:       null.TimeFromPtr(m.CompletedAt),
		CancelledAt:       null.TimeFromPtr(m.CancelledAt),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// BidRepository implements the append-only bid ledger
type BidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository
func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create appends a bid
func (r *BidRepository) Create(ctx context.Context, bid *entities.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = utils.GenerateUUIDv7()
	}
	if bid.Status == "" {
		bid.Status = entities.BidStatusPending
	}
	m := bidToModel(bid)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	bid.CreatedAt = m.CreatedAt
	return nil
}

// ListByGemstone returns the bids on a listing, highest first
func (r *BidRepository) ListByGemstone(ctx context.Context, gemstoneID uuid.UUID) ([]*entities.Bid, error) {
	return r.list(GetDB(ctx, r.db).Where("gemstone_id = ?", gemstoneID).Order("amount DESC, created_at ASC"))
}

// ListByAuction returns the bids of an auction, highest first
func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*entities.Bid, error) {
	return r.list(GetDB(ctx, r.db).Where("auction_id = ?", auctionID).Order("amount DESC, created_at ASC"))
}

type bidWithGemRow struct {
	models.Bid
	GemName       string
	GemCurrentBid float64
}

// ListByBidder returns a bidder's history joined with listing name and price
func (r *BidRepository) ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entities.BidWithGem, error) {
	var rows []bidWithGemRow
	err := GetDB(ctx, r.db).Table("bids").
		Select("bids.*, gemstones.name AS gem_name, gemstones.current_bid AS gem_current_bid").
		Joins("LEFT JOIN gemstones ON gemstones.id = bids.gemstone_id").
		Where("bids.bidder_id = ?", bidderID).
		Order("bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*entities.BidWithGem, 0, len(rows))
	for i := range rows {
		out = append(out, &entities.BidWithGem{
			Bid:           *bidToEntity(&rows[i].Bid),
			GemName:       rows[i].GemName,
			GemCurrentBid: rows[i].GemCurrentBid,
		})
	}
	return out, nil
}

// ListAll returns a page of every bid, newest first
func (r *BidRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Bid, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Bid{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	bids, err := r.list(query.Order("created_at DESC"))
	if err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

// Settle accepts the winning bid and refuses every other bid of the auction
func (r *BidRepository) Settle(ctx context.Context, auctionID uuid.UUID, winningBidID uuid.NullUUID) error {
	db := GetDB(ctx, r.db)
	refuse := db.Model(&models.Bid{}).Where("auction_id = ?", auctionID)
	if winningBidID.Valid {
		refuse = refuse.Where("id <> ?", winningBidID.UUID)
	}
	if err := refuse.Update("status", string(entities.BidStatusRefused)).Error; err != nil {
		return err
	}
	if !winningBidID.Valid {
		return nil
	}
	return GetDB(ctx, r.db).Model(&models.Bid{}).
		Where("id = ? AND auction_id = ?", winningBidID.UUID, auctionID).
		Update("status", string(entities.BidStatusAccepted)).Error
}

// GetHighest returns the top bid of an auction, earliest wins a tie
func (r *BidRepository) GetHighest(ctx context.Context, auctionID uuid.UUID) (*entities.Bid, error) {
	var m models.Bid
	err := GetDB(ctx, r.db).Where("auction_id = ?", auctionID).
		Order("amount DESC, created_at ASC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return bidToEntity(&m), nil
}

func (r *BidRepository) list(query *gorm.DB) ([]*entities.Bid, error) {
	var rows []models.Bid
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	bids := make([]*entities.Bid, 0, len(rows))
	for i := range rows {
		bids = append(bids, bidToEntity(&rows[i]))
	}
	return bids, nil
}

func bidToModel(b *entities.Bid) *models.Bid {
	return &models.Bid{
		ID:         b.ID,
		AuctionID:  b.AuctionID,
		GemstoneID: b.GemstoneID,
		BidderID:   b.BidderID,
		Amount:     b.Amount,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

func bidToEntity(m *models.Bid) *entities.Bid {
	return &entities.Bid{
		ID:         m.ID,
		AuctionID:  m.AuctionID,
		GemstoneID: m.GemstoneID,
		BidderID:   m.BidderID,
		Amount:     m.Amount,
		Status:     entities.BidStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}
