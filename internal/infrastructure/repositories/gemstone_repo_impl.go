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

// GemstoneRepository implements listing data operations
type GemstoneRepository struct {
	db *gorm.DB
}

// NewGemstoneRepository creates a new gemstone repository
func NewGemstoneRepository(db *gorm.DB) *GemstoneRepository {
	return &GemstoneRepository{db: db}
}

// Create inserts a listing
func (r *GemstoneRepository) Create(ctx context.Context, gem *entities.Gemstone) error {
	if gem.ID == uuid.Nil {
		gem.ID = utils.GenerateUUIDv7()
	}
	m := gemToModel(gem)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	gem.CreatedAt = m.CreatedAt
	gem.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a listing by ID
func (r *GemstoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Gemstone, error) {
	var m models.Gemstone
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return gemToEntity(&m), nil
}

// GetByIDs loads many listings keyed by id
func (r *GemstoneRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Gemstone, error) {
	out := make(map[uuid.UUID]*entities.Gemstone, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Gemstone
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = gemToEntity(&rows[i])
	}
	return out, nil
}

// Update writes every mutable column of the listing
func (r *GemstoneRepository) Update(ctx context.Context, gem *entities.Gemstone) error {
	m := gemToModel(gem)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(&models.Gemstone{}).Where("id = ?", gem.ID).
		Select("*").Omit("id", "seller_id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	gem.UpdatedAt = m.UpdatedAt
	return nil
}

// List returns a page of listings and the total match count
func (r *GemstoneRepository) List(ctx context.Context, filter entities.GemstoneFilter) ([]*entities.Gemstone, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Gemstone{})

	if filter.SellerID.Valid {
		query = query.Where("seller_id = ?", filter.SellerID.UUID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("verification_status IN ?", statuses)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []models.Gemstone
	if err := query.Order("featured DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	gems := make([]*entities.Gemstone, 0, len(rows))
	for i := range rows {
		gems = append(gems, gemToEntity(&rows[i]))
	}
	return gems, total, nil
}

// BulkUpdate applies already allow-listed column updates to every id
func (r *GemstoneRepository) BulkUpdate(ctx context.Context, ids []uuid.UUID, columns map[string]interface{}) (int64, error) {
	if len(ids) == 0 || len(columns) == 0 {
		return 0, nil
	}
	updates := make(map[string]interface{}, len(columns)+1)
	for k, v := range columns {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	result := GetDB(ctx, r.db).Model(&models.Gemstone{}).Where("id IN ?", ids).Updates(updates)
	return result.RowsAffected, result.Error
}

// SetAuctioned flags whether the listing currently has an auction
func (r *GemstoneRepository) SetAuctioned(ctx context.Context, id uuid.UUID, auctioned bool) error {
	result := GetDB(ctx, r.db).Model(&models.Gemstone{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_auctioned": auctioned, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate hides a listing that has no live auction
func (r *GemstoneRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Model(&models.Gemstone{}).
		Where("id = ? AND is_auctioned = ?", id, false).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := GetDB(ctx, r.db).Model(&models.Gemstone{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.Conflictf("gemstone %s has a live auction", id)
	}
	return nil
}

// SyncBid raises the denormalized current bid and counts the bid
func (r *GemstoneRepository) SyncBid(ctx context.Context, id uuid.UUID, amount float64) error {
	result := GetDB(ctx, r.db).Model(&models.Gemstone{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_bid": amount,
			"bid_count":   gorm.Expr("bid_count + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func gemToModel(g *entities.Gemstone) *models.Gemstone {
	return &models.Gemstone{
		ID:                 g.ID,
		SellerID:           g.SellerID,
		Name:               g.Name,
		Category:           g.Category,
		Description:        g.Description,
		Carat:              g.Carat,
		Color:              g.Color,
		Clarity:            g.Clarity,
		Cut:                g.Cut,
		Origin:             g.Origin,
		CertificateNumber:  stringPtr(g.CertificateNumber),
		Images:             g.Images,
		MinimumBid:         g.MinimumBid,
		ReservePrice:       g.ReservePrice.Ptr(),
		CurrentBid:         g.CurrentBid,
		BidCount:           g.BidCount,
		VerificationStatus: string(g.VerificationStatus),
		RejectionReason:    stringPtr(g.RejectionReason),
		VerifiedBy:         uuidPtr(g.VerifiedBy),
		VerifiedAt:         timePtr(g.VerifiedAt),
		IsActive:           g.IsActive,
		IsAuctioned:        g.IsAuctioned,
		Featured:           g.Featured,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

func gemToEntity(m *models.Gemstone) *entities.Gemstone {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &entities.Gemstone{
		ID:                 m.ID,
		SellerID:           m.SellerID,
		Name:               m.Name,
		Category:           m.Category,
		Description:        m.Description,
		Carat:              m.Carat,
		Color:              m.Color,
		Clarity:            m.Clarity,
		Cut:                m.Cut,
		Origin:             m.Origin,
		CertificateNumber:  null.StringFromPtr(m.CertificateNumber),
		Images:             images,
		MinimumBid:         m.MinimumBid,
		ReservePrice:       null.Float64FromPtr(m.ReservePrice),
		CurrentBid:         m.CurrentBid,
		BidCount:           m.BidCount,
		VerificationStatus: entities.GemVerificationStatus(m.VerificationStatus),
		RejectionReason:    null.StringFromPtr(m.RejectionReason),
		VerifiedBy:         nullUUID(m.VerifiedBy),
		VerifiedAt:         null.TimeFromPtr(m.VerifiedAt),
		IsActive:           m.IsActive,
		IsAuctioned:        m.IsAuctioned,
		Featured:           m.Featured,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
