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
	"gorm.io/gorm"
)

// FAQRepository implements help-centre data operations
type FAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQ repository
func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// Create inserts an entry
func (r *FAQRepository) Create(ctx context.Context, faq *entities.FAQ) error {
	if faq.ID == uuid.Nil {
		faq.ID = utils.GenerateUUIDv7()
	}
	m := faqToModel(faq)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	faq.CreatedAt = m.CreatedAt
	faq.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an entry by ID
func (r *FAQRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FAQ, error) {
	var m models.FAQ
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return faqToEntity(&m), nil
}

// Update updates an entry
func (r *FAQRepository) Update(ctx context.Context, faq *entities.FAQ) error {
	m := faqToModel(faq)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(&models.FAQ{}).Where("id = ?", faq.ID).
		Select("question", "answer", "category", "display_order", "is_published", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	faq.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete soft deletes an entry
func (r *FAQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Delete(&models.FAQ{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns entries ordered for display
func (r *FAQRepository) List(ctx context.Context, publishedOnly bool) ([]*entities.FAQ, error) {
	query := GetDB(ctx, r.db).Order("display_order ASC, created_at ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var rows []models.FAQ
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.FAQ, 0, len(rows))
	for i := range rows {
		out = append(out, faqToEntity(&rows[i]))
	}
	return out, nil
}

func faqToModel(f *entities.FAQ) *models.FAQ {
	return &models.FAQ{
		ID:           f.ID,
		Question:     f.Question,
		Answer:       f.Answer,
		Category:     f.Category,
		DisplayOrder: f.DisplayOrder,
		IsPublished:  f.IsPublished,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func faqToEntity(m *models.FAQ) *entities.FAQ {
	return &entities.FAQ{
		ID:           m.ID,
		Question:     m.Question,
		Answer:       m.Answer,
		Category:     m.Category,
		DisplayOrder: m.DisplayOrder,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
