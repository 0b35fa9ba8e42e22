package repositories

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// FAQRepository defines help-centre data operations
type FAQRepository interface {
	Create(ctx context.Context, faq *entities.FAQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.FAQ, error)
	Update(ctx context.Context, faq *entities.FAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, publishedOnly bool) ([]*entities.FAQ, error)
}
