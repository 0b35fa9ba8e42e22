package usecases

import (
	"context"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// FAQUsecase manages help-centre entries
type FAQUsecase struct {
	repo repositories.FAQRepository
}

// NewFAQUsecase creates a new FAQ usecase
func NewFAQUsecase(repo repositories.FAQRepository) *FAQUsecase {
	return &FAQUsecase{repo: repo}
}

// ListPublished returns what visitors see
func (u *FAQUsecase) ListPublished(ctx context.Context) ([]*entities.FAQ, error) {
	return u.repo.List(ctx, true)
}

// ListAll includes drafts
func (u *FAQUsecase) ListAll(ctx context.Context) ([]*entities.FAQ, error) {
	return u.repo.List(ctx, false)
}

func (u *FAQUsecase) Create(ctx context.Context, input *entities.FAQInput) (*entities.FAQ, error) {
	faq := &entities.FAQ{IsPublished: true}
	if err := applyFAQInput(faq, input); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (u *FAQUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.FAQInput) (*entities.FAQ, error) {
	faq, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFAQInput(faq, input); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (u *FAQUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.repo.Delete(ctx, id)
}

func applyFAQInput(faq *entities.FAQ, in *entities.FAQInput) error {
	question := strings.TrimSpace(in.Question)
	answer := strings.TrimSpace(in.Answer)
	if question == "" || answer == "" {
		return domainerrors.Validation("question and answer are required")
	}
	if in.DisplayOrder < 0 {
		return domainerrors.Validation("displayOrder cannot be negative")
	}
	faq.Question = question
	faq.Answer = answer
	faq.Category = strings.TrimSpace(in.Category)
	if faq.Category == "" {
		faq.Category = "general"
	}
	faq.DisplayOrder = in.DisplayOrder
	if in.IsPublished != nil {
		faq.IsPublished = *in.IsPublished
	}
	return nil
}
