package usecases

import (
	"context"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// UserUsecase serves profile reads and admin account management
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetProfile returns the caller's account
func (u *UserUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// ListUsers lists accounts for admins
func (u *UserUsecase) ListUsers(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domainerrors.Validation("unknown status %q", filter.Status)
	}
	return u.userRepo.List(ctx, filter)
}

// UpdateUserStatus suspends, deletes or reactivates an account. Admins
// cannot change their own status.
func (u *UserUsecase) UpdateUserStatus(ctx context.Context, actor policy.Subject, id uuid.UUID, status entities.UserStatus) error {
	if !status.IsValid() {
		return domainerrors.Validation("unknown status %q", status)
	}
	if actor.UserID == id {
		return domainerrors.Forbiddenf("cannot change your own status")
	}
	return u.userRepo.UpdateStatus(ctx, id, status)
}
