package usecases

import (
	"context"
	"errors"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/pkg/crypto"
	"gem-auction.backend/pkg/jwt"
)

var hashPassword = crypto.HashPassword

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a plain user account with every verification pipeline
// at its initial state.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, domainerrors.Validation("email is required")
	}

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:                      strings.TrimSpace(input.Name),
		Email:                     email,
		Phone:                     strings.TrimSpace(input.Phone),
		Password:                  passwordHash,
		Role:                      entities.UserRoleUser,
		Status:                    entities.UserStatusActive,
		NICStatus:                 entities.DocumentStatusNotUploaded,
		BusinessStatus:            entities.DocumentStatusNotUploaded,
		PayoutStatus:              entities.PayoutStatusNotConfigured,
		RegistrationPaymentStatus: entities.RegistrationPaymentUnpaid,
		SellerVerificationStatus:  entities.SellerVerificationNotStarted,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domainerrors.ErrAccountInactive
	}

	token, err := u.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: nowFunc().Add(u.jwtService.Expiry()),
		User:      user,
	}, nil
}

// TokenTTL is how long an issued token stays valid
func (u *AuthUsecase) TokenTTL() int {
	return int(u.jwtService.Expiry().Seconds())
}
