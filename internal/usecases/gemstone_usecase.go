package usecases

import (
	"context"
	"fmt"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// MaxGemImages caps the images of one listing
const MaxGemImages = 10

// GemstoneUsecase handles listing moderation and catalog reads
type GemstoneUsecase struct {
	gemRepo  repositories.GemstoneRepository
	userRepo repositories.UserRepository
	files    ports.FileStore
}

// NewGemstoneUsecase creates a new gemstone usecase
func NewGemstoneUsecase(gemRepo repositories.GemstoneRepository, userRepo repositories.UserRepository, files ports.FileStore) *GemstoneUsecase {
	return &GemstoneUsecase{gemRepo: gemRepo, userRepo: userRepo, files: files}
}

// Create stores a draft listing for a verified seller or an admin
func (u *GemstoneUsecase) Create(ctx context.Context, actor policy.Subject, input *entities.GemstoneInput) (*entities.Gemstone, error) {
	if err := validateGemInput(input); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		seller, err := u.userRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !seller.IsVerifiedSeller() {
			return nil, domainerrors.Forbiddenf("seller verification is required to list gemstones")
		}
	}

	gem := &entities.Gemstone{
		SellerID:           actor.UserID,
		VerificationStatus: entities.GemStatusDraft,
		IsActive:           true,
	}
	applyGemInput(gem, input)

	if err := u.gemRepo.Create(ctx, gem); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Gemstone listed", zap.String("gemId", gem.ID.String()), zap.String("sellerId", actor.UserID.String()))
	return gem, nil
}

// Update edits a listing the caller owns while it is still editable.
// Editing a rejected listing sends it back to draft.
func (u *GemstoneUsecase) Update(ctx context.Context, actor policy.Subject, id uuid.UUID, input *entities.GemstoneInput) (*entities.Gemstone, error) {
	if err := validateGemInput(input); err != nil {
		return nil, err
	}
	gem, err := u.ownedGem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !gem.IsEditable() {
		return nil, domainerrors.Conflictf("listing in %s cannot be edited", gem.VerificationStatus)
	}

	applyGemInput(gem, input)
	if gem.VerificationStatus == entities.GemStatusRejected {
		gem.VerificationStatus = entities.GemStatusDraft
		gem.RejectionReason = null.String{}
	}

	if err := u.gemRepo.Update(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

// UploadImages appends stored images to an editable listing
func (u *GemstoneUsecase) UploadImages(ctx context.Context, actor policy.Subject, id uuid.UUID, files []ports.UploadedFile) (*entities.Gemstone, error) {
	if len(files) == 0 {
		return nil, domainerrors.Validation("at least one image is required")
	}
	gem, err := u.ownedGem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !gem.IsEditable() {
		return nil, domainerrors.Conflictf("listing in %s cannot be edited", gem.VerificationStatus)
	}
	if len(gem.Images)+len(files) > MaxGemImages {
		return nil, domainerrors.Validation("a listing can hold at most %d images", MaxGemImages)
	}

	saved := make([]string, 0, len(files))
	for _, f := range files {
		path, err := u.files.Save(ctx, ports.UploadCategoryGems, f)
		if err != nil {
			u.discard(ctx, saved)
			return nil, err
		}
		saved = append(saved, path)
	}

	gem.Images = append(gem.Images, saved...)
	if err := u.gemRepo.Update(ctx, gem); err != nil {
		u.discard(ctx, saved)
		return nil, err
	}
	return gem, nil
}

// Submit moves a draft into the review queue
func (u *GemstoneUsecase) Submit(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.ownedGem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, gem, entities.GemStatusDraft, entities.GemStatusSubmitted)
}

// StartReview marks a submitted listing as being reviewed
func (u *GemstoneUsecase) StartReview(ctx context.Context, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.transition(ctx, gem, entities.GemStatusSubmitted, entities.GemStatusUnderReview)
}

// Verify approves a listing under review
func (u *GemstoneUsecase) Verify(ctx context.Context, admin policy.Subject, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gem.VerificationStatus != entities.GemStatusUnderReview && gem.VerificationStatus != entities.GemStatusSubmitted {
		return nil, domainerrors.ErrInvalidTransition
	}

	gem.VerificationStatus = entities.GemStatusVerified
	gem.RejectionReason = null.String{}
	gem.VerifiedBy = uuid.NullUUID{UUID: admin.UserID, Valid: true}
	gem.VerifiedAt = null.TimeFrom(nowFunc().UTC())

	if err := u.gemRepo.Update(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

// Reject refuses a listing. The reason must be at least
// MinRejectionReasonLength characters or nothing changes.
func (u *GemstoneUsecase) Reject(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) (*entities.Gemstone, error) {
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) < entities.MinRejectionReasonLength {
		return nil, domainerrors.Validation("rejection reason must be at least %d characters", entities.MinRejectionReasonLength)
	}
	gem, err := u.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gem.VerificationStatus != entities.GemStatusUnderReview && gem.VerificationStatus != entities.GemStatusSubmitted {
		return nil, domainerrors.ErrInvalidTransition
	}

	gem.VerificationStatus = entities.GemStatusRejected
	gem.RejectionReason = null.StringFrom(reason)
	gem.VerifiedBy = uuid.NullUUID{UUID: admin.UserID, Valid: true}
	gem.VerifiedAt = null.TimeFrom(nowFunc().UTC())

	if err := u.gemRepo.Update(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

// BulkUpdate applies allow-listed field updates to many listings
func (u *GemstoneUsecase) BulkUpdate(ctx context.Context, input *entities.GemstoneBulkUpdate) (int64, error) {
	if len(input.IDs) == 0 {
		return 0, domainerrors.Validation("ids are required")
	}

	columns := make(map[string]interface{}, len(input.Fields))
	for field, value := range input.Fields {
		column, ok := entities.BulkUpdatableGemFields[field]
		if !ok {
			continue
		}
		v, err := bulkValue(field, value)
		if err != nil {
			return 0, err
		}
		columns[column] = v
	}
	if len(columns) == 0 {
		return 0, domainerrors.Validation("no updatable fields supplied")
	}

	return u.gemRepo.BulkUpdate(ctx, input.IDs, columns)
}

func bulkValue(field string, value interface{}) (interface{}, error) {
	switch field {
	case "verificationStatus":
		s, ok := value.(string)
		if !ok || !entities.GemVerificationStatus(s).IsValid() {
			return nil, domainerrors.Validation("invalid verificationStatus")
		}
		return s, nil
	case "isActive", "featured":
		b, ok := value.(bool)
		if !ok {
			return nil, domainerrors.Validation("%s must be a boolean", field)
		}
		return b, nil
	case "category":
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, domainerrors.Validation("category must be a non-empty string")
		}
		return strings.TrimSpace(s), nil
	}
	return nil, domainerrors.Validation("field %s is not updatable", field)
}

// Deactivate hides a listing without deleting it. A listing with a live
// auction stays active until that auction is cancelled.
func (u *GemstoneUsecase) Deactivate(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.ownedGem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !gem.IsActive {
		return gem, nil
	}
	if gem.IsAuctioned {
		return nil, domainerrors.Conflictf("cancel the live auction before deactivating this listing")
	}
	if err := u.gemRepo.Deactivate(ctx, gem.ID); err != nil {
		return nil, err
	}
	gem.IsActive = false
	return gem, nil
}

// GetByID returns a listing. Listings that are not public are only visible
// to their seller and admins; everyone else gets NotFound.
func (u *GemstoneUsecase) GetByID(ctx context.Context, viewer policy.Subject, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gem.IsPubliclyListed() {
		return gem, nil
	}
	if policy.AuthorizeOwnerOrAdmin(viewer, gem.SellerID) == policy.Allow {
		return gem, nil
	}
	return nil, domainerrors.NotFoundf("gemstone %s", id)
}

// ListPublic returns verified active listings, featured first
func (u *GemstoneUsecase) ListPublic(ctx context.Context, category string, featuredOnly bool, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error) {
	return u.list(ctx, entities.GemstoneFilter{
		Statuses:     []entities.GemVerificationStatus{entities.GemStatusVerified},
		ActiveOnly:   true,
		Category:     strings.TrimSpace(category),
		FeaturedOnly: featuredOnly,
	}, p)
}

// ListMine returns every listing of a seller
func (u *GemstoneUsecase) ListMine(ctx context.Context, sellerID uuid.UUID, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error) {
	return u.list(ctx, entities.GemstoneFilter{
		SellerID: uuid.NullUUID{UUID: sellerID, Valid: true},
	}, p)
}

// ListPendingReview returns the admin moderation queue
func (u *GemstoneUsecase) ListPendingReview(ctx context.Context, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error) {
	return u.list(ctx, entities.GemstoneFilter{
		Statuses: []entities.GemVerificationStatus{entities.GemStatusSubmitted, entities.GemStatusUnderReview},
	}, p)
}

// ListAll returns every listing, optionally narrowed to one status
func (u *GemstoneUsecase) ListAll(ctx context.Context, status entities.GemVerificationStatus, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error) {
	filter := entities.GemstoneFilter{}
	if status != "" {
		if !status.IsValid() {
			return nil, utils.PaginationMeta{}, domainerrors.Validation("unknown verification status %q", status)
		}
		filter.Statuses = []entities.GemVerificationStatus{status}
	}
	return u.list(ctx, filter, p)
}

func (u *GemstoneUsecase) list(ctx context.Context, filter entities.GemstoneFilter, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error) {
	filter.Limit = p.Limit
	filter.Offset = p.CalculateOffset()
	gems, total, err := u.gemRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return gems, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

func (u *GemstoneUsecase) ownedGem(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Gemstone, error) {
	gem, err := u.gemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.AuthorizeOwnerOrAdmin(actor, gem.SellerID) == policy.Deny {
		return nil, domainerrors.Forbiddenf("not the seller of this listing")
	}
	return gem, nil
}

func (u *GemstoneUsecase) transition(ctx context.Context, gem *entities.Gemstone, from, to entities.GemVerificationStatus) (*entities.Gemstone, error) {
	if gem.VerificationStatus != from {
		return nil, fmt.Errorf("%s -> %s: %w", gem.VerificationStatus, to, domainerrors.ErrInvalidTransition)
	}
	gem.VerificationStatus = to
	if err := u.gemRepo.Update(ctx, gem); err != nil {
		return nil, err
	}
	return gem, nil
}

func (u *GemstoneUsecase) discard(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := u.files.Delete(ctx, p); err != nil {
			logger.Warn(ctx, "Failed to remove upload", zap.String("path", p), zap.Error(err))
		}
	}
}

func validateGemInput(in *entities.GemstoneInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domainerrors.Validation("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return domainerrors.Validation("category is required")
	}
	if in.MinimumBid <= 0 {
		return domainerrors.Validation("minimumBid must be greater than zero")
	}
	if in.ReservePrice != nil && *in.ReservePrice < in.MinimumBid {
		return domainerrors.Validation("reservePrice must be at least minimumBid")
	}
	if len(in.Images) > MaxGemImages {
		return domainerrors.Validation("a listing can hold at most %d images", MaxGemImages)
	}
	return nil
}

func applyGemInput(gem *entities.Gemstone, in *entities.GemstoneInput) {
	gem.Name = strings.TrimSpace(in.Name)
	gem.Category = strings.TrimSpace(in.Category)
	gem.Description = in.Description
	gem.Carat = in.Carat
	gem.Color = in.Color
	gem.Clarity = in.Clarity
	gem.Cut = in.Cut
	gem.Origin = in.Origin
	gem.CertificateNumber = null.NewString(in.CertificateNumber, in.CertificateNumber != "")
	if in.Images != nil {
		gem.Images = in.Images
	}
	gem.MinimumBid = in.MinimumBid
	gem.ReservePrice = null.Float64FromPtr(in.ReservePrice)
}
