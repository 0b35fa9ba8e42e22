package usecases

import (
	"context"
	"errors"
	"strings"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/domain/repositories"
	"gem-auction.backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// VerificationUsecase runs the NIC, business, payout and seller pipelines
type VerificationUsecase struct {
	userRepo   repositories.UserRepository
	payoutRepo repositories.PayoutRepository
	uow        repositories.UnitOfWork
	files      ports.FileStore
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	userRepo repositories.UserRepository,
	payoutRepo repositories.PayoutRepository,
	uow repositories.UnitOfWork,
	files ports.FileStore,
) *VerificationUsecase {
	return &VerificationUsecase{
		userRepo:   userRepo,
		payoutRepo: payoutRepo,
		uow:        uow,
		files:      files,
	}
}

// GetVerificationStatus returns every pipeline of a user as stored
func (u *VerificationUsecase) GetVerificationStatus(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	configured := true
	if _, err := u.payoutRepo.GetByUserID(ctx, userID); err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		configured = false
	}

	return &entities.VerificationStatus{
		UserID:                    user.ID,
		NICStatus:                 user.NICStatus,
		NICFrontImage:             user.NICFrontImage,
		NICBackImage:              user.NICBackImage,
		NICRejectionReason:        user.NICRejectionReason,
		BusinessStatus:            user.BusinessStatus,
		BusinessRejectionReason:   user.BusinessRejectionReason,
		PayoutStatus:              user.PayoutStatus,
		PayoutConfigured:          configured,
		RegistrationPaymentStatus: user.RegistrationPaymentStatus,
		SellerVerificationStatus:  user.SellerVerificationStatus,
		IsVerifiedSeller:          user.IsVerifiedSeller(),
	}, nil
}

// UploadNIC stores both NIC images, resets the pipeline to pending and
// removes the images of the previous attempt.
func (u *VerificationUsecase) UploadNIC(ctx context.Context, userID uuid.UUID, front, back *ports.UploadedFile) (*entities.VerificationStatus, error) {
	if front == nil || back == nil {
		return nil, domainerrors.Validation("both NIC front and back images are required")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.NICStatus == entities.DocumentStatusApproved {
		return nil, domainerrors.ErrAlreadyApproved
	}

	saved, err := u.saveAll(ctx, ports.UploadCategoryNIC, []ports.UploadedFile{*front, *back})
	if err != nil {
		return nil, err
	}

	previous := []string{user.NICFrontImage.String, user.NICBackImage.String}
	user.NICFrontImage = null.StringFrom(saved[0])
	user.NICBackImage = null.StringFrom(saved[1])
	user.NICStatus = entities.DocumentStatusPending
	user.NICRejectionReason = null.String{}

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.removeFiles(ctx, saved)
		return nil, err
	}
	u.removeFiles(ctx, previous)

	return u.GetVerificationStatus(ctx, userID)
}

// UploadBusinessDocuments replaces the business document set
func (u *VerificationUsecase) UploadBusinessDocuments(ctx context.Context, userID uuid.UUID, files []ports.UploadedFile) (*entities.VerificationStatus, error) {
	if len(files) < entities.MinBusinessDocuments || len(files) > entities.MaxBusinessDocuments {
		return nil, domainerrors.Validation("between %d and %d business documents are required",
			entities.MinBusinessDocuments, entities.MaxBusinessDocuments)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BusinessStatus == entities.DocumentStatusApproved {
		return nil, domainerrors.ErrAlreadyApproved
	}

	saved, err := u.saveAll(ctx, ports.UploadCategoryBusiness, files)
	if err != nil {
		return nil, err
	}

	previous := user.BusinessDocuments
	user.BusinessDocuments = saved
	user.BusinessStatus = entities.DocumentStatusPending
	user.BusinessRejectionReason = null.String{}

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.removeFiles(ctx, saved)
		return nil, err
	}
	u.removeFiles(ctx, previous)

	return u.GetVerificationStatus(ctx, userID)
}

// SkipBusinessDocuments marks the optional business pipeline as skipped
func (u *VerificationUsecase) SkipBusinessDocuments(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BusinessStatus == entities.DocumentStatusApproved {
		return nil, domainerrors.ErrAlreadyApproved
	}

	user.BusinessStatus = entities.DocumentStatusSkipped
	user.BusinessRejectionReason = null.String{}
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.GetVerificationStatus(ctx, userID)
}

// SetPayout stores the payout destination and marks payout completed in
// the same transaction.
func (u *VerificationUsecase) SetPayout(ctx context.Context, userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
	payout, err := buildPayout(userID, input)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.userRepo.GetByID(txCtx, userID); err != nil {
			return err
		}
		if err := u.payoutRepo.Upsert(txCtx, payout); err != nil {
			return err
		}
		return u.userRepo.UpdatePayoutStatus(txCtx, userID, entities.PayoutStatusCompleted)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// GetPayout returns the caller's payout destination
func (u *VerificationUsecase) GetPayout(ctx context.Context, userID uuid.UUID) (*entities.Payout, error) {
	return u.payoutRepo.GetByUserID(ctx, userID)
}

func buildPayout(userID uuid.UUID, in *entities.PayoutInput) (*entities.Payout, error) {
	p := &entities.Payout{UserID: userID, Method: in.Method}
	switch in.Method {
	case entities.PayoutMethodBankAccount:
		if strings.TrimSpace(in.BankName) == "" || strings.TrimSpace(in.AccountHolder) == "" || strings.TrimSpace(in.AccountNumber) == "" {
			return nil, domainerrors.Validation("bank name, account holder and account number are required")
		}
		p.BankName = strings.TrimSpace(in.BankName)
		p.BranchName = strings.TrimSpace(in.BranchName)
		p.AccountHolder = strings.TrimSpace(in.AccountHolder)
		p.AccountNumber = strings.TrimSpace(in.AccountNumber)
	case entities.PayoutMethodMobileMoney:
		if strings.TrimSpace(in.MobileProvider) == "" || strings.TrimSpace(in.MobileNumber) == "" {
			return nil, domainerrors.Validation("mobile provider and number are required")
		}
		p.MobileProvider = strings.TrimSpace(in.MobileProvider)
		p.MobileNumber = strings.TrimSpace(in.MobileNumber)
	default:
		return nil, domainerrors.Validation("unknown payout method %q", in.Method)
	}
	return p, nil
}

// RequestSellerReview queues the caller for admin seller review once a NIC
// has been submitted.
func (u *VerificationUsecase) RequestSellerReview(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	switch user.SellerVerificationStatus {
	case entities.SellerVerificationNotStarted, entities.SellerVerificationRejected:
	default:
		return nil, domainerrors.ErrInvalidTransition
	}
	if user.NICStatus != entities.DocumentStatusPending && user.NICStatus != entities.DocumentStatusApproved {
		return nil, domainerrors.Conflictf("NIC must be uploaded before requesting seller review")
	}

	user.SellerVerificationStatus = entities.SellerVerificationInReview
	user.SellerRejectionReason = null.String{}
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.GetVerificationStatus(ctx, userID)
}

// UpdateNICStatus records the admin decision on a user's NIC
func (u *VerificationUsecase) UpdateNICStatus(ctx context.Context, input *entities.ReviewInput) (*entities.User, error) {
	reason, err := reviewReason(input.Status, input.RejectionReason)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.NICStatus == entities.DocumentStatusNotUploaded {
		return nil, domainerrors.Conflictf("no NIC has been uploaded")
	}

	user.NICStatus = input.Status
	user.NICRejectionReason = reason
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateBusinessStatus records the admin decision on business documents
func (u *VerificationUsecase) UpdateBusinessStatus(ctx context.Context, input *entities.ReviewInput) (*entities.User, error) {
	reason, err := reviewReason(input.Status, input.RejectionReason)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(user.BusinessDocuments) == 0 {
		return nil, domainerrors.Conflictf("no business documents have been uploaded")
	}

	user.BusinessStatus = input.Status
	user.BusinessRejectionReason = reason
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func reviewReason(status entities.DocumentStatus, reason string) (null.String, error) {
	if !status.IsReviewOutcome() {
		return null.String{}, domainerrors.Validation("status must be approved or rejected")
	}
	if status == entities.DocumentStatusRejected {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return null.String{}, domainerrors.Validation("a rejection reason is required")
		}
		return null.StringFrom(reason), nil
	}
	return null.String{}, nil
}

// UpdateSellerStatus moves the seller gate. Verifying requires an approved
// NIC and promotes a plain user to seller.
func (u *VerificationUsecase) UpdateSellerStatus(ctx context.Context, input *entities.SellerReviewInput) (*entities.User, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.Validation("unknown seller status %q", input.Status)
	}
	reason := strings.TrimSpace(input.RejectionReason)
	if input.Status == entities.SellerVerificationRejected && reason == "" {
		return nil, domainerrors.Validation("a rejection reason is required")
	}

	user, err := u.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Status == entities.SellerVerificationVerified && user.NICStatus != entities.DocumentStatusApproved {
		return nil, domainerrors.Conflictf("NIC must be approved before seller verification")
	}

	user.SellerVerificationStatus = input.Status
	user.SellerRejectionReason = null.String{}
	if input.Status == entities.SellerVerificationRejected {
		user.SellerRejectionReason = null.StringFrom(reason)
	}
	if input.Status == entities.SellerVerificationVerified && user.Role == entities.UserRoleUser {
		user.Role = entities.UserRoleSeller
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListPendingSellers returns users an admin can review now
func (u *VerificationUsecase) ListPendingSellers(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListPendingSellers(ctx)
}

// UpdateRegistrationPaymentStatus records the seller registration fee state
func (u *VerificationUsecase) UpdateRegistrationPaymentStatus(ctx context.Context, userID uuid.UUID, status entities.RegistrationPaymentStatus) (*entities.User, error) {
	if !status.IsValid() {
		return nil, domainerrors.Validation("unknown registration payment status %q", status)
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RegistrationPaymentStatus = status
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *VerificationUsecase) saveAll(ctx context.Context, category string, files []ports.UploadedFile) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, f := range files {
		path, err := u.files.Save(ctx, category, f)
		if err != nil {
			u.removeFiles(ctx, saved)
			return nil, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

func (u *VerificationUsecase) removeFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := u.files.Delete(ctx, p); err != nil {
			logger.Warn(ctx, "Failed to remove stale upload", zap.String("path", p), zap.Error(err))
		}
	}
}
