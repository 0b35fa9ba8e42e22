package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VerificationService interface {
	GetVerificationStatus(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error)
	UploadNIC(ctx context.Context, userID uuid.UUID, front, back *ports.UploadedFile) (*entities.VerificationStatus, error)
	UploadBusinessDocuments(ctx context.Context, userID uuid.UUID, files []ports.UploadedFile) (*entities.VerificationStatus, error)
	SkipBusinessDocuments(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error)
	SetPayout(ctx context.Context, userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error)
	GetPayout(ctx context.Context, userID uuid.UUID) (*entities.Payout, error)
	RequestSellerReview(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error)
	UpdateNICStatus(ctx context.Context, input *entities.ReviewInput) (*entities.User, error)
	UpdateBusinessStatus(ctx context.Context, input *entities.ReviewInput) (*entities.User, error)
	UpdateSellerStatus(ctx context.Context, input *entities.SellerReviewInput) (*entities.User, error)
	ListPendingSellers(ctx context.Context) ([]*entities.User, error)
	UpdateRegistrationPaymentStatus(ctx context.Context, userID uuid.UUID, status entities.RegistrationPaymentStatus) (*entities.User, error)
}

// VerificationHandler serves the seller onboarding pipelines
type VerificationHandler struct {
	verificationUsecase VerificationService
}

func NewVerificationHandler(verificationUsecase VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// GetStatus returns every pipeline status for the caller
// GET /api/verification/status
func (h *VerificationHandler) GetStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.verificationUsecase.GetVerificationStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// UploadNIC accepts the front and back NIC images
// POST /api/verification/nic/upload (multipart: front, back)
func (h *VerificationHandler) UploadNIC(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.verificationUsecase.UploadNIC(c.Request.Context(), userID, formFile(c, "front"), formFile(c, "back"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// UploadBusiness accepts up to five business documents
// POST /api/verification/business/upload (multipart: documents)
func (h *VerificationHandler) UploadBusiness(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	files, err := formFiles(c, "documents")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Multipart form with documents is required"))
		return
	}

	status, err := h.verificationUsecase.UploadBusinessDocuments(c.Request.Context(), userID, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// SkipBusiness opts out of business documents
// POST /api/verification/business/skip
func (h *VerificationHandler) SkipBusiness(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.verificationUsecase.SkipBusinessDocuments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// SetPayout creates or replaces the caller's payout details
// PUT /api/verification/payout
func (h *VerificationHandler) SetPayout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var input entities.PayoutInput
	if !bindJSON(c, &input) {
		return
	}

	payout, err := h.verificationUsecase.SetPayout(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payout)
}

// GetPayout returns the caller's payout details
// GET /api/verification/payout
func (h *VerificationHandler) GetPayout(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	payout, err := h.verificationUsecase.GetPayout(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payout)
}

// RequestSellerReview queues the caller for seller verification
// POST /api/verification/seller/request
func (h *VerificationHandler) RequestSellerReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.verificationUsecase.RequestSellerReview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, status)
}

// UpdateNICStatus records the admin NIC decision
// POST /api/verification/nic/update-status
func (h *VerificationHandler) UpdateNICStatus(c *gin.Context) {
	var input entities.ReviewInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.verificationUsecase.UpdateNICStatus(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateBusinessStatus records the admin business-document decision
// POST /api/verification/business/update-status
func (h *VerificationHandler) UpdateBusinessStatus(c *gin.Context) {
	var input entities.ReviewInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.verificationUsecase.UpdateBusinessStatus(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateSellerStatus records the admin seller decision
// POST /api/verification/seller/update-status
func (h *VerificationHandler) UpdateSellerStatus(c *gin.Context) {
	var input entities.SellerReviewInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.verificationUsecase.UpdateSellerStatus(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ListPendingSellers lists users awaiting the seller decision
// GET /api/verification/seller/pending
func (h *VerificationHandler) ListPendingSellers(c *gin.Context) {
	users, err := h.verificationUsecase.ListPendingSellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

type registrationPaymentRequest struct {
	Status entities.RegistrationPaymentStatus `json:"status" binding:"required"`
}

// UpdateRegistrationPayment records the seller registration fee status
// PUT /api/admin/users/:id/registration-payment
func (h *VerificationHandler) UpdateRegistrationPayment(c *gin.Context) {
	userID, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	var req registrationPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.verificationUsecase.UpdateRegistrationPaymentStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
