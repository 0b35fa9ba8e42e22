package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OnlinePaymentService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateOnlinePaymentInput) (*entities.OnlinePayment, error)
	VerifyOTP(ctx context.Context, userID uuid.UUID, input *entities.VerifyOTPInput) (*entities.OnlinePayment, error)
	ResendOTP(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error)
	Complete(ctx context.Context, userID, id uuid.UUID, gatewayTxnID string) (*entities.OnlinePayment, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) (*entities.OnlinePayment, error)
	Get(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.OnlinePayment, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entities.OnlinePayment, error)
}

// OnlinePaymentHandler handles OTP-gated card payments
type OnlinePaymentHandler struct {
	onlinePaymentUsecase OnlinePaymentService
}

func NewOnlinePaymentHandler(onlinePaymentUsecase OnlinePaymentService) *OnlinePaymentHandler {
	return &OnlinePaymentHandler{onlinePaymentUsecase: onlinePaymentUsecase}
}

// Create starts a card payment and sends the OTP
// POST /api/online-payments
func (h *OnlinePaymentHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var input entities.CreateOnlinePaymentInput
	if !bindJSON(c, &input) {
		return
	}

	payment, err := h.onlinePaymentUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":            payment.ID,
		"transactionId": payment.TransactionID,
		"status":        payment.Status,
		"otpExpiry":     payment.OTPExpiry,
	})
}

// VerifyOTP confirms the one-time password
// POST /api/online-payments/verify-otp
func (h *OnlinePaymentHandler) VerifyOTP(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var input entities.VerifyOTPInput
	if !bindJSON(c, &input) {
		return
	}

	payment, err := h.onlinePaymentUsecase.VerifyOTP(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// ResendOTP issues a fresh code
// POST /api/online-payments/:id/resend-otp
func (h *OnlinePaymentHandler) ResendOTP(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.onlinePaymentUsecase.ResendOTP(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":        payment.ID,
		"status":    payment.Status,
		"otpExpiry": payment.OTPExpiry,
	})
}

// Complete records the gateway confirmation
// PUT /api/online-payments/:id/complete
func (h *OnlinePaymentHandler) Complete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}
	var input entities.CompleteOnlinePaymentInput
	if !bindJSON(c, &input) {
		return
	}

	payment, err := h.onlinePaymentUsecase.Complete(c.Request.Context(), userID, id, input.GatewayTransactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// Cancel abandons a pending payment
// PUT /api/online-payments/:id/cancel
func (h *OnlinePaymentHandler) Cancel(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.onlinePaymentUsecase.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

type markFailedRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MarkFailed records a gateway failure
// PUT /api/online-payments/:id/fail
func (h *OnlinePaymentHandler) MarkFailed(c *gin.Context) {
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}
	var req markFailedRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.onlinePaymentUsecase.MarkFailed(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// Get returns one payment to its owner or an admin
// GET /api/online-payments/:id
func (h *OnlinePaymentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.onlinePaymentUsecase.Get(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// ListMine lists the caller's card payments
// GET /api/online-payments
func (h *OnlinePaymentHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	payments, err := h.onlinePaymentUsecase.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}
