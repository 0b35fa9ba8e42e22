package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error)
	GetPayment(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Payment, error)
	ListMine(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error)
	List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error)
	UpdatePaymentStatus(ctx context.Context, admin policy.Subject, id uuid.UUID, status entities.PaymentStatus) (*entities.Payment, error)
	DeletePayment(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) error
}

// PaymentHandler handles bank deposit payments
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreatePayment records a bank deposit with its slip
// POST /api/payments (multipart: slip + fields, or JSON with slipPath)
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input entities.CreatePaymentInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.paymentUsecase.CreatePayment(c.Request.Context(), userID, &input, formFile(c, "slip"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// GetPayment gets a payment by ID
// GET /api/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentUsecase.GetPayment(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// ListMine lists payments for the current user
// GET /api/payments/mine
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	payments, meta, err := h.paymentUsecase.ListMine(c.Request.Context(), userID, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, payments, meta)
}

// List is the admin payment queue
// GET /api/payments?status=
func (h *PaymentHandler) List(c *gin.Context) {
	status := entities.PaymentStatus(c.Query("status"))

	payments, meta, err := h.paymentUsecase.List(c.Request.Context(), status, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, payments, meta)
}

type paymentStatusRequest struct {
	Status entities.PaymentStatus `json:"status" binding:"required"`
}

// UpdateStatus approves or fails a deposit
// PUT /api/payments/:id/status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentUsecase.UpdatePaymentStatus(c.Request.Context(), middleware.Subject(c), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

type deletePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Delete soft-deletes a payment
// DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "payment")
	if !ok {
		return
	}
	var req deletePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.paymentUsecase.DeletePayment(c.Request.Context(), middleware.Subject(c), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Payment deleted")
}
