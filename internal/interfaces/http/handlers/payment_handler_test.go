package handlers

import (
	"context"
	"net/http"
	"testing"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentServiceStub struct {
	PaymentService
	createFn func(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error)
	getFn    func(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Payment, error)
	listFn   func(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error)
	statusFn func(ctx context.Context, admin policy.Subject, id uuid.UUID, status entities.PaymentStatus) (*entities.Payment, error)
	deleteFn func(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) error
}

func (s paymentServiceStub) CreatePayment(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error) {
	return s.createFn(ctx, userID, input, slip)
}
func (s paymentServiceStub) GetPayment(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Payment, error) {
	return s.getFn(ctx, actor, id)
}
func (s paymentServiceStub) List(ctx context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	return s.listFn(ctx, status, p)
}
func (s paymentServiceStub) UpdatePaymentStatus(ctx context.Context, admin policy.Subject, id uuid.UUID, status entities.PaymentStatus) (*entities.Payment, error) {
	return s.statusFn(ctx, admin, id, status)
}
func (s paymentServiceStub) DeletePayment(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) error {
	return s.deleteFn(ctx, admin, id, reason)
}

func TestPaymentHandler_CreateMultipart(t *testing.T) {
	userID := uuid.New()
	auctionID := uuid.New()
	var gotInput *entities.CreatePaymentInput
	var gotSlip string
	svc := paymentServiceStub{
		createFn: func(_ context.Context, uid uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error) {
			if slip == nil && input.SlipPath == "" {
				return nil, domainerrors.Validation("payment slip is required")
			}
			gotInput = input
			if slip != nil {
				gotSlip = readUpload(t, slip)
			}
			return &entities.Payment{ID: uuid.New(), UserID: uid, Status: entities.PaymentStatusPending}, nil
		},
	}
	h := NewPaymentHandler(svc)
	r := newTestRouter()
	r.POST("/payments", withSubject(userID, entities.UserRoleUser), h.CreatePayment)

	fields := map[string]string{
		"bidId":          auctionID.String(),
		"amount":         "125000.50",
		"bidderName":     "Nimal Perera",
		"email":          "nimal@example.com",
		"phone":          "0771234567",
		"billingAddress": "12 Galle Road, Colombo",
	}
	w := doMultipart(t, r, http.MethodPost, "/payments", fields, multipartFile{field: "slip", name: "slip.jpg", content: "SLIP"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, auctionID.String(), gotInput.ReferenceID())
	assert.Equal(t, 125000.50, gotInput.Amount)
	assert.Equal(t, "SLIP", gotSlip)

	w = doMultipart(t, r, http.MethodPost, "/payments", fields)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domainerrors.CodeValidation, decodeEnvelope(t, w).Code)

	fields["amount"] = "lots"
	w = doMultipart(t, r, http.MethodPost, "/payments", fields, multipartFile{field: "slip", name: "slip.jpg", content: "SLIP"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_CreateJSONWithSlipPath(t *testing.T) {
	svc := paymentServiceStub{
		createFn: func(_ context.Context, _ uuid.UUID, input *entities.CreatePaymentInput, slip *ports.UploadedFile) (*entities.Payment, error) {
			assert.Nil(t, slip)
			return &entities.Payment{ID: uuid.New(), SlipPath: input.SlipPath}, nil
		},
	}
	h := NewPaymentHandler(svc)
	r := newTestRouter()
	r.POST("/payments", withSubject(uuid.New(), entities.UserRoleUser), h.CreatePayment)

	w := doJSON(r, http.MethodPost, "/payments", map[string]interface{}{
		"auctionId": uuid.New(), "amount": 10, "slipPath": "/uploads/slips/a.jpg",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPaymentHandler_AdminFlows(t *testing.T) {
	ownerID := uuid.New()
	paymentID := uuid.New()
	var deletedReason string
	svc := paymentServiceStub{
		getFn: func(_ context.Context, actor policy.Subject, id uuid.UUID) (*entities.Payment, error) {
			if policy.AuthorizeOwnerOrAdmin(actor, ownerID) == policy.Deny {
				return nil, domainerrors.Forbiddenf("not your payment")
			}
			return &entities.Payment{ID: id, UserID: ownerID}, nil
		},
		listFn: func(_ context.Context, status entities.PaymentStatus, p utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
			if status == "refunded" {
				return nil, utils.PaginationMeta{}, domainerrors.Validation("unknown payment status")
			}
			return []*entities.Payment{}, utils.CalculateMeta(0, p.Page, p.Limit), nil
		},
		statusFn: func(_ context.Context, _ policy.Subject, id uuid.UUID, status entities.PaymentStatus) (*entities.Payment, error) {
			if status == entities.PaymentStatusPending {
				return nil, domainerrors.ErrInvalidTransition
			}
			return &entities.Payment{ID: id, Status: status}, nil
		},
		deleteFn: func(_ context.Context, _ policy.Subject, _ uuid.UUID, reason string) error {
			deletedReason = reason
			return nil
		},
	}
	h := NewPaymentHandler(svc)
	path := "/payments/" + paymentID.String()

	stranger := newTestRouter()
	stranger.GET("/payments/:id", withSubject(uuid.New(), entities.UserRoleUser), h.GetPayment)
	assert.Equal(t, http.StatusForbidden, doJSON(stranger, http.MethodGet, path, nil).Code)

	r := newTestRouter()
	r.Use(withSubject(uuid.New(), entities.UserRoleAdmin))
	r.GET("/payments", h.List)
	r.GET("/payments/:id", h.GetPayment)
	r.PUT("/payments/:id/status", h.UpdateStatus)
	r.DELETE("/payments/:id", h.Delete)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/payments?status=pending", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/payments?status=refunded", nil).Code)

	w := doJSON(r, http.MethodPut, path+"/status", map[string]string{"status": "success"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success"`)
	assert.Equal(t, http.StatusConflict, doJSON(r, http.MethodPut, path+"/status", map[string]string{"status": "pending"}).Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodDelete, path, map[string]string{}).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, path, map[string]string{"reason": "duplicate slip"}).Code)
	assert.Equal(t, "duplicate slip", deletedReason)
}
