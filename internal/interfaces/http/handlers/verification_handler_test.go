package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationServiceStub struct {
	VerificationService
	statusFn   func(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error)
	nicFn      func(ctx context.Context, userID uuid.UUID, front, back *ports.UploadedFile) (*entities.VerificationStatus, error)
	businessFn func(ctx context.Context, userID uuid.UUID, files []ports.UploadedFile) (*entities.VerificationStatus, error)
	payoutFn   func(ctx context.Context, userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error)
	reviewFn   func(ctx context.Context, input *entities.ReviewInput) (*entities.User, error)
	sellerFn   func(ctx context.Context, input *entities.SellerReviewInput) (*entities.User, error)
	regFn      func(ctx context.Context, userID uuid.UUID, status entities.RegistrationPaymentStatus) (*entities.User, error)
}

func (s verificationServiceStub) GetVerificationStatus(ctx context.Context, userID uuid.UUID) (*entities.VerificationStatus, error) {
	return s.statusFn(ctx, userID)
}
func (s verificationServiceStub) UploadNIC(ctx context.Context, userID uuid.UUID, front, back *ports.UploadedFile) (*entities.VerificationStatus, error) {
	return s.nicFn(ctx, userID, front, back)
}
func (s verificationServiceStub) UploadBusinessDocuments(ctx context.Context, userID uuid.UUID, files []ports.UploadedFile) (*entities.VerificationStatus, error) {
	return s.businessFn(ctx, userID, files)
}
func (s verificationServiceStub) SetPayout(ctx context.Context, userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
	return s.payoutFn(ctx, userID, input)
}
func (s verificationServiceStub) UpdateNICStatus(ctx context.Context, input *entities.ReviewInput) (*entities.User, error) {
	return s.reviewFn(ctx, input)
}
func (s verificationServiceStub) UpdateSellerStatus(ctx context.Context, input *entities.SellerReviewInput) (*entities.User, error) {
	return s.sellerFn(ctx, input)
}
func (s verificationServiceStub) UpdateRegistrationPaymentStatus(ctx context.Context, userID uuid.UUID, status entities.RegistrationPaymentStatus) (*entities.User, error) {
	return s.regFn(ctx, userID, status)
}

func readUpload(t *testing.T, f *ports.UploadedFile) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(raw)
}

func TestVerificationHandler_UploadNIC(t *testing.T) {
	userID := uuid.New()
	var front, back string
	svc := verificationServiceStub{
		nicFn: func(_ context.Context, gotUser uuid.UUID, f, b *ports.UploadedFile) (*entities.VerificationStatus, error) {
			if f == nil || b == nil {
				return nil, domainerrors.Validation("both NIC front and back images are required")
			}
			front, back = readUpload(t, f), readUpload(t, b)
			return &entities.VerificationStatus{NICStatus: entities.DocumentStatusPending}, nil
		},
	}
	h := NewVerificationHandler(svc)
	r := newTestRouter()
	r.POST("/nic/upload", withSubject(userID, entities.UserRoleUser), h.UploadNIC)

	w := doMultipart(t, r, http.MethodPost, "/nic/upload", nil,
		multipartFile{field: "front", name: "front.jpg", content: "FRONT"},
		multipartFile{field: "back", name: "back.jpg", content: "BACK"},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "FRONT", front)
	assert.Equal(t, "BACK", back)
	assert.Contains(t, w.Body.String(), `"pending"`)

	w = doMultipart(t, r, http.MethodPost, "/nic/upload", nil,
		multipartFile{field: "front", name: "front.jpg", content: "FRONT"},
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationHandler_UploadNIC_AlreadyApproved(t *testing.T) {
	svc := verificationServiceStub{
		nicFn: func(context.Context, uuid.UUID, *ports.UploadedFile, *ports.UploadedFile) (*entities.VerificationStatus, error) {
			return nil, domainerrors.ErrAlreadyApproved
		},
	}
	h := NewVerificationHandler(svc)
	r := newTestRouter()
	r.POST("/nic/upload", withSubject(uuid.New(), entities.UserRoleUser), h.UploadNIC)

	w := doMultipart(t, r, http.MethodPost, "/nic/upload", nil,
		multipartFile{field: "front", name: "f.jpg", content: "x"},
		multipartFile{field: "back", name: "b.jpg", content: "y"},
	)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerificationHandler_UploadBusiness(t *testing.T) {
	var names []string
	svc := verificationServiceStub{
		businessFn: func(_ context.Context, _ uuid.UUID, files []ports.UploadedFile) (*entities.VerificationStatus, error) {
			for _, f := range files {
				names = append(names, f.Filename)
			}
			return &entities.VerificationStatus{BusinessStatus: entities.DocumentStatusPending}, nil
		},
	}
	h := NewVerificationHandler(svc)
	r := newTestRouter()
	r.POST("/business/upload", withSubject(uuid.New(), entities.UserRoleUser), h.UploadBusiness)

	w := doMultipart(t, r, http.MethodPost, "/business/upload", nil,
		multipartFile{field: "documents", name: "br.pdf", content: "1"},
		multipartFile{field: "documents", name: "tax.pdf", content: "2"},
	)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"br.pdf", "tax.pdf"}, names)

	w = doJSON(r, http.MethodPost, "/business/upload", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationHandler_StatusAndPayout(t *testing.T) {
	userID := uuid.New()
	svc := verificationServiceStub{
		statusFn: func(_ context.Context, id uuid.UUID) (*entities.VerificationStatus, error) {
			return &entities.VerificationStatus{NICStatus: entities.DocumentStatusApproved, PayoutConfigured: true}, nil
		},
		payoutFn: func(_ context.Context, id uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
			if input.Method != entities.PayoutMethodBankAccount {
				return nil, domainerrors.Validation("unsupported payout method")
			}
			return &entities.Payout{UserID: id, Method: input.Method}, nil
		},
	}
	h := NewVerificationHandler(svc)
	r := newTestRouter()
	r.Use(withSubject(userID, entities.UserRoleUser))
	r.GET("/status", h.GetStatus)
	r.PUT("/payout", h.SetPayout)

	w := doJSON(r, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved"`)

	w = doJSON(r, http.MethodPut, "/payout", map[string]string{"method": "bank_account", "bankName": "BOC"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/payout", map[string]string{"method": "cheque"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationHandler_AdminDecisions(t *testing.T) {
	target := uuid.New()
	svc := verificationServiceStub{
		reviewFn: func(_ context.Context, input *entities.ReviewInput) (*entities.User, error) {
			if input.Status == entities.DocumentStatusRejected && input.RejectionReason == "" {
				return nil, domainerrors.Validation("rejection reason is required")
			}
			return &entities.User{ID: input.UserID, NICStatus: input.Status}, nil
		},
		sellerFn: func(_ context.Context, input *entities.SellerReviewInput) (*entities.User, error) {
			return nil, domainerrors.Conflictf("NIC must be approved first")
		},
		regFn: func(_ context.Context, id uuid.UUID, status entities.RegistrationPaymentStatus) (*entities.User, error) {
			return &entities.User{ID: id, RegistrationPaymentStatus: status}, nil
		},
	}
	h := NewVerificationHandler(svc)
	r := newTestRouter()
	r.Use(withSubject(uuid.New(), entities.UserRoleAdmin))
	r.POST("/nic/update-status", h.UpdateNICStatus)
	r.POST("/seller/update-status", h.UpdateSellerStatus)
	r.PUT("/users/:id/registration-payment", h.UpdateRegistrationPayment)

	w := doJSON(r, http.MethodPost, "/nic/update-status", map[string]string{"userId": target.String(), "status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/nic/update-status", map[string]string{"userId": target.String(), "status": "rejected"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/seller/update-status", map[string]string{"userId": target.String(), "status": "verified"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPut, "/users/"+target.String()+"/registration-payment", map[string]string{"status": "paid"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paid"`)
}
