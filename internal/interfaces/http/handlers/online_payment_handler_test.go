package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type onlinePaymentServiceStub struct {
	OnlinePaymentService
	createFn   func(ctx context.Context, userID uuid.UUID, input *entities.CreateOnlinePaymentInput) (*entities.OnlinePayment, error)
	verifyFn   func(ctx context.Context, userID uuid.UUID, input *entities.VerifyOTPInput) (*entities.OnlinePayment, error)
	resendFn   func(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error)
	completeFn func(ctx context.Context, userID, id uuid.UUID, gatewayTxnID string) (*entities.OnlinePayment, error)
}

func (s onlinePaymentServiceStub) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateOnlinePaymentInput) (*entities.OnlinePayment, error) {
	return s.createFn(ctx, userID, input)
}
func (s onlinePaymentServiceStub) VerifyOTP(ctx context.Context, userID uuid.UUID, input *entities.VerifyOTPInput) (*entities.OnlinePayment, error) {
	return s.verifyFn(ctx, userID, input)
}
func (s onlinePaymentServiceStub) ResendOTP(ctx context.Context, userID, id uuid.UUID) (*entities.OnlinePayment, error) {
	return s.resendFn(ctx, userID, id)
}
func (s onlinePaymentServiceStub) Complete(ctx context.Context, userID, id uuid.UUID, gatewayTxnID string) (*entities.OnlinePayment, error) {
	return s.completeFn(ctx, userID, id, gatewayTxnID)
}

func TestOnlinePaymentHandler_CreateNeverReturnsOTP(t *testing.T) {
	paymentID := uuid.New()
	svc := onlinePaymentServiceStub{
		createFn: func(_ context.Context, _ uuid.UUID, input *entities.CreateOnlinePaymentInput) (*entities.OnlinePayment, error) {
			if input.CVV == "1" {
				return nil, domainerrors.Validation("cvv must be 3 or 4 digits")
			}
			return &entities.OnlinePayment{
				ID:            paymentID,
				OTP:           "482913",
				OTPExpiry:     time.Now().Add(7 * time.Minute),
				TransactionID: "GEM-20261015-ABCDEF12",
				Status:        entities.OnlinePaymentPending,
			}, nil
		},
	}
	h := NewOnlinePaymentHandler(svc)
	r := newTestRouter()
	r.POST("/online-payments", withSubject(uuid.New(), entities.UserRoleUser), h.Create)

	body := map[string]interface{}{
		"auctionId": uuid.New(), "amount": 5000, "cardNumber": "4111 1111 1111 1111",
		"cardHolderName": "N PERERA", "expiryDate": "12/29", "cvv": "123", "contactNumber": "0771234567",
	}
	w := doJSON(r, http.MethodPost, "/online-payments", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), paymentID.String())
	assert.Contains(t, w.Body.String(), `"pending"`)
	assert.NotContains(t, w.Body.String(), "482913")
	assert.NotContains(t, w.Body.String(), "4111")

	body["cvv"] = "1"
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPost, "/online-payments", body).Code)
}

func TestOnlinePaymentHandler_VerifyOTP(t *testing.T) {
	paymentID := uuid.New()
	svc := onlinePaymentServiceStub{
		verifyFn: func(_ context.Context, _ uuid.UUID, input *entities.VerifyOTPInput) (*entities.OnlinePayment, error) {
			switch input.OTP {
			case "111111":
				return nil, domainerrors.ErrOTPExpired
			case "222222":
				return nil, domainerrors.ErrInvalidOTP
			}
			return &entities.OnlinePayment{ID: input.PaymentID, OTP: input.OTP, Status: entities.OnlinePaymentVerified}, nil
		},
	}
	h := NewOnlinePaymentHandler(svc)
	r := newTestRouter()
	r.POST("/online-payments/verify-otp", withSubject(uuid.New(), entities.UserRoleUser), h.VerifyOTP)

	w := doJSON(r, http.MethodPost, "/online-payments/verify-otp", map[string]interface{}{"paymentId": paymentID, "otp": "654321"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified"`)
	assert.NotContains(t, w.Body.String(), "654321")

	w = doJSON(r, http.MethodPost, "/online-payments/verify-otp", map[string]interface{}{"paymentId": paymentID, "otp": "111111"})
	assert.Equal(t, domainerrors.CodeOTPExpired, decodeEnvelope(t, w).Code)

	w = doJSON(r, http.MethodPost, "/online-payments/verify-otp", map[string]interface{}{"paymentId": paymentID, "otp": "222222"})
	assert.Equal(t, domainerrors.CodeInvalidOTP, decodeEnvelope(t, w).Code)

	w = doJSON(r, http.MethodPost, "/online-payments/verify-otp", map[string]interface{}{"paymentId": paymentID, "otp": "12ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOnlinePaymentHandler_ResendAndComplete(t *testing.T) {
	paymentID := uuid.New()
	var gotGateway string
	svc := onlinePaymentServiceStub{
		resendFn: func(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entities.OnlinePayment, error) {
			return nil, domainerrors.ErrRateLimited
		},
		completeFn: func(_ context.Context, _ uuid.UUID, id uuid.UUID, gw string) (*entities.OnlinePayment, error) {
			gotGateway = gw
			return &entities.OnlinePayment{ID: id, Status: entities.OnlinePaymentCompleted}, nil
		},
	}
	h := NewOnlinePaymentHandler(svc)
	r := newTestRouter()
	r.Use(withSubject(uuid.New(), entities.UserRoleUser))
	r.POST("/online-payments/:id/resend-otp", h.ResendOTP)
	r.PUT("/online-payments/:id/complete", h.Complete)

	path := "/online-payments/" + paymentID.String()
	assert.Equal(t, http.StatusTooManyRequests, doJSON(r, http.MethodPost, path+"/resend-otp", nil).Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodPut, path+"/complete", map[string]string{}).Code)
	w := doJSON(r, http.MethodPut, path+"/complete", map[string]string{"gatewayTransactionId": "PG-991"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PG-991", gotGateway)
}
