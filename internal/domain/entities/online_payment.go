package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OnlinePaymentStatus represents the OTP-gated card payment lifecycle
type OnlinePaymentStatus string

const (
	OnlinePaymentPending   OnlinePaymentStatus = "pending"
	OnlinePaymentVerified  OnlinePaymentStatus = "verified"
	OnlinePaymentCompleted OnlinePaymentStatus = "completed"
	OnlinePaymentFailed    OnlinePaymentStatus = "failed"
	OnlinePaymentCancelled OnlinePaymentStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible
func (s OnlinePaymentStatus) IsTerminal() bool {
	switch s {
	case OnlinePaymentCompleted, OnlinePaymentFailed, OnlinePaymentCancelled:
		return true
	}
	return false
}

// CardType is the only card attribute ever stored
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
	CardTypeOther      CardType = "other"
)

// OnlinePayment is a card payment. PAN, CVV, expiry and holder name are
// never part of this record.
type OnlinePayment struct {
	ID                   uuid.UUID           `json:"id"`
	UserID               uuid.UUID           `json:"userId"`
	AuctionID            uuid.UUID           `json:"auctionId"`
	Amount               float64             `json:"amount"`
	Currency             string              `json:"currency"`
	CardType             CardType            `json:"cardType"`
	ContactNumber        string              `json:"contactNumber"`
	Email                string              `json:"email"`
	OTP                  string              `json:"-"`
	OTPExpiry            time.Time           `json:"otpExpiry"`
	TransactionID        string              `json:"transactionId"`
	GatewayTransactionID null.String         `json:"gatewayTransactionId,omitempty"`
	Status               OnlinePaymentStatus `json:"status"`
	FailureReason        null.String         `json:"failureReason,omitempty"`
	VerifiedAt           null.Time           `json:"verifiedAt,omitempty"`
	CompletedAt          null.Time           `json:"completedAt,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// CreateOnlinePaymentInput is the card form. Card fields are validated and
// discarded.
type CreateOnlinePaymentInput struct {
	AuctionID      uuid.UUID `json:"auctionId" binding:"required"`
	Amount         float64   `json:"amount" binding:"required,gt=0"`
	Currency       string    `json:"currency"`
	CardNumber     string    `json:"cardNumber" binding:"required"`
	CardHolderName string    `json:"cardHolderName" binding:"required"`
	ExpiryDate     string    `json:"expiryDate" binding:"required"`
	CVV            string    `json:"cvv" binding:"required"`
	ContactNumber  string    `json:"contactNumber" binding:"required"`
	Email          string    `json:"email"`
}

// VerifyOTPInput is the OTP confirmation body
type VerifyOTPInput struct {
	PaymentID uuid.UUID `json:"paymentId" binding:"required"`
	OTP       string    `json:"otp" binding:"required,len=6,numeric"`
}

// CompleteOnlinePaymentInput carries the gateway reference
type CompleteOnlinePaymentInput struct {
	GatewayTransactionID string `json:"gatewayTransactionId" binding:"required"`
}
