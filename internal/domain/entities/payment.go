package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents bank deposit review state
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailure PaymentStatus = "failure"
)

// IsReviewOutcome reports whether an admin may set this status
func (s PaymentStatus) IsReviewOutcome() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailure
}

// Payment is a bank deposit backed by an uploaded slip
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"userId"`
	AuctionID      uuid.UUID     `json:"auctionId"`
	Amount         float64       `json:"amount"`
	SlipPath       string        `json:"slipPath"`
	BidderName     string        `json:"bidderName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	BillingAddress string        `json:"billingAddress"`
	Status         PaymentStatus `json:"status"`
	ReviewedBy     uuid.NullUUID `json:"reviewedBy"`
	ReviewedAt     null.Time     `json:"reviewedAt,omitempty"`
	Deleted        bool          `json:"deleted"`
	DeleteReason   null.String   `json:"deleteReason,omitempty"`
	DeletedBy      uuid.NullUUID `json:"deletedBy"`
	DeletedAt      null.Time     `json:"deletedAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// CreatePaymentInput carries the multipart form fields of a deposit.
// BidID is accepted as an alias of AuctionID.
type CreatePaymentInput struct {
	AuctionID      string  `form:"auctionId" json:"auctionId"`
	BidID          string  `form:"bidId" json:"bidId"`
	Amount         float64 `form:"amount" json:"amount"`
	SlipPath       string  `form:"slipPath" json:"slipPath"`
	BidderName     string  `form:"bidderName" json:"bidderName"`
	Email          string  `form:"email" json:"email"`
	Phone          string  `form:"phone" json:"phone"`
	BillingAddress string  `form:"billingAddress" json:"billingAddress"`
}

// ReferenceID returns the auction reference, preferring auctionId over bidId
func (in *CreatePaymentInput) ReferenceID() string {
	if in.AuctionID != "" {
		return in.AuctionID
	}
	return in.BidID
}

// PaymentFilter narrows admin payment listings
type PaymentFilter struct {
	UserID uuid.NullUUID
	Status PaymentStatus
	Limit  int
	Offset int
}
