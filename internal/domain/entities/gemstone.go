package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// GemVerificationStatus is the moderation state of a listing
type GemVerificationStatus string

const (
	GemStatusDraft       GemVerificationStatus = "draft"
	GemStatusSubmitted   GemVerificationStatus = "submitted"
	GemStatusUnderReview GemVerificationStatus = "under_review"
	GemStatusVerified    GemVerificationStatus = "verified"
	GemStatusRejected    GemVerificationStatus = "rejected"
)

// IsValid reports whether the status is known
func (s GemVerificationStatus) IsValid() bool {
	switch s {
	case GemStatusDraft, GemStatusSubmitted, GemStatusUnderReview, GemStatusVerified, GemStatusRejected:
		return true
	}
	return false
}

// MinRejectionReasonLength applies to listing rejections
const MinRejectionReasonLength = 10

// Gemstone is a seller-owned catalog listing
type Gemstone struct {
	ID                 uuid.UUID             `json:"id"`
	SellerID           uuid.UUID             `json:"sellerId"`
	Name               string                `json:"name"`
	Category           string                `json:"category"`
	Description        string                `json:"description"`
	Carat              float64               `json:"carat"`
	Color              string                `json:"color"`
	Clarity            string                `json:"clarity"`
	Cut                string                `json:"cut"`
	Origin             string                `json:"origin"`
	CertificateNumber  null.String           `json:"certificateNumber,omitempty"`
	Images             []string              `json:"images"`
	MinimumBid         float64               `json:"minimumBid"`
	ReservePrice       null.Float64          `json:"reservePrice,omitempty"`
	CurrentBid         float64               `json:"currentBid"`
	BidCount           int                   `json:"bidCount"`
	VerificationStatus GemVerificationStatus `json:"verificationStatus"`
	RejectionReason    null.String           `json:"rejectionReason,omitempty"`
	VerifiedBy         uuid.NullUUID         `json:"verifiedBy"`
	VerifiedAt         null.Time             `json:"verifiedAt,omitempty"`
	IsActive           bool                  `json:"isActive"`
	IsAuctioned        bool                  `json:"isAuctioned"`
	Featured           bool                  `json:"featured"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// IsPubliclyListed holds for listings that can be shown and auctioned
func (g *Gemstone) IsPubliclyListed() bool {
	return g.VerificationStatus == GemStatusVerified && g.IsActive
}

// IsEditable reports whether the seller may still change the listing
func (g *Gemstone) IsEditable() bool {
	switch g.VerificationStatus {
	case GemStatusDraft, GemStatusSubmitted, GemStatusRejected:
		return true
	}
	return false
}

// GemstoneInput is the seller-editable part of a listing
type GemstoneInput struct {
	Name              string   `json:"name" binding:"required,min=2,max=200"`
	Category          string   `json:"category" binding:"required"`
	Description       string   `json:"description"`
	Carat             float64  `json:"carat" binding:"gt=0"`
	Color             string   `json:"color"`
	Clarity           string   `json:"clarity"`
	Cut               string   `json:"cut"`
	Origin            string   `json:"origin"`
	CertificateNumber string   `json:"certificateNumber"`
	Images            []string `json:"images"`
	MinimumBid        float64  `json:"minimumBid" binding:"gt=0"`
	ReservePrice      *float64 `json:"reservePrice"`
}

// GemstoneFilter narrows listing queries
type GemstoneFilter struct {
	SellerID     uuid.NullUUID
	Statuses     []GemVerificationStatus
	Category     string
	ActiveOnly   bool
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// GemstoneBulkUpdate is the admin bulk edit payload. Only the allow-listed
// fields below may be touched.
type GemstoneBulkUpdate struct {
	IDs    []uuid.UUID            `json:"ids"`
	Fields map[string]interface{} `json:"updates"`
}

// BulkUpdatableGemFields is the allow-list for GemstoneBulkUpdate
var BulkUpdatableGemFields = map[string]string{
	"verificationStatus": "verification_status",
	"isActive":           "is_active",
	"featured":           "featured",
	"category":           "category",
}
