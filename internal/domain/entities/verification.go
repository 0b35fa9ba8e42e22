package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentStatus is the state of an uploaded-document pipeline (NIC, business)
type DocumentStatus string

const (
	DocumentStatusNotUploaded DocumentStatus = "not_uploaded"
	DocumentStatusPending     DocumentStatus = "pending"
	DocumentStatusApproved    DocumentStatus = "approved"
	DocumentStatusRejected    DocumentStatus = "rejected"
	// DocumentStatusSkipped only applies to business documents
	DocumentStatusSkipped DocumentStatus = "skipped"
)

// IsReviewOutcome reports whether an admin may set this status
func (s DocumentStatus) IsReviewOutcome() bool {
	return s == DocumentStatusApproved || s == DocumentStatusRejected
}

// PayoutStatus mirrors whether a payout destination exists
type PayoutStatus string

const (
	PayoutStatusNotConfigured PayoutStatus = "not_configured"
	PayoutStatusCompleted     PayoutStatus = "completed"
)

// SellerVerificationStatus is the aggregate seller review gate
type SellerVerificationStatus string

const (
	SellerVerificationNotStarted SellerVerificationStatus = "not_started"
	SellerVerificationInReview   SellerVerificationStatus = "in_review"
	SellerVerificationVerified   SellerVerificationStatus = "verified"
	SellerVerificationRejected   SellerVerificationStatus = "rejected"
)

// IsValid reports whether the status is known
func (s SellerVerificationStatus) IsValid() bool {
	switch s {
	case SellerVerificationNotStarted, SellerVerificationInReview, SellerVerificationVerified, SellerVerificationRejected:
		return true
	}
	return false
}

const (
	MinBusinessDocuments = 1
	MaxBusinessDocuments = 5
)

// VerificationStatus is the aggregate read of every pipeline for one user.
// It performs no cross-field validation.
type VerificationStatus struct {
	UserID                    uuid.UUID                 `json:"userId"`
	NICStatus                 DocumentStatus            `json:"nicStatus"`
	NICFrontImage             null.String               `json:"nicFrontImage"`
	NICBackImage              null.String               `json:"nicBackImage"`
	NICRejectionReason        null.String               `json:"nicRejectionReason,omitempty"`
	BusinessStatus            DocumentStatus            `json:"businessStatus"`
	BusinessRejectionReason   null.String               `json:"businessRejectionReason,omitempty"`
	PayoutStatus              PayoutStatus              `json:"payoutStatus"`
	PayoutConfigured          bool                      `json:"payoutConfigured"`
	RegistrationPaymentStatus RegistrationPaymentStatus `json:"registrationPaymentStatus"`
	SellerVerificationStatus  SellerVerificationStatus  `json:"sellerVerificationStatus"`
	IsVerifiedSeller          bool                      `json:"isVerifiedSeller"`
}

// ReviewInput is the admin decision on a document pipeline
type ReviewInput struct {
	UserID          uuid.UUID      `json:"userId" binding:"required"`
	Status          DocumentStatus `json:"status" binding:"required"`
	RejectionReason string         `json:"rejectionReason"`
}

// SellerReviewInput is the admin decision on the seller gate
type SellerReviewInput struct {
	UserID          uuid.UUID                `json:"userId" binding:"required"`
	Status          SellerVerificationStatus `json:"status" binding:"required"`
	RejectionReason string                   `json:"rejectionReason"`
}
