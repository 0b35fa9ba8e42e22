package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

// UserStatus represents account lifecycle state
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusDeleted   UserStatus = "deleted"
	UserStatusSuspended UserStatus = "suspended"
)

// IsValid reports whether the status is known
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusDeleted, UserStatusSuspended:
		return true
	}
	return false
}

// RegistrationPaymentStatus tracks the one-off seller registration fee
type RegistrationPaymentStatus string

const (
	RegistrationPaymentUnpaid  RegistrationPaymentStatus = "unpaid"
	RegistrationPaymentPending RegistrationPaymentStatus = "pending"
	RegistrationPaymentPaid    RegistrationPaymentStatus = "paid"
)

// IsValid reports whether the status is known
func (s RegistrationPaymentStatus) IsValid() bool {
	switch s {
	case RegistrationPaymentUnpaid, RegistrationPaymentPending, RegistrationPaymentPaid:
		return true
	}
	return false
}

// User represents an account and its verification sub-statuses
type User struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Password string     `json:"-"`
	Role     UserRole   `json:"role"`
	Status   UserStatus `json:"status"`

	NICStatus          DocumentStatus `json:"nicStatus"`
	NICFrontImage      null.String    `json:"nicFrontImage,omitempty"`
	NICBackImage       null.String    `json:"nicBackImage,omitempty"`
	NICRejectionReason null.String    `json:"nicRejectionReason,omitempty"`

	BusinessStatus          DocumentStatus `json:"businessStatus"`
	BusinessDocuments       []string       `json:"businessDocuments,omitempty"`
	BusinessRejectionReason null.String    `json:"businessRejectionReason,omitempty"`

	PayoutStatus              PayoutStatus              `json:"payoutStatus"`
	RegistrationPaymentStatus RegistrationPaymentStatus `json:"registrationPaymentStatus"`

	SellerVerificationStatus SellerVerificationStatus `json:"sellerVerificationStatus"`
	SellerRejectionReason    null.String              `json:"sellerRejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsVerifiedSeller holds only when NIC is approved and the seller review passed.
// Business documents and payout setup may be skipped.
func (u *User) IsVerifiedSeller() bool {
	return u.NICStatus == DocumentStatusApproved && u.SellerVerificationStatus == SellerVerificationVerified
}

// IsActive reports whether the account may sign in and act
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=9,max=15"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// UserFilter narrows admin user listings
type UserFilter struct {
	Search string
	Role   UserRole
	Status UserStatus
}
