package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuctionID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount         float64    `gorm:"type:decimal(14,2);not null"`
	SlipPath       string     `gorm:"type:text;not null"`
	BidderName     string     `gorm:"type:varchar(100)"`
	Email          string     `gorm:"type:varchar(255)"`
	Phone          string     `gorm:"type:varchar(20)"`
	BillingAddress string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewedBy     *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt     *time.Time
	Deleted        bool       `gorm:"not null;default:false;index"`
	DeleteReason   *string    `gorm:"type:text"`
	DeletedBy      *uuid.UUID `gorm:"type:uuid"`
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OnlinePayment struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index"`
	AuctionID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount               float64   `gorm:"type:decimal(14,2);not null"`
	Currency             string    `gorm:"type:varchar(3);not null;default:'LKR'"`
	CardType             string    `gorm:"type:varchar(20);not null"`
	ContactNumber        string    `gorm:"type:varchar(20);not null"`
	Email                string    `gorm:"type:varchar(255)"`
	OTP                  string    `gorm:"column:otp;type:varchar(6);not null"`
	OTPExpiry            time.Time `gorm:"column:otp_expiry;not null"`
	TransactionID        string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	GatewayTransactionID *string   `gorm:"type:varchar(128)"`
	Status               string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	FailureReason        *string   `gorm:"type:text"`
	VerifiedAt           *time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
