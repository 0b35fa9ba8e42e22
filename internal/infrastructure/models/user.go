package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone    string    `gorm:"type:varchar(20)"`
	Password string    `gorm:"type:varchar(255);not null"`
	Role     string    `gorm:"type:varchar(20);not null;default:'user';index"`
	Status   string    `gorm:"type:varchar(20);not null;default:'active';index"`

	NICStatus          string   `gorm:"type:varchar(20);not null;default:'not_uploaded';index"`
	NICFrontImage      *string  `gorm:"type:text"`
	NICBackImage       *string  `gorm:"type:text"`
	NICRejectionReason *string  `gorm:"type:text"`
	BusinessStatus     string   `gorm:"type:varchar(20);not null;default:'not_uploaded'"`
	BusinessDocuments  []string `gorm:"type:text;serializer:json"`
	BusinessRejection  *string  `gorm:"column:business_rejection_reason;type:text"`

	PayoutStatus              string `gorm:"type:varchar(20);not null;default:'not_configured'"`
	RegistrationPaymentStatus string `gorm:"type:varchar(20);not null;default:'unpaid'"`
	SellerVerificationStatus  string `gorm:"type:varchar(20);not null;default:'not_started';index"`
	SellerRejectionReason     *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payout struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Method         string    `gorm:"type:varchar(20);not null"`
	BankName       string    `gorm:"type:varchar(100)"`
	BranchName     string    `gorm:"type:varchar(100)"`
	AccountHolder  string    `gorm:"type:varchar(100)"`
	AccountNumber  string    `gorm:"type:varchar(50)"`
	MobileProvider string    `gorm:"type:varchar(50)"`
	MobileNumber   string    `gorm:"type:varchar(20)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
