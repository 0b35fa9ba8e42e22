package models

import (
	"time"

	"github.com/google/uuid"
)

type Gemstone struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SellerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name               string     `gorm:"type:varchar(200);not null"`
	Category           string     `gorm:"type:varchar(50);not null;index"`
	Description        string     `gorm:"type:text"`
	Carat              float64    `gorm:"type:decimal(10,3)"`
	Color              string     `gorm:"type:varchar(50)"`
	Clarity            string     `gorm:"type:varchar(50)"`
	Cut                string     `gorm:"type:varchar(50)"`
	Origin             string     `gorm:"type:varchar(100)"`
	CertificateNumber  *string    `gorm:"type:varchar(100)"`
	Images             []string   `gorm:"type:text;serializer:json"`
	MinimumBid         float64    `gorm:"type:decimal(14,2);not null"`
	ReservePrice       *float64   `gorm:"type:decimal(14,2)"`
	CurrentBid         float64    `gorm:"type:decimal(14,2);not null;default:0"`
	BidCount           int        `gorm:"not null;default:0"`
	VerificationStatus string     `gorm:"type:varchar(20);not null;default:'draft';index"`
	RejectionReason    *string    `gorm:"type:text"`
	VerifiedBy         *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt         *time.Time
	IsActive           bool `gorm:"not null;index"`
	IsAuctioned        bool `gorm:"not null;default:false"`
	Featured           bool `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
