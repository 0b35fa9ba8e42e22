package models

import (
	"time"

	"github.com/google/uuid"
)

type Auction struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GemstoneID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartPrice        float64    `gorm:"type:decimal(14,2);not null"`
	CurrentHighestBid float64    `gorm:"type:decimal(14,2);not null;default:0"`
	HighestBidderID   *uuid.UUID `gorm:"type:uuid"`
	StartTime         time.Time  `gorm:"not null;index"`
	EndTime           time.Time  `gorm:"not null;index"`
	Status            string     `gorm:"type:varchar(20);not null;index"`
	TotalBids         int        `gorm:"not null;default:0"`
	WinnerID          *uuid.UUID `gorm:"type:uuid"`
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Bid struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuctionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	GemstoneID uuid.UUID `gorm:"type:uuid;not null;index"`
	BidderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     float64   `gorm:"type:decimal(14,2);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time `gorm:"index"`
}
