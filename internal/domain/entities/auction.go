package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AuctionStatus represents the lifecycle of an auction
type AuctionStatus string

const (
	AuctionStatusPending   AuctionStatus = "pending"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusCompleted AuctionStatus = "completed"
	AuctionStatusCancelled AuctionStatus = "cancelled"
)

// IsTerminal reports whether the status can never change again
func (s AuctionStatus) IsTerminal() bool {
	return s == AuctionStatusCompleted || s == AuctionStatusCancelled
}

// DeriveAuctionStatus computes the status from the clock. Terminal statuses
// are sticky; otherwise [start, end) is active, >= end is completed.
func DeriveAuctionStatus(now time.Time, current AuctionStatus, start, end time.Time) AuctionStatus {
	if current.IsTerminal() {
		return current
	}
	switch {
	case !now.Before(end):
		return AuctionStatusCompleted
	case !now.Before(start):
		return AuctionStatusActive
	default:
		return AuctionStatusPending
	}
}

// Auction is the time-boxed sale of one gemstone
type Auction struct {
	ID                uuid.UUID     `json:"id"`
	GemstoneID        uuid.UUID     `json:"gemstoneId"`
	SellerID          uuid.UUID     `json:"sellerId"`
	StartPrice        float64       `json:"startPrice"`
	CurrentHighestBid float64       `json:"currentHighestBid"`
	HighestBidderID   uuid.NullUUID `json:"highestBidderId"`
	StartTime         time.Time     `json:"startTime"`
	EndTime           time.Time     `json:"endTime"`
	Status            AuctionStatus `json:"status"`
	TotalBids         int           `json:"totalBids"`
	WinnerID          uuid.NullUUID `json:"winnerId"`
	CompletedAt       null.Time     `json:"completedAt,omitempty"`
	CancelledAt       null.Time     `json:"cancelledAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Refresh re-derives Status from the clock
func (a *Auction) Refresh(now time.Time) {
	a.Status = DeriveAuctionStatus(now, a.Status, a.StartTime, a.EndTime)
}

// AcceptsBidsAt reports whether now falls inside [StartTime, EndTime) and the
// auction was not closed early.
func (a *Auction) AcceptsBidsAt(now time.Time) bool {
	return DeriveAuctionStatus(now, a.Status, a.StartTime, a.EndTime) == AuctionStatusActive
}

// CreateAuctionInput is the body of an auction creation request
type CreateAuctionInput struct {
	GemstoneID uuid.UUID `json:"gemId" binding:"required"`
	StartPrice float64   `json:"startPrice" binding:"gt=0"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

// AuctionFilter narrows auction listings. Status is matched against the
// derived status at Now, not the stored column.
type AuctionFilter struct {
	Now        time.Time
	Status     AuctionStatus
	GemstoneID uuid.NullUUID
	SellerID   uuid.NullUUID
	Limit      int
	Offset     int
}
