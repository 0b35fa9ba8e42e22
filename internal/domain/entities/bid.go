package entities

import (
	"time"

	"github.com/google/uuid"
)

// BidStatus is the settlement state of a ledger entry
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRefused  BidStatus = "refused"
)

// Bid is an append-only ledger entry
type Bid struct {
	ID         uuid.UUID `json:"id"`
	AuctionID  uuid.UUID `json:"auctionId"`
	GemstoneID uuid.UUID `json:"gemId"`
	BidderID   uuid.UUID `json:"bidderId"`
	Amount     float64   `json:"amount"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PlaceBidInput is the body of an auction bid
type PlaceBidInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PlaceGemBidInput is the body of a gem-level bid
type PlaceGemBidInput struct {
	GemstoneID uuid.UUID `json:"gemId" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
}

// BidResult is returned after an accepted bid
type BidResult struct {
	Bid               *Bid      `json:"bid"`
	AuctionID         uuid.UUID `json:"auctionId"`
	CurrentHighestBid float64   `json:"currentHighestBid"`
	TotalBids         int       `json:"totalBids"`
}

// BidWithGem is a bidder-facing row joined with its listing
type BidWithGem struct {
	Bid
	GemName       string  `json:"gemName"`
	GemCurrentBid float64 `json:"gemCurrentBid"`
}

// GemSummary is the listing part of an admin bid row
type GemSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BuyerSummary is the bidder part of an admin bid row
type BuyerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AdminBidView is one row of the admin all-bids listing
type AdminBidView struct {
	Bid
	Gem   *GemSummary   `json:"gem"`
	Buyer *BuyerSummary `json:"buyer"`
}
