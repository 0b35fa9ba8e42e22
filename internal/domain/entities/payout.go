package entities

import (
	"time"

	"github.com/google/uuid"
)

// PayoutMethod is where seller proceeds are sent
type PayoutMethod string

const (
	PayoutMethodBankAccount PayoutMethod = "bank_account"
	PayoutMethodMobileMoney PayoutMethod = "mobile_money"
)

// Payout is the single payout destination of a user
type Payout struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"userId"`
	Method         PayoutMethod `json:"method"`
	BankName       string       `json:"bankName,omitempty"`
	BranchName     string       `json:"branchName,omitempty"`
	AccountHolder  string       `json:"accountHolder,omitempty"`
	AccountNumber  string       `json:"accountNumber,omitempty"`
	MobileProvider string       `json:"mobileProvider,omitempty"`
	MobileNumber   string       `json:"mobileNumber,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// PayoutInput is the body of a payout setup request
type PayoutInput struct {
	Method         PayoutMethod `json:"method" binding:"required"`
	BankName       string       `json:"bankName"`
	BranchName     string       `json:"branchName"`
	AccountHolder  string       `json:"accountHolder"`
	AccountNumber  string       `json:"accountNumber"`
	MobileProvider string       `json:"mobileProvider"`
	MobileNumber   string       `json:"mobileNumber"`
}
