package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FAQ struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Question     string    `gorm:"type:text;not null"`
	Answer       string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:varchar(50);index"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsPublished  bool      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Payout{},
		&Gemstone{},
		&Auction{},
		&Bid{},
		&Payment{},
		&OnlinePayment{},
		&FAQ{},
	}
}
