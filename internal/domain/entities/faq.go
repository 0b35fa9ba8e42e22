package entities

import (
	"time"

	"github.com/google/uuid"
)

// FAQ is a help-centre entry
type FAQ struct {
	ID           uuid.UUID `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Category     string    `json:"category"`
	DisplayOrder int       `json:"displayOrder"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FAQInput is the admin create/update body
type FAQInput struct {
	Question     string `json:"question" binding:"required,min=5"`
	Answer       string `json:"answer" binding:"required"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"displayOrder"`
	IsPublished  *bool  `json:"isPublished"`
}
