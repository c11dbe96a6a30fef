package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gradients is the fixed set of background gradient identifiers a product
// page can be themed with.
var Gradients = []string{
	"gradient-1",
	"gradient-2",
	"gradient-3",
	"gradient-4",
	"gradient-5",
	"gradient-6",
}

// Product represents a review page owned by a user.
type Product struct {
	ID              uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Slug            string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Image           string         `json:"image,omitempty" gorm:"size:1024"`
	BackgroundColor string         `json:"backgroundColor" gorm:"size:50;not null"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
