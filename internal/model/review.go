package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review represents customer feedback on a product. The author is identified
// only by the network address the review was submitted from.
type Review struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	ProductID  uuid.UUID      `json:"product_id" gorm:"type:char(36);not null;index:idx_reviews_product_ip"`
	IP         string         `json:"-" gorm:"size:45;not null;index:idx_reviews_product_ip"` // Never expose in JSON
	Rating     int            `json:"rating" gorm:"not null;default:0"`
	Text       string         `json:"text,omitempty" gorm:"type:text"`
	Audio      string         `json:"audio,omitempty" gorm:"size:1024"`
	SocialLink string         `json:"socialLink,omitempty" gorm:"size:1024"`
	Name       string         `json:"name,omitempty" gorm:"size:255"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
