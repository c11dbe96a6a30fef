package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan represents the subscription tier of a user.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// User represents a customer account that owns products.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Plan         Plan      `json:"plan" gorm:"type:varchar(20);not null;default:'FREE';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Products []Product `json:"products,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Plan == "" {
		u.Plan = PlanFree
	}
	return nil
}

// IsPremium reports whether the user is on the paid tier.
func (u *User) IsPremium() bool {
	return u.Plan == PlanPremium
}
