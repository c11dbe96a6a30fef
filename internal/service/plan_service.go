package service

import (
	"github.com/shopspring/decimal"

	"reviewbox/internal/model"
)

// PlanView describes a subscription tier for the pricing page.
type PlanView struct {
	Name            string          `json:"name"`
	Plan            model.Plan      `json:"plan"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	BillingInterval string          `json:"billing_interval"`
	Features        []string        `json:"features"`
	MaxProducts     *int            `json:"max_products,omitempty"`
}

// PlanService exposes the static plan catalog.
type PlanService interface {
	GetPlans() []PlanView
}

type planService struct{}

// NewPlanService creates a new plan service.
func NewPlanService() PlanService {
	return &planService{}
}

// GetPlans returns the static list of plans with their features.
func (s *planService) GetPlans() []PlanView {
	freeLimit := 1
	return []PlanView{
		{
			Name:            "Free",
			Plan:            model.PlanFree,
			Price:           decimal.Zero,
			Currency:        "EUR",
			BillingInterval: "monthly",
			Features: []string{
				"1 product",
				"Unlimited reviews",
				"Audio reviews with AI transcription",
			},
			MaxProducts: &freeLimit,
		},
		{
			Name:            "Premium",
			Plan:            model.PlanPremium,
			Price:           decimal.RequireFromString("19.90"),
			Currency:        "EUR",
			BillingInterval: "monthly",
			Features: []string{
				"Unlimited products",
				"Unlimited reviews",
				"Audio reviews with AI transcription",
				"Custom page gradients",
			},
		},
	}
}
