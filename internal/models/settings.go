package models

import "time"

// Settings is the single settings document. When PricingRules is empty the
// built-in rate card is used.
type Settings struct {
	CompanyName  string        `json:"companyName,omitempty" validate:"max=200"`
	TaxRate      float64       `json:"taxRate" validate:"gte=0,lte=1"`
	PricingRules []PricingRule `json:"pricingRules,omitempty" validate:"dive"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
