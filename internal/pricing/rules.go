package pricing

import (
	"errors"

	"glassquote/internal/models"
)

// ErrEmptyRuleSet is returned when pricing is attempted without any rate card
// entries. It indicates a configuration problem, not bad input.
var ErrEmptyRuleSet = errors.New("pricing: rule set is empty")

// ErrNotFinite is returned when a measurement or rule produces an amount that
// cannot be represented, such as an infinite area.
var ErrNotFinite = errors.New("pricing: amount is not finite")

// RuleSet is an ordered rate card. Order matters for fallback resolution.
type RuleSet []models.PricingRule

// Resolve picks the rule for m: an exact product+glass match first, then the
// first rule for the product, then the first rule in the set.
func (rs RuleSet) Resolve(m models.Measurement) (models.PricingRule, error) {
	if len(rs) == 0 {
		return models.PricingRule{}, ErrEmptyRuleSet
	}

	for _, r := range rs {
		if r.ProductType == m.ProductType && r.GlassType == m.GlassType {
			return r, nil
		}
	}
	for _, r := range rs {
		if r.ProductType == m.ProductType {
			return r, nil
		}
	}
	return rs[0], nil
}

// DefaultRules returns a copy of the built-in rate card.
func DefaultRules() RuleSet {
	out := make(RuleSet, len(defaultRules))
	copy(out, defaultRules)
	return out
}

var defaultRules = []models.PricingRule{
	{ProductType: models.ProductDoubleHung, GlassType: models.GlassDoublePane, BasePrice: 28, LaborPrice: 90, MinimumCharge: 210},
	{ProductType: models.ProductDoubleHung, GlassType: models.GlassLowE, BasePrice: 33, LaborPrice: 90, MinimumCharge: 240},
	{ProductType: models.ProductDoubleHung, GlassType: models.GlassTriplePane, BasePrice: 38, LaborPrice: 95, MinimumCharge: 260},
	{ProductType: models.ProductSingleHung, GlassType: models.GlassDoublePane, BasePrice: 24, LaborPrice: 80, MinimumCharge: 190},
	{ProductType: models.ProductSingleHung, GlassType: models.GlassSinglePane, BasePrice: 18, LaborPrice: 75, MinimumCharge: 150},
	{ProductType: models.ProductCasement, GlassType: models.GlassDoublePane, BasePrice: 32, LaborPrice: 100, MinimumCharge: 240},
	{ProductType: models.ProductCasement, GlassType: models.GlassLowE, BasePrice: 36, LaborPrice: 100, MinimumCharge: 260},
	{ProductType: models.ProductSlider, GlassType: models.GlassDoublePane, BasePrice: 26, LaborPrice: 85, MinimumCharge: 200},
	{ProductType: models.ProductPicture, GlassType: models.GlassDoublePane, BasePrice: 22, LaborPrice: 95, MinimumCharge: 220},
	{ProductType: models.ProductAwning, GlassType: models.GlassDoublePane, BasePrice: 30, LaborPrice: 95, MinimumCharge: 230},
	{ProductType: models.ProductBayBow, GlassType: models.GlassDoublePane, BasePrice: 45, LaborPrice: 350, MinimumCharge: 900},
	{ProductType: models.ProductPatioDoor, GlassType: models.GlassTempered, BasePrice: 40, LaborPrice: 250, MinimumCharge: 650},
	{ProductType: models.ProductEntryDoor, BasePrice: 55, LaborPrice: 300, MinimumCharge: 800},
	{ProductType: models.ProductStorefront, GlassType: models.GlassTempered, BasePrice: 48, LaborPrice: 200, MinimumCharge: 500},
	{ProductType: models.ProductShowerEnclosure, GlassType: models.GlassTempered, BasePrice: 52, LaborPrice: 220, MinimumCharge: 450},
	{ProductType: models.ProductMirror, BasePrice: 14, LaborPrice: 60, MinimumCharge: 120},
	{ProductType: models.ProductGlassOnly, GlassType: models.GlassSinglePane, BasePrice: 12, LaborPrice: 50, MinimumCharge: 85},
	{ProductType: models.ProductGlassOnly, GlassType: models.GlassDoublePane, BasePrice: 20, LaborPrice: 60, MinimumCharge: 120},
	{ProductType: models.ProductGlassOnly, GlassType: models.GlassLaminated, BasePrice: 26, LaborPrice: 60, MinimumCharge: 140},
}
