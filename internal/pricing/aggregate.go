package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"glassquote/internal/models"
)

// DefaultTaxRate applies when neither the caller nor the settings supply one.
const DefaultTaxRate = 0.08

// ComputeJobPricing prices every measurement in order and folds the lines
// into a job total. The discount is taken off before tax and is not clamped,
// so a discount larger than the subtotal yields a negative total.
func ComputeJobPricing(ms []models.Measurement, taxRate, discount float64, rules RuleSet) (models.JobPricing, error) {
	if !finite(taxRate, discount) {
		return models.JobPricing{}, fmt.Errorf("%w: tax rate or discount", ErrNotFinite)
	}

	items := make([]models.ItemizedCost, 0, len(ms))
	sum := decimal.Zero
	for _, m := range ms {
		item, err := LineCost(m, rules)
		if err != nil {
			return models.JobPricing{}, err
		}
		items = append(items, item)
		sum = sum.Add(decimal.NewFromFloat(item.Subtotal))
	}

	subtotal := sum.Round(2)
	base := subtotal.Sub(decimal.NewFromFloat(discount))
	tax := base.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total := base.Add(tax).Round(2)

	return models.JobPricing{
		Subtotal:      subtotal.InexactFloat64(),
		TaxRate:       taxRate,
		Tax:           tax.InexactFloat64(),
		Discount:      discount,
		Total:         total.InexactFloat64(),
		ItemizedCosts: items,
	}, nil
}

// Quote prices measurements with the default tax rate, no discount and the
// built-in rate card.
func Quote(ms []models.Measurement) (models.JobPricing, error) {
	return ComputeJobPricing(ms, DefaultTaxRate, 0, DefaultRules())
}
