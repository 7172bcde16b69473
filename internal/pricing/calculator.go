package pricing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"glassquote/internal/models"
)

// FrameMultiplier scales the material portion of a line. Unknown and absent
// frame types leave material cost unchanged.
func FrameMultiplier(f models.FrameType) float64 {
	switch f {
	case models.FrameVinyl:
		return 1.0
	case models.FrameWood:
		return 1.3
	case models.FrameAluminum:
		return 1.1
	case models.FrameFiberglass:
		return 1.4
	case models.FrameComposite:
		return 1.35
	}
	return 1.0
}

// LineCost prices a single measurement against rules.
//
// The unit price is rounded to cents before it is multiplied by quantity and
// the subtotal is rounded again. The minimum charge floors the whole line.
func LineCost(m models.Measurement, rules RuleSet) (models.ItemizedCost, error) {
	rule, err := rules.Resolve(m)
	if err != nil {
		return models.ItemizedCost{}, err
	}

	sqFt := SquareFeet(m.Width, m.Height)
	if !finite(sqFt, rule.BasePrice, rule.LaborPrice, rule.MinimumCharge) {
		return models.ItemizedCost{}, fmt.Errorf("%w: measurement %q", ErrNotFinite, m.ID)
	}

	material := decimal.NewFromFloat(rule.BasePrice).Mul(decimal.NewFromFloat(sqFt))
	if m.FrameType != "" {
		material = material.Mul(decimal.NewFromFloat(FrameMultiplier(m.FrameType)))
	}
	labor := decimal.NewFromFloat(rule.LaborPrice)

	unitPrice := material.Add(labor).Round(2)
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(m.Quantity))).Round(2)
	if floor := decimal.NewFromFloat(rule.MinimumCharge); subtotal.LessThan(floor) {
		subtotal = floor
	}

	return models.ItemizedCost{
		MeasurementID: m.ID,
		Description:   describe(m),
		Quantity:      m.Quantity,
		SquareFeet:    round2(decimal.NewFromFloat(sqFt)),
		MaterialCost:  round2(material),
		LaborCost:     round2(labor),
		UnitPrice:     unitPrice.InexactFloat64(),
		Subtotal:      round2(subtotal),
	}, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// describe renders e.g. `DOUBLE_HUNG - LOW_E (WOOD) - 30"W x 40"H`.
func describe(m models.Measurement) string {
	glass := string(m.GlassType)
	if glass == "" {
		glass = "Standard"
	}
	frame := ""
	if m.FrameType != "" {
		frame = fmt.Sprintf(" (%s)", m.FrameType)
	}
	return fmt.Sprintf(`%s - %s%s - %s"W x %s"H`,
		m.ProductType, glass, frame, formatInches(m.Width), formatInches(m.Height))
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
