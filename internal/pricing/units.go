package pricing

import "github.com/shopspring/decimal"

const squareInchesPerSquareFoot = 144

// SquareFeet converts a width and height in inches to square feet.
func SquareFeet(widthInches, heightInches float64) float64 {
	return (widthInches * heightInches) / squareInchesPerSquareFoot
}

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
