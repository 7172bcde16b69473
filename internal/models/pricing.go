package models

// PricingRule is one row of the rate card.
type PricingRule struct {
	ProductType   ProductType `json:"productType" validate:"required,enum"`
	GlassType     GlassType   `json:"glassType,omitempty" validate:"omitempty,enum"`
	FrameType     FrameType   `json:"frameType,omitempty" validate:"omitempty,enum"`
	BasePrice     float64     `json:"basePrice" validate:"gte=0,lte=1000000"`     // per square foot
	LaborPrice    float64     `json:"laborPrice" validate:"gte=0,lte=1000000"`    // per unit
	MinimumCharge float64     `json:"minimumCharge" validate:"gte=0,lte=1000000"` // floor for the whole line
}

// ItemizedCost is the priced line for one measurement.
type ItemizedCost struct {
	MeasurementID string  `json:"measurementId"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	SquareFeet    float64 `json:"squareFeet"`
	MaterialCost  float64 `json:"materialCost"`
	LaborCost     float64 `json:"laborCost"`
	UnitPrice     float64 `json:"unitPrice"`
	Subtotal      float64 `json:"subtotal"`
}

// JobPricing is the priced snapshot of a job. It is replaced as a whole on
// every recalculation.
//
// Total == (Subtotal - Discount) + Tax and Tax == (Subtotal - Discount) * TaxRate,
// each rounded to cents where it is computed.
type JobPricing struct {
	Subtotal      float64        `json:"subtotal"`
	TaxRate       float64        `json:"taxRate"`
	Tax           float64        `json:"tax"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	ItemizedCosts []ItemizedCost `json:"itemizedCosts"`
}
