package models

// Upper bounds accepted for a measurement. They keep every derived amount
// well inside float64 range.
const (
	MaxDimensionInches = 10000
	MaxQuantity        = 10000
)

// Measurement is a single physical opening captured on site.
// Dimensions are in inches, capped at MaxDimensionInches. The pricing engine
// reads measurements and never modifies them.
type Measurement struct {
	ID          string      `json:"id"`
	Width       float64     `json:"width" validate:"gt=0,lte=10000"`
	Height      float64     `json:"height" validate:"gt=0,lte=10000"`
	Depth       *float64    `json:"depth,omitempty" validate:"omitempty,gt=0,lte=10000"`
	Quantity    int         `json:"quantity" validate:"min=1,max=10000"`
	ProductType ProductType `json:"productType" validate:"required,enum"`
	GlassType   GlassType   `json:"glassType,omitempty" validate:"omitempty,enum"`
	FrameType   FrameType   `json:"frameType,omitempty" validate:"omitempty,enum"`
	Notes       string      `json:"notes,omitempty" validate:"max=2000"`
	Options     Options     `json:"options"`
}

// Options are the add-on flags recorded with a measurement. They are carried
// through to the job record but do not change the computed price.
type Options struct {
	Tempered     bool `json:"tempered"`
	Laminate     bool `json:"laminate"`
	Tinted       bool `json:"tinted"`
	Grids        bool `json:"grids"`
	Installation bool `json:"installation"`
}
