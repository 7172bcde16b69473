package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glassquote/internal/models"
)

func doubleHung(width, height float64, qty int) models.Measurement {
	return models.Measurement{
		ID:          "m-1",
		Width:       width,
		Height:      height,
		Quantity:    qty,
		ProductType: models.ProductDoubleHung,
		GlassType:   models.GlassDoublePane,
	}
}

func TestSquareFeet(t *testing.T) {
	assert.InDelta(t, 8.3333, SquareFeet(30, 40), 1e-4)
	assert.Equal(t, 1.0, SquareFeet(12, 12))
	assert.Equal(t, 0.5, SquareFeet(12, 6))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 233.33, Round2(233.3333333))
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 40.0, Round2(40))
}

func TestResolve_Order(t *testing.T) {
	rules := RuleSet{
		{ProductType: models.ProductPicture, BasePrice: 1},
		{ProductType: models.ProductDoubleHung, GlassType: models.GlassLowE, BasePrice: 2},
		{ProductType: models.ProductDoubleHung, GlassType: models.GlassDoublePane, BasePrice: 3},
		{ProductType: models.ProductDoubleHung, GlassType: models.GlassTriplePane, BasePrice: 4},
	}

	t.Run("exact product and glass", func(t *testing.T) {
		r, err := rules.Resolve(doubleHung(30, 40, 1))
		require.NoError(t, err)
		assert.Equal(t, 3.0, r.BasePrice)
	})

	t.Run("first rule for product", func(t *testing.T) {
		m := doubleHung(30, 40, 1)
		m.GlassType = models.GlassObscure
		r, err := rules.Resolve(m)
		require.NoError(t, err)
		assert.Equal(t, 2.0, r.BasePrice)
	})

	t.Run("first rule overall", func(t *testing.T) {
		m := doubleHung(30, 40, 1)
		m.ProductType = models.ProductMirror
		r, err := rules.Resolve(m)
		require.NoError(t, err)
		assert.Equal(t, 1.0, r.BasePrice)
	})

	t.Run("empty rule set", func(t *testing.T) {
		_, err := RuleSet{}.Resolve(doubleHung(30, 40, 1))
		assert.True(t, errors.Is(err, ErrEmptyRuleSet))
	})
}

func TestDefaultRules_IsACopy(t *testing.T) {
	a := DefaultRules()
	a[0].BasePrice = 999
	assert.Equal(t, 28.0, DefaultRules()[0].BasePrice)
}

func TestLineCost_StandardWindow(t *testing.T) {
	item, err := LineCost(doubleHung(30, 40, 1), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "m-1", item.MeasurementID)
	assert.Equal(t, 233.33, item.MaterialCost)
	assert.Equal(t, 90.0, item.LaborCost)
	assert.Equal(t, 323.33, item.UnitPrice)
	assert.Equal(t, 323.33, item.Subtotal)
	assert.Equal(t, `DOUBLE_HUNG - DOUBLE_PANE - 30"W x 40"H`, item.Description)
}

func TestLineCost_InfiniteAreaIsAnError(t *testing.T) {
	m := doubleHung(1e155, 1e155, 1)

	_, err := LineCost(m, DefaultRules())
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = ComputeJobPricing([]models.Measurement{m}, 0.08, 0, DefaultRules())
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = ComputeJobPricing(nil, 0.08, math.Inf(1), DefaultRules())
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestLineCost_MinimumChargeFloorsLine(t *testing.T) {
	item, err := LineCost(doubleHung(10, 10, 1), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 19.44, item.MaterialCost)
	assert.Equal(t, 109.44, item.UnitPrice)
	assert.Equal(t, 210.0, item.Subtotal)
}

func TestLineCost_MinimumAppliesAfterQuantity(t *testing.T) {
	// 109.44 x 2 = 218.88 clears the 210 floor, so no per-unit floor applies.
	item, err := LineCost(doubleHung(10, 10, 2), DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 218.88, item.Subtotal)
}

func TestLineCost_RoundsUnitPriceBeforeQuantity(t *testing.T) {
	rules := RuleSet{{ProductType: models.ProductGlassOnly, BasePrice: 10.005, LaborPrice: 0}}
	m := models.Measurement{Width: 12, Height: 12, Quantity: 100, ProductType: models.ProductGlassOnly}

	item, err := LineCost(m, rules)
	require.NoError(t, err)
	assert.Equal(t, 10.01, item.UnitPrice)
	assert.Equal(t, 1001.0, item.Subtotal)
}

func TestLineCost_FrameMultiplierOnlyTouchesMaterial(t *testing.T) {
	rules := RuleSet{{ProductType: models.ProductCasement, BasePrice: 100, LaborPrice: 90}}
	plain := models.Measurement{Width: 12, Height: 12, Quantity: 1, ProductType: models.ProductCasement}
	wood := plain
	wood.FrameType = models.FrameWood

	a, err := LineCost(plain, rules)
	require.NoError(t, err)
	b, err := LineCost(wood, rules)
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.MaterialCost)
	assert.Equal(t, 130.0, b.MaterialCost)
	assert.Equal(t, a.MaterialCost*1.3, b.MaterialCost)
	assert.Equal(t, a.LaborCost, b.LaborCost)
	assert.Equal(t, 220.0, b.UnitPrice)
	assert.Equal(t, `CASEMENT - Standard (WOOD) - 12"W x 12"H`, b.Description)
}

func TestFrameMultiplier(t *testing.T) {
	cases := map[models.FrameType]float64{
		models.FrameVinyl:      1.0,
		models.FrameWood:       1.3,
		models.FrameAluminum:   1.1,
		models.FrameFiberglass: 1.4,
		models.FrameComposite:  1.35,
		"":                     1.0,
		"STEEL":                1.0,
	}
	for frame, want := range cases {
		assert.Equal(t, want, FrameMultiplier(frame), "frame %q", frame)
	}
}

func TestLineCost_FractionalInches(t *testing.T) {
	item, err := LineCost(doubleHung(30.5, 40.25, 1), DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, `DOUBLE_HUNG - DOUBLE_PANE - 30.5"W x 40.25"H`, item.Description)
}

func TestLineCost_FloorHoldsForEveryDefaultRule(t *testing.T) {
	for _, rule := range DefaultRules() {
		m := models.Measurement{
			Width:       1,
			Height:      1,
			Quantity:    1,
			ProductType: rule.ProductType,
			GlassType:   rule.GlassType,
		}
		item, err := LineCost(m, DefaultRules())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, item.Subtotal, rule.MinimumCharge, "%s/%s", rule.ProductType, rule.GlassType)
	}
}

func TestComputeJobPricing_DiscountAndTax(t *testing.T) {
	ms := []models.Measurement{doubleHung(30, 40, 1), doubleHung(10, 10, 1)}

	p, err := ComputeJobPricing(ms, 0.08, 33.33, DefaultRules())
	require.NoError(t, err)

	require.Len(t, p.ItemizedCosts, 2)
	assert.Equal(t, 323.33, p.ItemizedCosts[0].Subtotal)
	assert.Equal(t, 210.0, p.ItemizedCosts[1].Subtotal)
	assert.Equal(t, 533.33, p.Subtotal)
	assert.Equal(t, 33.33, p.Discount)
	assert.Equal(t, 0.08, p.TaxRate)
	assert.Equal(t, 40.0, p.Tax)
	assert.Equal(t, 540.0, p.Total)
}

func TestComputeJobPricing_Identity(t *testing.T) {
	ms := []models.Measurement{
		doubleHung(35.75, 61.5, 3),
		{Width: 72, Height: 80, Quantity: 1, ProductType: models.ProductPatioDoor, GlassType: models.GlassTempered, FrameType: models.FrameFiberglass},
		{Width: 24, Height: 36, Quantity: 2, ProductType: models.ProductMirror},
	}

	p, err := ComputeJobPricing(ms, 0.08, 17.5, DefaultRules())
	require.NoError(t, err)

	var sum float64
	for _, item := range p.ItemizedCosts {
		sum += item.Subtotal
	}
	assert.Equal(t, Round2(sum), p.Subtotal)
	assert.Equal(t, Round2((p.Subtotal-p.Discount)*p.TaxRate), p.Tax)
	assert.Equal(t, Round2(p.Subtotal-p.Discount+p.Tax), p.Total)
}

func TestComputeJobPricing_IsDeterministic(t *testing.T) {
	ms := []models.Measurement{doubleHung(30, 40, 2), doubleHung(18, 22, 1)}

	a, err := ComputeJobPricing(ms, 0.08, 5, DefaultRules())
	require.NoError(t, err)
	b, err := ComputeJobPricing(ms, 0.08, 5, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeJobPricing_PreservesOrder(t *testing.T) {
	first := doubleHung(30, 40, 1)
	first.ID = "a"
	second := doubleHung(10, 10, 1)
	second.ID = "b"

	p, err := ComputeJobPricing([]models.Measurement{second, first}, 0, 0, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "b", p.ItemizedCosts[0].MeasurementID)
	assert.Equal(t, "a", p.ItemizedCosts[1].MeasurementID)
}

func TestComputeJobPricing_DiscountLargerThanSubtotal(t *testing.T) {
	p, err := ComputeJobPricing([]models.Measurement{doubleHung(10, 10, 1)}, 0.1, 250, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 210.0, p.Subtotal)
	assert.Equal(t, -4.0, p.Tax)
	assert.Equal(t, -44.0, p.Total)
}

func TestComputeJobPricing_NoMeasurements(t *testing.T) {
	p, err := Quote(nil)
	require.NoError(t, err)
	assert.NotNil(t, p.ItemizedCosts)
	assert.Empty(t, p.ItemizedCosts)
	assert.Equal(t, 0.0, p.Total)
	assert.Equal(t, DefaultTaxRate, p.TaxRate)
}

func TestComputeJobPricing_EmptyRuleSet(t *testing.T) {
	_, err := ComputeJobPricing([]models.Measurement{doubleHung(10, 10, 1)}, 0.08, 0, nil)
	assert.ErrorIs(t, err, ErrEmptyRuleSet)
}
