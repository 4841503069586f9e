package entities

import "github.com/shopspring/decimal"

// AdjustmentKind identifies which pricing rule produced an Adjustment.
type AdjustmentKind string

const (
	AdjustmentLongRentalDiscount AdjustmentKind = "long_rental_discount"
	AdjustmentCategoryMultiplier AdjustmentKind = "category_multiplier"
	AdjustmentCategorySurcharge  AdjustmentKind = "category_surcharge"
)

// Adjustment is one signed change applied on top of the base cost. Discounts
// carry a negative Amount.
type Adjustment struct {
	Kind   AdjustmentKind  `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// CostBreakdown is the structured result of a cost computation. Total equals
// Base plus the sum of Adjustments, rounded to cents.
type CostBreakdown struct {
	Category     Category        `json:"category"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	DurationDays int             `json:"duration_days"`
	Base         decimal.Decimal `json:"base"`
	Adjustments  []Adjustment    `json:"adjustments,omitempty"`
	Total        decimal.Decimal `json:"total"`
}

// Adjustment returns the amount recorded for kind, or zero if no rule of that
// kind applied.
func (b CostBreakdown) Adjustment(kind AdjustmentKind) decimal.Decimal {
	for _, a := range b.Adjustments {
		if a.Kind == kind {
			return a.Amount
		}
	}
	return decimal.Zero
}

// Clone deep-copies the adjustment slice.
func (b CostBreakdown) Clone() CostBreakdown {
	if b.Adjustments != nil {
		b.Adjustments = append([]Adjustment(nil), b.Adjustments...)
	}
	return b
}
