// Package pricing computes rental costs. It has no state beyond its rule
// table and never reads the clock, so identical inputs always price the same.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"carrental/internal/domain/entities"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// CategoryRule adjusts the cost of every rental in one category. Multiplier is
// applied to the (possibly discounted) base; Surcharge is a flat amount added
// afterwards. A zero Multiplier is treated as 1.
type CategoryRule struct {
	Multiplier decimal.Decimal
	Surcharge  decimal.Decimal
}

// LongRentalRule discounts bookings of ThresholdDays or more by
// DiscountPercent of the base. A ThresholdDays of 0 disables the rule.
type LongRentalRule struct {
	ThresholdDays   int
	DiscountPercent decimal.Decimal
}

// RuleSet is the complete pricing configuration. The zero value prices every
// rental at dailyRate × days.
type RuleSet struct {
	Categories map[entities.Category]CategoryRule
	LongRental LongRentalRule
}

// CalculateCost prices a rental of durationDays at dailyRate.
//
// Rules apply in a fixed order:
//  1. base = dailyRate × durationDays
//  2. long-rental discount, taken off the base
//  3. category multiplier on the discounted amount
//  4. flat category surcharge
//
// The total is rounded to cents and floored at zero.
func CalculateCost(category entities.Category, dailyRate decimal.Decimal, durationDays int, rules RuleSet) (entities.CostBreakdown, error) {
	if dailyRate.IsNegative() {
		return entities.CostBreakdown{}, fmt.Errorf("%w: daily rate %s is negative", entities.ErrInvalidRate, dailyRate)
	}
	if durationDays < 1 {
		return entities.CostBreakdown{}, fmt.Errorf("%w: duration %d days", entities.ErrInvalidRate, durationDays)
	}

	base := dailyRate.Mul(decimal.NewFromInt(int64(durationDays)))
	subtotal := base
	var adjustments []entities.Adjustment

	if lr := rules.LongRental; lr.ThresholdDays > 0 && durationDays >= lr.ThresholdDays && lr.DiscountPercent.IsPositive() {
		discount := base.Mul(lr.DiscountPercent).Div(hundred).Round(2)
		subtotal = subtotal.Sub(discount)
		adjustments = append(adjustments, entities.Adjustment{
			Kind:   entities.AdjustmentLongRentalDiscount,
			Amount: discount.Neg(),
		})
	}

	if rule, ok := rules.Categories[category]; ok {
		if !rule.Multiplier.IsZero() && !rule.Multiplier.Equal(one) {
			multiplied := subtotal.Mul(rule.Multiplier).Round(2)
			adjustments = append(adjustments, entities.Adjustment{
				Kind:   entities.AdjustmentCategoryMultiplier,
				Amount: multiplied.Sub(subtotal),
			})
			subtotal = multiplied
		}
		if !rule.Surcharge.IsZero() {
			subtotal = subtotal.Add(rule.Surcharge)
			adjustments = append(adjustments, entities.Adjustment{
				Kind:   entities.AdjustmentCategorySurcharge,
				Amount: rule.Surcharge,
			})
		}
	}

	total := subtotal.Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return entities.CostBreakdown{
		Category:     category,
		DailyRate:    dailyRate,
		DurationDays: durationDays,
		Base:         base.Round(2),
		Adjustments:  adjustments,
		Total:        total,
	}, nil
}

// Policy binds a RuleSet so callers can price without carrying the rules
// around. It is safe for concurrent use as long as the RuleSet isn't mutated
// after construction.
type Policy struct {
	rules RuleSet
}

func NewPolicy(rules RuleSet) *Policy {
	return &Policy{rules: rules}
}

// Calculate is CalculateCost with the policy's rule set.
func (p *Policy) Calculate(category entities.Category, dailyRate decimal.Decimal, durationDays int) (entities.CostBreakdown, error) {
	return CalculateCost(category, dailyRate, durationDays, p.rules)
}
