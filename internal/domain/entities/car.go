// Package entities defines the core domain models for the car rental engine.
// These structs represent the business concepts (Car, Rental, CostBreakdown)
// and live in the innermost layer of the architecture. They have no
// dependencies on storage, HTTP, or configuration.
//
// Go Learning Note — "internal/" directory:
// Packages under internal/ cannot be imported by code outside this module. Go
// enforces this at the compiler level, so callers outside the module can only
// reach the engine through the API and CLI surfaces.
package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a typed string enum for the class of a car. Pricing rules are
// keyed by category.
type Category string

const (
	// AnyCategory is the zero value and means "no category filter".
	AnyCategory     Category = ""
	CategoryEconomy Category = "economy"
	CategorySUV     Category = "suv"
	CategoryLuxury  Category = "luxury"
)

// Categories lists every rentable category in display order.
var Categories = []Category{CategoryEconomy, CategorySUV, CategoryLuxury}

// Valid reports whether c is one of the known rentable categories.
// AnyCategory is not valid on a Car.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a raw string (from JSON, flags or config) to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return AnyCategory, ErrInvalidCategory
	}
	return c, nil
}

// Car represents one rentable vehicle.
//
// Go Learning Note — decimal.Decimal for money:
// float64 cannot represent most decimal fractions exactly (0.1 + 0.2 != 0.3),
// so currency amounts use github.com/shopspring/decimal. A Decimal is an
// arbitrary-precision value; arithmetic goes through methods (Mul, Add, Sub)
// because Go has no operator overloading.
type Car struct {
	ID        string          `json:"id"`
	Model     string          `json:"model"`
	Category  Category        `json:"category"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	Available bool            `json:"available"`
	Retired   bool            `json:"retired"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewCar creates a Car that is available for rent.
func NewCar(id, model string, category Category, dailyRate decimal.Decimal) *Car {
	now := time.Now()
	return &Car{
		ID:        id,
		Model:     model,
		Category:  category,
		DailyRate: dailyRate,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the invariants a car must hold before it enters the fleet.
func (c *Car) Validate() error {
	if !c.Category.Valid() {
		return ErrInvalidCategory
	}
	if c.DailyRate.IsNegative() {
		return ErrInvalidRate
	}
	return nil
}

// Rentable reports whether a new rental may be opened against the car.
func (c *Car) Rentable() bool {
	return c.Available && !c.Retired
}

// SetAvailable flips the availability flag and records the change timestamp.
func (c *Car) SetAvailable(available bool) {
	c.Available = available
	c.UpdatedAt = time.Now()
}

// Retire soft-removes the car. Retired cars keep their history but are never
// offered again.
func (c *Car) Retire() {
	c.Retired = true
	c.UpdatedAt = time.Now()
}

// Clone returns a copy so callers can't mutate the stored record.
func (c *Car) Clone() *Car {
	cp := *c
	return &cp
}
