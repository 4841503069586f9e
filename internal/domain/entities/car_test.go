package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCar_Validate(t *testing.T) {
	tests := []struct {
		name string
		car  *Car
		want error
	}{
		{"ok", NewCar("c", "Civic", CategoryEconomy, decimal.NewFromInt(40)), nil},
		{"free", NewCar("c", "Civic", CategoryEconomy, decimal.Zero), nil},
		{"negative rate", NewCar("c", "Civic", CategoryEconomy, decimal.NewFromInt(-5)), ErrInvalidRate},
		{"no category", NewCar("c", "Civic", AnyCategory, decimal.NewFromInt(40)), ErrInvalidCategory},
		{"unknown category", NewCar("c", "Civic", Category("boat"), decimal.NewFromInt(40)), ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.car.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCar_Rentable(t *testing.T) {
	car := NewCar("c", "Civic", CategoryEconomy, decimal.NewFromInt(40))
	assert.True(t, car.Rentable())

	car.SetAvailable(false)
	assert.False(t, car.Rentable())

	car.SetAvailable(true)
	car.Retire()
	assert.False(t, car.Rentable())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("luxury")
	assert.NoError(t, err)
	assert.Equal(t, CategoryLuxury, c)

	_, err = ParseCategory("")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
