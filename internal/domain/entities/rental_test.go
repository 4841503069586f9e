package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRental() *Rental {
	start := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	return NewRental("rental-1", "driver-1", "car-1", start, 3, CostBreakdown{Total: decimal.NewFromInt(150)})
}

func TestNewRental(t *testing.T) {
	r := newTestRental()

	assert.Equal(t, RentalStatusOpen, r.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.StartDate, "start is normalized to a date")
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), r.DueDate)
	assert.True(t, r.IsOpen())
}

func TestRental_StateMachine(t *testing.T) {
	r := newTestRental()

	assert.True(t, r.CanTransitionTo(RentalStatusClosed))
	assert.False(t, r.CanTransitionTo(RentalStatusOpen))

	require.NoError(t, r.TransitionTo(RentalStatusClosed))
	require.NotNil(t, r.ClosedAt)
	assert.False(t, r.ClosedAt.IsZero())

	assert.False(t, r.CanTransitionTo(RentalStatusOpen), "closed is terminal")
	assert.False(t, r.CanTransitionTo(RentalStatusClosed))
	assert.Error(t, r.TransitionTo(RentalStatusOpen))
}

func TestRental_ActualDays(t *testing.T) {
	r := newTestRental()

	tests := []struct {
		name string
		end  time.Time
		days int
		err  error
	}{
		{"same day", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 1, nil},
		{"on time", time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), 3, nil},
		{"across month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 31, nil},
		{"before start", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 0, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := r.ActualDays(tt.end)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestRental_Close(t *testing.T) {
	r := newTestRental()
	cost := CostBreakdown{DurationDays: 3, Total: decimal.NewFromInt(150)}

	require.NoError(t, r.Close(time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC), cost))
	assert.Equal(t, RentalStatusClosed, r.Status)
	require.NotNil(t, r.EndDate)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), *r.EndDate)

	err := r.Close(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), CostBreakdown{Total: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.True(t, r.Cost.Total.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), *r.EndDate)
}

func TestRental_OpenJSONOmitsCloseFields(t *testing.T) {
	r := newTestRental()

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "cost")
	assert.NotContains(t, fields, "end_date")
	assert.NotContains(t, fields, "closed_at")
	assert.Contains(t, fields, "estimated_cost")

	require.NoError(t, r.Close(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), CostBreakdown{Total: decimal.NewFromInt(150)}))
	raw, err = json.Marshal(r)
	require.NoError(t, err)
	fields = nil
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "cost")
	assert.Equal(t, "2024-01-04T00:00:00Z", fields["end_date"])
	assert.Contains(t, fields, "closed_at")
}

func TestRental_CloneIsIndependent(t *testing.T) {
	r := newTestRental()
	r.EstimatedCost.Adjustments = []Adjustment{{Kind: AdjustmentCategorySurcharge, Amount: decimal.NewFromInt(5)}}

	cp := r.Clone()
	cp.EstimatedCost.Adjustments[0].Amount = decimal.NewFromInt(99)
	cp.Status = RentalStatusClosed

	assert.True(t, r.EstimatedCost.Adjustments[0].Amount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, RentalStatusOpen, r.Status)

	require.NoError(t, r.Close(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), CostBreakdown{Total: decimal.NewFromInt(150)}))
	closed := r.Clone()
	*closed.EndDate = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	closed.Cost.Total = decimal.NewFromInt(1)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), *r.EndDate)
	assert.True(t, r.Cost.Total.Equal(decimal.NewFromInt(150)))
}

func TestDaysBetween_IgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	a := time.Date(2024, 3, 9, 23, 0, 0, 0, loc)
	b := time.Date(2024, 3, 11, 1, 0, 0, 0, loc)

	assert.Equal(t, 2, DaysBetween(a, b))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("04/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
