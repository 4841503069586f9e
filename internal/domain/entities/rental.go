package entities

import (
	"errors"
	"time"
)

// RentalStatus represents the lifecycle state of a rental.
//
// The lifecycle is deliberately short:
//
//	Open → Closed
//
// Closed is terminal. Renting the same car again always creates a new Rental.
type RentalStatus string

const (
	RentalStatusOpen   RentalStatus = "open"
	RentalStatusClosed RentalStatus = "closed"
)

// validTransitions is the rental state machine. Terminal states map to an
// empty slice.
var validTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusOpen:   {RentalStatusClosed},
	RentalStatusClosed: {},
}

// Rental is one driver's booking of one car. CarID is a non-owning reference;
// the Car itself is owned by the fleet and looked up by ID.
type Rental struct {
	ID            string        `json:"id"`
	DriverID      string        `json:"driver_id"`
	CarID         string        `json:"car_id"`
	Status        RentalStatus  `json:"status"`
	StartDate     time.Time     `json:"start_date"`
	DurationDays  int           `json:"duration_days"`
	DueDate       time.Time     `json:"due_date"`
	EstimatedCost CostBreakdown `json:"estimated_cost"`
	OpenedAt      time.Time     `json:"opened_at"`

	// Set by Close; nil while the rental is open.
	EndDate  *time.Time     `json:"end_date,omitempty"`
	Cost     *CostBreakdown `json:"cost,omitempty"`
	ClosedAt *time.Time     `json:"closed_at,omitempty"`
}

// NewRental creates a Rental in the Open state. startDate is normalized to a
// calendar date.
func NewRental(id, driverID, carID string, startDate time.Time, durationDays int, estimate CostBreakdown) *Rental {
	start := Date(startDate)
	return &Rental{
		ID:            id,
		DriverID:      driverID,
		CarID:         carID,
		Status:        RentalStatusOpen,
		StartDate:     start,
		DurationDays:  durationDays,
		DueDate:       start.AddDate(0, 0, durationDays),
		EstimatedCost: estimate,
		OpenedAt:      time.Now(),
	}
}

// CanTransitionTo checks if moving to newStatus is a valid state change.
func (r *Rental) CanTransitionTo(newStatus RentalStatus) bool {
	for _, s := range validTransitions[r.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo moves the rental to newStatus or returns an error if the state
// machine forbids it.
func (r *Rental) TransitionTo(newStatus RentalStatus) error {
	if !r.CanTransitionTo(newStatus) {
		return errors.New("invalid status transition from " + string(r.Status) + " to " + string(newStatus))
	}
	r.Status = newStatus
	if newStatus == RentalStatusClosed {
		now := time.Now()
		r.ClosedAt = &now
	}
	return nil
}

// IsOpen reports whether the rental still holds its car.
func (r *Rental) IsOpen() bool {
	return r.Status == RentalStatusOpen
}

// ActualDays returns the number of billable days between the start date and
// endDate. Same-day returns bill one day. endDate must not precede the start.
func (r *Rental) ActualDays(endDate time.Time) (int, error) {
	end := Date(endDate)
	if end.Before(r.StartDate) {
		return 0, ErrInvalidDate
	}
	days := DaysBetween(r.StartDate, end)
	if days < 1 {
		days = 1
	}
	return days, nil
}

// Close records the return date and final cost, then moves the rental to
// Closed. A rental that is already closed is left untouched.
func (r *Rental) Close(endDate time.Time, cost CostBreakdown) error {
	if !r.IsOpen() {
		return ErrAlreadyClosed
	}
	if err := r.TransitionTo(RentalStatusClosed); err != nil {
		return err
	}
	end := Date(endDate)
	r.EndDate = &end
	final := cost.Clone()
	r.Cost = &final
	return nil
}

// Clone returns a copy that shares no mutable state with r.
func (r *Rental) Clone() *Rental {
	cp := *r
	cp.EstimatedCost = r.EstimatedCost.Clone()
	if r.Cost != nil {
		c := r.Cost.Clone()
		cp.Cost = &c
	}
	if r.EndDate != nil {
		end := *r.EndDate
		cp.EndDate = &end
	}
	if r.ClosedAt != nil {
		closed := *r.ClosedAt
		cp.ClosedAt = &closed
	}
	return &cp
}
