package services

import (
	"context"
	"iter"
	"time"

	"carrental/internal/domain/entities"
	"carrental/internal/pricing"
	"carrental/internal/repository"
	"carrental/pkg/utils"
)

// RentalLedger records bookings and enforces that a car has at most one open
// rental. OpenRental is the only path that creates an open rental, and both
// OpenRental and CloseRental run under the car's lock so the availability
// check and the flag flip happen as one step.
type RentalLedger struct {
	fleet    *Fleet
	rentals  repository.RentalRepository
	locks    repository.LockManager
	policy   *pricing.Policy
	notifier *NotificationService
}

func NewRentalLedger(
	fleet *Fleet,
	rentals repository.RentalRepository,
	locks repository.LockManager,
	policy *pricing.Policy,
	notifier *NotificationService,
) *RentalLedger {
	return &RentalLedger{
		fleet:    fleet,
		rentals:  rentals,
		locks:    locks,
		policy:   policy,
		notifier: notifier,
	}
}

// OpenRental books carID for driverID from startDate for durationDays and
// returns the new rental id. The car's daily rate and category are captured
// in the rental's estimate and used again when it is closed.
//
// Fails with ErrInvalidDriver, ErrInvalidDuration, ErrNotFound or
// ErrCarUnavailable. On failure nothing is changed.
func (l *RentalLedger) OpenRental(ctx context.Context, driverID, carID string, startDate time.Time, durationDays int) (string, error) {
	if driverID == "" {
		return "", entities.ErrInvalidDriver
	}
	if durationDays < 1 {
		return "", wrapf(entities.ErrInvalidDuration, "%d days", durationDays)
	}

	unlock, err := l.locks.Lock(ctx, carLockKey(carID))
	if err != nil {
		return "", err
	}
	defer unlock()

	car, err := l.fleet.GetCar(ctx, carID)
	if err != nil {
		return "", err
	}
	if !car.Rentable() {
		return "", wrapf(entities.ErrCarUnavailable, "car %s", carID)
	}

	estimate, err := l.policy.Calculate(car.Category, car.DailyRate, durationDays)
	if err != nil {
		return "", err
	}

	rental := entities.NewRental(utils.NewRentalID(), driverID, carID, startDate, durationDays, estimate)
	if err := l.rentals.Create(ctx, rental); err != nil {
		return "", err
	}

	if err := l.fleet.markUnavailable(ctx, carID); err != nil {
		if rbErr := l.rentals.Delete(ctx, rental.ID); rbErr != nil {
			l.notifier.RollbackFailed("open_rental", rental.ID, rbErr)
		}
		return "", err
	}

	l.notifier.RentalOpened(rental)
	return rental.ID, nil
}

// CloseRental ends a rental on endDate, prices the actual duration, releases
// the car and returns the final cost. Same-day returns bill one day.
//
// Fails with ErrNotFound, ErrAlreadyClosed or ErrInvalidDate. On failure
// nothing is changed; in particular a second close leaves the first close's
// cost and status as they were.
func (l *RentalLedger) CloseRental(ctx context.Context, rentalID string, endDate time.Time) (entities.CostBreakdown, error) {
	rental, err := l.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return entities.CostBreakdown{}, err
	}

	unlock, err := l.locks.Lock(ctx, carLockKey(rental.CarID))
	if err != nil {
		return entities.CostBreakdown{}, err
	}
	defer unlock()

	// Re-read under the lock: a concurrent close may have won the race.
	rental, err = l.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return entities.CostBreakdown{}, err
	}
	if !rental.IsOpen() {
		return entities.CostBreakdown{}, wrapf(entities.ErrAlreadyClosed, "rental %s", rentalID)
	}

	days, err := rental.ActualDays(endDate)
	if err != nil {
		return entities.CostBreakdown{}, wrapf(err, "end %s precedes start %s",
			entities.Date(endDate).Format(entities.DateLayout),
			rental.StartDate.Format(entities.DateLayout))
	}

	booked := rental.EstimatedCost
	cost, err := l.policy.Calculate(booked.Category, booked.DailyRate, days)
	if err != nil {
		return entities.CostBreakdown{}, err
	}

	closed := rental.Clone()
	if err := closed.Close(endDate, cost); err != nil {
		return entities.CostBreakdown{}, err
	}
	if err := l.rentals.Update(ctx, closed); err != nil {
		return entities.CostBreakdown{}, err
	}

	if err := l.fleet.markAvailable(ctx, rental.CarID); err != nil {
		if rbErr := l.rentals.Update(ctx, rental); rbErr != nil {
			l.notifier.RollbackFailed("close_rental", rental.ID, rbErr)
		}
		return entities.CostBreakdown{}, err
	}

	l.notifier.RentalClosed(closed)
	return cost.Clone(), nil
}

// GetRental returns a copy of the rental, or ErrNotFound.
func (l *RentalLedger) GetRental(ctx context.Context, id string) (*entities.Rental, error) {
	return l.rentals.GetByID(ctx, id)
}

// CurrentRental returns the open rental holding carID. It fails with
// ErrNotFound if the car is unknown or isn't rented.
func (l *RentalLedger) CurrentRental(ctx context.Context, carID string) (*entities.Rental, error) {
	if _, err := l.fleet.GetCar(ctx, carID); err != nil {
		return nil, err
	}
	rental, err := l.rentals.GetOpenByCarID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, wrapf(entities.ErrNotFound, "no open rental for car %s", carID)
	}
	return rental, nil
}

// History returns rentals, open and closed, in the order they were opened.
// An empty driverID returns every driver's rentals. The sequence is lazy and
// restartable like Fleet.FindAvailable.
func (l *RentalLedger) History(ctx context.Context, driverID string) iter.Seq[*entities.Rental] {
	return func(yield func(*entities.Rental) bool) {
		for _, id := range l.rentals.IDs(ctx) {
			rental, err := l.rentals.GetByID(ctx, id)
			if err != nil {
				continue
			}
			if driverID != "" && rental.DriverID != driverID {
				continue
			}
			if !yield(rental) {
				return
			}
		}
	}
}

// Quote prices a prospective booking of carID without reserving anything.
// Retired or rented cars can still be quoted.
func (l *RentalLedger) Quote(ctx context.Context, carID string, durationDays int) (entities.CostBreakdown, error) {
	if durationDays < 1 {
		return entities.CostBreakdown{}, wrapf(entities.ErrInvalidDuration, "%d days", durationDays)
	}
	car, err := l.fleet.GetCar(ctx, carID)
	if err != nil {
		return entities.CostBreakdown{}, err
	}
	return l.policy.Calculate(car.Category, car.DailyRate, durationDays)
}
