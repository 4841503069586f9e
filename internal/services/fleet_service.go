package services

import (
	"context"
	"iter"

	"carrental/internal/domain/entities"
	"carrental/internal/repository"
	"carrental/pkg/utils"
)

// carLockKey namespaces car ids in the shared LockManager.
func carLockKey(carID string) string {
	return "car:" + carID
}

// Fleet owns the agency's cars and their availability. It is the only code
// that changes a car's availability flag, and only RentalLedger (in this
// package) asks it to, so the flag never drifts from the ledger's open
// rentals.
type Fleet struct {
	cars     repository.CarRepository
	locks    repository.LockManager
	notifier *NotificationService
}

func NewFleet(cars repository.CarRepository, locks repository.LockManager, notifier *NotificationService) *Fleet {
	return &Fleet{
		cars:     cars,
		locks:    locks,
		notifier: notifier,
	}
}

// AddCar stores car as available and returns its id. An empty ID is filled in
// with a generated one. Fails with ErrDuplicateID, ErrInvalidRate or
// ErrInvalidCategory.
func (f *Fleet) AddCar(ctx context.Context, car *entities.Car) (string, error) {
	if err := car.Validate(); err != nil {
		return "", err
	}

	stored := car.Clone()
	if stored.ID == "" {
		stored.ID = utils.NewCarID()
	}
	stored.Available = true
	stored.Retired = false

	if err := f.cars.Create(ctx, stored); err != nil {
		return "", err
	}
	f.notifier.CarAdded(stored)
	return stored.ID, nil
}

// GetCar returns a copy of the car, or ErrNotFound.
func (f *Fleet) GetCar(ctx context.Context, id string) (*entities.Car, error) {
	return f.cars.GetByID(ctx, id)
}

// ListCars returns every car, retired ones included, in insertion order.
func (f *Fleet) ListCars(ctx context.Context) ([]*entities.Car, error) {
	return f.cars.List(ctx)
}

// FindAvailable returns a lazy sequence of cars that can be rented right now,
// in insertion order. Pass entities.AnyCategory to skip the category filter.
//
// Go Learning Note — iter.Seq (Go 1.23):
// iter.Seq[V] is just func(yield func(V) bool). A caller ranges over it with
// `for car := range fleet.FindAvailable(ctx, cat)`. Nothing runs until the
// loop starts, each loop re-runs the function from scratch (so the sequence
// is restartable), and breaking out of the loop makes yield return false.
//
// Availability is re-read per car as the loop advances, so a car booked
// mid-iteration is skipped. No lock is held while the caller's loop body runs.
func (f *Fleet) FindAvailable(ctx context.Context, category entities.Category) iter.Seq[*entities.Car] {
	return func(yield func(*entities.Car) bool) {
		for _, id := range f.cars.IDs(ctx) {
			car, err := f.cars.GetByID(ctx, id)
			if err != nil || !car.Rentable() {
				continue
			}
			if category != entities.AnyCategory && car.Category != category {
				continue
			}
			if !yield(car) {
				return
			}
		}
	}
}

// RetireCar soft-removes a car so it is never offered again. Its rental
// history is kept. A car that is currently rented can't be retired.
func (f *Fleet) RetireCar(ctx context.Context, id string) error {
	unlock, err := f.locks.Lock(ctx, carLockKey(id))
	if err != nil {
		return err
	}
	defer unlock()

	car, err := f.cars.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if car.Retired {
		return nil
	}
	if !car.Available {
		return wrapf(entities.ErrCarUnavailable, "car %s is rented", id)
	}

	car.Retire()
	if err := f.cars.Update(ctx, car); err != nil {
		return err
	}
	f.notifier.CarRetired(car)
	return nil
}

// markUnavailable and markAvailable are the sole mutators of the availability
// flag. Callers must hold the car's lock.
func (f *Fleet) markUnavailable(ctx context.Context, id string) error {
	return f.setAvailable(ctx, id, false)
}

func (f *Fleet) markAvailable(ctx context.Context, id string) error {
	return f.setAvailable(ctx, id, true)
}

func (f *Fleet) setAvailable(ctx context.Context, id string, available bool) error {
	car, err := f.cars.GetByID(ctx, id)
	if err != nil {
		return err
	}
	car.SetAvailable(available)
	return f.cars.Update(ctx, car)
}
