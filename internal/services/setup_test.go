package services

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"carrental/internal/config"
	"carrental/internal/domain/entities"
	"carrental/internal/pricing"
	"carrental/internal/repository"
	"carrental/internal/repository/memory"
)

func setupServices(t *testing.T) (*Fleet, *RentalLedger) {
	t.Helper()

	fleet, ledger, _ := setupServicesWith(t, memory.NewCarRepository())
	return fleet, ledger
}

// setupServicesWith builds the services over the given car store and returns
// the rental store too, so tests can inspect what was written.
func setupServicesWith(t *testing.T, cars repository.CarRepository) (*Fleet, *RentalLedger, *memory.RentalRepository) {
	t.Helper()

	rules, err := config.NewDefaultConfig().RuleSet()
	require.NoError(t, err)

	locks := memory.NewLockManager()
	notifier := NewNotificationService(nil)
	rentals := memory.NewRentalRepository()
	fleet := NewFleet(cars, locks, notifier)
	ledger := NewRentalLedger(fleet, rentals, locks, pricing.NewPolicy(rules), notifier)
	return fleet, ledger, rentals
}

var errStoreDown = errors.New("car store unavailable")

// flakyCars is a car store whose updates fail once failUpdates is set.
type flakyCars struct {
	*memory.CarRepository
	failUpdates atomic.Bool
}

func (f *flakyCars) Update(ctx context.Context, car *entities.Car) error {
	if f.failUpdates.Load() {
		return errStoreDown
	}
	return f.CarRepository.Update(ctx, car)
}

func addCar(t *testing.T, fleet *Fleet, id string, category entities.Category, rate int64) string {
	t.Helper()
	id, err := fleet.AddCar(context.Background(), entities.NewCar(id, "Model "+id, category, decimal.NewFromInt(rate)))
	require.NoError(t, err)
	return id
}

func availableIDs(ctx context.Context, fleet *Fleet, category entities.Category) []string {
	var ids []string
	for car := range fleet.FindAvailable(ctx, category) {
		ids = append(ids, car.ID)
	}
	return ids
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contains(ids []string, id string) bool {
	return slices.Contains(ids, id)
}
