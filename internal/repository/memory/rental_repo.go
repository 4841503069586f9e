package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"carrental/internal/domain/entities"
)

// RentalRepository stores rentals in memory, in the order they were opened.
// A secondary index maps carID → open rentalID so "who holds this car" is an
// O(1) lookup. Both indices are updated under the same lock.
type RentalRepository struct {
	mu        sync.RWMutex
	rentals   map[string]*entities.Rental
	order     []string
	openByCar map[string]string // carID → rentalID
}

func NewRentalRepository() *RentalRepository {
	return &RentalRepository{
		rentals:   make(map[string]*entities.Rental),
		openByCar: make(map[string]string),
	}
}

func (r *RentalRepository) Create(ctx context.Context, rental *entities.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rentals[rental.ID]; exists {
		return fmt.Errorf("%w: rental %s", entities.ErrDuplicateID, rental.ID)
	}
	if rental.IsOpen() {
		if holder, held := r.openByCar[rental.CarID]; held {
			return fmt.Errorf("%w: car %s is held by rental %s", entities.ErrCarUnavailable, rental.CarID, holder)
		}
		r.openByCar[rental.CarID] = rental.ID
	}
	r.rentals[rental.ID] = rental.Clone()
	r.order = append(r.order, rental.ID)
	return nil
}

func (r *RentalRepository) GetByID(ctx context.Context, id string) (*entities.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rental, exists := r.rentals[id]
	if !exists {
		return nil, fmt.Errorf("%w: rental %s", entities.ErrNotFound, id)
	}
	return rental.Clone(), nil
}

// Update replaces a stored rental and keeps the open-by-car index in sync.
func (r *RentalRepository) Update(ctx context.Context, rental *entities.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rentals[rental.ID]; !exists {
		return fmt.Errorf("%w: rental %s", entities.ErrNotFound, rental.ID)
	}
	if rental.IsOpen() {
		r.openByCar[rental.CarID] = rental.ID
	} else if r.openByCar[rental.CarID] == rental.ID {
		delete(r.openByCar, rental.CarID)
	}
	r.rentals[rental.ID] = rental.Clone()
	return nil
}

// Delete removes a rental. The ledger only uses it to roll back a rental whose
// booking could not be completed.
func (r *RentalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rental, exists := r.rentals[id]
	if !exists {
		return fmt.Errorf("%w: rental %s", entities.ErrNotFound, id)
	}
	if r.openByCar[rental.CarID] == id {
		delete(r.openByCar, rental.CarID)
	}
	delete(r.rentals, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return nil
}

// IDs returns a snapshot of rental ids in the order they were opened.
func (r *RentalRepository) IDs(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// GetOpenByCarID returns the open rental holding carID, or (nil, nil) if the
// car isn't rented. Having no open rental is a normal case, not an error.
func (r *RentalRepository) GetOpenByCarID(ctx context.Context, carID string) (*entities.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, held := r.openByCar[carID]
	if !held {
		return nil, nil
	}
	return r.rentals[id].Clone(), nil
}
