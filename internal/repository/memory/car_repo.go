package memory

import (
	"context"
	"fmt"
	"sync"

	"carrental/internal/domain/entities"
)

// CarRepository stores cars in memory. Besides the id index it keeps the
// insertion order, which is the order availability queries report cars in.
// Records are copied on the way in and out so nothing outside the repository
// can mutate stored state without going through Update.
type CarRepository struct {
	mu    sync.RWMutex
	cars  map[string]*entities.Car
	order []string
}

func NewCarRepository() *CarRepository {
	return &CarRepository{
		cars: make(map[string]*entities.Car),
	}
}

func (r *CarRepository) Create(ctx context.Context, car *entities.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cars[car.ID]; exists {
		return fmt.Errorf("%w: car %s", entities.ErrDuplicateID, car.ID)
	}
	r.cars[car.ID] = car.Clone()
	r.order = append(r.order, car.ID)
	return nil
}

func (r *CarRepository) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, exists := r.cars[id]
	if !exists {
		return nil, fmt.Errorf("%w: car %s", entities.ErrNotFound, id)
	}
	return car.Clone(), nil
}

func (r *CarRepository) Update(ctx context.Context, car *entities.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cars[car.ID]; !exists {
		return fmt.Errorf("%w: car %s", entities.ErrNotFound, car.ID)
	}
	r.cars[car.ID] = car.Clone()
	return nil
}

// List returns every car, retired ones included, in insertion order.
func (r *CarRepository) List(ctx context.Context) ([]*entities.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := make([]*entities.Car, 0, len(r.order))
	for _, id := range r.order {
		cars = append(cars, r.cars[id].Clone())
	}
	return cars, nil
}

// IDs returns a snapshot of the car ids in insertion order.
func (r *CarRepository) IDs(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
