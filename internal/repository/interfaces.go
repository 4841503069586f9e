// Package repository declares the storage contracts the services depend on.
// The only implementation lives in repository/memory; a persistent backend
// would satisfy the same interfaces.
package repository

import (
	"context"

	"carrental/internal/domain/entities"
)

type CarRepository interface {
	Create(ctx context.Context, car *entities.Car) error
	GetByID(ctx context.Context, id string) (*entities.Car, error)
	Update(ctx context.Context, car *entities.Car) error
	List(ctx context.Context) ([]*entities.Car, error)
	IDs(ctx context.Context) []string
}

type RentalRepository interface {
	Create(ctx context.Context, rental *entities.Rental) error
	GetByID(ctx context.Context, id string) (*entities.Rental, error)
	Update(ctx context.Context, rental *entities.Rental) error
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) []string
	// GetOpenByCarID returns (nil, nil) when the car has no open rental.
	GetOpenByCarID(ctx context.Context, carID string) (*entities.Rental, error)
}

// LockManager serializes work on a single key. Lock blocks until the key is
// free or ctx is done; the returned func releases the lock.
type LockManager interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
