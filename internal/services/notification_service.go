package services

import (
	"io"
	"log/slog"

	"carrental/internal/domain/entities"
)

// NotificationService reports fleet and ledger events. The engine never
// formats user-facing text; these are structured log records an operator or
// downstream consumer can pick up. A real deployment would fan them out to
// email or push providers from here.
type NotificationService struct {
	logger *slog.Logger
}

// NewNotificationService logs through logger, or discards events if logger
// is nil.
func NewNotificationService(logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &NotificationService{logger: logger.With("component", "notifications")}
}

func (s *NotificationService) CarAdded(car *entities.Car) {
	s.logger.Info("car added",
		"car_id", car.ID,
		"category", car.Category,
		"daily_rate", car.DailyRate.String(),
	)
}

func (s *NotificationService) CarRetired(car *entities.Car) {
	s.logger.Info("car retired", "car_id", car.ID)
}

// RentalOpened tells the driver their booking is confirmed.
func (s *NotificationService) RentalOpened(rental *entities.Rental) {
	s.logger.Info("rental opened",
		"rental_id", rental.ID,
		"driver_id", rental.DriverID,
		"car_id", rental.CarID,
		"start_date", rental.StartDate.Format(entities.DateLayout),
		"due_date", rental.DueDate.Format(entities.DateLayout),
		"estimated_total", rental.EstimatedCost.Total.String(),
	)
}

// RentalClosed tells the driver the car was returned and what they owe.
func (s *NotificationService) RentalClosed(rental *entities.Rental) {
	if rental.EndDate == nil || rental.Cost == nil {
		return
	}
	s.logger.Info("rental closed",
		"rental_id", rental.ID,
		"driver_id", rental.DriverID,
		"car_id", rental.CarID,
		"end_date", rental.EndDate.Format(entities.DateLayout),
		"days", rental.Cost.DurationDays,
		"total", rental.Cost.Total.String(),
	)
	if rental.EndDate.After(rental.DueDate) {
		s.logger.Warn("rental returned late",
			"rental_id", rental.ID,
			"due_date", rental.DueDate.Format(entities.DateLayout),
			"days_late", entities.DaysBetween(rental.DueDate, *rental.EndDate),
		)
	}
}

// RollbackFailed is logged when an all-or-nothing operation could not undo a
// partial write. It indicates a bug, not a user error.
func (s *NotificationService) RollbackFailed(op, id string, err error) {
	s.logger.Error("rollback failed", "op", op, "id", id, "error", err)
}
