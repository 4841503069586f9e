package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carrental/internal/api/middleware"
	"carrental/internal/domain/entities"
	"carrental/internal/services"
)

type RentalHandler struct {
	ledger *services.RentalLedger
}

func NewRentalHandler(ledger *services.RentalLedger) *RentalHandler {
	return &RentalHandler{ledger: ledger}
}

// OpenRentalRequest is the body of POST /rentals. Dates are ISO-8601
// calendar dates ("2024-01-01").
type OpenRentalRequest struct {
	CarID        string `json:"car_id" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	DurationDays int    `json:"duration_days"`
}

// OpenRental handles POST /rentals. The renting driver is the caller.
func (h *RentalHandler) OpenRental(c *gin.Context) {
	var req OpenRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, err := entities.ParseDate(req.StartDate)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	id, err := h.ledger.OpenRental(ctx, middleware.GetUserID(c), req.CarID, start, req.DurationDays)
	if err != nil {
		writeError(c, err)
		return
	}

	rental, err := h.ledger.GetRental(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

type CloseRentalRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

// CloseRental handles PATCH /rentals/:id/close. Drivers may only close their
// own rentals; agents may close any.
func (h *RentalHandler) CloseRental(c *gin.Context) {
	var req CloseRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	end, err := entities.ParseDate(req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	rentalID := c.Param("id")
	if !h.authorize(c, rentalID) {
		return
	}

	cost, err := h.ledger.CloseRental(ctx, rentalID, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rental_id": rentalID, "cost": cost})
}

// GetRental handles GET /rentals/:id
func (h *RentalHandler) GetRental(c *gin.Context) {
	rentalID := c.Param("id")
	if !h.authorize(c, rentalID) {
		return
	}
	rental, err := h.ledger.GetRental(c.Request.Context(), rentalID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

// CarRental handles GET /cars/:id/rental (agents only) and returns the open
// rental currently holding the car.
func (h *RentalHandler) CarRental(c *gin.Context) {
	rental, err := h.ledger.CurrentRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

// ListRentals handles GET /rentals?driver_id=... (agents only).
func (h *RentalHandler) ListRentals(c *gin.Context) {
	h.writeHistory(c, c.Query("driver_id"))
}

// MyRentals handles GET /rentals/mine for the calling driver.
func (h *RentalHandler) MyRentals(c *gin.Context) {
	h.writeHistory(c, middleware.GetUserID(c))
}

func (h *RentalHandler) writeHistory(c *gin.Context, driverID string) {
	rentals := []*entities.Rental{}
	for r := range h.ledger.History(c.Request.Context(), driverID) {
		rentals = append(rentals, r)
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

// authorize lets agents through and checks that a driver owns the rental. It
// writes the error response itself and reports whether to continue.
func (h *RentalHandler) authorize(c *gin.Context, rentalID string) bool {
	if middleware.GetUserType(c) == middleware.UserTypeAgent {
		return true
	}
	rental, err := h.ledger.GetRental(c.Request.Context(), rentalID)
	if err != nil {
		writeError(c, err)
		return false
	}
	if rental.DriverID != middleware.GetUserID(c) {
		forbidden(c)
		return false
	}
	return true
}
