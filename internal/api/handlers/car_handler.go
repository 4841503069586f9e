package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"carrental/internal/domain/entities"
	"carrental/internal/services"
)

type CarHandler struct {
	fleet *services.Fleet
}

func NewCarHandler(fleet *services.Fleet) *CarHandler {
	return &CarHandler{fleet: fleet}
}

// AddCarRequest is the body of POST /cars. ID is optional; DailyRate accepts
// either a JSON number or a string such as "49.99".
type AddCarRequest struct {
	ID        string           `json:"id"`
	Model     string           `json:"model" binding:"required"`
	Category  string           `json:"category" binding:"required"`
	DailyRate *decimal.Decimal `json:"daily_rate" binding:"required"`
}

// AddCar handles POST /cars
func (h *CarHandler) AddCar(c *gin.Context) {
	var req AddCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	car := entities.NewCar(req.ID, req.Model, entities.Category(req.Category), *req.DailyRate)
	id, err := h.fleet.AddCar(c.Request.Context(), car)
	if err != nil {
		writeError(c, err)
		return
	}

	stored, err := h.fleet.GetCar(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// GetCar handles GET /cars/:id
func (h *CarHandler) GetCar(c *gin.Context) {
	car, err := h.fleet.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

// ListCars handles GET /cars (agents only). Retired cars are included.
func (h *CarHandler) ListCars(c *gin.Context) {
	cars, err := h.fleet.ListCars(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// ListAvailable handles GET /cars/available?category=suv
func (h *CarHandler) ListAvailable(c *gin.Context) {
	category := entities.AnyCategory
	if raw := c.Query("category"); raw != "" {
		parsed, err := entities.ParseCategory(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		category = parsed
	}

	cars := []*entities.Car{}
	for car := range h.fleet.FindAvailable(c.Request.Context(), category) {
		cars = append(cars, car)
	}
	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// RetireCar handles DELETE /cars/:id
func (h *CarHandler) RetireCar(c *gin.Context) {
	if err := h.fleet.RetireCar(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
