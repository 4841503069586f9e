package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carrental/internal/api/handlers"
	"carrental/internal/api/middleware"
)

type Router struct {
	carHandler    *handlers.CarHandler
	rentalHandler *handlers.RentalHandler
	quoteHandler  *handlers.QuoteHandler
}

func NewRouter(
	carHandler *handlers.CarHandler,
	rentalHandler *handlers.RentalHandler,
	quoteHandler *handlers.QuoteHandler,
) *Router {
	return &Router{
		carHandler:    carHandler,
		rentalHandler: rentalHandler,
		quoteHandler:  quoteHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/")
	api.Use(middleware.MockAuth())
	{
		// Fleet management (rental desk)
		agentRoutes := api.Group("/")
		agentRoutes.Use(middleware.RequireAgent())
		{
			agentRoutes.POST("/cars", r.carHandler.AddCar)
			agentRoutes.GET("/cars", r.carHandler.ListCars)
			agentRoutes.DELETE("/cars/:id", r.carHandler.RetireCar)
			agentRoutes.GET("/cars/:id/rental", r.rentalHandler.CarRental)
			agentRoutes.GET("/rentals", r.rentalHandler.ListRentals)
		}

		// Booking (drivers)
		driverRoutes := api.Group("/")
		driverRoutes.Use(middleware.RequireDriver())
		{
			driverRoutes.POST("/rentals", r.rentalHandler.OpenRental)
			driverRoutes.GET("/rentals/mine", r.rentalHandler.MyRentals)
		}

		// Shared endpoints; ownership is checked in the handler.
		api.GET("/cars/available", r.carHandler.ListAvailable)
		api.GET("/cars/:id", r.carHandler.GetCar)
		api.POST("/quotes", r.quoteHandler.Quote)
		api.GET("/rentals/:id", r.rentalHandler.GetRental)
		api.PATCH("/rentals/:id/close", r.rentalHandler.CloseRental)
	}
}
