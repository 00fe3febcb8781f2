package routes

import (
	"bus_ticketing/internal/controllers"

	"github.com/gin-gonic/gin"
)

// TripRoutes exposes the public trip catalog.
func TripRoutes(r *gin.Engine) {
	trips := r.Group("/trips")
	{
		trips.GET("", controllers.ListTrips)
		trips.GET("/:id", controllers.GetTrip)
	}
}
