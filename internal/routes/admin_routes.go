package routes

import (
	"bus_ticketing/internal/controllers"
	"bus_ticketing/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/trips", controllers.CreateTrip)
		admin.GET("/sales", controllers.SalesSummary)
		admin.GET("/agents", controllers.ListAgents)
	}
}
