package routes

import (
	"bus_ticketing/internal/controllers"
	"bus_ticketing/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AgentRoutes covers the counter workflow: booking, payment updates,
// ticket lookups, and the agent's own sales history.
func AgentRoutes(r *gin.Engine) {
	agent := r.Group("/agent")
	agent.Use(middleware.RequireAuthWithRole("agent"))
	{
		agent.POST("/tickets", controllers.IssueTicket)
		agent.PUT("/tickets/payment", controllers.UpdatePayment)
		agent.GET("/tickets", controllers.ListTickets)
		agent.GET("/tickets/:id", controllers.GetTicket)
		agent.GET("/sales/:id", controllers.AgentSales)
		agent.GET("/agents", controllers.ListAgents)
		agent.GET("/agents/:id", controllers.GetAgent)
	}
}
