package routes

import (
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	AuthRoutes(r)
	TripRoutes(r)
	AgentRoutes(r)
	AdminRoutes(r)

	return r
}
