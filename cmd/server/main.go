package main

import (
	"log"
	"net/http"
	"os"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/logger"
	"bus_ticketing/internal/middleware"
	"bus_ticketing/internal/routes"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + getPort()
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func getPort() string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return "8080"
}
