package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/services"
)

// SalesSummary returns total revenue plus every sold ticket joined with
// its trip and selling agent. Admin only.
func SalesSummary(c *gin.Context) {
	svc := services.NewSalesService(config.DB)
	summary, err := svc.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sales summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// AgentSales returns one agent's sale rows and total.
func AgentSales(c *gin.Context) {
	agentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || agentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Agent ID is required"})
		return
	}

	svc := services.NewSalesService(config.DB)
	summary, err := svc.AgentSummary(uint(agentID))
	if err != nil {
		if errors.Is(err, services.ErrAgentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch sales history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
