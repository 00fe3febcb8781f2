package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/models"
)

// ListAgents returns the agent roster. Booking screens look agents up
// here instead of carrying a compiled-in list.
func ListAgents(c *gin.Context) {
	var agents []models.Agent
	if err := config.DB.Find(&agents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error listing agents: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": agents})
}

// GetAgent returns a single agent by id.
func GetAgent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid agent ID"})
		return
	}

	var agent models.Agent
	if err := config.DB.First(&agent, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error fetching agent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": agent})
}
