package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/models"
)

// ListTrips returns the full trip catalog.
func ListTrips(c *gin.Context) {
	var trips []models.BusTrip
	if err := config.DB.Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": trips})
}

// GetTrip returns a single trip by id.
func GetTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip ID"})
		return
	}

	var trip models.BusTrip
	if err := config.DB.First(&trip, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": trip})
}

// CreateTrip adds a trip to the catalog. Admin only; the creating admin
// comes from the token claims, not the request body.
func CreateTrip(c *gin.Context) {
	var input struct {
		DepartureCity   string  `json:"departure_city" binding:"required"`
		DestinationCity string  `json:"destination_city" binding:"required"`
		DepartureDate   string  `json:"departure_date" binding:"required"`
		Price           float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip input: " + err.Error()})
		return
	}

	departureDate, err := time.Parse(time.RFC3339, input.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date format, expected ISO8601"})
		return
	}

	adminID := uint(c.MustGet("user_id").(float64))

	trip := models.BusTrip{
		DepartureCity:   input.DepartureCity,
		DestinationCity: input.DestinationCity,
		DepartureDate:   departureDate,
		Price:           input.Price,
		CreatedBy:       adminID,
	}
	if err := config.DB.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create trip: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Bus trip created successfully", "data": trip})
}
