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
	"bus_ticketing/internal/services"
)

type issueTicketInput struct {
	BusTripID      uint   `json:"bus_trip_id"`
	SeatNumber     int    `json:"seat_number"`
	PassengerName  string `json:"passenger_name"`
	PassengerPhone string `json:"passenger_phone"`
	AgentID        uint   `json:"agent_id"`
	IsPaid         bool   `json:"is_paid"`
	PaymentMethod  string `json:"payment_method"`
}

type updatePaymentInput struct {
	TicketID uint     `json:"ticket_id"`
	Amount   *float64 `json:"amount"`
	SoldBy   *uint    `json:"sold_by"`
}

// IssueTicket books a seat and, for paid bookings, writes the sales
// record in the same transaction. The response carries the persisted
// ticket (and record) ids so the receipt view fetches canonical data
// by id instead of holding client-side state.
func IssueTicket(c *gin.Context) {
	var input issueTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ticket input: " + err.Error()})
		return
	}

	svc := services.NewTicketingService(config.DB)
	ticket, err := svc.IssueTicket(services.IssueTicketInput{
		BusTripID:      input.BusTripID,
		SeatNumber:     input.SeatNumber,
		PassengerName:  input.PassengerName,
		PassengerPhone: input.PassengerPhone,
		AgentID:        input.AgentID,
		IsPaid:         input.IsPaid,
		PaymentMethod:  input.PaymentMethod,
	})
	if err != nil {
		respondTicketingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ticket created successfully",
		"ticket":  ticket,
	})
}

// UpdatePayment records a payment for a ticket or amends its existing
// sales record. Responds 201 when the record was created, 200 when
// updated.
func UpdatePayment(c *gin.Context) {
	var input updatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment input: " + err.Error()})
		return
	}

	svc := services.NewTicketingService(config.DB)
	result, record, err := svc.RecordOrUpdatePayment(services.PaymentUpdateInput{
		TicketID: input.TicketID,
		Amount:   input.Amount,
		SoldBy:   input.SoldBy,
	})
	if err != nil {
		respondTicketingError(c, err)
		return
	}

	status := http.StatusOK
	message := "Sales record updated successfully"
	if result == services.PaymentCreated {
		status = http.StatusCreated
		message = "Sales record created successfully"
	}

	c.JSON(status, gin.H{
		"success":      true,
		"message":      message,
		"status":       string(result),
		"sales_record": record,
	})
}

// GetTicket returns one ticket with its trip, agent, and sales record.
// Receipt views load tickets through this endpoint.
func GetTicket(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ticket ID"})
		return
	}

	var ticket models.Ticket
	if err := config.DB.
		Preload("BusTrip").
		Preload("Agent").
		Preload("SalesRecord").
		First(&ticket, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Ticket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
}

// ListTickets returns tickets with optional filters (bus_trip_id,
// is_paid, departure_date) and optional page/limit pagination.
func ListTickets(c *gin.Context) {
	query := config.DB.Model(&models.Ticket{}).
		Preload("BusTrip").
		Preload("Agent").
		Preload("SalesRecord").
		Order("tickets.id ASC")

	if v := c.Query("bus_trip_id"); v != "" {
		tripID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid bus_trip_id"})
			return
		}
		query = query.Where("tickets.bus_trip_id = ?", uint(tripID))
	}

	if v := c.Query("is_paid"); v != "" {
		query = query.Where("tickets.is_paid = ?", v == "true")
	}

	if v := c.Query("departure_date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid departure_date, expected YYYY-MM-DD"})
			return
		}
		// Day-bound range keeps the comparison portable across stores.
		query = query.Where(
			"tickets.bus_trip_id IN (?)",
			config.DB.Model(&models.BusTrip{}).Select("id").
				Where("departure_date >= ? AND departure_date < ?", day, day.AddDate(0, 0, 1)),
		)
	}

	var totalCount int64
	if err := query.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch tickets"})
		return
	}

	page := 0
	limit := 0
	paginated := c.Query("page") != "" || c.Query("limit") != ""
	if paginated {
		page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch tickets"})
		return
	}

	data := gin.H{
		"tickets":     tickets,
		"total_count": totalCount,
	}
	if paginated {
		totalPages := int(totalCount) / limit
		if int(totalCount)%limit != 0 {
			totalPages++
		}
		data["current_page"] = page
		data["total_pages"] = totalPages
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondTicketingError maps the service error taxonomy to HTTP statuses.
func respondTicketingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing or invalid required fields"})
	case errors.Is(err, services.ErrSeatTaken):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Seat is already taken"})
	case errors.Is(err, services.ErrTripNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Bus trip not found"})
	case errors.Is(err, services.ErrAgentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Agent not found"})
	case errors.Is(err, services.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Ticket not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Store failure: " + err.Error()})
	}
}
