package models

import (
	"time"

	"gorm.io/gorm"
)

// BusTrip is a scheduled departure between two cities.
// Immutable after creation; tickets hang off it by id.
type BusTrip struct {
	gorm.Model
	DepartureCity   string    `json:"departure_city" gorm:"not null" binding:"required"`
	DestinationCity string    `json:"destination_city" gorm:"not null" binding:"required"`
	DepartureDate   time.Time `json:"departure_date" gorm:"not null"`
	Price           float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedBy       uint      `json:"created_by" gorm:"not null"`

	Admin   *Admin   `gorm:"foreignKey:CreatedBy" json:"admin,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:BusTripID" json:"tickets,omitempty"`
}
