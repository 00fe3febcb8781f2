package models

import "gorm.io/gorm"

// Agent represents a counter staff account that sells tickets.
// Tickets and sales records reference the agent by id (attribution only).
type Agent struct {
	gorm.Model
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	PasswordHash string `json:"-" gorm:"not null"`

	Tickets      []Ticket      `gorm:"foreignKey:SoldBy" json:"tickets,omitempty"`
	SalesRecords []SalesRecord `gorm:"foreignKey:SoldBy" json:"sales_records,omitempty"`
}
