// internal/models/salesrecord.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// SalesRecord is the monetary ledger entry for a paid ticket.
// At most one record exists per ticket (unique index on ticket_id),
// and a record exists if and only if the ticket is marked paid.
type SalesRecord struct {
	gorm.Model
	TicketID uint      `json:"ticket_id" gorm:"uniqueIndex;not null"`
	Amount   float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	SoldBy   uint      `json:"sold_by" gorm:"not null"`
	SoldAt   time.Time `json:"sold_at"`

	Ticket *Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`
	Agent  *Agent  `gorm:"foreignKey:SoldBy" json:"agent,omitempty"`
}
