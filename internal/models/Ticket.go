package models

import (
	"time"

	"gorm.io/gorm"
)

// SeatCapacity is the number of seats on every bus in the fleet.
const SeatCapacity = 45

// Payment methods accepted at the counter.
const (
	PaymentCash          = "Cash"
	PaymentCreditCard    = "CreditCard"
	PaymentBankTransfer  = "BankTransfer"
	PaymentMobilePayment = "MobilePayment"
)

// Ticket is a booked seat on a trip for a named passenger.
// The composite unique index on (bus_trip_id, seat_number) is the
// authoritative guard against double-booking; availability pre-checks
// are only a fast path.
type Ticket struct {
	gorm.Model
	BusTripID      uint      `json:"bus_trip_id" gorm:"not null;uniqueIndex:idx_trip_seat"`
	SeatNumber     int       `json:"seat_number" gorm:"not null;uniqueIndex:idx_trip_seat"`
	PassengerName  string    `json:"passenger_name" gorm:"not null"`
	PassengerPhone string    `json:"passenger_phone" gorm:"not null"`
	IsPaid         bool      `json:"is_paid" gorm:"default:false"`
	PaymentMethod  string    `json:"payment_method" gorm:"default:Cash"`
	SoldBy         uint      `json:"sold_by" gorm:"not null"`
	SoldAt         time.Time `json:"sold_at"`

	BusTrip     *BusTrip     `gorm:"foreignKey:BusTripID" json:"bus_trip,omitempty"`
	Agent       *Agent       `gorm:"foreignKey:SoldBy" json:"agent,omitempty"`
	SalesRecord *SalesRecord `gorm:"foreignKey:TicketID" json:"sales_record,omitempty"`
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentBankTransfer, PaymentMobilePayment:
		return true
	}
	return false
}
