package services

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Error taxonomy for the booking core. Controllers translate these to
// HTTP statuses; anything else is a store failure.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrTripNotFound   = errors.New("bus trip not found")
	ErrAgentNotFound  = errors.New("agent not found")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrSeatTaken      = errors.New("seat is already taken")
)

// IsDuplicateKey reports whether err is a unique-constraint violation.
// GORM translates these when TranslateError is on; the raw pq code is
// checked as a fallback for connections opened without translation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
