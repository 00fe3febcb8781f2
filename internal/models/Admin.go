// internal/models/admin.go
package models

import "gorm.io/gorm"

// Admin manages the trip catalog. Admins do not sell tickets.
type Admin struct {
	gorm.Model
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	PasswordHash string `json:"-" gorm:"not null"`

	Trips []BusTrip `gorm:"foreignKey:CreatedBy" json:"trips,omitempty"`
}
