package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bus_ticketing/internal/models"
)

// newTestDB opens an in-memory SQLite database with the same schema and
// error translation the server uses, so the unique-index conflict paths
// run for real.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{}, &models.Agent{}, &models.BusTrip{},
		&models.Ticket{}, &models.SalesRecord{},
	))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) models.Admin {
	t.Helper()
	admin := models.Admin{Name: "Youssef Alaoui", Email: "youssef@buscompany.ma", PasswordHash: "x"}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func seedAgent(t *testing.T, db *gorm.DB, name, email string) models.Agent {
	t.Helper()
	agent := models.Agent{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&agent).Error)
	return agent
}

func seedTrip(t *testing.T, db *gorm.DB, adminID uint, price float64) models.BusTrip {
	t.Helper()
	trip := models.BusTrip{
		DepartureCity:   "Casablanca",
		DestinationCity: "Marrakech",
		DepartureDate:   time.Now().Add(48 * time.Hour),
		Price:           price,
		CreatedBy:       adminID,
	}
	require.NoError(t, db.Create(&trip).Error)
	return trip
}
