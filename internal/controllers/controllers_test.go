package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/models"
)

// setupRouter wires the handlers against a fresh in-memory database.
// Auth middleware is bypassed; admin-only handlers get their claims
// injected so the HTTP behavior is tested in isolation from JWT parsing.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{}, &models.Agent{}, &models.BusTrip{},
		&models.Ticket{}, &models.SalesRecord{},
	))
	config.DB = db

	r := gin.New()
	r.POST("/auth/signup", SignupUser)
	r.POST("/auth/login", LoginUser)
	r.GET("/trips", ListTrips)
	r.GET("/trips/:id", GetTrip)
	r.POST("/admin/trips", asAdmin(1), CreateTrip)
	r.GET("/admin/sales", SalesSummary)
	r.GET("/admin/agents", ListAgents)
	r.POST("/agent/tickets", IssueTicket)
	r.PUT("/agent/tickets/payment", UpdatePayment)
	r.GET("/agent/tickets", ListTickets)
	r.GET("/agent/tickets/:id", GetTicket)
	r.GET("/agent/sales/:id", AgentSales)
	return r
}

func asAdmin(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", float64(id))
		c.Set("role", "admin")
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createAgent(t *testing.T, name, email string) models.Agent {
	t.Helper()
	agent := models.Agent{Name: name, Email: email, PasswordHash: "x"}
	require.NoError(t, config.DB.Create(&agent).Error)
	return agent
}

func createAdmin(t *testing.T) models.Admin {
	t.Helper()
	admin := models.Admin{Name: "Youssef Alaoui", Email: "youssef@buscompany.ma", PasswordHash: "x"}
	require.NoError(t, config.DB.Create(&admin).Error)
	return admin
}

func createTrip(t *testing.T, adminID uint, price float64) models.BusTrip {
	t.Helper()
	trip := models.BusTrip{
		DepartureCity:   "Rabat",
		DestinationCity: "Agadir",
		DepartureDate:   time.Now().Add(72 * time.Hour),
		Price:           price,
		CreatedBy:       adminID,
	}
	require.NoError(t, config.DB.Create(&trip).Error)
	return trip
}
