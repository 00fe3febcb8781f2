package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bus_ticketing/internal/config"
	"bus_ticketing/internal/middleware"
	"bus_ticketing/internal/models"
	"bus_ticketing/internal/services"
)

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// SignupUser registers an agent or admin account and returns a JWT.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not hash password"})
		return
	}

	var id uint
	switch role {
	case "admin":
		admin := models.Admin{Name: input.Name, Email: input.Email, PasswordHash: hashedPassword}
		if err := config.DB.Create(&admin).Error; err != nil {
			respondSignupError(c, err)
			return
		}
		id = admin.ID
	default:
		agent := models.Agent{Name: input.Name, Email: input.Email, PasswordHash: hashedPassword}
		if err := config.DB.Create(&agent).Error; err != nil {
			respondSignupError(c, err)
			return
		}
		id = agent.ID
	}

	token, err := middleware.GenerateToken(id, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    id,
			"name":  input.Name,
			"email": input.Email,
			"role":  role,
		},
	})
}

// LoginUser authenticates an agent (default) or admin against the stored
// bcrypt hash. Unknown email and wrong password get the same answer.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(body.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var (
		id   uint
		name string
		hash string
	)
	switch role {
	case "admin":
		var admin models.Admin
		if err := config.DB.Where("email = ?", body.Email).First(&admin).Error; err != nil {
			respondLoginError(c, err)
			return
		}
		id, name, hash = admin.ID, admin.Name, admin.PasswordHash
	default:
		var agent models.Agent
		if err := config.DB.Where("email = ?", body.Email).First(&agent).Error; err != nil {
			respondLoginError(c, err)
			return
		}
		id, name, hash = agent.ID, agent.Name, agent.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(id, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    id,
			"name":  name,
			"email": body.Email,
			"role":  role,
		},
	})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "agent"
	}
	switch role {
	case "agent", "admin":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func respondSignupError(c *gin.Context, err error) {
	if services.IsDuplicateKey(err) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "email already in use"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not create account: " + err.Error()})
}

func respondLoginError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "database error: " + err.Error()})
}
