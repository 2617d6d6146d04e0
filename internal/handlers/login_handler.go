package handlers

import (
	"net/http"
	"strings"

	"tailorshop/internal/auth"
	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and hands out a bearer token.
//
// Accounts created before hashing existed carry a plaintext password.
// The first successful login through that path stores a bcrypt hash
// and clears the plaintext, a one-way, one-time upgrade; every later
// login verifies against the hash.
func Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON payload"})
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	var admin models.Admin
	if err := database.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	valid := false
	if admin.PasswordHash != "" {
		valid = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) == nil
	} else if admin.Password != nil && *admin.Password != "" {
		valid = *admin.Password == input.Password
		if valid {
			upgraded, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upgrade password", "error": err.Error()})
				return
			}
			err = database.DB.Model(&admin).
				Updates(map[string]interface{}{"password_hash": string(upgraded), "password": nil}).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upgrade password", "error": err.Error()})
				return
			}
		}
	}

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    gin.H{"id": admin.ID, "username": admin.Username},
	})
}

// Register creates a new admin account. Only routed when
// ALLOW_REGISTRATION=true; a live shop runs with it disabled.
func Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password", "error": err.Error()})
		return
	}

	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         "admin",
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already taken", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin created", "id": admin.ID})
}
