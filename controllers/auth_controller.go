package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"party-planner-api/config"
	"party-planner-api/middleware"
	"party-planner-api/models"
	"party-planner-api/services"
)

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /signup - creates a new customer account
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid signup data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EMAIL_TAKEN",
				"message": "An account with this email already exists",
			},
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create account",
			},
		})
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}

	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create account",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// Login handles POST /login - verifies credentials and opens a session
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Email and password are required",
			},
		})
		return
	}

	db := config.GetDB()
	cfg := config.GetConfig()

	var user models.User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		(err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Incorrect email or password",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up account",
			},
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACCOUNT_DISABLED",
				"message": "This account has been disabled",
			},
		})
		return
	}

	accessToken, err := middleware.NewAccessToken(cfg, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to open session",
			},
		})
		return
	}

	refreshToken, err := services.GetTokenStore().Issue(c.Request.Context(), user.ID, cfg.RefreshTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to open session",
			},
		})
		return
	}

	middleware.SetSessionCookies(c, cfg, accessToken, refreshToken)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// RefreshToken handles POST /refresh-token - rotates the refresh token and
// issues a fresh access token. This backs the client's single-shot
// 401-retry interceptor.
func RefreshToken(c *gin.Context) {
	cfg := config.GetConfig()

	oldToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || oldToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_REFRESH_TOKEN",
				"message": "No refresh token provided",
			},
		})
		return
	}

	newToken, userID, err := services.GetTokenStore().Rotate(c.Request.Context(), oldToken, cfg.RefreshTokenTTL)
	if errors.Is(err, services.ErrTokenNotFound) {
		middleware.ClearSessionCookies(c, cfg)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REFRESH_TOKEN",
				"message": "Refresh token is invalid or expired",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to refresh session",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil || !user.IsActive {
		middleware.ClearSessionCookies(c, cfg)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACCOUNT_UNAVAILABLE",
				"message": "Account no longer available",
			},
		})
		return
	}

	accessToken, err := middleware.NewAccessToken(cfg, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to refresh session",
			},
		})
		return
	}

	middleware.SetSessionCookies(c, cfg, accessToken, newToken)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session refreshed",
	})
}

// Logout handles POST /logout - revokes the refresh token and clears cookies
func Logout(c *gin.Context) {
	cfg := config.GetConfig()

	if token, err := c.Cookie(middleware.RefreshTokenCookie); err == nil && token != "" {
		if err := services.GetTokenStore().Revoke(c.Request.Context(), token); err != nil {
			log.Printf("Failed to revoke refresh token on logout: %v", err)
		}
	}

	middleware.ClearSessionCookies(c, cfg)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
