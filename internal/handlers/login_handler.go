package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-quote-desk/internal/auth"
	"go-quote-desk/internal/database"
	"go-quote-desk/internal/i18n"
	"go-quote-desk/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginRequest
	// 1. Validate Input JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	// 2. Find User in DB
	user, err := database.FindUserByUsername(input.Username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("❌ login lookup failed: %v", err)
		}
		fail(c, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	// 3. Verify Password (Bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	// 4. Generate JWT Token
	token, claims, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("❌ token generation failed: %v", err)
		fail(c, http.StatusInternalServerError, "operation_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       user.Role,
		"username":   user.Username,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// Register creates a staff account. Only routed when ALLOW_REGISTRATION is on.
func Register(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Password) < 8 {
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	user, err := database.CreateUser(input.Username, input.Password, models.RoleStaff)
	if err != nil {
		// Most likely the username is taken.
		fail(c, http.StatusBadRequest, "invalid_input")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "role": user.Role})
}

// Logout revokes the presented token until it expires.
func Logout(c *gin.Context) {
	claims := c.MustGet("claims").(*auth.Claims)
	if err := deps.Revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		failWith(c, err, "operation_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "logged_out")})
}

func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetUint("userID"),
		"role":    c.GetString("role"),
	})
}
