package handlers

import (
	"errors"
	"log"
	"net/http"

	"todo-social/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type LoginHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

func NewLoginHandler(db *gorm.DB, authService services.AuthService) *LoginHandler {
	return &LoginHandler{db: db, authService: authService}
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required."})
		return
	}

	user, err := h.authService.LoginUser(h.db, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password."})
			return
		}
		log.Printf("Error logging in user %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while logging in."})
		return
	}

	token, expiresIn, err := h.authService.GenerateToken(user)
	if err != nil {
		log.Printf("Error generating token for user %d: %v", user.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while logging in."})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresIn: expiresIn})
}
