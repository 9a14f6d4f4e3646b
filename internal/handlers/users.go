package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"todo-social/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

func (h *UserHandler) CreateAccount(c *gin.Context) {
	var req services.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email, and password are required."})
		return
	}

	if strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email, and password are required."})
		return
	}

	user, err := h.userService.CreateAccount(h.db, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "User with this email already exists."})
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "Username is already taken."})
		default:
			log.Printf("Error creating account: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating the account."})
		}
		return
	}

	c.Header("Location", fmt.Sprintf("/api/users/%d", user.UserID))
	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	user, err := h.userService.GetUser(h.db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		log.Printf("Error getting user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving the user."})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers(h.db)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving users."})
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, newUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, response)
}
