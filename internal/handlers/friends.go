package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"todo-social/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddFollowRequest struct {
	FollowedUserID int `json:"followedUserId"`
}

type FriendHandler struct {
	db            *gorm.DB
	friendService services.FriendService
}

func NewFriendHandler(db *gorm.DB, friendService services.FriendService) *FriendHandler {
	return &FriendHandler{db: db, friendService: friendService}
}

func (h *FriendHandler) AddFriend(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId and followedUserId are required."})
		return
	}

	var req AddFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId and followedUserId are required."})
		return
	}

	if userID <= 0 || req.FollowedUserID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId and followedUserId are required."})
		return
	}

	if userID == req.FollowedUserID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot follow yourself."})
		return
	}

	if err := h.friendService.AddFriend(h.db, userID, req.FollowedUserID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "One or both users not found."})
		case errors.Is(err, services.ErrAlreadyFollowing):
			c.JSON(http.StatusConflict, gin.H{"message": "You are already following this user."})
		default:
			log.Printf("Error adding friend: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while adding the friend."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend added successfully."})
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, err1 := strconv.Atoi(c.Query("userId"))
	followedUserID, err2 := strconv.Atoi(c.Query("followedUserId"))
	if err1 != nil || err2 != nil || userID <= 0 || followedUserID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId and followedUserId are required."})
		return
	}

	if err := h.friendService.RemoveFriend(h.db, userID, followedUserID); err != nil {
		if errors.Is(err, services.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Friendship not found."})
			return
		}
		log.Printf("Error removing friend: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while removing the friend."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully."})
}

// GetFollowing lists the users the given user follows.
func (h *FriendHandler) GetFollowing(c *gin.Context) {
	h.listEdges(c, h.friendService.GetFollowing, "An error occurred while retrieving friends.")
}

// GetFollowers lists the users following the given user.
func (h *FriendHandler) GetFollowers(c *gin.Context) {
	h.listEdges(c, h.friendService.GetFollowers, "An error occurred while retrieving followers.")
}

func (h *FriendHandler) listEdges(c *gin.Context, query func(*gorm.DB, int) ([]services.FriendInfo, error), internalMessage string) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId is required."})
		return
	}

	friends, err := query(h.db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		log.Printf("Error listing friend edges: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": internalMessage})
		return
	}

	if friends == nil {
		friends = []services.FriendInfo{}
	}

	c.JSON(http.StatusOK, friends)
}
