package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todo-social/backend/internal/handlers"
	"todo-social/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MockFriendService struct {
	shouldReturnError bool
	userNotFound      bool
	alreadyFollowing  bool
	edgeNotFound      bool
	following         []services.FriendInfo
	followers         []services.FriendInfo
}

func (m *MockFriendService) AddFriend(db *gorm.DB, userID, followedUserID int) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	if m.userNotFound {
		return services.ErrUserNotFound
	}
	if m.alreadyFollowing {
		return services.ErrAlreadyFollowing
	}
	return nil
}

func (m *MockFriendService) RemoveFriend(db *gorm.DB, userID, followedUserID int) error {
	if m.shouldReturnError {
		return gorm.ErrInvalidData
	}
	if m.edgeNotFound {
		return services.ErrFriendshipNotFound
	}
	return nil
}

func (m *MockFriendService) GetFollowing(db *gorm.DB, userID int) ([]services.FriendInfo, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	if m.userNotFound {
		return nil, services.ErrUserNotFound
	}
	return m.following, nil
}

func (m *MockFriendService) GetFollowers(db *gorm.DB, userID int) ([]services.FriendInfo, error) {
	if m.shouldReturnError {
		return nil, gorm.ErrInvalidData
	}
	if m.userNotFound {
		return nil, services.ErrUserNotFound
	}
	return m.followers, nil
}

func setupFriendHandler() (*handlers.FriendHandler, *MockFriendService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockFriendService{}
	handler := handlers.NewFriendHandler(nil, mockService)
	router := gin.New()
	return handler, mockService, router
}

func addFriendRequest(userID string, followedUserID int) *http.Request {
	body, _ := json.Marshal(handlers.AddFollowRequest{FollowedUserID: followedUserID})
	req, _ := http.NewRequest("POST", "/api/friend?userId="+userID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAddFriend(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.POST("/api/friend", handler.AddFriend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, addFriendRequest("1", 2))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "Friend added successfully." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestAddFriendInvalidIDs(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.POST("/api/friend", handler.AddFriend)

	cases := []struct {
		userID         string
		followedUserID int
	}{
		{"abc", 2},
		{"0", 2},
		{"1", 0},
		{"1", -5},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, addFriendRequest(tc.userID, tc.followedUserID))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d for userId=%s followedUserId=%d, got %d",
				http.StatusBadRequest, tc.userID, tc.followedUserID, w.Code)
		}

		var response map[string]string
		json.Unmarshal(w.Body.Bytes(), &response)
		if response["message"] != "Valid userId and followedUserId are required." {
			t.Errorf("Unexpected message: %q", response["message"])
		}
	}
}

func TestAddFriendSelfFollow(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.POST("/api/friend", handler.AddFriend)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, addFriendRequest("3", 3))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "You cannot follow yourself." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestAddFriendUsersNotFound(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.POST("/api/friend", handler.AddFriend)
	mockService.userNotFound = true

	w := httptest.NewRecorder()
	router.ServeHTTP(w, addFriendRequest("1", 999))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "One or both users not found." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestAddFriendAlreadyFollowing(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.POST("/api/friend", handler.AddFriend)
	mockService.alreadyFollowing = true

	w := httptest.NewRecorder()
	router.ServeHTTP(w, addFriendRequest("1", 2))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "You are already following this user." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestRemoveFriend(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.DELETE("/api/friend", handler.RemoveFriend)

	req, _ := http.NewRequest("DELETE", "/api/friend?userId=1&followedUserId=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "Friend removed successfully." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestRemoveFriendNotFound(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.DELETE("/api/friend", handler.RemoveFriend)
	mockService.edgeNotFound = true

	req, _ := http.NewRequest("DELETE", "/api/friend?userId=1&followedUserId=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["message"] != "Friendship not found." {
		t.Errorf("Unexpected message: %q", response["message"])
	}
}

func TestRemoveFriendInvalidIDs(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.DELETE("/api/friend", handler.RemoveFriend)

	for _, query := range []string{"", "?userId=1", "?userId=1&followedUserId=abc", "?userId=0&followedUserId=2"} {
		req, _ := http.NewRequest("DELETE", "/api/friend"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d for query %q, got %d", http.StatusBadRequest, query, w.Code)
		}
	}
}

func TestGetFollowing(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.GET("/api/friend/followed", handler.GetFollowing)

	mockService.following = []services.FriendInfo{
		{UserID: 2, Username: "bob", Email: "bob@example.com", FollowedAt: time.Now().UTC()},
	}

	req, _ := http.NewRequest("GET", "/api/friend/followed?userId=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response []services.FriendInfo
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 || response[0].Username != "bob" {
		t.Errorf("Unexpected response: %+v", response)
	}
}

func TestGetFollowingEmptyIsArray(t *testing.T) {
	handler, _, router := setupFriendHandler()

	router.GET("/api/friend/followed", handler.GetFollowing)

	req, _ := http.NewRequest("GET", "/api/friend/followed?userId=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestGetFollowers(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.GET("/api/friend/following", handler.GetFollowers)

	mockService.followers = []services.FriendInfo{
		{UserID: 3, Username: "carol", Email: "carol@example.com", FollowedAt: time.Now().UTC()},
	}

	req, _ := http.NewRequest("GET", "/api/friend/following?userId=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response []services.FriendInfo
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 || response[0].Username != "carol" {
		t.Errorf("Unexpected response: %+v", response)
	}
}

func TestGetFollowingUserNotFound(t *testing.T) {
	handler, mockService, router := setupFriendHandler()

	router.GET("/api/friend/followed", handler.GetFollowing)
	mockService.userNotFound = true

	req, _ := http.NewRequest("GET", "/api/friend/followed?userId=999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
