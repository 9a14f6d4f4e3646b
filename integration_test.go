package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"todo-social/backend/internal/config"
	"todo-social/backend/internal/handlers"
	"todo-social/backend/internal/models"
	"todo-social/backend/internal/monitoring"
	"todo-social/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestApplicationStartup(t *testing.T) {
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("REDIS_HOST", "localhost")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("REDIS_HOST")
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg == nil {
		t.Fatal("Configuration should not be nil")
	}
}

func setupTestServer(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	os.Setenv("RATE_LIMIT_ENABLED", "false")
	os.Setenv("REDIS_ENABLED", "false")
	t.Cleanup(func() {
		os.Unsetenv("RATE_LIMIT_ENABLED")
		os.Unsetenv("REDIS_ENABLED")
	})

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Todo{}, &models.Message{}, &models.Friend{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	return setupRouter(cfg,
		handlers.NewUserHandler(db, services.NewUserService(cfg.Auth.BCryptCost)),
		handlers.NewTodoHandler(db, services.NewTodoService(), nil),
		handlers.NewFriendHandler(db, services.NewFriendService()),
		handlers.NewMessageHandler(db, services.NewMessageService(), nil),
		handlers.NewLoginHandler(db, authService),
		handlers.NewAdminHandler(nil),
		monitoring.NewHealthChecker(),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFullUserFlow(t *testing.T) {
	router := setupTestServer(t)

	// Register two users.
	for _, name := range []string{"alice", "bob"} {
		w := doJSON(t, router, "POST", "/api/user", map[string]string{
			"username": name,
			"email":    name + "@example.com",
			"password": "secret123",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Failed to register %s: status %d, body %s", name, w.Code, w.Body.String())
		}
	}

	var alice handlers.UserResponse
	w := doJSON(t, router, "GET", "/api/users/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to fetch user: status %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &alice)
	if alice.Username != "alice" {
		t.Fatalf("Expected username 'alice', got %q", alice.Username)
	}

	// Alice creates a todo and completes it.
	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/todo?userId=%d", alice.UserID), map[string]interface{}{
		"title":   "Write integration tests",
		"dueDate": due,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create todo: status %d, body %s", w.Code, w.Body.String())
	}

	var todo handlers.TodoResponse
	json.Unmarshal(w.Body.Bytes(), &todo)
	if todo.DueDate == nil {
		t.Fatal("Expected due date to be persisted")
	}

	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/todo?todoId=%d", todo.TodoID), map[string]interface{}{
		"isCompleted": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to complete todo: status %d, body %s", w.Code, w.Body.String())
	}

	var completed handlers.TodoResponse
	json.Unmarshal(w.Body.Bytes(), &completed)
	if !completed.IsCompleted || completed.CompletedAt == nil {
		t.Fatal("Expected todo to be completed with a timestamp")
	}

	// Alice follows bob.
	w = doJSON(t, router, "POST", "/api/friend?userId=1", map[string]int{"followedUserId": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to add friend: status %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/friend/followed?userId=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to list following: status %d", w.Code)
	}
	var following []services.FriendInfo
	json.Unmarshal(w.Body.Bytes(), &following)
	if len(following) != 1 || following[0].Username != "bob" {
		t.Fatalf("Expected alice to follow bob, got %+v", following)
	}

	// Bob appears in his own followers list from the reverse direction.
	w = doJSON(t, router, "GET", "/api/friend/following?userId=2", nil)
	var followers []services.FriendInfo
	json.Unmarshal(w.Body.Bytes(), &followers)
	if len(followers) != 1 || followers[0].Username != "alice" {
		t.Fatalf("Expected bob to be followed by alice, got %+v", followers)
	}

	// Alice messages bob, bob reads it.
	w = doJSON(t, router, "POST", "/api/message?senderId=1", map[string]interface{}{
		"receiverId": 2,
		"content":    "hi bob",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to send message: status %d, body %s", w.Code, w.Body.String())
	}

	var msg handlers.MessageResponse
	json.Unmarshal(w.Body.Bytes(), &msg)
	if msg.IsRead {
		t.Fatal("Expected new message to be unread")
	}

	w = doJSON(t, router, "GET", "/api/message/inbox?userId=2", nil)
	var inbox []handlers.MessageResponse
	json.Unmarshal(w.Body.Bytes(), &inbox)
	if len(inbox) != 1 || inbox[0].Content != "hi bob" {
		t.Fatalf("Expected bob's inbox to hold the message, got %+v", inbox)
	}

	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/message/read?messageId=%d", msg.MessageID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to mark message read: status %d", w.Code)
	}

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/messages/%d", msg.MessageID), nil)
	var read handlers.MessageResponse
	json.Unmarshal(w.Body.Bytes(), &read)
	if !read.IsRead {
		t.Fatal("Expected message to be read")
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(t, router, "GET", "/api/admin/metrics", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status %d without token, got %d", http.StatusUnauthorized, w.Code)
	}

	// Register and log in to obtain a token.
	w = doJSON(t, router, "POST", "/api/user", map[string]string{
		"username": "operator",
		"email":    "operator@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register: status %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/login", map[string]string{
		"username": "operator",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to log in: status %d, body %s", w.Code, w.Body.String())
	}

	var login handlers.LoginResponse
	json.Unmarshal(w.Body.Bytes(), &login)
	if login.Token == "" {
		t.Fatal("Expected a token from login")
	}

	req, _ := http.NewRequest("GET", "/api/admin/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status %d with token, got %d", http.StatusOK, recorder.Code)
	}

	req, _ = http.NewRequest("GET", "/api/admin/cache", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status %d from cache stats, got %d", http.StatusOK, recorder.Code)
	}

	var cacheStats map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &cacheStats)
	if enabled, ok := cacheStats["enabled"].(bool); !ok || enabled {
		t.Fatalf("Expected cache to report disabled, got %v", cacheStats)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := setupTestServer(t)

	w := doJSON(t, router, "POST", "/api/user", map[string]string{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register: status %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/login", map[string]string{
		"username": "carol",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
