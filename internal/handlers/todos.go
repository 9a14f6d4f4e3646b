package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"todo-social/backend/internal/services"
	"todo-social/backend/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TodoHandler struct {
	db          *gorm.DB
	todoService services.TodoService
	queue       *worker.JobQueue
}

// NewTodoHandler builds the todo handler. queue may be nil; due-date
// reminders are then skipped.
func NewTodoHandler(db *gorm.DB, todoService services.TodoService, queue *worker.JobQueue) *TodoHandler {
	return &TodoHandler{db: db, todoService: todoService, queue: queue}
}

func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId is required."})
		return
	}

	todos, err := h.todoService.GetTodosByUser(h.db, userID)
	if err != nil {
		handleTodoError(c, err, "An error occurred while retrieving todos.")
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		response = append(response, newTodoResponse(&todos[i]))
	}

	c.JSON(http.StatusOK, response)
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId is required."})
		return
	}

	var req services.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required."})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required."})
		return
	}

	todo, err := h.todoService.CreateTodo(h.db, userID, req)
	if err != nil {
		handleTodoError(c, err, "An error occurred while creating the todo.")
		return
	}

	h.scheduleDueReminder(todo.TodoID, todo.UserID, todo.Title, todo.DueDate)

	c.Header("Location", fmt.Sprintf("/api/todo/%d", todo.TodoID))
	c.JSON(http.StatusCreated, newTodoResponse(todo))
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	todoID, err := strconv.Atoi(c.Query("todoId"))
	if err != nil || todoID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid todoId is required."})
		return
	}

	var req services.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	todo, err := h.todoService.UpdateTodo(h.db, todoID, req)
	if err != nil {
		handleTodoError(c, err, "An error occurred while updating the todo.")
		return
	}

	if req.DueDate != nil {
		h.scheduleDueReminder(todo.TodoID, todo.UserID, todo.Title, todo.DueDate)
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todoID, err := strconv.Atoi(c.Query("todoId"))
	if err != nil || todoID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid todoId is required."})
		return
	}

	if err := h.todoService.DeleteTodo(h.db, todoID); err != nil {
		handleTodoError(c, err, "An error occurred while deleting the todo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully."})
}

func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	todoID, err := strconv.Atoi(c.Param("todoId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found."})
		return
	}

	todo, err := h.todoService.GetTodoByID(h.db, todoID)
	if err != nil {
		handleTodoError(c, err, "An error occurred while retrieving the todo.")
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// scheduleDueReminder enqueues a reminder job processed at the todo's due
// date. Queue failures are logged, never surfaced to the client.
func (h *TodoHandler) scheduleDueReminder(todoID, userID int, title string, dueDate *time.Time) {
	if h.queue == nil || dueDate == nil {
		return
	}

	payload := map[string]interface{}{
		"todo_id": todoID,
		"user_id": userID,
		"title":   title,
	}
	if err := h.queue.EnqueueAt(worker.QueueDefault, worker.JobTypeDueReminder, payload, *dueDate); err != nil {
		log.Printf("Failed to enqueue due reminder for todo %d: %v", todoID, err)
	}
}

func handleTodoError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
	case errors.Is(err, services.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found."})
	default:
		log.Printf("Todo request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": internalMessage})
	}
}
