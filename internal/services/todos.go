package services

import (
	"errors"
	"strings"
	"time"

	"todo-social/backend/internal/models"

	"gorm.io/gorm"
)

type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTodoRequest carries a partial update; nil fields are left untouched.
// A due date can be moved but not cleared, matching the update contract.
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	IsCompleted *bool      `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
}

type TodoService interface {
	GetTodosByUser(db *gorm.DB, userID int) ([]models.Todo, error)
	CreateTodo(db *gorm.DB, userID int, req CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(db *gorm.DB, todoID int, req UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(db *gorm.DB, todoID int) error
	GetTodoByID(db *gorm.DB, todoID int) (*models.Todo, error)
}

type TodoServiceImpl struct{}

func NewTodoService() *TodoServiceImpl {
	return &TodoServiceImpl{}
}

func (s *TodoServiceImpl) GetTodosByUser(db *gorm.DB, userID int) ([]models.Todo, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	var todos []models.Todo
	if err := db.Where("userid = ?", userID).Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoServiceImpl) CreateTodo(db *gorm.DB, userID int, req CreateTodoRequest) (*models.Todo, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	todo := models.Todo{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := db.Create(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *TodoServiceImpl) UpdateTodo(db *gorm.DB, todoID int, req UpdateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := db.First(&todo, "todoid = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		todo.Title = *req.Title
	}

	if req.Description != nil {
		todo.Description = req.Description
	}

	if req.IsCompleted != nil {
		todo.IsCompleted = *req.IsCompleted
		if *req.IsCompleted {
			// Stamp completion once; re-completing keeps the original time.
			if todo.CompletedAt == nil {
				now := time.Now().UTC()
				todo.CompletedAt = &now
			}
		} else {
			todo.CompletedAt = nil
		}
	}

	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}

	if err := db.Save(&todo).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *TodoServiceImpl) DeleteTodo(db *gorm.DB, todoID int) error {
	var todo models.Todo
	if err := db.First(&todo, "todoid = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return err
	}

	return db.Delete(&todo).Error
}

func (s *TodoServiceImpl) GetTodoByID(db *gorm.DB, todoID int) (*models.Todo, error) {
	var todo models.Todo
	if err := db.First(&todo, "todoid = ?", todoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

func requireUser(db *gorm.DB, userID int) error {
	var user models.User
	if err := db.First(&user, "userid = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
