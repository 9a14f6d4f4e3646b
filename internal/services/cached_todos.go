package services

import (
	"fmt"
	"time"

	"todo-social/backend/internal/cache"
	"todo-social/backend/internal/models"

	"gorm.io/gorm"
)

const (
	todoCacheTTL     = 30 * time.Minute
	userTodoCacheTTL = 15 * time.Minute
)

// CachedTodoService decorates a TodoService with a cache-aside layer.
// Cache failures fall through to the database and are never fatal.
type CachedTodoService struct {
	todoService TodoService
	cache       cache.Cache
}

func NewCachedTodoService(todoService TodoService, cacheInstance cache.Cache) *CachedTodoService {
	return &CachedTodoService{
		todoService: todoService,
		cache:       cacheInstance,
	}
}

func (s *CachedTodoService) GetTodosByUser(db *gorm.DB, userID int) ([]models.Todo, error) {
	cacheKey := fmt.Sprintf("user_todos:%d", userID)

	var cached []models.Todo
	if err := s.cache.Get(cacheKey, &cached); err == nil {
		return cached, nil
	}

	todos, err := s.todoService.GetTodosByUser(db, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, todos, userTodoCacheTTL)

	return todos, nil
}

func (s *CachedTodoService) CreateTodo(db *gorm.DB, userID int, req CreateTodoRequest) (*models.Todo, error) {
	todo, err := s.todoService.CreateTodo(db, userID, req)
	if err != nil {
		return nil, err
	}

	s.cache.Set(fmt.Sprintf("todo:%d", todo.TodoID), todo, todoCacheTTL)
	s.cache.Delete(fmt.Sprintf("user_todos:%d", userID))

	return todo, nil
}

func (s *CachedTodoService) UpdateTodo(db *gorm.DB, todoID int, req UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.todoService.UpdateTodo(db, todoID, req)
	if err != nil {
		return nil, err
	}

	s.cache.Set(fmt.Sprintf("todo:%d", todoID), todo, todoCacheTTL)
	s.cache.Delete(fmt.Sprintf("user_todos:%d", todo.UserID))

	return todo, nil
}

func (s *CachedTodoService) DeleteTodo(db *gorm.DB, todoID int) error {
	todo, getErr := s.todoService.GetTodoByID(db, todoID)

	if err := s.todoService.DeleteTodo(db, todoID); err != nil {
		return err
	}

	s.cache.Delete(fmt.Sprintf("todo:%d", todoID))
	if getErr == nil {
		s.cache.Delete(fmt.Sprintf("user_todos:%d", todo.UserID))
	}

	return nil
}

func (s *CachedTodoService) GetTodoByID(db *gorm.DB, todoID int) (*models.Todo, error) {
	cacheKey := fmt.Sprintf("todo:%d", todoID)

	var cached models.Todo
	if err := s.cache.Get(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	todo, err := s.todoService.GetTodoByID(db, todoID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, todo, todoCacheTTL)

	return todo, nil
}
