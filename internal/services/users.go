package services

import (
	"errors"
	"strings"
	"time"

	"todo-social/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService interface {
	CreateAccount(db *gorm.DB, req CreateAccountRequest) (*models.User, error)
	GetUser(db *gorm.DB, userID int) (*models.User, error)
	GetUsers(db *gorm.DB) ([]models.User, error)
}

type UserServiceImpl struct {
	bcryptCost int
}

func NewUserService(bcryptCost int) *UserServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{bcryptCost: bcryptCost}
}

func (s *UserServiceImpl) CreateAccount(db *gorm.DB, req CreateAccountRequest) (*models.User, error) {
	// Email is checked before username so a request that collides on both
	// reports the email conflict.
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(&user).Error; err != nil {
		// A concurrent registration can slip past the lookups above and hit
		// the unique constraint instead; surface it as the same conflict.
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "username") {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, userID int) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "userid = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) GetUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
