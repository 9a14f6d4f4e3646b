package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrFriendshipNotFound = errors.New("friendship not found")

	ErrEmailTaken       = errors.New("email already exists")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrAlreadyFollowing = errors.New("already following this user")

	ErrInvalidCredentials = errors.New("invalid username or password")
)
