package handlers

import (
	"time"

	"todo-social/backend/internal/models"
)

// Response projections. Internal fields such as the password hash never
// appear here.

type UserResponse struct {
	UserID    int       `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type TodoResponse struct {
	TodoID      int        `json:"todoId"`
	UserID      int        `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	DueDate     *time.Time `json:"dueDate"`
}

type MessageResponse struct {
	MessageID      int       `json:"messageId"`
	SenderID       int       `json:"senderId"`
	ReceiverID     int       `json:"receiverId"`
	SenderUsername string    `json:"senderUsername"`
	MessageType    string    `json:"messageType"`
	Content        string    `json:"content"`
	MediaURL       *string   `json:"mediaUrl"`
	SentAt         time.Time `json:"sentAt"`
	IsRead         bool      `json:"isRead"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func newTodoResponse(todo *models.Todo) TodoResponse {
	return TodoResponse{
		TodoID:      todo.TodoID,
		UserID:      todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   todo.CreatedAt,
		CompletedAt: todo.CompletedAt,
		DueDate:     todo.DueDate,
	}
}

func newMessageResponse(msg *models.Message) MessageResponse {
	resp := MessageResponse{
		MessageID:   msg.MessageID,
		SenderID:    msg.SenderID,
		ReceiverID:  msg.ReceiverID,
		MessageType: msg.MessageType,
		Content:     msg.Content,
		MediaURL:    msg.MediaURL,
		SentAt:      msg.SentAt,
		IsRead:      msg.IsRead,
	}
	if msg.Sender != nil {
		resp.SenderUsername = msg.Sender.Username
	}
	return resp
}
