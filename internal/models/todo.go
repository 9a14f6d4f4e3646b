package models

import (
	"time"
)

type Todo struct {
	TodoID      int        `json:"todoId" gorm:"column:todoid;primaryKey;autoIncrement"`
	UserID      int        `json:"userId" gorm:"column:userid;not null;index"`
	Title       string     `json:"title" gorm:"column:title;size:200;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	IsCompleted bool       `json:"isCompleted" gorm:"column:is_completed;not null;default:false"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
	CompletedAt *time.Time `json:"completedAt" gorm:"column:completed_at"`
	DueDate     *time.Time `json:"dueDate" gorm:"column:due_date"`
}

func (Todo) TableName() string {
	return "todos"
}
