package models

import (
	"time"
)

type User struct {
	UserID       int       `json:"userId" gorm:"column:userid;primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"column:username;size:100;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`

	Todos        []Todo    `json:"todos,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SentMessages []Message `json:"sentMessages,omitempty" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Following    []Friend  `json:"following,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Followers    []Friend  `json:"followers,omitempty" gorm:"foreignKey:FollowedUserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
