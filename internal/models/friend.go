package models

import (
	"time"
)

// Friend is a directed follow edge: UserID follows FollowedUserID.
// The ordered pair is the primary key; there is no surrogate id.
type Friend struct {
	UserID         int       `json:"userId" gorm:"column:userid;primaryKey"`
	FollowedUserID int       `json:"followedUserId" gorm:"column:followeduserid;primaryKey"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`

	User         *User `json:"-" gorm:"foreignKey:UserID"`
	FollowedUser *User `json:"-" gorm:"foreignKey:FollowedUserID"`
}

func (Friend) TableName() string {
	return "friends"
}
