package services

import (
	"errors"
	"time"

	"todo-social/backend/internal/models"

	"gorm.io/gorm"
)

// FriendInfo is the flattened projection of a follow edge joined with the
// user on its far end.
type FriendInfo struct {
	UserID     int       `json:"userId"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FollowedAt time.Time `json:"followedAt"`
}

type FriendService interface {
	AddFriend(db *gorm.DB, userID, followedUserID int) error
	RemoveFriend(db *gorm.DB, userID, followedUserID int) error
	GetFollowing(db *gorm.DB, userID int) ([]FriendInfo, error)
	GetFollowers(db *gorm.DB, userID int) ([]FriendInfo, error)
}

type FriendServiceImpl struct{}

func NewFriendService() *FriendServiceImpl {
	return &FriendServiceImpl{}
}

func (s *FriendServiceImpl) AddFriend(db *gorm.DB, userID, followedUserID int) error {
	var count int64
	if err := db.Model(&models.User{}).Where("userid IN ?", []int{userID, followedUserID}).Count(&count).Error; err != nil {
		return err
	}
	if count != 2 {
		return ErrUserNotFound
	}

	var existing models.Friend
	err := db.Where("userid = ? AND followeduserid = ?", userID, followedUserID).First(&existing).Error
	if err == nil {
		return ErrAlreadyFollowing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	friend := models.Friend{
		UserID:         userID,
		FollowedUserID: followedUserID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := db.Create(&friend).Error; err != nil {
		// Concurrent inserts of the same edge land on the composite key.
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (s *FriendServiceImpl) RemoveFriend(db *gorm.DB, userID, followedUserID int) error {
	var friend models.Friend
	err := db.Where("userid = ? AND followeduserid = ?", userID, followedUserID).First(&friend).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendshipNotFound
		}
		return err
	}

	return db.Where("userid = ? AND followeduserid = ?", userID, followedUserID).
		Delete(&models.Friend{}).Error
}

func (s *FriendServiceImpl) GetFollowing(db *gorm.DB, userID int) ([]FriendInfo, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	var following []FriendInfo
	err := db.Table("friends").
		Select("users.userid AS user_id, users.username, users.email, friends.created_at AS followed_at").
		Joins("JOIN users ON users.userid = friends.followeduserid").
		Where("friends.userid = ?", userID).
		Scan(&following).Error
	if err != nil {
		return nil, err
	}
	return following, nil
}

func (s *FriendServiceImpl) GetFollowers(db *gorm.DB, userID int) ([]FriendInfo, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	var followers []FriendInfo
	err := db.Table("friends").
		Select("users.userid AS user_id, users.username, users.email, friends.created_at AS followed_at").
		Joins("JOIN users ON users.userid = friends.userid").
		Where("friends.followeduserid = ?", userID).
		Scan(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}
