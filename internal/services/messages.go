package services

import (
	"errors"
	"time"

	"todo-social/backend/internal/models"

	"gorm.io/gorm"
)

type CreateMessageRequest struct {
	ReceiverID  int     `json:"receiverId"`
	MessageType string  `json:"messageType"`
	Content     string  `json:"content"`
	MediaURL    *string `json:"mediaUrl"`
}

type MessageService interface {
	SendMessage(db *gorm.DB, senderID int, req CreateMessageRequest) (*models.Message, error)
	GetMessagesBySender(db *gorm.DB, userID int) ([]models.Message, error)
	GetMessagesByReceiver(db *gorm.DB, userID int) ([]models.Message, error)
	GetMessageByID(db *gorm.DB, messageID int) (*models.Message, error)
	MarkMessageAsRead(db *gorm.DB, messageID int) error
}

type MessageServiceImpl struct{}

func NewMessageService() *MessageServiceImpl {
	return &MessageServiceImpl{}
}

func (s *MessageServiceImpl) SendMessage(db *gorm.DB, senderID int, req CreateMessageRequest) (*models.Message, error) {
	var sender models.User
	if err := db.First(&sender, "userid = ?", senderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var receiver models.User
	if err := db.First(&receiver, "userid = ?", req.ReceiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}

	message := models.Message{
		SenderID:    senderID,
		ReceiverID:  req.ReceiverID,
		MessageType: messageType,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		SentAt:      time.Now().UTC(),
		IsRead:      false,
	}

	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}

	message.Sender = &sender
	return &message, nil
}

func (s *MessageServiceImpl) GetMessagesBySender(db *gorm.DB, userID int) ([]models.Message, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := db.Preload("Sender").
		Where("senderid = ?", userID).
		Order("sent_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageServiceImpl) GetMessagesByReceiver(db *gorm.DB, userID int) ([]models.Message, error) {
	if err := requireUser(db, userID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := db.Preload("Sender").
		Where("receiverid = ?", userID).
		Order("sent_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageServiceImpl) GetMessageByID(db *gorm.DB, messageID int) (*models.Message, error) {
	var message models.Message
	err := db.Preload("Sender").First(&message, "messageid = ?", messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

// MarkMessageAsRead is idempotent; a message that is already read stays read.
func (s *MessageServiceImpl) MarkMessageAsRead(db *gorm.DB, messageID int) error {
	var message models.Message
	if err := db.First(&message, "messageid = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	message.IsRead = true
	return db.Save(&message).Error
}
