package models

import (
	"time"
)

type Message struct {
	MessageID   int       `json:"messageId" gorm:"column:messageid;primaryKey;autoIncrement"`
	SenderID    int       `json:"senderId" gorm:"column:senderid;not null;index"`
	ReceiverID  int       `json:"receiverId" gorm:"column:receiverid;not null;index"`
	MessageType string    `json:"messageType" gorm:"column:message_type;size:50;not null;default:'text'"`
	Content     string    `json:"content" gorm:"column:content;not null"`
	MediaURL    *string   `json:"mediaUrl" gorm:"column:media_url"`
	SentAt      time.Time `json:"sentAt" gorm:"column:sent_at"`
	IsRead      bool      `json:"isRead" gorm:"column:is_read;not null;default:false"`

	Sender   *User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}

func (Message) TableName() string {
	return "messages"
}
