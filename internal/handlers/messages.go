package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"todo-social/backend/internal/models"
	"todo-social/backend/internal/services"
	"todo-social/backend/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	db             *gorm.DB
	messageService services.MessageService
	queue          *worker.JobQueue
}

// NewMessageHandler builds the message handler. queue may be nil; read
// receipts are then skipped.
func NewMessageHandler(db *gorm.DB, messageService services.MessageService, queue *worker.JobQueue) *MessageHandler {
	return &MessageHandler{db: db, messageService: messageService, queue: queue}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID, err := strconv.Atoi(c.Query("senderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid senderId and receiverId are required."})
		return
	}

	var req services.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid senderId and receiverId are required."})
		return
	}

	if senderID <= 0 || req.ReceiverID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid senderId and receiverId are required."})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message content is required."})
		return
	}

	message, err := h.messageService.SendMessage(h.db, senderID, req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sender or receiver not found."})
			return
		}
		log.Printf("Error sending message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while sending the message."})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/messages/%d", message.MessageID))
	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// GetMessages lists messages sent by the given user, newest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	h.listMessages(c, h.messageService.GetMessagesBySender)
}

// GetInbox lists messages received by the given user, newest first.
func (h *MessageHandler) GetInbox(c *gin.Context) {
	h.listMessages(c, h.messageService.GetMessagesByReceiver)
}

func (h *MessageHandler) listMessages(c *gin.Context, query func(*gorm.DB, int) ([]models.Message, error)) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid userId is required."})
		return
	}

	messages, err := query(h.db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		log.Printf("Error listing messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving messages."})
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		response = append(response, newMessageResponse(&messages[i]))
	}

	c.JSON(http.StatusOK, response)
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message not found."})
		return
	}

	message, err := h.messageService.GetMessageByID(h.db, messageID)
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found."})
			return
		}
		log.Printf("Error getting message %d: %v", messageID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving the message."})
		return
	}

	c.JSON(http.StatusOK, newMessageResponse(message))
}

func (h *MessageHandler) MarkMessageAsRead(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Query("messageId"))
	if err != nil || messageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid messageId is required."})
		return
	}

	if err := h.messageService.MarkMessageAsRead(h.db, messageID); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found."})
			return
		}
		log.Printf("Error marking message %d as read: %v", messageID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while marking the message as read."})
		return
	}

	if h.queue != nil {
		payload := map[string]interface{}{"message_id": messageID}
		if err := h.queue.Enqueue(worker.QueueDefault, worker.JobTypeReadReceipt, payload); err != nil {
			log.Printf("Failed to enqueue read receipt for message %d: %v", messageID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read."})
}
