package controller

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
)

// SendMessageController handles the durable send endpoint only (one
// controller per endpoint).
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{UC: uc}
}

// sendMessageRequest is the DTO for the HTTP request body. Media travels
// base64-encoded; the coordinator uploads it before anything persists.
type sendMessageRequest struct {
	Text        *string `json:"text"`
	MediaBase64 *string `json:"media_base64"`
	MediaKind   string  `json:"media_kind"`
}

// Handle sends a message to the recipient in the URL, creating the pair's
// conversation on first contact.
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID := auth.IdentityFromContext(c)
		recipientID := c.Param("recipientId")
		if recipientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipientId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var media []byte
		if req.MediaBase64 != nil && *req.MediaBase64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(*req.MediaBase64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "media_base64 is not valid base64"})
				return
			}
			media = decoded
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			SenderID:    senderID,
			RecipientID: recipientID,
			Body:        req.Text,
			Media:       media,
			MediaKind:   req.MediaKind,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		msg := res.Message
		c.JSON(http.StatusCreated, gin.H{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"sender_id":       msg.SenderID,
			"text":            msg.Body,
			"media_url":       msg.MediaURL,
			"seen":            msg.Seen,
			"created_at":      msg.CreatedAt,
			"pushed":          res.Pushed,
		})
	}
}
