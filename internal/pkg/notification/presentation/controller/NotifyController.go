package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/queue/port"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/task"
)

// NotifyController is the REST face of the fan-out: the like/comment/
// follow handlers call it after their own writes. It enqueues the fan-out
// task so interaction bursts get durable retries.
type NotifyController struct {
	Q queueport.Client
}

func NewNotifyController(client queueport.Client) *NotifyController {
	return &NotifyController{Q: client}
}

type notifyRequest struct {
	RecipientID   string  `json:"recipient_id" binding:"required"`
	Kind          string  `json:"kind" binding:"required"`
	RelatedPostID *string `json:"related_post_id"`
	Message       string  `json:"message"`
}

func (h *NotifyController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID := auth.IdentityFromContext(c)

		var req notifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !notification.Kind(req.Kind).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be one of like, comment, follow"})
			return
		}

		payload := task.NotifyTaskPayload{
			RecipientID:   req.RecipientID,
			SenderID:      senderID,
			Kind:          req.Kind,
			RelatedPostID: req.RelatedPostID,
			Message:       req.Message,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := queueport.EnqueueOption{Queue: "notifications", MaxRetry: 10}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.NotifyTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue notification"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":       "queued",
			"task_id":      id,
			"recipient_id": req.RecipientID,
			"kind":         req.Kind,
		})
	}
}
