package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
)

// MarkSeenController handles the REST face of the seen transition; the
// same use case also serves the live mark_seen frame.
type MarkSeenController struct {
	UC *usecase.MarkSeenUseCase
}

func NewMarkSeenController(uc *usecase.MarkSeenUseCase) *MarkSeenController {
	return &MarkSeenController{UC: uc}
}

func (h *MarkSeenController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}
		viewerID := auth.IdentityFromContext(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := h.UC.Execute(ctx, usecase.MarkSeenInput{
			ConversationID: conversationID,
			ViewerID:       viewerID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conversationID,
			"updated":         res.Updated,
			"pushed":          res.Pushed,
		})
	}
}
