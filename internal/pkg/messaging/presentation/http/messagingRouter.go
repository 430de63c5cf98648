package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/realtime"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/presentation/controller"
)

// UseCases groups the messaging application services the routes bind to.
type UseCases struct {
	SendMessage       *usecase.SendMessageUseCase
	MarkSeen          *usecase.MarkSeenUseCase
	ListConversations *usecase.ListConversationsUseCase
	ListMessages      *usecase.ListMessagesUseCase
}

// RegisterRoutes registers messaging endpoints under the given router
// group. The websocket endpoint does its own handshake auth so it is
// mounted outside the REST auth middleware.
func RegisterRoutes(g *gin.RouterGroup, ucs UseCases, registry *realtime.Registry, authManager *auth.Manager, logger zerolog.Logger) {
	sendCtl := controller.NewSendMessageController(ucs.SendMessage)
	seenCtl := controller.NewMarkSeenController(ucs.MarkSeen)
	listConvCtl := controller.NewListConversationsController(ucs.ListConversations)
	listMsgCtl := controller.NewListMessagesController(ucs.ListMessages)
	socketCtl := controller.NewLiveSocketController(registry, authManager, ucs.MarkSeen, logger)

	authed := g.Group("", auth.Middleware(authManager))

	// POST /api/v1/messages/:recipientId -> durable send
	authed.POST("/messages/:recipientId", sendCtl.Handle())

	// GET /api/v1/conversations -> requester's threads, newest activity first
	authed.GET("/conversations", listConvCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> thread log
	authed.GET("/conversations/:conversationId/messages", listMsgCtl.Handle())

	// PUT /api/v1/conversations/:conversationId/seen -> seen transition
	authed.PUT("/conversations/:conversationId/seen", seenCtl.Handle())

	// GET /api/v1/ws -> live event channel
	g.GET("/ws", socketCtl.Handle())
}
