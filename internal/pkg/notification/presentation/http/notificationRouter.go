package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	queueport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/queue/port"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/usecase"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/notification/presentation/controller"
)

// UseCases groups the notification application services the routes bind
// to.
type UseCases struct {
	List     *usecase.ListNotificationsUseCase
	MarkRead *usecase.MarkReadUseCase
}

// RegisterRoutes registers notification endpoints under the given router
// group.
func RegisterRoutes(g *gin.RouterGroup, ucs UseCases, client queueport.Client, authManager *auth.Manager) {
	notifyCtl := controller.NewNotifyController(client)
	listCtl := controller.NewListNotificationsController(ucs.List)
	readCtl := controller.NewMarkReadController(ucs.MarkRead)

	authed := g.Group("", auth.Middleware(authManager))

	// POST /api/v1/interactions -> fan out a like/comment/follow event
	authed.POST("/interactions", notifyCtl.Handle())

	// GET /api/v1/notifications -> recipient's inbox, newest first
	authed.GET("/notifications", listCtl.Handle())

	// PUT /api/v1/notifications/:notificationId/read -> read transition
	authed.PUT("/notifications/:notificationId/read", readCtl.Handle())
}
