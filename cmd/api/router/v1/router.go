package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	queueport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/queue/port"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/realtime"
	messaginghttp "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/presentation/http"
	notificationhttp "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/presentation/http"
)

// Deps carries everything the v1 surface binds to.
type Deps struct {
	Messaging     messaginghttp.UseCases
	Notifications notificationhttp.UseCases
	Registry      *realtime.Registry
	Queue         queueport.Client
	Auth          *auth.Manager
	Logger        zerolog.Logger
}

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")
	messaginghttp.RegisterRoutes(v1, d.Messaging, d.Registry, d.Auth, d.Logger)
	notificationhttp.RegisterRoutes(v1, d.Notifications, d.Queue, d.Auth)
}
