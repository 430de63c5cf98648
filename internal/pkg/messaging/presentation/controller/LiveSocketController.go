package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/realtime"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
)

// LiveSocketController is the event router: it upgrades websocket
// connections, registers presence and dispatches inbound frames to the
// delivery coordinator. Message composition is not accepted here; sending
// is a durable REST action and only its delivery is pushed live.
type LiveSocketController struct {
	registry        *realtime.Registry
	authManager     *auth.Manager
	markSeenUC      *usecase.MarkSeenUseCase
	logger          zerolog.Logger
	inflightTimeout time.Duration
}

func NewLiveSocketController(registry *realtime.Registry, authManager *auth.Manager, markSeenUC *usecase.MarkSeenUseCase, logger zerolog.Logger) *LiveSocketController {
	return &LiveSocketController{
		registry:        registry,
		authManager:     authManager,
		markSeenUC:      markSeenUC,
		logger:          logger,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin enforcement is handled by the deployment proxy.
		return true
	},
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the connection and processes frames until the client
// disconnects. A handshake without a resolvable identity is accepted as
// anonymous: no presence registration, inbound frames ignored.
func (ctl *LiveSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ""
		if token := auth.TokenFromRequest(c.Request); token != "" {
			if id, err := ctl.authManager.ResolveIdentity(token); err == nil {
				identity = id
			}
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			ctl.logger.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		conn := realtime.NewConnection(identity, ws)
		conn.Start()
		ctl.registry.Attach(conn)
		defer func() {
			ctl.registry.Detach(conn)
			conn.Shutdown(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := live.Encode(live.EventConnected, nil); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.logger.Debug().Err(err).Str("user_id", identity).Msg("websocket read ended")
				return
			}

			// Anonymous sockets get no inbound event processing.
			if identity == "" {
				continue
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "mark_seen":
				ctl.handleMarkSeen(c, conn, identity, frame)
			case "ping":
				// liveness only; pong handling lives in the ws layer
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *LiveSocketController) handleMarkSeen(c *gin.Context, conn *realtime.Connection, viewerID string, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, err := ctl.markSeenUC.Execute(ctx, usecase.MarkSeenInput{
		ConversationID: frame.ConversationID,
		ViewerID:       viewerID,
	})
	if err != nil {
		// Full detail stays in the log; the client gets the taxonomy only.
		ctl.logger.Error().Err(err).Str("user_id", viewerID).Str("conversation_id", frame.ConversationID).Msg("mark seen failed")
		code, message := seenErrorFrame(err)
		ctl.replyError(conn, code, message)
		return
	}

	// Ack the viewer; the counterpart was already pushed by the use case.
	if payload, err := live.Encode(live.EventMessagesSeen, live.SeenPayload{ConversationID: frame.ConversationID}); err == nil {
		_ = conn.Send(payload)
	}
}

// seenErrorFrame maps a mark-seen failure onto the error frame taxonomy,
// mirroring the REST respondError mapping. Internal error text never
// crosses the socket.
func seenErrorFrame(err error) (code, message string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return "bad_request", "invalid mark_seen request"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found", "conversation not found"
	default:
		return "internal_error", "could not mark conversation seen"
	}
}

func (ctl *LiveSocketController) replyError(conn *realtime.Connection, code, message string) {
	if payload, err := live.Encode(live.EventError, live.ErrorPayload{Code: code, Message: message}); err == nil {
		_ = conn.Send(payload)
	}
}
