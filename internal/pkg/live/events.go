package live

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event types pushed over live sessions. Message composition is not a live
// event: sending is a durable REST action, only its delivery is pushed.
const (
	EventConnected       = "connected"
	EventNewMessage      = "new_message"
	EventMessagesSeen    = "messages_seen"
	EventNewNotification = "new_notification"
	EventOnlineUsers     = "online_users"
	EventError           = "error"
)

// Envelope is the wire frame for every outbound live event. EventID is a
// ULID so clients can order and dedupe frames without trusting arrival
// order.
type Envelope struct {
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MessagePayload mirrors a persisted message for the recipient's UI.
type MessagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           *string   `json:"body,omitempty"`
	MediaURL       *string   `json:"media_url,omitempty"`
	Seen           bool      `json:"seen"`
	CreatedAt      time.Time `json:"created_at"`
}

// SeenPayload tells the counterpart which conversation was read, so its UI
// can reconcile without refetching the thread.
type SeenPayload struct {
	ConversationID string `json:"conversation_id"`
}

// NotificationPayload is the lightweight live hint for an interaction; the
// persisted notification row remains the source of truth.
type NotificationPayload struct {
	Kind          string  `json:"kind"`
	SenderID      string  `json:"sender_id"`
	RelatedPostID *string `json:"related_post_id,omitempty"`
	Message       string  `json:"message"`
}

// OnlinePayload carries the full set of currently connected identities.
type OnlinePayload struct {
	UserIDs []string `json:"user_ids"`
}

// ErrorPayload reports an inbound frame failure back to the client.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Encode wraps data in an Envelope and marshals the whole frame.
func Encode(eventType string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return json.Marshal(Envelope{
		EventID: ulid.Make().String(),
		Type:    eventType,
		Data:    raw,
	})
}
