package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	qport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/queue/port"
	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/usecase"
)

// NotifyTaskType is the queue task name for interaction fan-out.
const NotifyTaskType = "notification:fanout"

// NotifyTaskPayload is the JSON payload transported via the queue. Kept
// decoupled from domain types to avoid coupling queue wire format to JSON
// tags on entities.
type NotifyTaskPayload struct {
	RecipientID   string  `json:"recipientId"`
	SenderID      string  `json:"senderId"`
	Kind          string  `json:"kind"`
	RelatedPostID *string `json:"relatedPostId"`
	Message       string  `json:"message"`
}

// RegisterNotifyTask binds the fan-out handler to the provided server.
// The worker runs in the API process, so the use case can push through the
// live presence registry after persisting.
func RegisterNotifyTask(srv qport.Server, uc *usecase.NotifyUseCase) {
	srv.Register(NotifyTaskType, func(ctx context.Context, t qport.Task) error {
		var p NotifyTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.NotifyInput{
			RecipientID:   p.RecipientID,
			SenderID:      p.SenderID,
			Kind:          notification.Kind(p.Kind),
			RelatedPostID: p.RelatedPostID,
			Message:       p.Message,
		})
		if errors.Is(err, apperr.ErrValidation) {
			// bad event, drop instead of retrying forever
			return nil
		}
		return err
	})
}
