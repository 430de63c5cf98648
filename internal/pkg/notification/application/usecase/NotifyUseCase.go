package usecase

import (
	"context"
	"fmt"

	"github.com/gaurav031/Feelify-sub000/internal/metrics"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/persistence/repository/port"
)

// ErrPersistence indicates an infrastructure/repository failure inside a
// use case.
var ErrPersistence = fmt.Errorf("notification use case persistence error")

// LivePusher is the outbound half of the presence registry. False means
// offline, which is expected and never an error.
type LivePusher interface {
	PushToIdentity(identity string, payload []byte) bool
}

// NotifyInput describes one interaction event to fan out.
type NotifyInput struct {
	RecipientID   string
	SenderID      string
	Kind          notification.Kind
	RelatedPostID *string
	Message       string
}

// NotifyResult tags the two independent effects: the durable row and the
// best-effort push. Self-notifications yield neither.
type NotifyResult struct {
	Notification *notification.Notification
	Persisted    bool
	Pushed       bool
}

// NotifyUseCase persists a notification row and independently attempts a
// live push. The row is the source of truth; a failed push never rolls it
// back, and persistence happens whether or not the recipient is connected.
type NotifyUseCase struct {
	Repo   repository.NotificationRepository
	Pusher LivePusher
}

func NewNotifyUseCase(repo repository.NotificationRepository, pusher LivePusher) *NotifyUseCase {
	return &NotifyUseCase{Repo: repo, Pusher: pusher}
}

func (uc *NotifyUseCase) Execute(ctx context.Context, in NotifyInput) (*NotifyResult, error) {
	// A user never notifies themselves.
	if in.RecipientID == in.SenderID {
		return &NotifyResult{}, nil
	}

	n, err := notification.NewNotification(in.RecipientID, in.SenderID, in.Kind, in.RelatedPostID, in.Message)
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Save(ctx, *n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	metrics.NotificationsFanned.WithLabelValues(string(n.Kind)).Inc()

	pushed := uc.push(n)

	return &NotifyResult{Notification: n, Persisted: true, Pushed: pushed}, nil
}

func (uc *NotifyUseCase) push(n *notification.Notification) bool {
	payload, err := live.Encode(live.EventNewNotification, live.NotificationPayload{
		Kind:          string(n.Kind),
		SenderID:      n.SenderID,
		RelatedPostID: n.RelatedPostID,
		Message:       n.Message,
	})
	if err != nil {
		return false
	}
	if uc.Pusher.PushToIdentity(n.RecipientID, payload) {
		metrics.PushesDelivered.WithLabelValues(live.EventNewNotification).Inc()
		return true
	}
	metrics.PushesSkipped.WithLabelValues(live.EventNewNotification).Inc()
	return false
}
