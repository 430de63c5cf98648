package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	mediaport "github.com/gaurav031/Feelify-sub000/internal/infrastructure/media/port"
	"github.com/gaurav031/Feelify-sub000/internal/metrics"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
	userport "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

// SendMessageInput carries the data for one durable send. Media, when
// present, is uploaded before anything is persisted.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Body        *string
	Media       []byte
	MediaKind   string
}

// SendMessageResult tags the two independent effects of a send: the
// persisted message (always, on success) and whether a live push reached
// the recipient (best-effort).
type SendMessageResult struct {
	Message *messaging.Message
	Pushed  bool
}

// SendMessageUseCase creates or reuses the pair's conversation, appends the
// message, overwrites the conversation summary and pushes the message to
// the recipient's live session when one exists.
type SendMessageUseCase struct {
	Repo   repository.MessagingRepository
	Users  userport.UserDirectory
	Media  mediaport.Uploader
	Pusher LivePusher
}

func NewSendMessageUseCase(repo repository.MessagingRepository, users userport.UserDirectory, media mediaport.Uploader, pusher LivePusher) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Users: users, Media: media, Pusher: pusher}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	if in.SenderID == "" || in.RecipientID == "" {
		return nil, fmt.Errorf("%w: sender and recipient are required", apperr.ErrValidation)
	}
	if in.SenderID == in.RecipientID {
		return nil, fmt.Errorf("%w: cannot message yourself", apperr.ErrValidation)
	}
	hasBody := in.Body != nil && *in.Body != ""
	if !hasBody && len(in.Media) == 0 {
		return nil, fmt.Errorf("%w: message must contain either text or media", apperr.ErrValidation)
	}

	if err := uc.resolveIdentity(ctx, in.SenderID); err != nil {
		return nil, err
	}
	if err := uc.resolveIdentity(ctx, in.RecipientID); err != nil {
		return nil, err
	}

	// Media goes first: an upload failure aborts the whole send before any
	// persistence happens.
	var mediaURL *string
	if len(in.Media) > 0 {
		url, err := uc.Media.Upload(ctx, in.Media, in.MediaKind)
		if err != nil {
			if errors.Is(err, apperr.ErrUpload) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", apperr.ErrUpload, err)
		}
		mediaURL = &url
	}

	now := time.Now().UTC()
	summary := messaging.Summary{
		Text:     messaging.SummaryText(in.Body, mediaURL),
		SenderID: in.SenderID,
		Seen:     false,
	}

	conv, err := uc.findOrCreateConversation(ctx, in.SenderID, in.RecipientID, summary, now)
	if err != nil {
		return nil, err
	}

	msg, err := messaging.NewMessage(conv.ID, in.SenderID, in.Body, mediaURL, now)
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id
	metrics.MessagesSent.Inc()

	if err := uc.Repo.UpdateConversationSummary(ctx, conv.ID, summary, now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	pushed := uc.pushNewMessage(in.RecipientID, msg)

	return &SendMessageResult{Message: msg, Pushed: pushed}, nil
}

func (uc *SendMessageUseCase) resolveIdentity(ctx context.Context, id string) error {
	p, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if p == nil {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}
	return nil
}

// findOrCreateConversation enforces the at-most-one-conversation-per-pair
// invariant. Check-then-create is racy across suspension points, so the
// UNIQUE pair-key index is the arbiter: a conflict means the counterpart
// won the race and the winner's row is re-fetched.
func (uc *SendMessageUseCase) findOrCreateConversation(ctx context.Context, senderID, recipientID string, summary messaging.Summary, now time.Time) (*messaging.Conversation, error) {
	pairKey := messaging.PairKey(senderID, recipientID)

	conv, err := uc.Repo.FindConversationByPair(ctx, pairKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv != nil {
		return conv, nil
	}

	fresh := messaging.NewConversation(senderID, recipientID, summary, now)
	id, err := uc.Repo.CreateConversation(ctx, fresh)
	if err == nil {
		fresh.ID = id
		metrics.ConversationsCreated.Inc()
		return &fresh, nil
	}
	if !errors.Is(err, repository.ErrConversationExists) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	conv, err = uc.Repo.FindConversationByPair(ctx, pairKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation vanished after conflict", ErrPersistence)
	}
	return conv, nil
}

func (uc *SendMessageUseCase) pushNewMessage(recipientID string, msg *messaging.Message) bool {
	payload, err := live.Encode(live.EventNewMessage, live.MessagePayload{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		MediaURL:       msg.MediaURL,
		Seen:           msg.Seen,
		CreatedAt:      msg.CreatedAt,
	})
	if err != nil {
		return false
	}
	if uc.Pusher.PushToIdentity(recipientID, payload) {
		metrics.PushesDelivered.WithLabelValues(live.EventNewMessage).Inc()
		return true
	}
	metrics.PushesSkipped.WithLabelValues(live.EventNewMessage).Inc()
	return false
}
