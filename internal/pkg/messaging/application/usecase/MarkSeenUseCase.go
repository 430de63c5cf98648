package usecase

import (
	"context"
	"fmt"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	"github.com/gaurav031/Feelify-sub000/internal/metrics"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
)

// MarkSeenInput identifies the conversation and the viewer who read it.
type MarkSeenInput struct {
	ConversationID string
	ViewerID       string
}

// MarkSeenResult reports how many messages flipped and whether the
// counterpart got a live hint.
type MarkSeenResult struct {
	Updated int64
	Pushed  bool
}

// MarkSeenUseCase flips the seen flag on every counterpart message that
// existed when the call started, marks the conversation summary seen and
// pushes a messages_seen hint to the other participant. Re-invoking is a
// no-op: seen only ever transitions false -> true.
type MarkSeenUseCase struct {
	Repo   repository.MessagingRepository
	Pusher LivePusher
}

func NewMarkSeenUseCase(repo repository.MessagingRepository, pusher LivePusher) *MarkSeenUseCase {
	return &MarkSeenUseCase{Repo: repo, Pusher: pusher}
}

func (uc *MarkSeenUseCase) Execute(ctx context.Context, in MarkSeenInput) (*MarkSeenResult, error) {
	if in.ConversationID == "" || in.ViewerID == "" {
		return nil, fmt.Errorf("%w: conversation_id and viewer_id are required", apperr.ErrValidation)
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation %s", apperr.ErrNotFound, in.ConversationID)
	}
	if !conv.HasParticipant(in.ViewerID) {
		return nil, fmt.Errorf("%w: viewer is not a participant", apperr.ErrValidation)
	}

	// Snapshot the newest message instant first, then scope the bulk flip
	// to it. A message appended while this call is in flight stays unseen.
	snapshot, err := uc.Repo.LatestMessageAt(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var updated int64
	if snapshot != nil {
		updated, err = uc.Repo.MarkMessagesSeen(ctx, in.ConversationID, in.ViewerID, *snapshot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if err := uc.Repo.MarkConversationSeen(ctx, in.ConversationID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	pushed := uc.pushSeen(conv.Counterpart(in.ViewerID), in.ConversationID)

	return &MarkSeenResult{Updated: updated, Pushed: pushed}, nil
}

func (uc *MarkSeenUseCase) pushSeen(counterpartID, conversationID string) bool {
	if counterpartID == "" {
		return false
	}
	payload, err := live.Encode(live.EventMessagesSeen, live.SeenPayload{ConversationID: conversationID})
	if err != nil {
		return false
	}
	if uc.Pusher.PushToIdentity(counterpartID, payload) {
		metrics.PushesDelivered.WithLabelValues(live.EventMessagesSeen).Inc()
		return true
	}
	metrics.PushesSkipped.WithLabelValues(live.EventMessagesSeen).Inc()
	return false
}
