package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
	userport "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

// ListConversationsInput identifies the requesting participant.
type ListConversationsInput struct {
	UserID string
}

// ConversationView is one listing entry. The requester is stripped from
// the participant set; Participant always exposes exactly the counterpart,
// decorated with public profile fields.
type ConversationView struct {
	ID             string                  `json:"id"`
	Participant    *userport.PublicProfile `json:"participant"`
	LastMessage    messaging.Summary       `json:"last_message"`
	LastActivityAt time.Time               `json:"last_activity_at"`
	CreatedAt      time.Time               `json:"created_at"`
}

// ListConversationsUseCase returns the requester's conversations ordered by
// last activity descending.
type ListConversationsUseCase struct {
	Repo  repository.MessagingRepository
	Users userport.UserDirectory
}

func NewListConversationsUseCase(repo repository.MessagingRepository, users userport.UserDirectory) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo, Users: users}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]ConversationView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperr.ErrValidation)
	}

	convs, err := uc.Repo.ListConversationsByParticipant(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]ConversationView, 0, len(convs))
	for _, c := range convs {
		view := ConversationView{
			ID:             c.ID,
			LastMessage:    c.LastMessage,
			LastActivityAt: c.LastActivityAt,
			CreatedAt:      c.CreatedAt,
		}
		if counterpart := c.Counterpart(in.UserID); counterpart != "" {
			profile, err := uc.Users.FindByID(ctx, counterpart)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			if profile == nil {
				// Deleted account: keep the conversation but expose only the id.
				profile = &userport.PublicProfile{ID: counterpart}
			}
			view.Participant = profile
		}
		views = append(views, view)
	}
	return views, nil
}
