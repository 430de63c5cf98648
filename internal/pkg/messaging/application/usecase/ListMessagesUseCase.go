package usecase

import (
	"context"
	"fmt"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
)

// ListMessagesInput identifies the conversation to read.
type ListMessagesInput struct {
	ConversationID string
}

// ListMessagesUseCase returns all messages of a conversation newest first;
// chronological display order is the client's concern.
type ListMessagesUseCase struct {
	Repo repository.MessagingRepository
}

func NewListMessagesUseCase(repo repository.MessagingRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]messaging.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation_id is required", apperr.ErrValidation)
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation %s", apperr.ErrNotFound, in.ConversationID)
	}

	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
