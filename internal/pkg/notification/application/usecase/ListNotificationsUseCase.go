package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/persistence/repository/port"
	userport "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

// ListNotificationsInput identifies the recipient.
type ListNotificationsInput struct {
	UserID string
}

// NotificationView is one listing entry with the sender's public profile
// attached.
type NotificationView struct {
	ID            string                  `json:"id"`
	Sender        *userport.PublicProfile `json:"sender"`
	Kind          notification.Kind       `json:"kind"`
	RelatedPostID *string                 `json:"related_post_id,omitempty"`
	Message       string                  `json:"message"`
	IsRead        bool                    `json:"is_read"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ListNotificationsUseCase returns the recipient's notifications newest
// first, decorated with sender profiles.
type ListNotificationsUseCase struct {
	Repo  repository.NotificationRepository
	Users userport.UserDirectory
}

func NewListNotificationsUseCase(repo repository.NotificationRepository, users userport.UserDirectory) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo, Users: users}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]NotificationView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", apperr.ErrValidation)
	}

	rows, err := uc.Repo.ListByRecipient(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]NotificationView, 0, len(rows))
	for _, n := range rows {
		view := NotificationView{
			ID:            n.ID,
			Kind:          n.Kind,
			RelatedPostID: n.RelatedPostID,
			Message:       n.Message,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
		}
		profile, err := uc.Users.FindByID(ctx, n.SenderID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if profile == nil {
			profile = &userport.PublicProfile{ID: n.SenderID}
		}
		view.Sender = profile
		views = append(views, view)
	}
	return views, nil
}
