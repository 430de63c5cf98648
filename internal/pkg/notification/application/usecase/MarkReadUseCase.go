package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/persistence/repository/port"
)

// MarkReadInput identifies the notification to flip.
type MarkReadInput struct {
	NotificationID string
}

// MarkReadUseCase flips is_read to true. Idempotent: re-marking an already
// read notification succeeds.
type MarkReadUseCase struct {
	Repo repository.NotificationRepository
}

func NewMarkReadUseCase(repo repository.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) error {
	if in.NotificationID == "" {
		return fmt.Errorf("%w: notification_id is required", apperr.ErrValidation)
	}
	if err := uc.Repo.MarkRead(ctx, in.NotificationID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
