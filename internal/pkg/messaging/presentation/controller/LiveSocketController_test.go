package controller

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
)

func TestSeenErrorFrameMapsTaxonomy(t *testing.T) {
	code, _ := seenErrorFrame(fmt.Errorf("%w: viewer is not a participant", apperr.ErrValidation))
	assert.Equal(t, "bad_request", code)

	code, _ = seenErrorFrame(fmt.Errorf("%w: conversation abc", apperr.ErrNotFound))
	assert.Equal(t, "not_found", code)

	code, _ = seenErrorFrame(fmt.Errorf("%w: dial tcp: connection refused", usecase.ErrPersistence))
	assert.Equal(t, "internal_error", code)
}

func TestSeenErrorFrameHidesInternalDetail(t *testing.T) {
	err := fmt.Errorf("%w: ERROR: relation \"messages\" does not exist (SQLSTATE 42P01)", usecase.ErrPersistence)

	_, message := seenErrorFrame(err)
	assert.NotContains(t, message, "SQLSTATE")
	assert.NotContains(t, message, "messages")
	assert.Equal(t, "could not mark conversation seen", message)
}
