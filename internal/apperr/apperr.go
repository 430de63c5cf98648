package apperr

import "errors"

// Error kinds shared across the realtime core. Use cases wrap these with
// context via fmt.Errorf("%w: ..."); controllers translate them into
// transport status codes with errors.Is.
var (
	// ErrValidation marks malformed input, e.g. a message with neither
	// body nor media, or an interaction kind outside the enum.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown conversation, notification or identity.
	ErrNotFound = errors.New("not found")

	// ErrUpload marks a media collaborator failure. It always aborts the
	// operation before any persistence happens.
	ErrUpload = errors.New("media upload failed")

	// ErrUnauthorized marks an identity that cannot be resolved for an
	// action requiring one.
	ErrUnauthorized = errors.New("unauthorized")
)
