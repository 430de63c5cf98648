package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := m.ResolveIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestResolveIdentityRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.ResolveIdentity("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = m.ResolveIdentity("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveIdentityRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-42")
	require.NoError(t, err)

	_, err = verifier.ResolveIdentity(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveIdentityRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Nanosecond)

	token, err := m.GenerateToken("user-42")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = m.ResolveIdentity(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
