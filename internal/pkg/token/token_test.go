package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := NewCodec("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	signed, err := codec.IssueAccess(userID, "user@example.com")
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := NewCodec("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	signed, jti, err := codec.IssueRefresh(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := codec.VerifyRefresh(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, jti, claims.ID)
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	codec := NewCodec("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	access, err := codec.IssueAccess(userID, "user@example.com")
	require.NoError(t, err)
	refresh, _, err := codec.IssueRefresh(userID)
	require.NoError(t, err)

	// A refresh token is not an access token and vice versa, even though
	// both carry valid signatures.
	_, err = codec.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = codec.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	codec := NewCodec("secret", -time.Minute, -time.Minute)
	userID := uuid.New()

	access, err := codec.IssueAccess(userID, "user@example.com")
	require.NoError(t, err)
	refresh, _, err := codec.IssueRefresh(userID)
	require.NoError(t, err)

	_, err = codec.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = codec.VerifyRefresh(refresh)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretAndGarbage(t *testing.T) {
	codec := NewCodec("secret", 15*time.Minute, time.Hour)
	other := NewCodec("different secret", 15*time.Minute, time.Hour)

	signed, err := codec.IssueAccess(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = other.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = codec.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = codec.VerifyAccess("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHashJTI(t *testing.T) {
	a := HashJTI("some-jti")
	b := HashJTI("some-jti")
	c := HashJTI("other-jti")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
