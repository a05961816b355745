package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooferio/authkit/pkg/token"
)

const testSecret = "test-secret-32-chars-long-123456"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty access secret", func(t *testing.T) {
		t.Parallel()

		_, err := token.New(token.Config{})
		require.ErrorIs(t, err, token.ErrMissingSecret)
	})

	t.Run("pending secret falls back to access secret", func(t *testing.T) {
		t.Parallel()

		svc, err := token.New(token.Config{AccessSecret: testSecret})
		require.NoError(t, err)

		raw, err := svc.IssuePending(token.PendingIdentity{Provider: "GOOGLE", ProviderID: "123"})
		require.NoError(t, err)

		id, err := svc.VerifyPending(raw)
		require.NoError(t, err)
		assert.Equal(t, "123", id.ProviderID)
	})
}

func TestService_AccessRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := token.New(token.Config{AccessSecret: testSecret})
	require.NoError(t, err)

	userUUID := uuid.New()
	raw, err := svc.IssueAccess("a@b.com", userUUID)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.VerifyAccess(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, userUUID.String(), claims.UserUUID)
}

func TestService_PendingRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := token.New(token.Config{AccessSecret: testSecret, PendingSecret: "other-secret-32-chars-long-1234"})
	require.NoError(t, err)

	identity := token.PendingIdentity{
		Provider:   "MICROSOFT",
		ProviderID: "sub-42",
		Email:      "c@d.com",
		FirstName:  "C",
		LastName:   "D",
		Picture:    "https://example.com/p.png",
	}

	raw, err := svc.IssuePending(identity)
	require.NoError(t, err)

	got, err := svc.VerifyPending(raw)
	require.NoError(t, err)
	assert.Equal(t, &identity, got)

	// A pending token is not a valid access token.
	_, err = svc.VerifyAccess(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestService_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := now

	svc, err := token.New(
		token.Config{AccessSecret: testSecret, PendingTTL: 5 * time.Minute},
		token.WithClock(func() time.Time { return clock }),
	)
	require.NoError(t, err)

	raw, err := svc.IssuePending(token.PendingIdentity{Provider: "GOOGLE", ProviderID: "123"})
	require.NoError(t, err)

	_, err = svc.VerifyPending(raw)
	require.NoError(t, err)

	clock = now.Add(6 * time.Minute)
	_, err = svc.VerifyPending(raw)
	require.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestService_Tampered(t *testing.T) {
	t.Parallel()

	svc, err := token.New(token.Config{AccessSecret: testSecret})
	require.NoError(t, err)

	raw, err := svc.IssueAccess("a@b.com", uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(raw + "x")
	require.ErrorIs(t, err, token.ErrInvalidToken)

	other, err := token.New(token.Config{AccessSecret: "another-secret-32-chars-long-12"})
	require.NoError(t, err)
	_, err = other.VerifyAccess(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	svc, err := token.New(token.Config{AccessSecret: testSecret})
	require.NoError(t, err)

	userUUID := uuid.New()
	raw, err := svc.IssueAccess("a@b.com", userUUID)
	require.NoError(t, err)

	var claims token.AccessClaims
	require.NoError(t, token.Decode(raw, &claims))
	assert.Equal(t, userUUID.String(), claims.UserUUID)

	require.Error(t, token.Decode("not-a-token", &jwt.RegisteredClaims{}))
}
