package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", 0)

	tok, err := svc.GenerateSession("luna@example.com")
	require.NoError(t, err)

	email, err := svc.Verify(tok, PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "luna@example.com", email)
}

func TestSessionTokenWithoutTTLNeverExpires(t *testing.T) {
	svc := NewService("test-secret", 0)

	tok, err := svc.GenerateSession("luna@example.com")
	require.NoError(t, err)

	// Jump two years ahead
	svc.now = func() time.Time { return time.Now().Add(2 * 365 * 24 * time.Hour) }

	_, err = svc.Verify(tok, PurposeSession)
	assert.NoError(t, err)
}

func TestResetTokenExpiresAfterOneHour(t *testing.T) {
	svc := NewService("test-secret", 0)

	tok, err := svc.GenerateReset("luna@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(59 * time.Minute) }
	_, err = svc.Verify(tok, PurposeReset)
	assert.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	_, err = svc.Verify(tok, PurposeReset)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPurposeMismatchIsRejected(t *testing.T) {
	svc := NewService("test-secret", 0)

	resetTok, err := svc.GenerateReset("luna@example.com")
	require.NoError(t, err)
	sessionTok, err := svc.GenerateSession("luna@example.com")
	require.NoError(t, err)

	// A reset token must not open session endpoints, and vice versa
	_, err = svc.Verify(resetTok, PurposeSession)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	_, err = svc.Verify(sessionTok, PurposeReset)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestWrongSignatureIsRejected(t *testing.T) {
	svc := NewService("test-secret", 0)
	other := NewService("another-secret", 0)

	tok, err := other.GenerateSession("luna@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(tok, PurposeSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	svc := NewService("test-secret", 0)

	_, err := svc.Verify("not-a-token", PurposeSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
