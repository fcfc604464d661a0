package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResetTokenRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewTokenSigner([]byte("super-secret"))

	token, err := s.IssueResetToken(42, 10*time.Minute)
	require.NoError(t, err)

	userID, ok := s.VerifyResetToken(token)
	require.True(t, ok)
	require.Equal(t, uint(42), userID)
}

func TestResetTokenExpired(t *testing.T) {
	t.Parallel()

	s := NewTokenSigner([]byte("super-secret"))

	token, err := s.IssueResetToken(42, 0)
	require.NoError(t, err)

	// A zero ttl expires at issuance; give the clock a beat to pass it
	time.Sleep(50 * time.Millisecond)

	_, ok := s.VerifyResetToken(token)
	require.False(t, ok)
}

func TestResetTokenWrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenSigner([]byte("right-secret"))
	verifier := NewTokenSigner([]byte("wrong-secret"))

	token, err := issuer.IssueResetToken(7, time.Hour)
	require.NoError(t, err)

	_, ok := verifier.VerifyResetToken(token)
	require.False(t, ok)
}

func TestResetTokenGarbage(t *testing.T) {
	t.Parallel()

	s := NewTokenSigner([]byte("super-secret"))

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, ok := s.VerifyResetToken(token)
		require.False(t, ok)
	}
}
