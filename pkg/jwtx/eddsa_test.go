package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	key, err := NewEphemeralEdDSA("claimdesk-test")
	require.NoError(t, err)

	now := time.Now()
	claims := NewSessionClaims("7", "01JTESTSESSION", "mgr", "Manager", "claimdesk-test", time.Minute, now)

	raw, err := key.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(raw, ".")))

	got, err := key.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "7", got.Subject)
	require.Equal(t, "mgr", got.Username)
	require.Equal(t, "Manager", got.Role)
	require.Equal(t, "01JTESTSESSION", got.SID)
}

func TestVerifyRejectsTampering(t *testing.T) {
	t.Parallel()

	key, err := NewEphemeralEdDSA("claimdesk-test")
	require.NoError(t, err)

	raw, err := key.Sign(NewSessionClaims("7", "sid", "mgr", "Manager", "claimdesk-test", time.Minute, time.Now()))
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := key.Verify("garbage")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("flipped signature byte", func(t *testing.T) {
		broken := raw[:len(raw)-2] + "xx"
		_, err := key.Verify(broken)
		require.Error(t, err)
	})

	t.Run("token from another key", func(t *testing.T) {
		other, err := NewEphemeralEdDSA("claimdesk-test")
		require.NoError(t, err)
		foreign, err := other.Sign(NewSessionClaims("7", "sid", "mgr", "Manager", "claimdesk-test", time.Minute, time.Now()))
		require.NoError(t, err)

		_, err = key.Verify(foreign)
		require.Error(t, err)
	})
}

func TestVerifyRejectsExpiredAndWrongIssuer(t *testing.T) {
	t.Parallel()

	key, err := NewEphemeralEdDSA("claimdesk-test")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		raw, err := key.Sign(NewSessionClaims("7", "sid", "mgr", "Manager", "claimdesk-test", time.Minute, past))
		require.NoError(t, err)

		_, err = key.Verify(raw)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := key.Sign(NewSessionClaims("7", "sid", "mgr", "Manager", "someone-else", time.Minute, time.Now()))
		require.NoError(t, err)

		_, err = key.Verify(raw)
		require.Error(t, err)
	})
}
