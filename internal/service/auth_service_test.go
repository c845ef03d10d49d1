package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	auth, err := NewAuthService("juan", "secret123")
	require.NoError(t, err)

	require.NoError(t, auth.Authenticate("juan", "secret123"))
	require.ErrorIs(t, auth.Authenticate("juan", "wrong"), ErrInvalidCredentials)
	require.ErrorIs(t, auth.Authenticate("alice", "secret123"), ErrInvalidCredentials)
	require.ErrorIs(t, auth.Authenticate("", ""), ErrInvalidCredentials)
	require.Equal(t, "juan", auth.Username())
}
