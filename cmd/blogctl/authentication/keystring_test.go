package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenRoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, StoreTokens(&StoredCredentials{AccessToken: "a", RefreshToken: "r", Email: "ops@example.com"}))
	creds, err := GetTokens()
	require.NoError(t, err)
	assert.Equal(t, "a", creds.AccessToken)
	assert.Equal(t, "ops@example.com", creds.Email)

	require.NoError(t, DeleteTokens())
	require.NoError(t, DeleteTokens(), "deleting twice is not an error")
	_, err = GetTokens()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
