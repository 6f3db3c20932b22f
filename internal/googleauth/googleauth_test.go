package googleauth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const credentials = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret",
"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",
"redirect_uris":["http://localhost"]}}`

func TestReadToken_Missing(t *testing.T) {
	_, err := ReadToken(filepath.Join(t.TempDir(), "token.json"))
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	require.NoError(t, WriteToken(path, &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}))

	tok, err := ReadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", tok.RefreshToken)
	assert.True(t, expiry.Equal(tok.Expiry))
}

func TestTokenSource_UsesValidStoredToken(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	tokenPath := filepath.Join(dir, "token.json")

	require.NoError(t, writeFile(credsPath, credentials))
	require.NoError(t, WriteToken(tokenPath, &oauth2.Token{
		AccessToken: "still-valid",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))

	ts, err := TokenSource(t.Context(), credsPath, tokenPath)
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "still-valid", tok.AccessToken)
}

func TestAuthURL_RequestsOfflineAccess(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	require.NoError(t, writeFile(credsPath, credentials))

	cfg, err := LoadConfig(credsPath)
	require.NoError(t, err)

	url := AuthURL(cfg)
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "gmail.send")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
