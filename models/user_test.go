package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUnmarshal(t *testing.T) {
	var token Token
	err := json.Unmarshal([]byte(`{"token":"abc123","expiresAt":"2027-06-01T12:30:00"}`), &token)
	require.NoError(t, err)

	assert.Equal(t, "abc123", token.Token)
	assert.Equal(t, time.Date(2027, 6, 1, 12, 30, 0, 0, time.UTC), token.ExpiresAt)
	assert.False(t, token.Expired())
}

func TestTokenUnmarshalRFC3339(t *testing.T) {
	var token Token
	err := json.Unmarshal([]byte(`{"token":"abc","expiresAt":"2027-06-01T12:30:00Z"}`), &token)
	require.NoError(t, err)
	assert.Equal(t, 2027, token.ExpiresAt.Year())
}

func TestTokenExpired(t *testing.T) {
	past := Token{Token: "x", ExpiresAt: time.Now().UTC().Add(-time.Minute)}
	assert.True(t, past.Expired())

	future := Token{Token: "x", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	assert.False(t, future.Expired())
}

func TestCredentialsOmitsEmptyUserType(t *testing.T) {
	data, err := json.Marshal(Credentials{Email: "a@b.co", Password: "p"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tipoUsuario")

	data, err = json.Marshal(Credentials{Email: "a@b.co", Password: "p", UserType: UserTypeRegular})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tipoUsuario":"USUARIO"`)
}

func TestCategoryHelpers(t *testing.T) {
	assert.True(t, ValidCategory("Musica"))
	assert.True(t, ValidCategory("musica"))
	assert.False(t, ValidCategory("Astronomia"))

	assert.Equal(t, "Musica", CanonicalCategory("MUSICA"))
	assert.Equal(t, "Astronomia", CanonicalCategory("Astronomia"))
}
