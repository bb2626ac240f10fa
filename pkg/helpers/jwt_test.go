package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazarov/footballmanager/pkg/helpers"
)

func TestGenerateAndParseToken_RoundTrip(t *testing.T) {
	m := helpers.NewJWTManager("test-signing-key", time.Hour)

	token, exp, err := m.GenerateToken("ann@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", subject)
}

func TestParseToken_Expired(t *testing.T) {
	m := helpers.NewJWTManager("test-signing-key", -time.Minute)

	token, _, err := m.GenerateToken("ann@x.com")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongKey(t *testing.T) {
	issuer := helpers.NewJWTManager("key-one", time.Hour)
	verifier := helpers.NewJWTManager("key-two", time.Hour)

	token, _, err := issuer.GenerateToken("ann@x.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	m := helpers.NewJWTManager("test-signing-key", time.Hour)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d", "....."} {
		_, err := m.ParseToken(bad)
		assert.Error(t, err, "token %q should not verify", bad)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := helpers.BcryptHasher{}

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, h.Matches("password123", hash))
	assert.False(t, h.Matches("password124", hash))
}
