package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	tokenStr, err := codec.Issue("user-1", "maya", "maya@example.com", true)
	require.NoError(t, err)

	claims, err := codec.Verify(tokenStr)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserId)
	assert.Equal(t, "maya", claims.Username)
	assert.Equal(t, "maya@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestVerifyExpired(t *testing.T) {
	codec := NewCodec("test-secret")

	issuedAt := time.Now()
	codec.Now = func() time.Time { return issuedAt }

	tokenStr, err := codec.Issue("user-1", "maya", "maya@example.com", false)
	require.NoError(t, err)

	// Just inside the window still verifies.
	codec.Now = func() time.Time { return issuedAt.Add(SessionDuration - time.Minute) }
	_, err = codec.Verify(tokenStr)
	assert.NoError(t, err)

	// Past the window it does not.
	codec.Now = func() time.Time { return issuedAt.Add(SessionDuration + time.Minute) }
	_, err = codec.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTampered(t *testing.T) {
	codec := NewCodec("test-secret")

	tokenStr, err := codec.Issue("user-1", "maya", "maya@example.com", false)
	require.NoError(t, err)

	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a")
	verifier := NewCodec("secret-b")

	tokenStr, err := issuer.Issue("user-1", "maya", "maya@example.com", false)
	require.NoError(t, err)

	_, err = verifier.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyGarbage(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", tokenStr)
	}
}
