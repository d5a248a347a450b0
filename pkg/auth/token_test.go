package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixCodec(t *testing.T) {
	c := NewPrefixCodec()

	token, err := c.Issue("42")
	require.NoError(t, err)
	assert.Equal(t, "mock-jwt-token-42", token)

	id, err := c.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	// foreign strings fall through to the id lookup
	id, err = c.Parse("garbage")
	require.NoError(t, err)
	assert.Equal(t, "garbage", id)

	_, err = c.Parse(TokenPrefix)
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = c.Issue("")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestJWTCodecRoundTrip(t *testing.T) {
	c := NewJWTCodec("s3cret", "patio-health", time.Hour)

	token, err := c.Issue("user-1")
	require.NoError(t, err)
	assert.NotContains(t, token, TokenPrefix)

	id, err := c.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestJWTCodecRejectsForeignTokens(t *testing.T) {
	c := NewJWTCodec("s3cret", "patio-health", time.Hour)
	other := NewJWTCodec("other", "patio-health", time.Hour)

	token, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = c.Parse(token)
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = c.Parse("mock-jwt-token-1")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestJWTCodecExpiry(t *testing.T) {
	c := NewJWTCodec("s3cret", "patio-health", time.Minute)
	issued := time.Now()
	c.now = func() time.Time { return issued }

	token, err := c.Issue("user-1")
	require.NoError(t, err)

	c.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = c.Parse(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
