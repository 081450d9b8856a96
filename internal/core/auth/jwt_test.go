package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("secret"), Issuer: "blog-test", TTL: ttl}
}

func TestJWTer_Roundtrip(t *testing.T) {
	t.Parallel()

	j := newJWTer(time.Hour)
	tok, err := j.Issue("user-1")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UID)
	assert.Equal(t, "blog-test", c.Issuer)
}

func TestJWTer_Expired(t *testing.T) {
	t.Parallel()

	j := newJWTer(-5 * time.Minute)
	tok, err := j.Issue("user-1")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestJWTer_Rejects(t *testing.T) {
	t.Parallel()

	j := newJWTer(time.Hour)
	good, err := j.Issue("user-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "blog-test", TTL: time.Hour}
	wrongKey, err := other.Issue("user-1")
	require.NoError(t, err)

	otherIssuer := &JWTer{Secret: []byte("secret"), Issuer: "someone-else", TTL: time.Hour}
	wrongIss, err := otherIssuer.Issue("user-1")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":      "not.a.token",
		"wrong key":    wrongKey,
		"wrong issuer": wrongIss,
		"alg none":     unsigned,
		"tampered":     good + "x",
	} {
		_, err := j.Parse(tok)
		assert.Error(t, err, name)
		assert.NotErrorIs(t, err, ErrExpired, name)
	}
}
