package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ti := NewTokenIssuer("s3cret", time.Hour)
	ti.now = func() time.Time { return now }

	token, exp, err := ti.Issue("admin")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	session, err := ti.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", session.Subject)
	assert.True(t, exp.Equal(session.ExpiresAt))

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer("s3cret", time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenIssuer("different", time.Hour)
		other.now = ti.now
		_, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = ti.Verify(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ti.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
