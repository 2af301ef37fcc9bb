package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	id := uuid.New()

	signed, err := j.GenerateAccessToken(id)
	require.NoError(t, err)

	got, err := j.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_ParseAccessToken(t *testing.T) {
	id := uuid.New()
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	signer := NewJWT("secret", time.Hour)
	signer.now = func() time.Time { return issued }
	signed, err := signer.GenerateAccessToken(id)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		j := NewJWT("secret", time.Hour)
		j.now = func() time.Time { return issued.Add(2 * time.Hour) }
		_, err := j.ParseAccessToken(signed)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		j := NewJWT("other", time.Hour)
		j.now = signer.now
		_, err := j.ParseAccessToken(signed)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
			AccountID:        id,
		})
		other, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = signer.ParseAccessToken(other)
		assert.Error(t, err)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
			AccountID:        id,
		})
		other, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = signer.ParseAccessToken(other)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("missing account", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
		})
		other, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = signer.ParseAccessToken(other)
		assert.ErrorContains(t, err, "no account")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.ParseAccessToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
	})
}
