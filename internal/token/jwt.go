// Package token issues the bearer tokens handed out after a verified login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/ecorewards-server/internal/model"
)

const issuer = "ecorewards"

// Claims carries the authenticated account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT signs HS256 access tokens with a shared secret.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *JWT) GenerateAccessToken(accountID uuid.UUID) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		AccountID: accountID,
	})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken validates the signature, issuer and expiry and returns the
// account the token was issued to.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	if claims.AccountID == uuid.Nil {
		return uuid.Nil, errors.New("access token has no account")
	}

	return claims.AccountID, nil
}
