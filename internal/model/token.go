package model

import "github.com/google/uuid"

// TokenManager issues and validates access tokens bound to an account.
type TokenManager interface {
	GenerateAccessToken(accountID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
