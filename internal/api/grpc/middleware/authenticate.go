package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

// TokenParser resolves the account a bearer token was issued to.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and puts the account id on the context.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc is an auth.AuthFunc reading "authorization: Bearer <token>".
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, err
	}

	accountID, err := m.tokens.ParseAccessToken(token)
	if err != nil {
		m.logger.Debug("Authenticate: rejected token", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid access token")
	}

	return m.contextManager.SetAccountIDToContext(ctx, accountID), nil
}
