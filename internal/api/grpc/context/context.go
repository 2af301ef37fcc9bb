// Package context carries the authenticated account id through incoming gRPC
// metadata.
package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/ecorewards-server/internal/model"
)

const accountIDKey = "x-account-id"

var _ model.ContextManager = (*Manager)(nil)

// Manager implements model.ContextManager over incoming metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetAccountIDToContext stores accountID in the incoming metadata, replacing
// any value the client may have sent under the same key.
func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}
	md.Set(accountIDKey, accountID.String())

	return metadata.NewIncomingContext(ctx, md)
}

func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	values := md.Get(accountIDKey)
	if len(values) == 0 {
		return uuid.Nil, false
	}

	accountID, err := uuid.Parse(values[0])
	if err != nil || accountID == uuid.Nil {
		return uuid.Nil, false
	}

	return accountID, true
}
