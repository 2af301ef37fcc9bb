package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ecorewards-server/internal/logger"
)

func TestLogging_HandleGRPC(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/ecorewards.Rewards/Redeem"}

	tests := []struct {
		name      string
		err       error
		wantCode  codes.Code
		wantLevel string
	}{
		{name: "ok", wantCode: codes.OK, wantLevel: "level=INFO"},
		{name: "client error", err: status.Error(codes.FailedPrecondition, "insufficient points"), wantCode: codes.FailedPrecondition, wantLevel: "level=WARN"},
		{name: "server error", err: status.Error(codes.Internal, "boom"), wantCode: codes.Internal, wantLevel: "level=ERROR"},
		{name: "plain error", err: errors.New("raw"), wantCode: codes.Unknown, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogging(logger.NewWithWriter(&buf, int(slog.LevelDebug)))

			resp, err := l.HandleGRPC(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return "resp", nil
			})

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.err == nil {
				assert.Equal(t, "resp", resp)
			}
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "/ecorewards.Rewards/Redeem")
		})
	}
}

func TestLogging_Recover(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogging(logger.NewWithWriter(&buf, 0))

	err := l.Recover(context.Background(), "nil map")
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, buf.String(), "nil map")
}
