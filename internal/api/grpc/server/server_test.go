package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dtroode/ecorewards-server/internal/mocks"
)

func TestGRPCServer_Address(t *testing.T) {
	s := NewGRPCServer(grpc.NewServer(), ":0")
	assert.Equal(t, ":0", s.Address())
}

func TestGRPCServer_StartStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(ln, nil)

	srv := NewGRPCServer(grpc.NewServer(), ":0")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(sec) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Stop(context.Background()))
	assert.NoError(t, <-errCh)
}

func TestGRPCServer_Start_ListenError(t *testing.T) {
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, errors.New("address in use"))

	srv := NewGRPCServer(grpc.NewServer(), ":0")
	err := srv.Start(sec)
	assert.ErrorContains(t, err, "failed to listen")
}

func TestGRPCServer_Stop_NotStarted(t *testing.T) {
	srv := NewGRPCServer(grpc.NewServer(), ":0")
	assert.NoError(t, srv.Stop(context.Background()))
}
