package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the transport serves on (plain or TLS).
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport with a start/stop lifecycle.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
