// Package rpc defines the wire contract of the EcoRewards gRPC API: the JSON
// codec, request and response messages, service descriptors and clients.
package rpc

import (
	json "github.com/goccy/go-json"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype messages are exchanged with
// ("application/grpc+json").
const CodecName = "json"

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(codec{})
}

// CallOption selects the JSON codec for a call. Clients in this package add it
// to every call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
