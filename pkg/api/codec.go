// Package api defines the pennypool.v1 RPC contract: plain Go request and response
// types, the JSON codec they travel in, and connect handler and client constructors
// for each service.
//
// Amounts are decimal strings ("12.50") and dates are "YYYY-MM-DD".
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec encodes messages as JSON. It is registered under the name "json", replacing
// connect's protobuf-only JSON codec, so requests use Content-Type application/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}
