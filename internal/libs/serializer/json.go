// Package serializer provides serialization interfaces and implementations for
// encoding collector snapshots. The default serializer produces JSON through the
// goccy/go-json library; MessagePack and CBOR are available for compact exports.
package serializer

import (
	"github.com/goccy/go-json"
	"github.com/hyp3rd/ewrap"
)

// DefaultJSONSerializer leverages goccy/go-json to encode snapshots as JSON.
type DefaultJSONSerializer struct{}

// Marshal serializes the given value into a byte slice.
func (*DefaultJSONSerializer) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to marshal json")
	}

	return data, nil
}

// Unmarshal deserializes the given byte slice into the value v points to.
func (*DefaultJSONSerializer) Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err != nil {
		return ewrap.Wrap(err, "failed to unmarshal json")
	}

	return nil
}

// ContentType returns the MIME type of the encoding.
func (*DefaultJSONSerializer) ContentType() string { return "application/json" }
