package serializer

import (
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/internal/sentinel"
)

// ISerializer encodes collector snapshots for export.
type ISerializer interface {
	// Marshal encodes v, usually a hyperstats.Snapshot.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes data into the snapshot v points to.
	Unmarshal(data []byte, v any) error
	// ContentType is the MIME type sent with the encoded snapshot.
	ContentType() string
}

// Registry maps a format name, as given in the ?format= query of the management
// endpoints, to the constructor of its serializer.
type Registry struct {
	formats map[string]func() ISerializer
}

// builtinFormats lists the formats every NewSerializerRegistry knows.
func builtinFormats() map[string]func() ISerializer {
	return map[string]func() ISerializer{
		constants.DefaultSerializer: func() ISerializer { return &DefaultJSONSerializer{} },
		constants.MsgpackSerializer: func() ISerializer { return &MsgpackSerializer{} },
		constants.CBORSerializer:    func() ISerializer { return NewCBORSerializer() },
	}
}

// NewSerializerRegistry returns a registry holding the json, msgpack and cbor formats.
func NewSerializerRegistry() *Registry {
	return &Registry{formats: builtinFormats()}
}

// NewEmptySerializerRegistry returns a registry with no formats, to be filled with Register.
func NewEmptySerializerRegistry() *Registry {
	return &Registry{formats: make(map[string]func() ISerializer)}
}

// Register adds format, replacing any constructor already registered under that name.
func (r *Registry) Register(format string, createFunc func() ISerializer) {
	r.formats[format] = createFunc
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// New builds the serializer for format.
func (r *Registry) New(format string) (ISerializer, error) {
	if format == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "format")
	}

	createFunc, ok := r.formats[format]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrSerializerNotFound, "%s (known: %v)", format, r.Formats())
	}

	return createFunc(), nil
}

// New builds the serializer for format from the built-in formats.
func New(format string) (ISerializer, error) {
	return NewSerializerRegistry().New(format)
}
