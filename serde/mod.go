// Package serde defines the primitives to serialize and deserialize (serde)
// the messages of the engine.
//
// A message is serialized by looking up the format engine registered for the
// format of the context. The engine knows the data model of the message and
// delegates the low-level encoding to the context.
//
// Two formats are available: the REST JSON document and the binary wire
// payload.
package serde

// Message is the interface that a message must implement.
type Message interface {
	// Serialize returns the bytes of the message according to the format of
	// the context.
	Serialize(ctx Context) ([]byte, error)
}

// Factory is the interface that a message factory must implement.
type Factory interface {
	// Deserialize returns the message of the data according to the format of
	// the context.
	Deserialize(ctx Context, data []byte) (Message, error)
}

// Format is the identifier of a format implementation.
type Format string

const (
	// FormatJSON is the identifier of the JSON format.
	FormatJSON Format = "JSON"

	// FormatBinary is the identifier of the binary wire format.
	FormatBinary Format = "BINARY"
)

// FormatEngine is the interface that a format implementation must implement.
type FormatEngine interface {
	// Encode returns the bytes of the message.
	Encode(ctx Context, message Message) ([]byte, error)

	// Decode returns the message of the data.
	Decode(ctx Context, data []byte) (Message, error)
}
