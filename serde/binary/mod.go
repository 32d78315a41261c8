// Package binary implements the context engine for the binary wire format.
//
// The format engines of the binary format write the payload themselves, so
// the context only moves raw byte slices and binary marshalers.
package binary

import (
	"encoding"

	// Static registration of the binary formats.
	_ "go.dedis.ch/catapult/core/txn/wire"
	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

// binaryEngine is a context engine for byte payloads.
//
// - implements serde.ContextEngine
type binaryEngine struct{}

// NewContext returns a binary context.
func NewContext() serde.Context {
	return serde.NewContext(binaryEngine{})
}

// GetFormat implements serde.ContextEngine. It returns the binary format name.
func (ctx binaryEngine) GetFormat() serde.Format {
	return serde.FormatBinary
}

// Marshal implements serde.ContextEngine. It returns the bytes of a slice of
// bytes or of a binary marshaler.
func (ctx binaryEngine) Marshal(m interface{}) ([]byte, error) {
	switch msg := m.(type) {
	case []byte:
		return msg, nil
	case encoding.BinaryMarshaler:
		return msg.MarshalBinary()
	default:
		return nil, xerrors.Errorf("unsupported message '%T'", m)
	}
}

// Unmarshal implements serde.ContextEngine. It populates a slice of bytes or a
// binary unmarshaler with the data.
func (ctx binaryEngine) Unmarshal(data []byte, m interface{}) error {
	switch msg := m.(type) {
	case *[]byte:
		*msg = append([]byte{}, data...)
		return nil
	case encoding.BinaryUnmarshaler:
		return msg.UnmarshalBinary(data)
	default:
		return xerrors.Errorf("unsupported message '%T'", m)
	}
}
