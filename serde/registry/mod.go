// Package registry maps the formats of a message type to their engines.
package registry

import (
	"go.dedis.ch/catapult/serde"
)

// Registry holds the format engines of one message type.
type Registry interface {
	// Register sets the engine of the format, replacing any previous one.
	Register(serde.Format, serde.FormatEngine)

	// Get returns the engine of the format. It never returns nil.
	Get(serde.Format) serde.FormatEngine
}
