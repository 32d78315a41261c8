package registry

import (
	"sync"

	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a registry safe for concurrent use. An unknown format
// gets an engine that fails every call.
//
// - implements registry.Registry
type SimpleRegistry struct {
	sync.RWMutex
	engines map[serde.Format]serde.FormatEngine
}

// NewSimpleRegistry returns an empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		engines: make(map[serde.Format]serde.FormatEngine),
	}
}

// Register implements registry.Registry.
func (r *SimpleRegistry) Register(format serde.Format, engine serde.FormatEngine) {
	r.Lock()
	r.engines[format] = engine
	r.Unlock()
}

// Get implements registry.Registry. It returns the engine of the format, or a
// failing engine when none is registered.
func (r *SimpleRegistry) Get(format serde.Format) serde.FormatEngine {
	r.RLock()
	engine, found := r.engines[format]
	r.RUnlock()

	if !found {
		return missingEngine{format: format}
	}

	return engine
}

// missingEngine is returned for a format without engine.
//
// - implements serde.FormatEngine
type missingEngine struct {
	format serde.Format
}

// Encode implements serde.FormatEngine. It always returns an error.
func (e missingEngine) Encode(serde.Context, serde.Message) ([]byte, error) {
	return nil, xerrors.Errorf("no engine for format '%s'", e.format)
}

// Decode implements serde.FormatEngine. It always returns an error.
func (e missingEngine) Decode(serde.Context, []byte) (serde.Message, error) {
	return nil, xerrors.Errorf("no engine for format '%s'", e.format)
}
