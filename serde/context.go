package serde

// ContextEngine is the low-level encoder of a format. Format engines build
// the data model of a message and hand it to the context engine.
type ContextEngine interface {
	// GetFormat returns the format the engine encodes.
	GetFormat() Format

	// Marshal returns the encoded bytes of the value.
	Marshal(message interface{}) ([]byte, error)

	// Unmarshal decodes the data into the value.
	Unmarshal(data []byte, message interface{}) error
}

// Context is passed along every serialization request so that a message can
// pick its format engine and encode its data model.
type Context struct {
	ContextEngine
}

// NewContext returns a context using the engine.
func NewContext(engine ContextEngine) Context {
	return Context{ContextEngine: engine}
}
