// Package fake provides fixtures and fake implementations for the unit tests
// of the repository. The fakes can be configured to return errors, possibly
// after a number of successful calls.
package fake

import (
	"encoding/json"

	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

const fakeErrStr = "fake error"

var fakeErr = xerrors.New(fakeErrStr)

// Err returns the expected error message of a fake error wrapped by the
// message.
func Err(msg string) string {
	return msg + ": " + fakeErrStr
}

// GetError returns the fake error.
func GetError() error {
	return fakeErr
}

// Message is a fake implementation of a serde message.
//
// - implements serde.Message
type Message struct {
	Digest []byte
}

// Serialize implements serde.Message.
func (m Message) Serialize(serde.Context) ([]byte, error) {
	return []byte("{}"), nil
}

// ContextEngine is a fake implementation of the serde context engine that
// marshals with the standard JSON package.
//
// - implements serde.ContextEngine
type ContextEngine struct {
	Count  *Counter
	format serde.Format
	err    error
}

// NewContext returns a JSON context.
func NewContext() serde.Context {
	return NewContextWithFormat(serde.FormatJSON)
}

// NewContextWithFormat returns a context with the format name.
func NewContextWithFormat(f serde.Format) serde.Context {
	return serde.NewContext(ContextEngine{
		format: f,
	})
}

// NewBadContext returns a context that fails to marshal and unmarshal.
func NewBadContext() serde.Context {
	return serde.NewContext(ContextEngine{
		format: serde.FormatJSON,
		err:    fakeErr,
	})
}

// NewBadContextWithDelay returns a context that fails after a number of
// successful marshals or unmarshals.
func NewBadContextWithDelay(delay int) serde.Context {
	return serde.NewContext(ContextEngine{
		format: serde.FormatJSON,
		Count:  NewCounter(delay),
		err:    fakeErr,
	})
}

// GetFormat implements serde.ContextEngine.
func (ctx ContextEngine) GetFormat() serde.Format {
	return ctx.format
}

// Marshal implements serde.ContextEngine.
func (ctx ContextEngine) Marshal(m interface{}) ([]byte, error) {
	if ctx.fails() {
		return nil, ctx.err
	}

	return json.Marshal(m)
}

// Unmarshal implements serde.ContextEngine.
func (ctx ContextEngine) Unmarshal(data []byte, m interface{}) error {
	if ctx.fails() {
		return ctx.err
	}

	return json.Unmarshal(data, m)
}

func (ctx ContextEngine) fails() bool {
	if ctx.Count != nil && !ctx.Count.Done() {
		ctx.Count.Decrease()
		return false
	}

	return ctx.err != nil
}

// Counter is a helper to delay errors or actions. It can be nil without
// panics.
type Counter struct {
	Value int
}

// NewCounter returns a new counter set to the given value.
func NewCounter(value int) *Counter {
	return &Counter{
		Value: value,
	}
}

// Done returns true when the counter reached zero.
func (c *Counter) Done() bool {
	return c == nil || c.Value <= 0
}

// Decrease decrements the counter.
func (c *Counter) Decrease() {
	if c == nil {
		return
	}

	c.Value--
}
