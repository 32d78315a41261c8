package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult/serde"
)

func TestSimpleRegistry_Register(t *testing.T) {
	registry := NewSimpleRegistry()

	registry.Register(serde.FormatJSON, fakeEngine{})
	require.Len(t, registry.engines, 1)

	registry.Register(serde.FormatJSON, fakeEngine{})
	require.Len(t, registry.engines, 1)

	registry.Register(serde.FormatBinary, fakeEngine{})
	require.Len(t, registry.engines, 2)
}

func TestSimpleRegistry_Concurrent(t *testing.T) {
	registry := NewSimpleRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			registry.Register(serde.FormatJSON, fakeEngine{})
			registry.Get(serde.FormatJSON)
		}()
	}

	wg.Wait()

	require.Equal(t, fakeEngine{}, registry.Get(serde.FormatJSON))
}

func TestSimpleRegistry_Get(t *testing.T) {
	registry := NewSimpleRegistry()

	registry.Register(serde.FormatJSON, fakeEngine{})

	engine := registry.Get(serde.FormatJSON)
	require.Equal(t, fakeEngine{}, engine)

	engine = registry.Get(serde.Format("unknown"))
	require.NotNil(t, engine)

	_, err := engine.Encode(serde.NewContext(nil), nil)
	require.EqualError(t, err, "no engine for format 'unknown'")

	_, err = engine.Decode(serde.NewContext(nil), nil)
	require.EqualError(t, err, "no engine for format 'unknown'")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeEngine struct {
	serde.FormatEngine
}
