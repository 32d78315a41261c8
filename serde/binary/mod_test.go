package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult/serde"
)

func TestBinaryEngine_GetFormat(t *testing.T) {
	require.Equal(t, serde.FormatBinary, NewContext().GetFormat())
}

func TestBinaryEngine_Marshal(t *testing.T) {
	ctx := NewContext()

	data, err := ctx.Marshal([]byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, data)

	data, err = ctx.Marshal(fakeBinary{data: []byte{3}})
	require.NoError(t, err)
	require.Equal(t, []byte{3}, data)

	_, err = ctx.Marshal(42)
	require.EqualError(t, err, "unsupported message 'int'")
}

func TestBinaryEngine_Unmarshal(t *testing.T) {
	ctx := NewContext()

	var buffer []byte
	require.NoError(t, ctx.Unmarshal([]byte{1, 2}, &buffer))
	require.Equal(t, []byte{1, 2}, buffer)

	msg := &fakeBinary{}
	require.NoError(t, ctx.Unmarshal([]byte{4}, msg))
	require.Equal(t, []byte{4}, msg.data)

	err := ctx.Unmarshal(nil, 42)
	require.EqualError(t, err, "unsupported message 'int'")
}

// -----------------------------------------------------------------------------
// Utility functions

type fakeBinary struct {
	data []byte
}

func (b fakeBinary) MarshalBinary() ([]byte, error) {
	return b.data, nil
}

func (b *fakeBinary) UnmarshalBinary(data []byte) error {
	b.data = data
	return nil
}
