package namespace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"golang.org/x/xerrors"
)

func TestGenerate(t *testing.T) {
	id, err := Generate(0, "nem")
	require.NoError(t, err)
	require.Equal(t, "84B3552D375FFA4B", id.Hex())

	child, err := Generate(id, "xem")
	require.NoError(t, err)
	require.NotEqual(t, id, child)
	require.Equal(t, uint64(1<<63), uint64(child)&(1<<63))
}

func TestGenerate_InvalidName(t *testing.T) {
	_, err := Generate(0, "")
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = Generate(0, "Upper")
	require.EqualError(t, err, "invalid name 'Upper': invalid identifier")

	_, err = Generate(0, "-dash")
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = Generate(0, strings.Repeat("a", MaxNameSize+1))
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = Generate(0, "a_b-c9")
	require.NoError(t, err)
}

func TestPath(t *testing.T) {
	path, err := Path("nem.xem")
	require.NoError(t, err)
	require.Len(t, path, 2)

	root, err := Generate(0, "nem")
	require.NoError(t, err)
	require.Equal(t, root, path[0])

	child, err := Generate(root, "xem")
	require.NoError(t, err)
	require.Equal(t, child, path[1])

	id, err := IDFromName("nem.xem")
	require.NoError(t, err)
	require.Equal(t, child, id)

	_, err = Path("a.b.c.d")
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = IDFromName("a..b")
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))
}

func TestID_Text(t *testing.T) {
	id, err := IDFromHex("84b3552d375ffa4b")
	require.NoError(t, err)
	require.Equal(t, "84B3552D375FFA4B", id.String())

	data, err := id.MarshalText()
	require.NoError(t, err)

	var other ID
	require.NoError(t, other.UnmarshalText(data))
	require.Equal(t, id, other)

	err = other.UnmarshalText([]byte("12"))
	require.EqualError(t, err, "malformed namespace id: expected 16 hex characters, got 2: invalid identifier")
}
