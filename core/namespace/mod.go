// Package namespace implements the identifiers of namespaces and their
// derivation from names.
package namespace

import (
	"encoding/binary"
	"regexp"
	"strings"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
)

const (
	// MaxDepth is the maximum number of levels of a namespace path.
	MaxDepth = 3

	// MaxNameSize is the maximum length of one part of a name.
	MaxNameSize = 64

	namespaceFlag = 1 << 63
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ID is the identifier of a namespace.
type ID numeric.UInt64

// IDFromHex returns the identifier of the 16-character hexadecimal string.
func IDFromHex(text string) (ID, error) {
	v, err := numeric.FromHex(text)
	if err != nil {
		return 0, xerrors.Errorf("malformed namespace id: %w", err)
	}

	return ID(v), nil
}

// Hex returns the 16 uppercase hexadecimal characters of the identifier.
func (id ID) Hex() string {
	return numeric.UInt64(id).Hex()
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return id.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := IDFromHex(string(text))
	if err != nil {
		return err
	}

	*id = v

	return nil
}

// CheckName returns an error if the name cannot be a part of a namespace path.
func CheckName(name string) error {
	if len(name) == 0 || len(name) > MaxNameSize {
		return xerrors.Errorf("name must be 1 to %d characters: %w", MaxNameSize, catapult.ErrInvalidIdentifier)
	}

	if !namePattern.MatchString(name) {
		return xerrors.Errorf("invalid name '%s': %w", name, catapult.ErrInvalidIdentifier)
	}

	return nil
}

// Generate returns the identifier of the child name of the parent. The root
// namespaces have the zero identifier as parent.
func Generate(parent ID, name string) (ID, error) {
	err := CheckName(name)
	if err != nil {
		return 0, err
	}

	seed := make([]byte, 8, 8+len(name))
	binary.LittleEndian.PutUint32(seed[0:4], numeric.UInt64(parent).Lower())
	binary.LittleEndian.PutUint32(seed[4:8], numeric.UInt64(parent).Higher())
	seed = append(seed, name...)

	digest := crypto.Sha3_256(seed)

	id := binary.LittleEndian.Uint64(digest[:8]) | namespaceFlag

	return ID(id), nil
}

// Path returns the identifiers of each level of the dotted name, the root
// first.
func Path(fullName string) ([]ID, error) {
	parts := strings.Split(fullName, ".")
	if len(parts) > MaxDepth {
		return nil, xerrors.Errorf("too many parts in '%s': %w", fullName, catapult.ErrInvalidIdentifier)
	}

	path := make([]ID, 0, len(parts))
	parent := ID(0)

	for _, part := range parts {
		id, err := Generate(parent, part)
		if err != nil {
			return nil, xerrors.Errorf("failed to generate '%s': %w", fullName, err)
		}

		path = append(path, id)
		parent = id
	}

	return path, nil
}

// IDFromName returns the identifier of the last level of the dotted name.
func IDFromName(fullName string) (ID, error) {
	path, err := Path(fullName)
	if err != nil {
		return 0, err
	}

	return path[len(path)-1], nil
}
