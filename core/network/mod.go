// Package network defines the identifiers of a network that the engine
// receives from its collaborators: the network type and the generation hash.
package network

import (
	"encoding/hex"
	"strconv"
	"strings"

	"go.dedis.ch/catapult"
	"golang.org/x/xerrors"
)

// Type is the one-byte identifier of a chain. It is also the first byte of the
// addresses of the chain.
type Type uint8

const (
	// MainNet is the public main network.
	MainNet Type = 0x68
	// TestNet is the public test network.
	TestNet Type = 0x98
	// Mijin is the private network.
	Mijin Type = 0x60
	// MijinTest is the private test network.
	MijinTest Type = 0x90
)

var typeNames = map[Type]string{
	MainNet:   "MAIN_NET",
	TestNet:   "TEST_NET",
	Mijin:     "MIJIN",
	MijinTest: "MIJIN_TEST",
}

// ParseType returns the network type of the byte.
func ParseType(b uint8) (Type, error) {
	t := Type(b)

	_, found := typeNames[t]
	if !found {
		return 0, xerrors.Errorf("unknown network type %#x: %w", b, catapult.ErrInvalidIdentifier)
	}

	return t, nil
}

// ParseTypeName returns the network type of the name, or of the decimal value
// of the byte.
func ParseTypeName(name string) (Type, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}

	v, err := strconv.ParseUint(name, 10, 8)
	if err != nil {
		return 0, xerrors.Errorf("unknown network '%s': %w", name, catapult.ErrInvalidIdentifier)
	}

	return ParseType(uint8(v))
}

// String implements fmt.Stringer.
func (t Type) String() string {
	name, found := typeNames[t]
	if !found {
		return "UNKNOWN_" + strconv.Itoa(int(t))
	}

	return name
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts either the
// name or the decimal value.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseTypeName(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

// GenerationHashSize is the size in bytes of a generation hash.
const GenerationHashSize = 32

// GenerationHash is the seed of a network mixed into the signed bytes so that
// a signature is only valid on one chain.
type GenerationHash [GenerationHashSize]byte

// ParseGenerationHash returns the generation hash of the hexadecimal string.
func ParseGenerationHash(text string) (GenerationHash, error) {
	var h GenerationHash

	if len(text) != 2*GenerationHashSize {
		return h, xerrors.Errorf("expected %d hex characters, got %d: %w",
			2*GenerationHashSize, len(text), catapult.ErrInvalidIdentifier)
	}

	_, err := hex.Decode(h[:], []byte(text))
	if err != nil {
		return h, xerrors.Errorf("malformed generation hash: %v: %w", err, catapult.ErrInvalidIdentifier)
	}

	return h, nil
}

// Hex returns the uppercase hexadecimal string of the hash.
func (h GenerationHash) Hex() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// MarshalText implements encoding.TextMarshaler.
func (h GenerationHash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *GenerationHash) UnmarshalText(text []byte) error {
	v, err := ParseGenerationHash(string(text))
	if err != nil {
		return err
	}

	*h = v

	return nil
}
