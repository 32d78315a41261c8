// Package numeric implements the unsigned 64-bit value of the protocol.
//
// The value is exchanged by the REST interface either as a pair of 32-bit
// words, as a decimal string or as a 16-digit hexadecimal string, and it is
// always written as 8 little-endian bytes on the wire.
package numeric

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"go.dedis.ch/catapult"
	"golang.org/x/xerrors"
)

// MaxSafeInteger is the largest integer a 64-bit float represents exactly.
const MaxSafeInteger = 1<<53 - 1

// Size is the size in bytes of a value on the wire.
const Size = 8

// UInt64 is an unsigned 64-bit value.
type UInt64 uint64

// FromPair returns the value of the pair of words, lower first.
func FromPair(pair [2]uint32) UInt64 {
	return UInt64(uint64(pair[1])<<32 | uint64(pair[0]))
}

// FromUint returns the value of the integer if it is at most MaxSafeInteger.
// Larger values must go through the string or pair constructors.
func FromUint(v uint64) (UInt64, error) {
	if v > MaxSafeInteger {
		return 0, xerrors.Errorf("%d exceeds the max safe integer: %w", v, catapult.ErrPreconditionViolation)
	}

	return UInt64(v), nil
}

// FromString returns the value of the decimal string.
func FromString(text string) (UInt64, error) {
	if text == "" || strings.TrimLeft(text, "0123456789") != "" {
		return 0, xerrors.Errorf("'%s' is not a decimal number: %w", text, catapult.ErrInvalidIdentifier)
	}

	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("'%s' does not fit 64 bits: %w", text, catapult.ErrInvalidIdentifier)
	}

	return UInt64(v), nil
}

// FromHex returns the value of the hexadecimal string of 16 characters.
func FromHex(text string) (UInt64, error) {
	if len(text) != 2*Size {
		return 0, xerrors.Errorf("expected %d hex characters, got %d: %w",
			2*Size, len(text), catapult.ErrInvalidIdentifier)
	}

	buffer, err := hex.DecodeString(text)
	if err != nil {
		return 0, xerrors.Errorf("%v: %w", err, catapult.ErrInvalidIdentifier)
	}

	return UInt64(binary.BigEndian.Uint64(buffer)), nil
}

// FromBytes returns the value of the 8 little-endian bytes.
func FromBytes(buffer []byte) (UInt64, error) {
	if len(buffer) != Size {
		return 0, xerrors.Errorf("expected %d bytes, got %d: %w", Size, len(buffer), catapult.ErrMalformedPayload)
	}

	return UInt64(binary.LittleEndian.Uint64(buffer)), nil
}

// Lower returns the lower 32 bits.
func (v UInt64) Lower() uint32 {
	return uint32(v)
}

// Higher returns the higher 32 bits.
func (v UInt64) Higher() uint32 {
	return uint32(v >> 32)
}

// ToPair returns the pair of words, lower first.
func (v UInt64) ToPair() [2]uint32 {
	return [2]uint32{v.Lower(), v.Higher()}
}

// Hex returns the 16 uppercase hexadecimal characters of the value.
func (v UInt64) Hex() string {
	return fmt.Sprintf("%016X", uint64(v))
}

// Bytes returns the 8 little-endian bytes of the value.
func (v UInt64) Bytes() []byte {
	buffer := make([]byte, Size)
	binary.LittleEndian.PutUint64(buffer, uint64(v))

	return buffer
}

// Compare returns -1, 0 or 1 when the value is respectively smaller, equal or
// greater than the other.
func (v UInt64) Compare(other UInt64) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

// IsZero returns true when the value is zero.
func (v UInt64) IsZero() bool {
	return v == 0
}

// String implements fmt.Stringer. It returns the decimal representation.
func (v UInt64) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// MarshalText implements encoding.TextMarshaler. The value is written as a
// decimal string so that JSON documents do not lose precision.
func (v UInt64) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *UInt64) UnmarshalText(text []byte) error {
	value, err := FromString(string(text))
	if err != nil {
		return err
	}

	*v = value

	return nil
}
