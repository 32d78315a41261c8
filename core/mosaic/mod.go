// Package mosaic implements the identifiers and the amounts of mosaics.
package mosaic

import (
	"encoding/binary"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// ID is the identifier of a mosaic. A mosaic can also be referred to by the
// namespace it is aliased to, in which case the identifier is the one of the
// namespace.
type ID numeric.UInt64

// IDFromHex returns the identifier of the 16-character hexadecimal string.
func IDFromHex(text string) (ID, error) {
	v, err := numeric.FromHex(text)
	if err != nil {
		return 0, xerrors.Errorf("malformed mosaic id: %w", err)
	}

	return ID(v), nil
}

// IDFromNamespace returns the identifier that refers to the mosaic aliased to
// the namespace.
func IDFromNamespace(id namespace.ID) ID {
	return ID(id)
}

// GenerateID returns the identifier of the mosaic created by the owner with
// the nonce.
func GenerateID(nonce Nonce, owner ed25519.PublicKey) ID {
	digest := crypto.Sha3_256(nonce[:], owner[:])

	id := binary.LittleEndian.Uint64(digest[:8]) &^ (1 << 63)

	return ID(id)
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

// NonceSize is the size in bytes of a nonce.
const NonceSize = 4

// Nonce is the random value mixed with the owner key to derive a mosaic
// identifier.
type Nonce [NonceSize]byte

// NonceFromUint32 returns the nonce of the little-endian integer.
func NonceFromUint32(v uint32) Nonce {
	var n Nonce
	binary.LittleEndian.PutUint32(n[:], v)

	return n
}

// Uint32 returns the little-endian integer of the nonce.
func (n Nonce) Uint32() uint32 {
	return binary.LittleEndian.Uint32(n[:])
}

const (
	flagSupplyMutable = 1 << iota
	flagTransferable
	flagRestrictable
)

// Flags are the properties of a mosaic definition.
type Flags struct {
	SupplyMutable bool
	Transferable  bool
	Restrictable  bool
}

// FlagsFromByte returns the flags of the byte.
func FlagsFromByte(b uint8) (Flags, error) {
	if b&^(flagSupplyMutable|flagTransferable|flagRestrictable) != 0 {
		return Flags{}, xerrors.Errorf("unknown mosaic flags %#x: %w", b, catapult.ErrInvalidIdentifier)
	}

	f := Flags{
		SupplyMutable: b&flagSupplyMutable != 0,
		Transferable:  b&flagTransferable != 0,
		Restrictable:  b&flagRestrictable != 0,
	}

	return f, nil
}

// Byte returns the byte of the flags.
func (f Flags) Byte() uint8 {
	var b uint8

	if f.SupplyMutable {
		b |= flagSupplyMutable
	}
	if f.Transferable {
		b |= flagTransferable
	}
	if f.Restrictable {
		b |= flagRestrictable
	}

	return b
}

// Mosaic is an amount of a mosaic.
type Mosaic struct {
	ID     ID
	Amount numeric.UInt64
}

// NewMosaic returns the amount of the mosaic.
func NewMosaic(id ID, amount numeric.UInt64) Mosaic {
	return Mosaic{
		ID:     id,
		Amount: amount,
	}
}

const (
	// CurrencyNamespace is the namespace aliased to the network currency.
	CurrencyNamespace = "cat.currency"
	// CurrencyDivisibility is the number of decimals of the network currency.
	CurrencyDivisibility = 6
)

// NetworkCurrencyAbsolute returns the amount of the network currency in
// atomic units.
func NetworkCurrencyAbsolute(amount numeric.UInt64) Mosaic {
	id, err := namespace.IDFromName(CurrencyNamespace)
	if err != nil {
		// The name is a valid constant.
		panic(err)
	}

	return NewMosaic(IDFromNamespace(id), amount)
}

// NetworkCurrency returns the amount of the network currency expressed in
// whole units.
func NetworkCurrency(amount uint64) (Mosaic, error) {
	const unit = 1000000

	if amount > (1<<64-1)/unit {
		return Mosaic{}, xerrors.Errorf("amount %d overflows: %w", amount, catapult.ErrPreconditionViolation)
	}

	return NetworkCurrencyAbsolute(numeric.UInt64(amount * unit)), nil
}
