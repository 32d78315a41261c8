package account

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

const (
	// AddressSize is the size in bytes of an address.
	AddressSize = 25

	// PlainSize is the length of the base32 representation of an address.
	PlainSize = 40

	checksumSize = 4
	hashSize     = 20
	aliasFlag    = 0x01
)

// Address is the network byte followed by the RIPEMD-160 digest of the public
// key and a checksum. An alias address has the lowest bit of the network byte
// set and carries the identifier of a namespace instead.
type Address [AddressSize]byte

// NewAddress returns the address of the public key on the network.
func NewAddress(pk ed25519.PublicKey, net network.Type, schema crypto.SignSchema) Address {
	var addr Address

	addr[0] = byte(net)
	copy(addr[1:1+hashSize], crypto.Ripemd160(schema.Sum256(pk[:])))

	checksum := schema.Sum256(addr[:1+hashSize])
	copy(addr[1+hashSize:], checksum[:checksumSize])

	return addr
}

// AddressFromNamespace returns the alias address that resolves to the account
// the namespace is linked to.
func AddressFromNamespace(id namespace.ID, net network.Type) Address {
	var addr Address

	addr[0] = byte(net) | aliasFlag
	binary.LittleEndian.PutUint64(addr[1:9], uint64(id))

	return addr
}

// AddressFromBytes returns the address of the raw bytes. Only the size is
// checked so that any address found in a payload is preserved.
func AddressFromBytes(buffer []byte) (Address, error) {
	var addr Address

	if len(buffer) != AddressSize {
		return addr, xerrors.Errorf("address must be %d bytes, got %d: %w",
			AddressSize, len(buffer), catapult.ErrMalformedPayload)
	}

	copy(addr[:], buffer)

	return addr, nil
}

// AddressFromRaw returns the address of the base32 representation, optionally
// split by dashes.
func AddressFromRaw(text string) (Address, error) {
	plain := strings.ToUpper(strings.ReplaceAll(text, "-", ""))
	if len(plain) != PlainSize {
		return Address{}, xerrors.Errorf("address '%s' must be %d characters: %w",
			text, PlainSize, catapult.ErrInvalidIdentifier)
	}

	buffer, err := base32.StdEncoding.DecodeString(plain)
	if err != nil {
		return Address{}, xerrors.Errorf("malformed address '%s': %v: %w", text, err, catapult.ErrInvalidIdentifier)
	}

	return checkedAddress(buffer)
}

// AddressFromEncoded returns the address of the hexadecimal representation.
func AddressFromEncoded(text string) (Address, error) {
	if len(text) != 2*AddressSize {
		return Address{}, xerrors.Errorf("encoded address must be %d characters: %w",
			2*AddressSize, catapult.ErrInvalidIdentifier)
	}

	buffer, err := hex.DecodeString(text)
	if err != nil {
		return Address{}, xerrors.Errorf("malformed address '%s': %v: %w", text, err, catapult.ErrInvalidIdentifier)
	}

	return checkedAddress(buffer)
}

// ParseAddress returns the address of either the hexadecimal or the base32
// representation.
func ParseAddress(text string) (Address, error) {
	if len(text) == 2*AddressSize {
		return AddressFromEncoded(text)
	}

	return AddressFromRaw(text)
}

func checkedAddress(buffer []byte) (Address, error) {
	var addr Address
	copy(addr[:], buffer)

	if !addr.IsAlias() && !addr.HasValidChecksum() {
		return Address{}, xerrors.Errorf("address %s has an invalid checksum: %w",
			addr.Plain(), catapult.ErrInvalidIdentifier)
	}

	return addr, nil
}

// HasValidChecksum returns true if the trailing bytes are the checksum of the
// address for one of the schemas.
func (a Address) HasValidChecksum() bool {
	return a.VerifyChecksum(crypto.SHA3) || a.VerifyChecksum(crypto.KeccakReversedKey)
}

// VerifyChecksum returns true if the trailing bytes are the checksum of the
// address for the schema.
func (a Address) VerifyChecksum(schema crypto.SignSchema) bool {
	checksum := schema.Sum256(a[:1+hashSize])

	return bytes.Equal(checksum[:checksumSize], a[1+hashSize:])
}

// Network returns the network type of the address.
func (a Address) Network() network.Type {
	return network.Type(a[0] &^ aliasFlag)
}

// IsAlias returns true if the address refers to a namespace.
func (a Address) IsAlias() bool {
	return a[0]&aliasFlag != 0
}

// NamespaceID returns the namespace of an alias address. The boolean is false
// for a regular address.
func (a Address) NamespaceID() (namespace.ID, bool) {
	if !a.IsAlias() {
		return 0, false
	}

	return namespace.ID(binary.LittleEndian.Uint64(a[1:9])), true
}

// Plain returns the base32 representation.
func (a Address) Plain() string {
	return base32.StdEncoding.EncodeToString(a[:])
}

// Pretty returns the base32 representation split by dashes every 6
// characters.
func (a Address) Pretty() string {
	plain := a.Plain()

	var b strings.Builder
	for i := 0; i < len(plain); i += 6 {
		if i > 0 {
			b.WriteByte('-')
		}

		end := i + 6
		if end > len(plain) {
			end = len(plain)
		}

		b.WriteString(plain[i:end])
	}

	return b.String()
}

// Encoded returns the uppercase hexadecimal representation.
func (a Address) Encoded() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}

// String implements fmt.Stringer. It returns the plain representation.
func (a Address) String() string {
	return a.Plain()
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Plain()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}

	*a = addr

	return nil
}
