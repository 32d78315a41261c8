package txn

import (
	"encoding/hex"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// HashSize is the size in bytes of a transaction hash.
const HashSize = 32

// Hash is the network-visible identifier of a transaction.
type Hash [HashSize]byte

// ParseHash returns the hash of the hexadecimal string.
func ParseHash(text string) (Hash, error) {
	var h Hash

	if len(text) != 2*HashSize {
		return h, xerrors.Errorf("hash must be %d hex characters, got %d: %w",
			2*HashSize, len(text), catapult.ErrInvalidIdentifier)
	}

	_, err := hex.Decode(h[:], []byte(text))
	if err != nil {
		return h, xerrors.Errorf("malformed hash: %v: %w", err, catapult.ErrInvalidIdentifier)
	}

	return h, nil
}

// Hex returns the uppercase hexadecimal string of the hash.
func (h Hash) Hex() string {
	return hexOf(h[:])
}

// String implements fmt.Stringer.
func (h Hash) String() string {
	return h.Hex()
}

// Info is the information the network attaches to a transaction once it has
// been included in a block. It is never set by a local builder.
type Info struct {
	Height        numeric.UInt64
	Index         uint32
	ID            string
	Hash          string
	AggregateHash string
	AggregateID   string
}

// Cosignature is the signature of an additional signer of an aggregate.
type Cosignature struct {
	Signer    ed25519.PublicKey
	Signature ed25519.Signature
}

// CosignatureSize is the size in bytes of a cosignature on the wire.
const CosignatureSize = ed25519.PublicKeySize + ed25519.SignatureSize

// SignedTransaction is the result of signing a transaction. It is handed to
// the transport to be announced.
type SignedTransaction struct {
	Payload         string
	Hash            string
	SignerPublicKey string
	Type            Type
	Network         network.Type
}

// PayloadBytes returns the decoded payload.
func (s SignedTransaction) PayloadBytes() ([]byte, error) {
	buffer, err := hex.DecodeString(s.Payload)
	if err != nil {
		return nil, xerrors.Errorf("malformed payload hex: %v: %w", err, catapult.ErrMalformedPayload)
	}

	return buffer, nil
}

// CosignatureSignedTransaction is the cosignature of an announced aggregate
// that is handed to the transport to be attached.
type CosignatureSignedTransaction struct {
	ParentHash      string
	Signature       string
	SignerPublicKey string
}

// Cosignature returns the decoded cosignature.
func (c CosignatureSignedTransaction) Cosignature() (Cosignature, error) {
	signer, err := ed25519.PublicKeyFromHex(c.SignerPublicKey)
	if err != nil {
		return Cosignature{}, xerrors.Errorf("invalid signer: %w", err)
	}

	sig, err := ed25519.SignatureFromHex(c.Signature)
	if err != nil {
		return Cosignature{}, xerrors.Errorf("invalid signature: %w", err)
	}

	return Cosignature{Signer: signer, Signature: sig}, nil
}
