package txn

import (
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto/ed25519"
)

// MaxMetadataSize is the maximum size of a metadata value.
const MaxMetadataSize = 0xFFFF

// Metadata is the entry common to the metadata transactions.
type Metadata struct {
	TargetPublicKey ed25519.PublicKey
	ScopedKey       numeric.UInt64
	ValueSizeDelta  int16
	Value           []byte
}

func (m Metadata) size() int {
	return ed25519.PublicKeySize + 8 + 2 + 2 + len(m.Value)
}

func (m Metadata) validate() error {
	if len(m.Value) > MaxMetadataSize {
		return precondition("value is %d bytes, max is %d", len(m.Value), MaxMetadataSize)
	}

	return nil
}

// AccountMetadataBody attaches a value to an account.
//
// - implements txn.Body
type AccountMetadataBody struct {
	Metadata
}

// Type implements txn.Body.
func (b AccountMetadataBody) Type() Type {
	return AccountMetadataTransaction
}

// Size implements txn.Body.
func (b AccountMetadataBody) Size() int {
	return b.size()
}

// Validate implements txn.Body.
func (b AccountMetadataBody) Validate() error {
	return b.validate()
}

func (AccountMetadataBody) body() {}

// MosaicMetadataBody attaches a value to a mosaic.
//
// - implements txn.Body
type MosaicMetadataBody struct {
	Metadata

	TargetMosaicID mosaic.ID
}

// Type implements txn.Body.
func (b MosaicMetadataBody) Type() Type {
	return MosaicMetadataTransaction
}

// Size implements txn.Body.
func (b MosaicMetadataBody) Size() int {
	return b.size() + 8
}

// Validate implements txn.Body.
func (b MosaicMetadataBody) Validate() error {
	return b.validate()
}

func (MosaicMetadataBody) body() {}

// NamespaceMetadataBody attaches a value to a namespace.
//
// - implements txn.Body
type NamespaceMetadataBody struct {
	Metadata

	TargetNamespaceID namespace.ID
}

// Type implements txn.Body.
func (b NamespaceMetadataBody) Type() Type {
	return NamespaceMetadataTransaction
}

// Size implements txn.Body.
func (b NamespaceMetadataBody) Size() int {
	return b.size() + 8
}

// Validate implements txn.Body.
func (b NamespaceMetadataBody) Validate() error {
	return b.validate()
}

func (NamespaceMetadataBody) body() {}
