package txn

import (
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto/ed25519"
)

// MaxDivisibility is the maximum number of decimals of a mosaic.
const MaxDivisibility = 6

// MosaicDefinitionBody creates a mosaic.
//
// - implements txn.Body
type MosaicDefinitionBody struct {
	Nonce        mosaic.Nonce
	MosaicID     mosaic.ID
	Flags        mosaic.Flags
	Divisibility uint8
	Duration     numeric.UInt64
}

// NewMosaicDefinition returns the body of the definition of a mosaic owned by
// the public key. The identifier is derived from the nonce and the owner.
func NewMosaicDefinition(nonce mosaic.Nonce, owner ed25519.PublicKey, flags mosaic.Flags,
	divisibility uint8, duration numeric.UInt64) (MosaicDefinitionBody, error) {

	body := MosaicDefinitionBody{
		Nonce:        nonce,
		MosaicID:     mosaic.GenerateID(nonce, owner),
		Flags:        flags,
		Divisibility: divisibility,
		Duration:     duration,
	}

	return body, body.Validate()
}

// Type implements txn.Body.
func (b MosaicDefinitionBody) Type() Type {
	return MosaicDefinition
}

// Size implements txn.Body.
func (b MosaicDefinitionBody) Size() int {
	return mosaic.NonceSize + 8 + 1 + 1 + 8
}

// Validate implements txn.Body.
func (b MosaicDefinitionBody) Validate() error {
	if b.Divisibility > MaxDivisibility {
		return precondition("divisibility %d is above %d", b.Divisibility, MaxDivisibility)
	}

	return nil
}

func (MosaicDefinitionBody) body() {}

// MosaicSupplyChangeBody changes the supply of a mosaic.
//
// - implements txn.Body
type MosaicSupplyChangeBody struct {
	MosaicID mosaic.ID
	Action   SupplyChangeAction
	Delta    numeric.UInt64
}

// Type implements txn.Body.
func (b MosaicSupplyChangeBody) Type() Type {
	return MosaicSupplyChange
}

// Size implements txn.Body.
func (b MosaicSupplyChangeBody) Size() int {
	return 8 + 1 + 8
}

// Validate implements txn.Body.
func (b MosaicSupplyChangeBody) Validate() error {
	if b.Action != SupplyIncrease && b.Action != SupplyDecrease {
		return precondition("unknown supply action %d", b.Action)
	}

	return nil
}

func (MosaicSupplyChangeBody) body() {}
