package txn

import (
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/numeric"
)

// AddressModification adds or removes an address of a restriction.
type AddressModification struct {
	Action ModificationAction
	Value  account.Address
}

// MosaicModification adds or removes a mosaic of a restriction.
type MosaicModification struct {
	Action ModificationAction
	Value  mosaic.ID
}

// OperationModification adds or removes a transaction type of a restriction.
type OperationModification struct {
	Action ModificationAction
	Value  Type
}

// AccountAddressRestrictionBody restricts the addresses an account interacts
// with.
//
// - implements txn.Body
type AccountAddressRestrictionBody struct {
	RestrictionType AccountRestrictionType
	Modifications   []AddressModification
}

// Type implements txn.Body.
func (b AccountAddressRestrictionBody) Type() Type {
	return AccountRestrictionAddress
}

// Size implements txn.Body.
func (b AccountAddressRestrictionBody) Size() int {
	return 1 + 1 + (1+account.AddressSize)*len(b.Modifications)
}

// Validate implements txn.Body.
func (b AccountAddressRestrictionBody) Validate() error {
	if !b.RestrictionType.IsAddress() {
		return precondition("restriction type %#x is not about addresses", b.RestrictionType)
	}

	actions := make([]ModificationAction, len(b.Modifications))
	for i, mod := range b.Modifications {
		actions[i] = mod.Action
	}

	return validateModifications(actions)
}

func (AccountAddressRestrictionBody) body() {}

// AccountMosaicRestrictionBody restricts the mosaics an account receives.
//
// - implements txn.Body
type AccountMosaicRestrictionBody struct {
	RestrictionType AccountRestrictionType
	Modifications   []MosaicModification
}

// Type implements txn.Body.
func (b AccountMosaicRestrictionBody) Type() Type {
	return AccountRestrictionMosaic
}

// Size implements txn.Body.
func (b AccountMosaicRestrictionBody) Size() int {
	return 1 + 1 + (1+8)*len(b.Modifications)
}

// Validate implements txn.Body.
func (b AccountMosaicRestrictionBody) Validate() error {
	if !b.RestrictionType.IsMosaic() {
		return precondition("restriction type %#x is not about mosaics", b.RestrictionType)
	}

	actions := make([]ModificationAction, len(b.Modifications))
	for i, mod := range b.Modifications {
		actions[i] = mod.Action
	}

	return validateModifications(actions)
}

func (AccountMosaicRestrictionBody) body() {}

// AccountOperationRestrictionBody restricts the transaction types an account
// can send or receive.
//
// - implements txn.Body
type AccountOperationRestrictionBody struct {
	RestrictionType AccountRestrictionType
	Modifications   []OperationModification
}

// Type implements txn.Body.
func (b AccountOperationRestrictionBody) Type() Type {
	return AccountRestrictionOperation
}

// Size implements txn.Body.
func (b AccountOperationRestrictionBody) Size() int {
	return 1 + 1 + (1+2)*len(b.Modifications)
}

// Validate implements txn.Body.
func (b AccountOperationRestrictionBody) Validate() error {
	if !b.RestrictionType.IsOperation() {
		return precondition("restriction type %#x is not about operations", b.RestrictionType)
	}

	actions := make([]ModificationAction, len(b.Modifications))
	for i, mod := range b.Modifications {
		if !mod.Value.Known() {
			return precondition("unknown operation %v", mod.Value)
		}

		actions[i] = mod.Action
	}

	return validateModifications(actions)
}

func (AccountOperationRestrictionBody) body() {}

func validateModifications(actions []ModificationAction) error {
	if len(actions) > MaxArraySize {
		return precondition("too many modifications: %d", len(actions))
	}

	for _, action := range actions {
		if action != Add && action != Remove {
			return precondition("unknown modification action %d", action)
		}
	}

	return nil
}

// MosaicAddressRestrictionBody sets the restriction value of an address for a
// mosaic.
//
// - implements txn.Body
type MosaicAddressRestrictionBody struct {
	MosaicID       mosaic.ID
	RestrictionKey numeric.UInt64
	TargetAddress  account.Address
	PreviousValue  numeric.UInt64
	NewValue       numeric.UInt64
}

// Type implements txn.Body.
func (b MosaicAddressRestrictionBody) Type() Type {
	return MosaicAddressRestriction
}

// Size implements txn.Body.
func (b MosaicAddressRestrictionBody) Size() int {
	return 8 + 8 + account.AddressSize + 8 + 8
}

// Validate implements txn.Body.
func (b MosaicAddressRestrictionBody) Validate() error {
	return nil
}

func (MosaicAddressRestrictionBody) body() {}

// MosaicGlobalRestrictionBody sets the global restriction of a mosaic.
//
// - implements txn.Body
type MosaicGlobalRestrictionBody struct {
	MosaicID          mosaic.ID
	ReferenceMosaicID mosaic.ID
	RestrictionKey    numeric.UInt64
	PreviousValue     numeric.UInt64
	PreviousType      MosaicRestrictionType
	NewValue          numeric.UInt64
	NewType           MosaicRestrictionType
}

// Type implements txn.Body.
func (b MosaicGlobalRestrictionBody) Type() Type {
	return MosaicGlobalRestriction
}

// Size implements txn.Body.
func (b MosaicGlobalRestrictionBody) Size() int {
	return 8 + 8 + 8 + 8 + 1 + 8 + 1
}

// Validate implements txn.Body.
func (b MosaicGlobalRestrictionBody) Validate() error {
	if b.PreviousType > MosaicRestrictionGE || b.NewType > MosaicRestrictionGE {
		return precondition("unknown mosaic restriction type")
	}

	return nil
}

func (MosaicGlobalRestrictionBody) body() {}
