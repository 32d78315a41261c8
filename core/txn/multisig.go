package txn

import (
	"go.dedis.ch/catapult/crypto/ed25519"
)

// CosignatoryModification adds or removes a cosignatory of a multisig
// account.
type CosignatoryModification struct {
	Action      ModificationAction
	Cosignatory ed25519.PublicKey
}

// MultisigAccountModificationBody changes the cosignatories and the
// thresholds of a multisig account.
//
// - implements txn.Body
type MultisigAccountModificationBody struct {
	MinApprovalDelta int8
	MinRemovalDelta  int8
	Modifications    []CosignatoryModification
}

// Type implements txn.Body.
func (b MultisigAccountModificationBody) Type() Type {
	return ModifyMultisigAccount
}

// Size implements txn.Body.
func (b MultisigAccountModificationBody) Size() int {
	return 1 + 1 + 1 + (1+ed25519.PublicKeySize)*len(b.Modifications)
}

// Validate implements txn.Body.
func (b MultisigAccountModificationBody) Validate() error {
	actions := make([]ModificationAction, len(b.Modifications))
	seen := make(map[ed25519.PublicKey]struct{}, len(b.Modifications))

	for i, mod := range b.Modifications {
		_, found := seen[mod.Cosignatory]
		if found {
			return precondition("cosignatory %v is modified twice", mod.Cosignatory)
		}

		seen[mod.Cosignatory] = struct{}{}
		actions[i] = mod.Action
	}

	return validateModifications(actions)
}

func (MultisigAccountModificationBody) body() {}
