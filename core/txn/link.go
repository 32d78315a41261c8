package txn

import (
	"go.dedis.ch/catapult/crypto/ed25519"
)

// AccountLinkBody delegates the importance of an account to a remote account.
//
// - implements txn.Body
type AccountLinkBody struct {
	RemotePublicKey ed25519.PublicKey
	Action          LinkAction
}

// Type implements txn.Body.
func (b AccountLinkBody) Type() Type {
	return LinkAccount
}

// Size implements txn.Body.
func (b AccountLinkBody) Size() int {
	return ed25519.PublicKeySize + 1
}

// Validate implements txn.Body.
func (b AccountLinkBody) Validate() error {
	if b.Action != LinkAccountLink && b.Action != LinkAccountUnlink {
		return precondition("unknown link action %d", b.Action)
	}

	return nil
}

func (AccountLinkBody) body() {}
