package txn

import (
	"sort"

	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
)

// MaxArraySize is the maximum number of entries of a 1-byte counted array.
const MaxArraySize = 0xFF

// TransferBody sends mosaics and a message to a recipient.
//
// - implements txn.Body
type TransferBody struct {
	Recipient account.Address
	Mosaics   []mosaic.Mosaic
	Message   Message
}

// NewTransfer returns the body of a transfer. The mosaics are sorted by
// identifier as the network expects.
func NewTransfer(recipient account.Address, mosaics []mosaic.Mosaic, msg Message) (TransferBody, error) {
	sorted := make([]mosaic.Mosaic, len(mosaics))
	copy(sorted, mosaics)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	body := TransferBody{
		Recipient: recipient,
		Mosaics:   sorted,
		Message:   msg,
	}

	return body, body.Validate()
}

// Type implements txn.Body.
func (b TransferBody) Type() Type {
	return Transfer
}

// Size implements txn.Body.
func (b TransferBody) Size() int {
	return account.AddressSize + 1 + 1 + 4 + 16*len(b.Mosaics) + b.Message.Size()
}

// Validate implements txn.Body. It checks the counts and the order of the
// mosaics.
func (b TransferBody) Validate() error {
	if len(b.Mosaics) > MaxArraySize {
		return precondition("too many mosaics: %d", len(b.Mosaics))
	}

	for i := 1; i < len(b.Mosaics); i++ {
		if b.Mosaics[i-1].ID > b.Mosaics[i].ID {
			return precondition("mosaics must be sorted by id")
		}
	}

	return b.Message.validate()
}

func (TransferBody) body() {}
