package catapult

import "golang.org/x/xerrors"

// The errors below are the families every failure of the engine belongs to.
// A returned error can be tested with xerrors.Is against them.
var (
	// ErrMalformedPayload is returned when a binary payload or a JSON document
	// cannot be fully and correctly interpreted.
	ErrMalformedPayload = xerrors.New("malformed payload")

	// ErrUnsupportedTransactionType is returned for a type code that is not in
	// the registry.
	ErrUnsupportedTransactionType = xerrors.New("unsupported transaction type")

	// ErrPreconditionViolation is returned when the inputs of an operation do
	// not satisfy its requirements.
	ErrPreconditionViolation = xerrors.New("precondition violation")

	// ErrNotAnnounced is returned when an operation needs the on-chain hash of
	// a transaction that has not been observed yet.
	ErrNotAnnounced = xerrors.New("transaction not announced")

	// ErrInvalidIdentifier is returned for malformed hex, keys, ids and for
	// addresses with a wrong checksum.
	ErrInvalidIdentifier = xerrors.New("invalid identifier")
)
