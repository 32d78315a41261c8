// Package cosign implements the cosignature of aggregate transactions by the
// parties other than the initiator.
//
// A cosigner signs the transaction hash of the aggregate. It is either
// computed from the payload before the announcement, or known from the
// information the network attached to the announced transaction. Both paths
// produce the same signature.
package cosign

import (
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/core/txn/signing"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// SignPayload returns the cosignature of the account for the payload of an
// aggregate that is not announced yet.
func SignPayload(acc account.Account, payload []byte, gen network.GenerationHash,
	schema crypto.SignSchema) (txn.CosignatureSignedTransaction, error) {

	hash, err := signing.TransactionHash(payload, gen)
	if err != nil {
		return txn.CosignatureSignedTransaction{}, xerrors.Errorf("failed to hash payload: %w", err)
	}

	signing.CountCosignatures(signing.PathPayload, 1)

	return newCosignature(acc, hash, schema), nil
}

// SignAnnounced returns the cosignature of the account for an announced
// aggregate. The hash is read from the information of the transaction and it
// is not recomputed.
func SignAnnounced(tx txn.Transaction, acc account.Account,
	schema crypto.SignSchema) (txn.CosignatureSignedTransaction, error) {

	if !tx.GetType().IsAggregate() {
		return txn.CosignatureSignedTransaction{}, xerrors.Errorf("cannot cosign %v: %w",
			tx.GetType(), catapult.ErrPreconditionViolation)
	}

	if tx.Info == nil || tx.Info.Hash == "" {
		return txn.CosignatureSignedTransaction{}, xerrors.Errorf("missing hash: %w", catapult.ErrNotAnnounced)
	}

	hash, err := txn.ParseHash(tx.Info.Hash)
	if err != nil {
		return txn.CosignatureSignedTransaction{}, xerrors.Errorf("invalid announced hash: %w", err)
	}

	signing.CountCosignatures(signing.PathAnnounced, 1)

	return newCosignature(acc, hash, schema), nil
}

// VerifyCosignature returns true if the signature of the cosignature is the
// one of its signer over the parent hash.
func VerifyCosignature(c txn.CosignatureSignedTransaction, schema crypto.SignSchema) bool {
	hash, err := txn.ParseHash(c.ParentHash)
	if err != nil {
		return false
	}

	cosig, err := c.Cosignature()
	if err != nil {
		return false
	}

	return ed25519.Verify(cosig.Signer, hash[:], cosig.Signature, schema)
}

func newCosignature(acc account.Account, hash txn.Hash, schema crypto.SignSchema) txn.CosignatureSignedTransaction {
	sig := acc.Sign(hash[:], schema)

	catapult.Logger.Debug().
		Str("parent", hash.Hex()).
		Msg("aggregate cosigned")

	return txn.CosignatureSignedTransaction{
		ParentHash:      hash.Hex(),
		Signature:       sig.Hex(),
		SignerPublicKey: acc.PublicKey(schema).Hex(),
	}
}
