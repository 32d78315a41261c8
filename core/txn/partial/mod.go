// Package partial implements the collection of the cosignatures of aggregate
// bonded transactions while they wait for their cosigners.
//
// The cosignatures are indexed by the hash of their parent aggregate and they
// are attached to the announced transaction once collected.
package partial

import (
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/core/txn/cosign"
	"go.dedis.ch/catapult/core/txn/signing"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// Store is the interface of the storage of the cosignatures. Implementations
// must be safe for concurrent use.
type Store interface {
	// Add stores the cosignature for the parent hash. It returns false when
	// a cosignature of the same signer is already stored.
	Add(parent txn.Hash, cosig txn.Cosignature) (bool, error)

	// Get returns the cosignatures of the parent hash in the order they were
	// added.
	Get(parent txn.Hash) ([]txn.Cosignature, error)

	// Delete removes the cosignatures of the parent hash.
	Delete(parent txn.Hash) error
}

// Collector verifies the cosignatures before storing them and attaches them
// to the aggregates they belong to.
type Collector struct {
	store  Store
	schema crypto.SignSchema
}

// NewCollector returns a collector over the store. The cosignatures are
// verified with the schema.
func NewCollector(store Store, schema crypto.SignSchema) Collector {
	return Collector{
		store:  store,
		schema: schema,
	}
}

// Collect verifies and stores the cosignature. It returns false if the signer
// already cosigned the parent.
func (c Collector) Collect(cs txn.CosignatureSignedTransaction) (bool, error) {
	parent, err := txn.ParseHash(cs.ParentHash)
	if err != nil {
		return false, xerrors.Errorf("invalid parent hash: %w", err)
	}

	cosig, err := cs.Cosignature()
	if err != nil {
		return false, xerrors.Errorf("invalid cosignature: %w", err)
	}

	if !cosign.VerifyCosignature(cs, c.schema) {
		return false, xerrors.Errorf("cosignature of %v does not match %v: %w",
			cosig.Signer, parent, catapult.ErrPreconditionViolation)
	}

	added, err := c.store.Add(parent, cosig)
	if err != nil {
		return false, xerrors.Errorf("failed to store: %v", err)
	}

	if added {
		signing.CountCosignatures(signing.PathCollected, 1)

		catapult.Logger.Debug().
			Str("parent", parent.Hex()).
			Str("signer", cosig.Signer.Hex()).
			Msg("cosignature collected")
	}

	return added, nil
}

// Attach returns a copy of the announced aggregate with the collected
// cosignatures that are not already part of it.
func (c Collector) Attach(tx txn.Transaction) (txn.Transaction, error) {
	body, ok := tx.Body.(txn.AggregateBody)
	if !ok {
		return txn.Transaction{}, xerrors.Errorf("cannot attach cosignatures to %v: %w",
			tx.GetType(), catapult.ErrPreconditionViolation)
	}

	if tx.Info == nil || tx.Info.Hash == "" {
		return txn.Transaction{}, xerrors.Errorf("missing hash: %w", catapult.ErrNotAnnounced)
	}

	parent, err := txn.ParseHash(tx.Info.Hash)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("invalid announced hash: %w", err)
	}

	collected, err := c.store.Get(parent)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to read store: %v", err)
	}

	var initiator ed25519.PublicKey
	if tx.Signer != nil {
		initiator = tx.Signer.PublicKey
	}

	missing := make([]txn.Cosignature, 0, len(collected))
	for _, cosig := range collected {
		if cosig.Signer == initiator || body.HasCosignatureOf(cosig.Signer) {
			continue
		}

		missing = append(missing, cosig)
	}

	body, err = body.WithCosignatures(missing...)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to attach: %w", err)
	}

	catapult.Logger.Debug().
		Str("parent", parent.Hex()).
		Int("attached", len(missing)).
		Msg("cosignatures attached")

	tx.Body = body

	return tx, nil
}

// Forget removes the cosignatures collected for the parent.
func (c Collector) Forget(parent txn.Hash) error {
	err := c.store.Delete(parent)
	if err != nil {
		return xerrors.Errorf("failed to delete: %v", err)
	}

	return nil
}
