package txn

import (
	"go.dedis.ch/catapult/crypto/ed25519"
)

// AggregateBody bundles embedded transactions with the cosignatures of the
// additional signers. The order of the transactions is part of the signed
// bytes.
//
// - implements txn.Body
type AggregateBody struct {
	Kind         Type
	Transactions []InnerTransaction
	Cosignatures []Cosignature
}

// NewAggregateComplete returns the body of an aggregate that is announced with
// all its cosignatures.
func NewAggregateComplete(txs []InnerTransaction, cosigs []Cosignature) (AggregateBody, error) {
	return newAggregate(AggregateComplete, txs, cosigs)
}

// NewAggregateBonded returns the body of an aggregate whose cosignatures are
// collected once it is announced.
func NewAggregateBonded(txs []InnerTransaction, cosigs []Cosignature) (AggregateBody, error) {
	return newAggregate(AggregateBonded, txs, cosigs)
}

func newAggregate(kind Type, txs []InnerTransaction, cosigs []Cosignature) (AggregateBody, error) {
	body := AggregateBody{
		Kind:         kind,
		Transactions: append([]InnerTransaction{}, txs...),
		Cosignatures: append([]Cosignature{}, cosigs...),
	}

	return body, body.Validate()
}

// Type implements txn.Body. It returns the kind of aggregate.
func (b AggregateBody) Type() Type {
	return b.Kind
}

// PayloadSize returns the number of bytes of the embedded transactions.
func (b AggregateBody) PayloadSize() int {
	size := 0
	for _, tx := range b.Transactions {
		size += tx.Size()
	}

	return size
}

// Size implements txn.Body.
func (b AggregateBody) Size() int {
	return 4 + b.PayloadSize() + CosignatureSize*len(b.Cosignatures)
}

// Validate implements txn.Body. It checks the kind, the embedded transactions
// and that a signer cosigns at most once.
func (b AggregateBody) Validate() error {
	if !b.Kind.IsAggregate() {
		return precondition("%v is not an aggregate", b.Kind)
	}

	for i, tx := range b.Transactions {
		if tx.Body == nil {
			return precondition("transaction #%d has no body", i)
		}

		if tx.Body.Type().IsAggregate() {
			return precondition("transaction #%d is an aggregate", i)
		}

		err := tx.Body.Validate()
		if err != nil {
			return precondition("transaction #%d is invalid: %v", i, err)
		}
	}

	seen := make(map[ed25519.PublicKey]struct{}, len(b.Cosignatures))
	for _, cosig := range b.Cosignatures {
		_, found := seen[cosig.Signer]
		if found {
			return precondition("duplicate cosignature of %v", cosig.Signer)
		}

		seen[cosig.Signer] = struct{}{}
	}

	return nil
}

// HasCosignatureOf returns true if the public key has already cosigned.
func (b AggregateBody) HasCosignatureOf(pk ed25519.PublicKey) bool {
	for _, cosig := range b.Cosignatures {
		if cosig.Signer == pk {
			return true
		}
	}

	return false
}

// WithCosignatures returns a copy of the body with the cosignatures appended.
func (b AggregateBody) WithCosignatures(cosigs ...Cosignature) (AggregateBody, error) {
	next := AggregateBody{
		Kind:         b.Kind,
		Transactions: b.Transactions,
		Cosignatures: append(append([]Cosignature{}, b.Cosignatures...), cosigs...),
	}

	return next, next.Validate()
}

func (AggregateBody) body() {}
