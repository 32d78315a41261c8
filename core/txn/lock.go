package txn

import (
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto"
)

// MaxProofSize is the maximum size of the proof of a secret.
const MaxProofSize = 0xFFFF

// LockFundsBody locks funds as a deposit for an aggregate bonded transaction
// until it is complete.
//
// - implements txn.Body
type LockFundsBody struct {
	Mosaic   mosaic.Mosaic
	Duration numeric.UInt64
	Hash     Hash
}

// NewLockFunds returns the body of the lock of the signed aggregate bonded
// transaction. It fails if the transaction is of any other type.
func NewLockFunds(m mosaic.Mosaic, duration numeric.UInt64, signed SignedTransaction) (LockFundsBody, error) {
	if signed.Type != AggregateBonded {
		return LockFundsBody{}, precondition("signed transaction must be %v, got %v", AggregateBonded, signed.Type)
	}

	hash, err := ParseHash(signed.Hash)
	if err != nil {
		return LockFundsBody{}, precondition("invalid hash of signed transaction: %v", err)
	}

	body := LockFundsBody{
		Mosaic:   m,
		Duration: duration,
		Hash:     hash,
	}

	return body, nil
}

// Type implements txn.Body.
func (b LockFundsBody) Type() Type {
	return Lock
}

// Size implements txn.Body.
func (b LockFundsBody) Size() int {
	return 8 + 8 + 8 + HashSize
}

// Validate implements txn.Body.
func (b LockFundsBody) Validate() error {
	return nil
}

func (LockFundsBody) body() {}

// SecretLockBody locks funds until the proof of the secret is revealed.
//
// - implements txn.Body
type SecretLockBody struct {
	Mosaic        mosaic.Mosaic
	Duration      numeric.UInt64
	HashAlgorithm crypto.HashAlgorithm
	Secret        [crypto.SecretSize]byte
	Recipient     account.Address
}

// Type implements txn.Body.
func (b SecretLockBody) Type() Type {
	return SecretLock
}

// Size implements txn.Body.
func (b SecretLockBody) Size() int {
	return 8 + 8 + 8 + 1 + crypto.SecretSize + account.AddressSize
}

// Validate implements txn.Body.
func (b SecretLockBody) Validate() error {
	return b.HashAlgorithm.CheckSecret(b.Secret)
}

func (SecretLockBody) body() {}

// SecretProofBody reveals the proof of a secret to unlock the funds.
//
// - implements txn.Body
type SecretProofBody struct {
	HashAlgorithm crypto.HashAlgorithm
	Secret        [crypto.SecretSize]byte
	Recipient     account.Address
	Proof         []byte
}

// NewSecretProof returns the body that reveals the proof. The secret is
// derived from the proof.
func NewSecretProof(alg crypto.HashAlgorithm, recipient account.Address, proof []byte) (SecretProofBody, error) {
	body := SecretProofBody{
		HashAlgorithm: alg,
		Secret:        alg.Secret(proof),
		Recipient:     recipient,
		Proof:         append([]byte{}, proof...),
	}

	return body, body.Validate()
}

// Type implements txn.Body.
func (b SecretProofBody) Type() Type {
	return SecretProof
}

// Size implements txn.Body.
func (b SecretProofBody) Size() int {
	return 1 + crypto.SecretSize + account.AddressSize + 2 + len(b.Proof)
}

// Validate implements txn.Body. It checks that the proof produces the secret.
func (b SecretProofBody) Validate() error {
	err := b.HashAlgorithm.CheckSecret(b.Secret)
	if err != nil {
		return err
	}

	if len(b.Proof) > MaxProofSize {
		return precondition("proof is %d bytes, max is %d", len(b.Proof), MaxProofSize)
	}

	if b.HashAlgorithm.Secret(b.Proof) != b.Secret {
		return precondition("proof does not match the secret")
	}

	return nil
}

func (SecretProofBody) body() {}
