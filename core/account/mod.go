// Package account implements the accounts of a network: the address derived
// from a public key, the public account and the account that holds a private
// key to sign.
package account

import (
	"encoding/hex"

	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// PublicAccount is the public key of an account on a network.
type PublicAccount struct {
	PublicKey ed25519.PublicKey
	Network   network.Type
}

// NewPublicAccount returns the public account of the key on the network.
func NewPublicAccount(pk ed25519.PublicKey, net network.Type) PublicAccount {
	return PublicAccount{
		PublicKey: pk,
		Network:   net,
	}
}

// PublicAccountFromHex returns the public account of the hexadecimal key.
func PublicAccountFromHex(pk string, net network.Type) (PublicAccount, error) {
	key, err := ed25519.PublicKeyFromHex(pk)
	if err != nil {
		return PublicAccount{}, err
	}

	return NewPublicAccount(key, net), nil
}

// Address returns the address of the account for the schema.
func (pa PublicAccount) Address(schema crypto.SignSchema) Address {
	return NewAddress(pa.PublicKey, pa.Network, schema)
}

// Verify returns true if the signature of the data was produced by the
// account.
func (pa PublicAccount) Verify(data []byte, sig ed25519.Signature, schema crypto.SignSchema) bool {
	return ed25519.Verify(pa.PublicKey, data, sig, schema)
}

// Account is an account for which the private key is known. The public key
// depends on the sign schema so that every operation takes it explicitly.
type Account struct {
	privateKey [ed25519.PrivateKeySize]byte
	network    network.Type
}

// NewAccount returns the account of the hexadecimal private key.
func NewAccount(privateKey string, net network.Type) (Account, error) {
	// The derivation validates the key once for all.
	_, err := ed25519.NewKeyPairFromHex(privateKey, crypto.SHA3)
	if err != nil {
		return Account{}, xerrors.Errorf("failed to create key pair: %w", err)
	}

	acc := Account{network: net}
	hex.Decode(acc.privateKey[:], []byte(privateKey))

	return acc, nil
}

// Network returns the network of the account.
func (acc Account) Network() network.Type {
	return acc.network
}

// KeyPair returns the key pair of the account for the schema.
func (acc Account) KeyPair(schema crypto.SignSchema) ed25519.KeyPair {
	// The key has the right size, which is the only failure.
	kp, _ := ed25519.NewKeyPair(acc.privateKey[:], schema)

	return kp
}

// PublicKey returns the public key of the account for the schema.
func (acc Account) PublicKey(schema crypto.SignSchema) ed25519.PublicKey {
	return acc.KeyPair(schema).PublicKey()
}

// PublicAccount returns the public account for the schema.
func (acc Account) PublicAccount(schema crypto.SignSchema) PublicAccount {
	return NewPublicAccount(acc.PublicKey(schema), acc.network)
}

// Address returns the address of the account for the schema.
func (acc Account) Address(schema crypto.SignSchema) Address {
	return acc.PublicAccount(schema).Address(schema)
}

// Sign returns the signature of the data for the schema.
func (acc Account) Sign(data []byte, schema crypto.SignSchema) ed25519.Signature {
	return acc.KeyPair(schema).Sign(data)
}
