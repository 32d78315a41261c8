package signing

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/core/txn/wire"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/internal/testing/fake"
	"golang.org/x/xerrors"
)

func TestSign(t *testing.T) {
	acc := fake.NewAccount(fake.PrivateKey)
	tx := fake.NewTransaction(fake.NewTransfer())

	before := testutil.ToFloat64(promSigned.WithLabelValues("TRANSFER"))

	signed, err := Sign(tx, acc, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)
	require.Equal(t, txn.Transfer, signed.Type)
	require.Equal(t, network.MijinTest, signed.Network)
	require.Equal(t, acc.PublicKey(crypto.SHA3).Hex(), signed.SignerPublicKey)
	require.Len(t, signed.Hash, 64)
	require.Equal(t, before+1, testutil.ToFloat64(promSigned.WithLabelValues("TRANSFER")))

	payload, err := signed.PayloadBytes()
	require.NoError(t, err)
	require.Len(t, payload, tx.Size())
	require.NoError(t, Verify(payload, fake.GenerationHash, crypto.SHA3))

	decoded, err := wire.Decode(payload)
	require.NoError(t, err)
	require.NotNil(t, decoded.Signature)
	require.Equal(t, acc.PublicAccount(crypto.SHA3), *decoded.Signer)
	require.Equal(t, tx.Body, decoded.Body)

	hash, err := TransactionHash(payload, fake.GenerationHash)
	require.NoError(t, err)
	require.Equal(t, signed.Hash, hash.Hex())

	again, err := Sign(tx, acc, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)
	require.Equal(t, signed, again)
}

func TestSign_Schemas(t *testing.T) {
	acc := fake.NewAccount(fake.PrivateKey)
	tx := fake.NewTransaction(fake.NewTransfer())

	current, err := Sign(tx, acc, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	legacy, err := Sign(tx, acc, fake.GenerationHash, crypto.KeccakReversedKey)
	require.NoError(t, err)
	require.NotEqual(t, current.SignerPublicKey, legacy.SignerPublicKey)
	require.NotEqual(t, current.Hash, legacy.Hash)

	payload, err := legacy.PayloadBytes()
	require.NoError(t, err)
	require.NoError(t, Verify(payload, fake.GenerationHash, crypto.KeccakReversedKey))
	require.Error(t, Verify(payload, fake.GenerationHash, crypto.SHA3))
}

func TestSign_Failures(t *testing.T) {
	acc := fake.NewAccount(fake.PrivateKey)

	_, err := Sign(txn.Transaction{}, acc, fake.GenerationHash, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	inner := fake.NewInner(fake.NewTransfer())
	_, err = Sign(inner.Standalone(), acc, fake.GenerationHash, crypto.SHA3)
	require.EqualError(t, err, "invalid transaction: missing deadline: precondition violation")

	other, err := account.NewAccount(fake.PrivateKey, network.MainNet)
	require.NoError(t, err)

	_, err = Sign(fake.NewTransaction(fake.NewTransfer()), other, fake.GenerationHash, crypto.SHA3)
	require.EqualError(t, err, "account is on MAIN_NET instead of MIJIN_TEST: precondition violation")

	tx := fake.NewTransaction(fake.NewTransfer())
	tx.Body = txn.MosaicSupplyChangeBody{Action: 5}
	_, err = Sign(tx, acc, fake.GenerationHash, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}

func TestSign_EmptyAggregate(t *testing.T) {
	body, err := txn.NewAggregateComplete(nil, nil)
	require.NoError(t, err)

	signed, err := Sign(fake.NewTransaction(body), fake.NewAccount(fake.PrivateKey), fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	payload, err := signed.PayloadBytes()
	require.NoError(t, err)
	require.Len(t, payload, txn.HeaderSize+4)
	require.NoError(t, Verify(payload, fake.GenerationHash, crypto.SHA3))
}

func TestSignWithCosignatories(t *testing.T) {
	initiator := fake.NewAccount(fake.PrivateKey)
	cosigner := fake.NewAccount(fake.CosignerKey)
	tx := fake.NewTransaction(fake.NewAggregate(txn.AggregateComplete))

	before := testutil.ToFloat64(promCosignatures.WithLabelValues(PathPayload))

	signed, err := SignWithCosignatories(tx, initiator, []account.Account{cosigner},
		fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(promCosignatures.WithLabelValues(PathPayload)))

	alone, err := Sign(tx, initiator, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)
	require.Equal(t, alone.Hash, signed.Hash)

	payload, err := signed.PayloadBytes()
	require.NoError(t, err)
	require.Len(t, payload, tx.Size()+txn.CosignatureSize)
	require.NoError(t, Verify(payload, fake.GenerationHash, crypto.SHA3))

	hash, err := TransactionHash(payload, fake.GenerationHash)
	require.NoError(t, err)
	require.Equal(t, signed.Hash, hash.Hex())

	decoded, err := wire.Decode(payload)
	require.NoError(t, err)

	cosigs := decoded.Body.(txn.AggregateBody).Cosignatures
	require.Len(t, cosigs, 1)
	require.Equal(t, cosigner.PublicKey(crypto.SHA3), cosigs[0].Signer)
	require.True(t, ed25519.Verify(cosigs[0].Signer, hash[:], cosigs[0].Signature, crypto.SHA3))
}

func TestSignWithCosignatories_Failures(t *testing.T) {
	initiator := fake.NewAccount(fake.PrivateKey)
	cosigner := fake.NewAccount(fake.CosignerKey)

	_, err := SignWithCosignatories(fake.NewTransaction(fake.NewTransfer()), initiator,
		[]account.Account{cosigner}, fake.GenerationHash, crypto.SHA3)
	require.EqualError(t, err, "cannot cosign TRANSFER: precondition violation")

	tx := fake.NewTransaction(fake.NewAggregate(txn.AggregateComplete))

	_, err = SignWithCosignatories(tx, initiator, []account.Account{cosigner, cosigner},
		fake.GenerationHash, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	other, err := account.NewAccount(fake.CosignerKey, network.MainNet)
	require.NoError(t, err)

	_, err = SignWithCosignatories(tx, initiator, []account.Account{other}, fake.GenerationHash, crypto.SHA3)
	require.EqualError(t, err, "cosigner #0 is on MAIN_NET instead of MIJIN_TEST: precondition violation")
}

func TestHashes(t *testing.T) {
	signed, err := Sign(fake.NewTransaction(fake.NewTransfer()), fake.NewAccount(fake.PrivateKey),
		fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	payload, err := signed.PayloadBytes()
	require.NoError(t, err)

	hash, err := TransactionHash(payload, fake.GenerationHash)
	require.NoError(t, err)
	require.Equal(t, txn.Hash(crypto.Sha3_256(payload[8:72], payload[72:104], fake.GenerationHash[:],
		payload[104:])), hash)

	digest, err := SigningHash(payload, fake.GenerationHash)
	require.NoError(t, err)
	require.Equal(t, txn.Hash(crypto.Sha3_256(fake.GenerationHash[:], payload[72:])), digest)

	other := fake.GenerationHash
	other[0] ^= 0xFF

	otherHash, err := TransactionHash(payload, other)
	require.NoError(t, err)
	require.NotEqual(t, hash, otherHash)

	_, err = TransactionHash(payload[:txn.HeaderSize-1], fake.GenerationHash)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	_, err = SigningHash(payload[:10], fake.GenerationHash)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestHashes_Aggregate(t *testing.T) {
	tx := fake.NewTransaction(fake.NewAggregate(txn.AggregateBonded))

	payload, err := wire.Encode(tx)
	require.NoError(t, err)

	hash, err := TransactionHash(payload, fake.GenerationHash)
	require.NoError(t, err)

	extended := append(append([]byte{}, payload...), make([]byte, txn.CosignatureSize)...)

	other, err := TransactionHash(extended, fake.GenerationHash)
	require.NoError(t, err)
	require.Equal(t, hash, other)

	_, err = TransactionHash(payload[:txn.HeaderSize+2], fake.GenerationHash)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	_, err = TransactionHash(payload[:len(payload)-1], fake.GenerationHash)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestVerify(t *testing.T) {
	signed, err := Sign(fake.NewTransaction(fake.NewTransfer()), fake.NewAccount(fake.PrivateKey),
		fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	payload, err := signed.PayloadBytes()
	require.NoError(t, err)

	payload[len(payload)-1] ^= 0xFF
	err = Verify(payload, fake.GenerationHash, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	err = Verify(payload[:5], fake.GenerationHash, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestLockFunds_Signed(t *testing.T) {
	acc := fake.NewAccount(fake.PrivateKey)

	bonded, err := Sign(fake.NewTransaction(fake.NewAggregate(txn.AggregateBonded)), acc,
		fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	lock, err := txn.NewLockFunds(mosaic.NetworkCurrencyAbsolute(10000000), 480, bonded)
	require.NoError(t, err)
	require.Equal(t, bonded.Hash, lock.Hash.Hex())

	_, err = Sign(fake.NewTransaction(lock), acc, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	transfer, err := Sign(fake.NewTransaction(fake.NewTransfer()), acc, fake.GenerationHash, crypto.SHA3)
	require.NoError(t, err)

	_, err = txn.NewLockFunds(mosaic.NetworkCurrencyAbsolute(10), 480, transfer)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}
