// Package signing implements the signature of the transactions by their
// initiator and their cosigners.
//
// The initiator signs the SHA3-256 digest of the generation hash followed by
// the payload past the signature. The transaction hash, which identifies the
// transaction on the network, is the digest of the signature, the signer, the
// generation hash and the payload past the signer. For an aggregate, both
// digests stop at the end of the embedded transactions so that cosignatures
// can be appended without invalidating them.
package signing

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/core/txn/wire"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

// The paths that produce cosignatures.
const (
	PathPayload   = "payload"
	PathAnnounced = "announced"
	PathCollected = "collected"
)

// defines prometheus metrics
var (
	promSigned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catapult_transactions_signed_total",
		Help: "total number of signed transactions",
	}, []string{"type"})

	promCosignatures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catapult_cosignatures_total",
		Help: "total number of cosignatures produced or collected",
	}, []string{"path"})
)

func init() {
	catapult.PromCollectors = append(catapult.PromCollectors, promSigned, promCosignatures)
}

// CosignaturesCounter returns the counter of the cosignatures of the path.
func CosignaturesCounter(path string) prometheus.Counter {
	return promCosignatures.WithLabelValues(path)
}

// CountCosignatures increases the number of cosignatures of the path.
func CountCosignatures(path string, n int) {
	CosignaturesCounter(path).Add(float64(n))
}

// SigningHash returns the digest signed by the initiator of the payload.
func SigningHash(payload []byte, gen network.GenerationHash) (txn.Hash, error) {
	end, err := signedEnd(payload)
	if err != nil {
		return txn.Hash{}, err
	}

	return crypto.Sha3_256(gen[:], payload[wire.SignerOffset:end]), nil
}

// TransactionHash returns the hash of the payload, which is the identifier of
// the transaction once announced.
func TransactionHash(payload []byte, gen network.GenerationHash) (txn.Hash, error) {
	end, err := signedEnd(payload)
	if err != nil {
		return txn.Hash{}, err
	}

	digest := crypto.Sha3_256(
		payload[wire.SignatureOffset:wire.SignerOffset],
		payload[wire.SignerOffset:wire.EntityOffset],
		gen[:],
		payload[wire.EntityOffset:end],
	)

	return digest, nil
}

// Sign returns the signed transaction of the account. The transaction is
// validated and must be on the network of the account.
func Sign(tx txn.Transaction, acc account.Account, gen network.GenerationHash,
	schema crypto.SignSchema) (txn.SignedTransaction, error) {

	payload, hash, err := sign(tx, acc, gen, schema)
	if err != nil {
		return txn.SignedTransaction{}, err
	}

	return newSigned(tx, acc, payload, hash, schema), nil
}

// SignWithCosignatories returns the signed aggregate of the initiator with the
// cosignatures of the cosigners appended. The hash is the one of the
// initiator's signature.
func SignWithCosignatories(tx txn.Transaction, initiator account.Account, cosigners []account.Account,
	gen network.GenerationHash, schema crypto.SignSchema) (txn.SignedTransaction, error) {

	aggregate, ok := tx.Body.(txn.AggregateBody)
	if !ok {
		return txn.SignedTransaction{}, xerrors.Errorf("cannot cosign %v: %w",
			tx.GetType(), catapult.ErrPreconditionViolation)
	}

	cosigs := make([]txn.Cosignature, len(cosigners))
	for i, cosigner := range cosigners {
		if cosigner.Network() != tx.Network {
			return txn.SignedTransaction{}, xerrors.Errorf("cosigner #%d is on %v instead of %v: %w",
				i, cosigner.Network(), tx.Network, catapult.ErrPreconditionViolation)
		}

		cosigs[i].Signer = cosigner.PublicKey(schema)
	}

	// Duplicates with the cosignatures already present are rejected.
	_, err := aggregate.WithCosignatures(cosigs...)
	if err != nil {
		return txn.SignedTransaction{}, xerrors.Errorf("invalid cosigners: %w", err)
	}

	payload, hash, err := sign(tx, initiator, gen, schema)
	if err != nil {
		return txn.SignedTransaction{}, err
	}

	for i, cosigner := range cosigners {
		cosigs[i].Signature = cosigner.Sign(hash[:], schema)

		payload = append(payload, cosigs[i].Signer[:]...)
		payload = append(payload, cosigs[i].Signature[:]...)
	}

	binary.LittleEndian.PutUint32(payload, uint32(len(payload)))

	CountCosignatures(PathPayload, len(cosigs))

	catapult.Logger.Debug().
		Str("hash", hash.Hex()).
		Int("cosignatures", len(cosigs)).
		Msg("aggregate cosigned")

	return newSigned(tx, initiator, payload, hash, schema), nil
}

// Verify returns nil if the signature of the payload is the one of its signer,
// otherwise an error.
func Verify(payload []byte, gen network.GenerationHash, schema crypto.SignSchema) error {
	digest, err := SigningHash(payload, gen)
	if err != nil {
		return err
	}

	var sig ed25519.Signature
	copy(sig[:], payload[wire.SignatureOffset:wire.SignerOffset])

	var signer ed25519.PublicKey
	copy(signer[:], payload[wire.SignerOffset:wire.EntityOffset])

	if !ed25519.Verify(signer, digest[:], sig, schema) {
		return xerrors.Errorf("signature of %v does not match: %w", signer, catapult.ErrPreconditionViolation)
	}

	return nil
}

func sign(tx txn.Transaction, acc account.Account, gen network.GenerationHash,
	schema crypto.SignSchema) ([]byte, txn.Hash, error) {

	err := tx.Validate()
	if err != nil {
		return nil, txn.Hash{}, xerrors.Errorf("invalid transaction: %w", err)
	}

	if acc.Network() != tx.Network {
		return nil, txn.Hash{}, xerrors.Errorf("account is on %v instead of %v: %w",
			acc.Network(), tx.Network, catapult.ErrPreconditionViolation)
	}

	signer := acc.PublicAccount(schema)

	tx.Signature = &ed25519.Signature{}
	tx.Signer = &signer

	payload, err := wire.Encode(tx)
	if err != nil {
		return nil, txn.Hash{}, xerrors.Errorf("failed to encode: %w", err)
	}

	digest, err := SigningHash(payload, gen)
	if err != nil {
		return nil, txn.Hash{}, err
	}

	sig := acc.Sign(digest[:], schema)
	copy(payload[wire.SignatureOffset:], sig[:])

	hash, err := TransactionHash(payload, gen)
	if err != nil {
		return nil, txn.Hash{}, err
	}

	promSigned.WithLabelValues(tx.GetType().String()).Inc()

	catapult.Logger.Debug().
		Stringer("type", tx.GetType()).
		Str("hash", hash.Hex()).
		Msg("transaction signed")

	return payload, hash, nil
}

func newSigned(tx txn.Transaction, acc account.Account, payload []byte, hash txn.Hash,
	schema crypto.SignSchema) txn.SignedTransaction {

	return txn.SignedTransaction{
		Payload:         strings.ToUpper(hex.EncodeToString(payload)),
		Hash:            hash.Hex(),
		SignerPublicKey: acc.PublicKey(schema).Hex(),
		Type:            tx.GetType(),
		Network:         tx.Network,
	}
}

// signedEnd returns the end of the region of the payload covered by the
// digests.
func signedEnd(payload []byte) (int, error) {
	if len(payload) < txn.HeaderSize {
		return 0, xerrors.Errorf("payload of %d bytes is shorter than the header: %w",
			len(payload), catapult.ErrMalformedPayload)
	}

	typ := txn.Type(binary.LittleEndian.Uint16(payload[wire.TypeOffset:]))
	if !typ.IsAggregate() {
		return len(payload), nil
	}

	if len(payload) < wire.BodyOffset+4 {
		return 0, xerrors.Errorf("aggregate of %d bytes has no payload size: %w",
			len(payload), catapult.ErrMalformedPayload)
	}

	end := wire.BodyOffset + 4 + int(binary.LittleEndian.Uint32(payload[wire.BodyOffset:]))
	if end > len(payload) {
		return 0, xerrors.Errorf("payload size exceeds the %d bytes: %w", len(payload), catapult.ErrMalformedPayload)
	}

	return end, nil
}
