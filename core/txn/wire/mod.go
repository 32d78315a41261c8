// Package wire implements the binary codec of the transactions.
//
// Every numeric field is little-endian. A standalone transaction starts with
// a 128-byte header:
//
//	size u32 | reserved u32 | signature [64] | signer [32] | reserved u32 |
//	version u8 | network u8 | type u16 | maxFee u64 | deadline u64
//
// and an embedded transaction with a 44-byte header:
//
//	size u32 | signer [32] | reserved u32 | version u8 | network u8 | type u16
//
// followed by the body of the kind.
package wire

import (
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

const (
	// SignatureOffset is the offset of the signature in a standalone payload.
	SignatureOffset = 8
	// SignerOffset is the offset of the signer in a standalone payload.
	SignerOffset = SignatureOffset + ed25519.SignatureSize
	// EntityOffset is the offset of the field that follows the signer.
	EntityOffset = SignerOffset + ed25519.PublicKeySize
	// TypeOffset is the offset of the type code in a standalone payload.
	TypeOffset = EntityOffset + 6
	// BodyOffset is the offset of the body in a standalone payload.
	BodyOffset = txn.HeaderSize
)

type decoder struct {
	schema *crypto.SignSchema
}

// Option is the type of options to decode a payload.
type Option func(*decoder)

// WithSignSchema is an option to verify the checksum of the addresses of the
// payload for the schema.
func WithSignSchema(schema crypto.SignSchema) Option {
	return func(d *decoder) {
		d.schema = &schema
	}
}

// Encode returns the payload of the standalone transaction. The signature and
// the signer are zero when they are not set.
func Encode(tx txn.Transaction) ([]byte, error) {
	if tx.Body == nil {
		return nil, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if (tx.Signature == nil) != (tx.Signer == nil) {
		return nil, xerrors.Errorf("signature and signer must be set together: %w",
			catapult.ErrPreconditionViolation)
	}

	w := newWriter(tx.Size())

	w.u32(uint32(tx.Size()))
	w.u32(0)

	if tx.Signature != nil {
		w.raw(tx.Signature[:])
		w.raw(tx.Signer.PublicKey[:])
	} else {
		w.raw(make([]byte, ed25519.SignatureSize+ed25519.PublicKeySize))
	}

	w.u32(0)
	writeEntity(w, tx.EntityHeader, tx.Body.Type())
	w.u64(tx.MaxFee)
	w.u64(numeric.UInt64(tx.Deadline))

	err := encodeBody(w, tx.Body)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode %v: %w", tx.Body.Type(), err)
	}

	return w.buffer, nil
}

// EncodeEmbedded returns the payload of the embedded transaction.
func EncodeEmbedded(tx txn.InnerTransaction) ([]byte, error) {
	w := newWriter(tx.Size())

	err := encodeEmbedded(w, tx)
	if err != nil {
		return nil, err
	}

	return w.buffer, nil
}

func encodeEmbedded(w *writer, tx txn.InnerTransaction) error {
	if tx.Body == nil {
		return xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if tx.Body.Type().IsAggregate() {
		return xerrors.Errorf("an aggregate cannot be embedded: %w", catapult.ErrPreconditionViolation)
	}

	w.u32(uint32(tx.Size()))
	w.raw(tx.Signer.PublicKey[:])
	w.u32(0)
	writeEntity(w, tx.EntityHeader, tx.Body.Type())

	err := encodeBody(w, tx.Body)
	if err != nil {
		return xerrors.Errorf("failed to encode %v: %w", tx.Body.Type(), err)
	}

	return nil
}

func writeEntity(w *writer, header txn.EntityHeader, typ txn.Type) {
	w.u8(header.Version)
	w.u8(uint8(header.Network))
	w.u16(uint16(typ))
}

// Decode returns the standalone transaction of the payload.
func Decode(data []byte, opts ...Option) (txn.Transaction, error) {
	d := newDecoder(opts)

	if len(data) < txn.HeaderSize {
		return txn.Transaction{}, xerrors.Errorf("payload of %d bytes is shorter than the header: %w",
			len(data), catapult.ErrMalformedPayload)
	}

	r := newReader(data, d.schema)

	size := r.u32()
	if int(size) != len(data) {
		return txn.Transaction{}, xerrors.Errorf("size field %d does not match the %d bytes: %w",
			size, len(data), catapult.ErrMalformedPayload)
	}

	r.reserved()

	var sig ed25519.Signature
	r.copyTo(sig[:])

	var signer ed25519.PublicKey
	r.copyTo(signer[:])

	r.reserved()

	header, typ, err := readEntity(r)
	if err != nil {
		return txn.Transaction{}, err
	}

	tx := txn.Transaction{
		EntityHeader: header,
		MaxFee:       r.u64(),
		Deadline:     txn.Deadline(r.u64()),
	}

	switch {
	case !signer.IsZero():
		tx.Signature = &sig
		tx.Signer = &account.PublicAccount{PublicKey: signer, Network: header.Network}
	case !sig.IsZero():
		return txn.Transaction{}, xerrors.Errorf("signature without signer: %w", catapult.ErrMalformedPayload)
	}

	tx.Body, err = decodeBody(r, typ)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to decode %v: %w", typ, err)
	}

	err = r.done()
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to decode %v: %w", typ, err)
	}

	return tx, nil
}

// DecodeEmbedded returns the embedded transaction of the payload.
func DecodeEmbedded(data []byte, opts ...Option) (txn.InnerTransaction, error) {
	d := newDecoder(opts)

	return decodeEmbedded(data, d.schema)
}

func decodeEmbedded(data []byte, schema *crypto.SignSchema) (txn.InnerTransaction, error) {
	if len(data) < txn.EmbeddedHeaderSize {
		return txn.InnerTransaction{}, xerrors.Errorf("payload of %d bytes is shorter than the embedded header: %w",
			len(data), catapult.ErrMalformedPayload)
	}

	r := newReader(data, schema)

	size := r.u32()
	if int(size) != len(data) {
		return txn.InnerTransaction{}, xerrors.Errorf("size field %d does not match the %d bytes: %w",
			size, len(data), catapult.ErrMalformedPayload)
	}

	var signer ed25519.PublicKey
	r.copyTo(signer[:])

	r.reserved()

	header, typ, err := readEntity(r)
	if err != nil {
		return txn.InnerTransaction{}, err
	}

	if typ.IsAggregate() {
		return txn.InnerTransaction{}, xerrors.Errorf("embedded %v: %w", typ, catapult.ErrUnsupportedTransactionType)
	}

	tx := txn.InnerTransaction{
		EntityHeader: header,
		Signer:       account.PublicAccount{PublicKey: signer, Network: header.Network},
	}

	tx.Body, err = decodeBody(r, typ)
	if err != nil {
		return txn.InnerTransaction{}, xerrors.Errorf("failed to decode embedded %v: %w", typ, err)
	}

	err = r.done()
	if err != nil {
		return txn.InnerTransaction{}, xerrors.Errorf("failed to decode embedded %v: %w", typ, err)
	}

	return tx, nil
}

func readEntity(r *reader) (txn.EntityHeader, txn.Type, error) {
	version := r.u8()
	net := r.u8()
	code := r.u16()

	if r.err != nil {
		return txn.EntityHeader{}, 0, r.err
	}

	typ, err := txn.ParseType(code)
	if err != nil {
		return txn.EntityHeader{}, 0, err
	}

	netType, err := network.ParseType(net)
	if err != nil {
		return txn.EntityHeader{}, 0, xerrors.Errorf("%v: %w", err, catapult.ErrMalformedPayload)
	}

	header := txn.EntityHeader{
		Network: netType,
		Version: version,
	}

	return header, typ, nil
}

func newDecoder(opts []Option) decoder {
	d := decoder{}
	for _, opt := range opts {
		opt(&d)
	}

	return d
}
