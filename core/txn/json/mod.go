// Package json implements the REST JSON document of the transactions.
//
// A document is an object with a "transaction" member, whose shape depends on
// the type code, and an optional "meta" member with the information the
// network attached to the transaction.
package json

import (
	"encoding/json"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

func init() {
	txn.RegisterTransactionFormat(serde.FormatJSON, txFormat{})
	txn.RegisterInnerTransactionFormat(serde.FormatJSON, innerFormat{})
}

// DocumentJSON is the JSON message of a transaction document.
type DocumentJSON struct {
	Transaction json.RawMessage `json:"transaction"`
	Meta        *MetaJSON       `json:"meta,omitempty"`
}

// MetaJSON is the JSON message of the information of a transaction.
type MetaJSON struct {
	Height        string `json:"height,omitempty"`
	Index         uint32 `json:"index"`
	ID            string `json:"id,omitempty"`
	Hash          string `json:"hash,omitempty"`
	AggregateHash string `json:"aggregateHash,omitempty"`
	AggregateID   string `json:"aggregateId,omitempty"`
}

// HeaderJSON is the JSON message of the fields common to every transaction.
// The fee, the deadline and the signature are omitted for an embedded
// transaction.
type HeaderJSON struct {
	Type            uint16 `json:"type"`
	Network         uint8  `json:"network"`
	Version         uint8  `json:"version"`
	MaxFee          string `json:"maxFee,omitempty"`
	Deadline        string `json:"deadline,omitempty"`
	Signature       string `json:"signature,omitempty"`
	SignerPublicKey string `json:"signerPublicKey,omitempty"`
}

// txFormat is the JSON format engine of standalone transactions.
//
// - implements serde.FormatEngine
type txFormat struct{}

// Encode implements serde.FormatEngine. It returns the document of the
// transaction if appropriate, otherwise it returns an error.
func (f txFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(txn.Transaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	doc, err := encodeTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	data, err := ctx.Marshal(doc)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It returns the transaction of the
// document if appropriate, otherwise it returns an error.
func (f txFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	doc := DocumentJSON{}

	err := ctx.Unmarshal(data, &doc)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v: %w", err, catapult.ErrMalformedPayload)
	}

	return decodeTransaction(ctx, doc)
}

// innerFormat is the JSON format engine of embedded transactions.
//
// - implements serde.FormatEngine
type innerFormat struct{}

// Encode implements serde.FormatEngine. It returns the document of the
// embedded transaction if appropriate, otherwise it returns an error.
func (f innerFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(txn.InnerTransaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	doc, err := encodeInner(ctx, tx)
	if err != nil {
		return nil, err
	}

	data, err := ctx.Marshal(doc)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It returns the embedded transaction of
// the document if appropriate, otherwise it returns an error.
func (f innerFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	doc := DocumentJSON{}

	err := ctx.Unmarshal(data, &doc)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v: %w", err, catapult.ErrMalformedPayload)
	}

	return decodeInner(ctx, doc)
}

func encodeTransaction(ctx serde.Context, tx txn.Transaction) (DocumentJSON, error) {
	if tx.Body == nil {
		return DocumentJSON{}, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if (tx.Signature == nil) != (tx.Signer == nil) {
		return DocumentJSON{}, xerrors.Errorf("signature and signer must be set together: %w",
			catapult.ErrPreconditionViolation)
	}

	header := HeaderJSON{
		Type:     uint16(tx.Body.Type()),
		Network:  uint8(tx.Network),
		Version:  tx.Version,
		MaxFee:   tx.MaxFee.String(),
		Deadline: tx.Deadline.String(),
	}

	if tx.Signature != nil {
		header.Signature = tx.Signature.Hex()
		header.SignerPublicKey = tx.Signer.PublicKey.Hex()
	}

	return encodeDocument(ctx, header, tx.Body, tx.Info)
}

func encodeInner(ctx serde.Context, tx txn.InnerTransaction) (DocumentJSON, error) {
	if tx.Body == nil {
		return DocumentJSON{}, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if tx.Body.Type().IsAggregate() {
		return DocumentJSON{}, xerrors.Errorf("an aggregate cannot be embedded: %w",
			catapult.ErrPreconditionViolation)
	}

	header := HeaderJSON{
		Type:            uint16(tx.Body.Type()),
		Network:         uint8(tx.Network),
		Version:         tx.Version,
		SignerPublicKey: tx.Signer.PublicKey.Hex(),
	}

	return encodeDocument(ctx, header, tx.Body, tx.Info)
}

func encodeDocument(ctx serde.Context, header HeaderJSON, body txn.Body, info *txn.Info) (DocumentJSON, error) {
	m, err := encodeBody(ctx, header, body)
	if err != nil {
		return DocumentJSON{}, xerrors.Errorf("failed to encode %v: %w", body.Type(), err)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return DocumentJSON{}, xerrors.Errorf("failed to marshal %v: %v", body.Type(), err)
	}

	doc := DocumentJSON{
		Transaction: data,
		Meta:        encodeMeta(info),
	}

	return doc, nil
}

func encodeMeta(info *txn.Info) *MetaJSON {
	if info == nil {
		return nil
	}

	return &MetaJSON{
		Height:        info.Height.String(),
		Index:         info.Index,
		ID:            info.ID,
		Hash:          info.Hash,
		AggregateHash: info.AggregateHash,
		AggregateID:   info.AggregateID,
	}
}

func decodeTransaction(ctx serde.Context, doc DocumentJSON) (txn.Transaction, error) {
	header, typ, entity, err := decodeHeader(ctx, doc)
	if err != nil {
		return txn.Transaction{}, err
	}

	tx := txn.Transaction{EntityHeader: entity}

	tx.MaxFee, err = decimal("maxFee", header.MaxFee)
	if err != nil {
		return txn.Transaction{}, err
	}

	deadline, err := decimal("deadline", header.Deadline)
	if err != nil {
		return txn.Transaction{}, err
	}

	tx.Deadline = txn.Deadline(deadline)

	switch {
	case header.Signature != "" && header.SignerPublicKey != "":
		sig, err := ed25519.SignatureFromHex(header.Signature)
		if err != nil {
			return txn.Transaction{}, xerrors.Errorf("invalid signature: %w", err)
		}

		signer, err := account.PublicAccountFromHex(header.SignerPublicKey, entity.Network)
		if err != nil {
			return txn.Transaction{}, xerrors.Errorf("invalid signer: %w", err)
		}

		tx.Signature = &sig
		tx.Signer = &signer
	case header.Signature != "" || header.SignerPublicKey != "":
		return txn.Transaction{}, xerrors.Errorf("signature and signer must be set together: %w",
			catapult.ErrMalformedPayload)
	}

	tx.Info, err = decodeMeta(doc.Meta)
	if err != nil {
		return txn.Transaction{}, err
	}

	tx.Body, err = decodeBody(ctx, typ, doc.Transaction)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to decode %v: %w", typ, err)
	}

	return tx, nil
}

func decodeInner(ctx serde.Context, doc DocumentJSON) (txn.InnerTransaction, error) {
	header, typ, entity, err := decodeHeader(ctx, doc)
	if err != nil {
		return txn.InnerTransaction{}, err
	}

	if typ.IsAggregate() {
		return txn.InnerTransaction{}, xerrors.Errorf("embedded %v: %w", typ, catapult.ErrUnsupportedTransactionType)
	}

	signer, err := account.PublicAccountFromHex(header.SignerPublicKey, entity.Network)
	if err != nil {
		return txn.InnerTransaction{}, xerrors.Errorf("invalid signer: %w", err)
	}

	tx := txn.InnerTransaction{
		EntityHeader: entity,
		Signer:       signer,
	}

	tx.Info, err = decodeMeta(doc.Meta)
	if err != nil {
		return txn.InnerTransaction{}, err
	}

	tx.Body, err = decodeBody(ctx, typ, doc.Transaction)
	if err != nil {
		return txn.InnerTransaction{}, xerrors.Errorf("failed to decode embedded %v: %w", typ, err)
	}

	return tx, nil
}

func decodeHeader(ctx serde.Context, doc DocumentJSON) (HeaderJSON, txn.Type, txn.EntityHeader, error) {
	header := HeaderJSON{}

	if len(doc.Transaction) == 0 {
		return header, 0, txn.EntityHeader{}, xerrors.Errorf("missing transaction: %w", catapult.ErrMalformedPayload)
	}

	err := ctx.Unmarshal(doc.Transaction, &header)
	if err != nil {
		return header, 0, txn.EntityHeader{}, xerrors.Errorf("failed to unmarshal header: %v: %w",
			err, catapult.ErrMalformedPayload)
	}

	typ, err := txn.ParseType(header.Type)
	if err != nil {
		return header, 0, txn.EntityHeader{}, err
	}

	net, err := network.ParseType(header.Network)
	if err != nil {
		return header, 0, txn.EntityHeader{}, xerrors.Errorf("%v: %w", err, catapult.ErrMalformedPayload)
	}

	entity := txn.EntityHeader{
		Network: net,
		Version: header.Version,
	}

	return header, typ, entity, nil
}

func decodeMeta(m *MetaJSON) (*txn.Info, error) {
	if m == nil {
		return nil, nil
	}

	info := &txn.Info{
		Index:         m.Index,
		ID:            m.ID,
		Hash:          m.Hash,
		AggregateHash: m.AggregateHash,
		AggregateID:   m.AggregateID,
	}

	if m.Height != "" {
		height, err := decimal("height", m.Height)
		if err != nil {
			return nil, err
		}

		info.Height = height
	}

	return info, nil
}

// decimal parses the decimal string of a field.
func decimal(field, text string) (numeric.UInt64, error) {
	v, err := numeric.FromString(text)
	if err != nil {
		return 0, xerrors.Errorf("field '%s': %v: %w", field, err, catapult.ErrMalformedPayload)
	}

	return v, nil
}
