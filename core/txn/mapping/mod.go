// Package mapping implements the entry points to convert a transaction from
// and to its REST document or its binary payload.
package mapping

import (
	"encoding/hex"
	"strings"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/core/txn/wire"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/serde/binary"
	"go.dedis.ch/catapult/serde/json"
	"golang.org/x/xerrors"
)

// CreateFromDTO returns the transaction of the REST JSON document.
func CreateFromDTO(data []byte) (txn.Transaction, error) {
	tx, err := txn.NewFactory().TransactionOf(json.NewContext(), data)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("failed to create from document: %w", err)
	}

	catapult.Logger.Trace().
		Stringer("type", tx.GetType()).
		Msg("transaction created from document")

	return tx, nil
}

// CreateFromPayload returns the transaction of the hexadecimal payload. The
// addresses of the payload are verified for the schema. An embedded payload is
// returned in its standalone form, for display only, as its deadline and fee
// are zero.
func CreateFromPayload(payload string, embedded bool, schema crypto.SignSchema) (txn.Transaction, error) {
	data, err := hex.DecodeString(payload)
	if err != nil {
		return txn.Transaction{}, xerrors.Errorf("malformed payload hex: %v: %w", err, catapult.ErrMalformedPayload)
	}

	var tx txn.Transaction

	if embedded {
		inner, err := wire.DecodeEmbedded(data, wire.WithSignSchema(schema))
		if err != nil {
			return txn.Transaction{}, xerrors.Errorf("failed to create from embedded payload: %w", err)
		}

		tx = inner.Standalone()
	} else {
		tx, err = wire.Decode(data, wire.WithSignSchema(schema))
		if err != nil {
			return txn.Transaction{}, xerrors.Errorf("failed to create from payload: %w", err)
		}
	}

	catapult.Logger.Trace().
		Stringer("type", tx.GetType()).
		Bool("embedded", embedded).
		Msg("transaction created from payload")

	return tx, nil
}

// ToJSON returns the REST JSON document of the transaction.
func ToJSON(entity txn.Entity) ([]byte, error) {
	data, err := entity.Serialize(json.NewContext())
	if err != nil {
		return nil, xerrors.Errorf("failed to create document: %w", err)
	}

	return data, nil
}

// ToPayload returns the uppercase hexadecimal binary payload of the
// transaction.
func ToPayload(entity txn.Entity) (string, error) {
	data, err := entity.Serialize(binary.NewContext())
	if err != nil {
		return "", xerrors.Errorf("failed to create payload: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(data)), nil
}
