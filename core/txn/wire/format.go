package wire

import (
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

func init() {
	txn.RegisterTransactionFormat(serde.FormatBinary, txFormat{})
	txn.RegisterInnerTransactionFormat(serde.FormatBinary, innerFormat{})
}

// txFormat is the binary format engine of standalone transactions.
//
// - implements serde.FormatEngine
type txFormat struct {
	opts []Option
}

// Encode implements serde.FormatEngine. It returns the payload of the
// transaction if appropriate, otherwise it returns an error.
func (f txFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(txn.Transaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	payload, err := Encode(tx)
	if err != nil {
		return nil, err
	}

	data, err := ctx.Marshal(payload)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It returns the transaction of the
// payload if appropriate, otherwise it returns an error.
func (f txFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	var payload []byte

	err := ctx.Unmarshal(data, &payload)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	return Decode(payload, f.opts...)
}

// innerFormat is the binary format engine of embedded transactions.
//
// - implements serde.FormatEngine
type innerFormat struct {
	opts []Option
}

// Encode implements serde.FormatEngine. It returns the payload of the
// embedded transaction if appropriate, otherwise it returns an error.
func (f innerFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	tx, ok := msg.(txn.InnerTransaction)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	payload, err := EncodeEmbedded(tx)
	if err != nil {
		return nil, err
	}

	data, err := ctx.Marshal(payload)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It returns the embedded transaction of
// the payload if appropriate, otherwise it returns an error.
func (f innerFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	var payload []byte

	err := ctx.Unmarshal(data, &payload)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	return DecodeEmbedded(payload, f.opts...)
}
