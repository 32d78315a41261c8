package txn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

const testKey = "26B64CB10F005E5988A36744CA19E20D835CCC7C105AAA5F3B212DA593180930"

func TestTransaction_New(t *testing.T) {
	body := makeTransfer(t)

	tx, err := New(10, network.MijinTest, body, WithMaxFee(20))
	require.NoError(t, err)
	require.Equal(t, Transfer, tx.GetType())
	require.Equal(t, body, tx.GetBody())
	require.Equal(t, network.MijinTest, tx.GetNetwork())
	require.Equal(t, uint8(1), tx.Version)
	require.Equal(t, Deadline(10), tx.Deadline)
	require.Equal(t, numeric.UInt64(20), tx.MaxFee)
	require.False(t, tx.IsSigned())
	require.Nil(t, tx.Info)
	require.Equal(t, HeaderSize+body.Size(), tx.Size())

	tx, err = New(10, network.MijinTest, AccountLinkBody{}, WithVersion(3))
	require.NoError(t, err)
	require.Equal(t, uint8(3), tx.Version)

	tx, err = New(10, network.MijinTest, AccountLinkBody{})
	require.NoError(t, err)
	require.Equal(t, uint8(2), tx.Version)

	_, err = New(10, network.MijinTest, nil)
	require.EqualError(t, err, "missing body: precondition violation")

	_, err = New(10, network.MijinTest, MosaicSupplyChangeBody{Action: 5})
	require.EqualError(t, err, "invalid MOSAIC_SUPPLY_CHANGE: unknown supply action 5: precondition violation")
}

func TestTransaction_Validate(t *testing.T) {
	tx, err := New(10, network.MijinTest, makeTransfer(t))
	require.NoError(t, err)
	require.NoError(t, tx.Validate())

	tx.Signature = &ed25519.Signature{}
	err = tx.Validate()
	require.EqualError(t, err, "signature and signer must be set together: precondition violation")

	tx.Signature = nil
	tx.Deadline = 0
	err = tx.Validate()
	require.EqualError(t, err, "missing deadline: precondition violation")

	tx.Deadline = 10
	tx.Network = 0x12
	err = tx.Validate()
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	tx.Network = network.MijinTest
	tx.Body = nil
	err = tx.Validate()
	require.EqualError(t, err, "missing body: precondition violation")
	require.Equal(t, Type(0), tx.GetType())
	require.Equal(t, HeaderSize, tx.Size())

	tx.Body = AddressAliasBody{Action: 2}
	err = tx.Validate()
	require.EqualError(t, err, "invalid ADDRESS_ALIAS: unknown alias action 2: precondition violation")
}

func TestTransaction_ToAggregate(t *testing.T) {
	signer := makeSigner(t)

	tx, err := New(10, network.MijinTest, makeTransfer(t), WithMaxFee(1))
	require.NoError(t, err)

	inner, err := tx.ToAggregate(signer)
	require.NoError(t, err)
	require.Equal(t, signer, inner.Signer)
	require.Equal(t, tx.Body, inner.Body)
	require.Equal(t, tx.EntityHeader, inner.EntityHeader)
	require.Equal(t, EmbeddedHeaderSize+tx.Body.Size(), inner.Size())

	agg, err := NewAggregateComplete([]InnerTransaction{inner}, nil)
	require.NoError(t, err)

	tx.Body = agg
	_, err = tx.ToAggregate(signer)
	require.EqualError(t, err, "an aggregate cannot be embedded: precondition violation")

	tx.Body = nil
	_, err = tx.ToAggregate(signer)
	require.EqualError(t, err, "missing body: precondition violation")
}

func TestInnerTransaction_New(t *testing.T) {
	signer := makeSigner(t)

	inner, err := NewInner(signer, makeTransfer(t))
	require.NoError(t, err)
	require.Equal(t, Transfer, inner.GetType())
	require.Equal(t, network.MijinTest, inner.GetNetwork())
	require.NotNil(t, inner.GetBody())

	_, err = NewInner(signer, nil)
	require.EqualError(t, err, "missing body: precondition violation")

	agg, err := NewAggregateBonded([]InnerTransaction{inner}, nil)
	require.NoError(t, err)

	_, err = NewInner(signer, agg)
	require.EqualError(t, err, "an aggregate cannot be embedded: precondition violation")

	_, err = NewInner(signer, AccountLinkBody{Action: 4})
	require.EqualError(t, err, "invalid LINK_ACCOUNT: unknown link action 4: precondition violation")

	require.Equal(t, Type(0), InnerTransaction{}.GetType())
	require.Equal(t, EmbeddedHeaderSize, InnerTransaction{}.Size())
}

func TestInnerTransaction_Standalone(t *testing.T) {
	inner, err := NewInner(makeSigner(t), makeTransfer(t))
	require.NoError(t, err)

	inner.Info = &Info{Height: 12}

	tx := inner.Standalone()
	require.True(t, tx.IsSigned())
	require.True(t, tx.Signature.IsZero())
	require.Equal(t, inner.Signer, *tx.Signer)
	require.Equal(t, inner.Info, tx.Info)
	require.True(t, tx.Deadline.IsZero())
	require.True(t, tx.MaxFee.IsZero())

	err = tx.Validate()
	require.EqualError(t, err, "missing deadline: precondition violation")
}

func TestTransaction_Serialize(t *testing.T) {
	tx, err := New(10, network.MijinTest, makeTransfer(t))
	require.NoError(t, err)

	_, err = tx.Serialize(makeContext())
	require.EqualError(t, err, "failed to encode: no engine for format 'FAKE'")

	inner, err := tx.ToAggregate(makeSigner(t))
	require.NoError(t, err)

	_, err = inner.Serialize(makeContext())
	require.EqualError(t, err, "failed to encode: no engine for format 'FAKE'")
}

func TestTransactionFactory_Deserialize(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Deserialize(makeContext(), nil)
	require.EqualError(t, err, "failed to decode: no engine for format 'FAKE'")

	RegisterTransactionFormat("WRONG", fakeFormat{msg: InnerTransaction{}})
	RegisterInnerTransactionFormat("WRONG", fakeFormat{msg: Transaction{}})

	ctx := serde.NewContext(fakeEngine{format: "WRONG"})

	_, err = factory.Deserialize(ctx, nil)
	require.EqualError(t, err, "invalid transaction of type 'txn.InnerTransaction'")

	_, err = NewInnerFactory().Deserialize(ctx, nil)
	require.EqualError(t, err, "invalid embedded transaction of type 'txn.Transaction'")

	_, err = NewInnerFactory().Deserialize(makeContext(), nil)
	require.EqualError(t, err, "failed to decode: no engine for format 'FAKE'")
}

func TestDeadline(t *testing.T) {
	at := Epoch.Add(90 * time.Second)

	d := DeadlineAt(at)
	require.Equal(t, Deadline(90000), d)
	require.Equal(t, at, d.Time())
	require.Equal(t, "90000", d.String())
	require.False(t, d.IsZero())

	require.Equal(t, Deadline(0), DeadlineAt(Epoch.Add(-time.Hour)))

	d = NewDeadline(DefaultDeadline)
	require.True(t, d.Time().After(time.Now().Add(time.Hour)))
}

func TestSignedTransaction_PayloadBytes(t *testing.T) {
	signed := SignedTransaction{Payload: "0A0B"}

	data, err := signed.PayloadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xA, 0xB}, data)

	signed.Payload = "zz"
	_, err = signed.PayloadBytes()
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestCosignatureSignedTransaction_Cosignature(t *testing.T) {
	signer := makeSigner(t)
	sig := ed25519.Signature{1, 2, 3}

	cosigned := CosignatureSignedTransaction{
		ParentHash:      Hash{1}.Hex(),
		Signature:       sig.Hex(),
		SignerPublicKey: signer.PublicKey.Hex(),
	}

	cosig, err := cosigned.Cosignature()
	require.NoError(t, err)
	require.Equal(t, Cosignature{Signer: signer.PublicKey, Signature: sig}, cosig)

	cosigned.SignerPublicKey = "abc"
	_, err = cosigned.Cosignature()
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	cosigned.SignerPublicKey = signer.PublicKey.Hex()
	cosigned.Signature = "abc"
	_, err = cosigned.Cosignature()
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))
}

func TestHash_Parse(t *testing.T) {
	h := Hash{0xAB, 0xCD}

	other, err := ParseHash(h.Hex())
	require.NoError(t, err)
	require.Equal(t, h, other)
	require.Equal(t, h.Hex(), h.String())
	require.Equal(t, "ABCD", h.Hex()[:4])

	_, err = ParseHash("ABCD")
	require.EqualError(t, err, "hash must be 64 hex characters, got 4: invalid identifier")

	_, err = ParseHash(h.Hex()[:62] + "ZZ")
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))
}

// -----------------------------------------------------------------------------
// Utility functions

func makeSigner(t *testing.T) account.PublicAccount {
	acc, err := account.NewAccount(testKey, network.MijinTest)
	require.NoError(t, err)

	return acc.PublicAccount(crypto.SHA3)
}

func makeRecipient(t *testing.T) account.Address {
	return makeSigner(t).Address(crypto.SHA3)
}

func makeTransfer(t *testing.T) TransferBody {
	mosaics := []mosaic.Mosaic{
		mosaic.NewMosaic(2, 20),
		mosaic.NewMosaic(1, 10),
	}

	body, err := NewTransfer(makeRecipient(t), mosaics, NewPlainMessage("hello"))
	require.NoError(t, err)

	return body
}

type fakeEngine struct {
	serde.ContextEngine
	format serde.Format
}

func (e fakeEngine) GetFormat() serde.Format {
	return e.format
}

func makeContext() serde.Context {
	return serde.NewContext(fakeEngine{format: "FAKE"})
}

type fakeFormat struct {
	serde.FormatEngine
	msg serde.Message
}

func (f fakeFormat) Decode(serde.Context, []byte) (serde.Message, error) {
	return f.msg, nil
}
