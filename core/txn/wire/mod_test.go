package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/internal/testing/fake"
	"golang.org/x/xerrors"
)

func TestEncode_Header(t *testing.T) {
	tx := fake.NewTransaction(fake.NewTransfer())

	payload, err := Encode(tx)
	require.NoError(t, err)
	require.Len(t, payload, tx.Size())
	require.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(payload))
	require.Equal(t, make([]byte, 4), payload[4:SignatureOffset])
	require.Equal(t, make([]byte, 96), payload[SignatureOffset:EntityOffset])
	require.Equal(t, uint8(1), payload[EntityOffset+4])
	require.Equal(t, uint8(network.MijinTest), payload[EntityOffset+5])
	require.Equal(t, uint16(txn.Transfer), binary.LittleEndian.Uint16(payload[TypeOffset:]))
	require.Equal(t, uint64(fake.MaxFee), binary.LittleEndian.Uint64(payload[EntityOffset+8:]))
	require.Equal(t, uint64(fake.Deadline), binary.LittleEndian.Uint64(payload[EntityOffset+16:]))

	_, err = Encode(txn.Transaction{})
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	tx.Signature = &ed25519.Signature{}
	_, err = Encode(tx)
	require.EqualError(t, err, "signature and signer must be set together: precondition violation")
}

func TestEncode_Signed(t *testing.T) {
	tx := fake.NewTransaction(fake.NewTransfer())

	signer := fake.NewSigner()
	tx.Signer = &signer
	tx.Signature = &ed25519.Signature{0xAB}

	payload, err := Encode(tx)
	require.NoError(t, err)
	require.Equal(t, tx.Signature[:], payload[SignatureOffset:SignerOffset])
	require.Equal(t, signer.PublicKey[:], payload[SignerOffset:EntityOffset])

	decoded, err := Decode(payload)
	require.NoError(t, err)
	require.Equal(t, tx, decoded)
}

func TestEncode_Overflow(t *testing.T) {
	body := fake.NewTransfer()
	body.Mosaics = make([]mosaic.Mosaic, 256)

	_, err := Encode(txn.Transaction{Body: body})
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	proof := txn.SecretProofBody{Proof: make([]byte, 0x10000)}
	_, err = Encode(txn.Transaction{Body: proof})
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, body := range fake.NewBodies() {
		tx := fake.NewTransaction(body)

		payload, err := Encode(tx)
		require.NoError(t, err, body.Type().String())
		require.Len(t, payload, tx.Size(), body.Type().String())

		decoded, err := Decode(payload, WithSignSchema(crypto.SHA3))
		require.NoError(t, err, body.Type().String())
		require.Equal(t, tx, decoded, body.Type().String())

		again, err := Encode(decoded)
		require.NoError(t, err)
		require.Equal(t, payload, again)
	}
}

func TestCodec_EmbeddedRoundTrip(t *testing.T) {
	for _, body := range fake.NewBodies() {
		if body.Type().IsAggregate() {
			continue
		}

		inner := fake.NewInner(body)

		payload, err := EncodeEmbedded(inner)
		require.NoError(t, err, body.Type().String())
		require.Len(t, payload, inner.Size(), body.Type().String())
		require.Equal(t, inner.Signer.PublicKey[:], payload[4:36])

		decoded, err := DecodeEmbedded(payload)
		require.NoError(t, err, body.Type().String())
		require.Equal(t, inner, decoded, body.Type().String())
	}

	_, err := EncodeEmbedded(txn.InnerTransaction{Body: fake.NewAggregate(txn.AggregateComplete)})
	require.EqualError(t, err, "an aggregate cannot be embedded: precondition violation")

	_, err = EncodeEmbedded(txn.InnerTransaction{})
	require.EqualError(t, err, "missing body: precondition violation")
}

func TestEncode_MultisigSize(t *testing.T) {
	body := txn.MultisigAccountModificationBody{
		MinApprovalDelta: 1,
		MinRemovalDelta:  1,
		Modifications: []txn.CosignatoryModification{
			{Action: txn.Add, Cosignatory: fake.NewSigner().PublicKey},
		},
	}

	payload, err := Encode(fake.NewTransaction(body))
	require.NoError(t, err)
	require.Len(t, payload, 164)
}

func TestEncode_AggregateSize(t *testing.T) {
	body := fake.NewAggregate(txn.AggregateBonded)
	inner := body.Transactions[0]

	payload, err := Encode(fake.NewTransaction(body))
	require.NoError(t, err)
	require.Len(t, payload, txn.HeaderSize+4+inner.Size())
	require.Equal(t, uint32(inner.Size()), binary.LittleEndian.Uint32(payload[BodyOffset:]))

	body.Cosignatures = []txn.Cosignature{{Signer: fake.NewSigner().PublicKey}}

	payload, err = Encode(fake.NewTransaction(body))
	require.NoError(t, err)
	require.Len(t, payload, txn.HeaderSize+4+inner.Size()+txn.CosignatureSize)
}

func TestDecode_Malformed(t *testing.T) {
	payload := makePayload(t, fake.NewTransfer())

	_, err := Decode(payload[:100])
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	_, err = Decode(payload[:len(payload)-1])
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	trailing := append(append([]byte{}, payload...), 0)
	binary.LittleEndian.PutUint32(trailing, uint32(len(trailing)))
	_, err = Decode(trailing)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
	require.Contains(t, err.Error(), "1 trailing bytes")

	truncated := append([]byte{}, payload[:len(payload)-1]...)
	binary.LittleEndian.PutUint32(truncated, uint32(len(truncated)))
	_, err = Decode(truncated)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	reserved := append([]byte{}, payload...)
	reserved[4] = 1
	_, err = Decode(reserved)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	badNetwork := append([]byte{}, payload...)
	badNetwork[EntityOffset+5] = 0x12
	_, err = Decode(badNetwork)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	noSigner := append([]byte{}, payload...)
	noSigner[SignatureOffset] = 1
	_, err = Decode(noSigner)
	require.EqualError(t, err, "signature without signer: malformed payload")
}

func TestDecode_SignerWithoutSignature(t *testing.T) {
	payload := makePayload(t, fake.NewTransfer())

	signer := fake.NewSigner()
	copy(payload[SignerOffset:], signer.PublicKey[:])

	tx, err := Decode(payload)
	require.NoError(t, err)
	require.Equal(t, &signer, tx.Signer)
	require.True(t, tx.Signature.IsZero())
}

func TestDecode_UnknownType(t *testing.T) {
	payload := makePayload(t, fake.NewTransfer())
	binary.LittleEndian.PutUint16(payload[TypeOffset:], 0x4199)

	_, err := Decode(payload)
	require.True(t, xerrors.Is(err, catapult.ErrUnsupportedTransactionType))
}

func TestDecode_EmbeddedAggregate(t *testing.T) {
	payload := makePayload(t, fake.NewAggregate(txn.AggregateComplete))

	// Type of the first embedded transaction.
	offset := BodyOffset + 4 + 4 + ed25519.PublicKeySize + 4 + 2
	binary.LittleEndian.PutUint16(payload[offset:], uint16(txn.AggregateBonded))

	_, err := Decode(payload)
	require.True(t, xerrors.Is(err, catapult.ErrUnsupportedTransactionType))
}

func TestDecode_AggregateMalformed(t *testing.T) {
	payload := makePayload(t, fake.NewAggregate(txn.AggregateComplete))

	oversized := append([]byte{}, payload...)
	binary.LittleEndian.PutUint32(oversized[BodyOffset+4:], 0xFFFF)
	_, err := Decode(oversized)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	undersized := append([]byte{}, payload...)
	binary.LittleEndian.PutUint32(undersized[BodyOffset+4:], 10)
	_, err = Decode(undersized)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))

	partial := append(append([]byte{}, payload...), make([]byte, 10)...)
	binary.LittleEndian.PutUint32(partial, uint32(len(partial)))
	_, err = Decode(partial)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
	require.Contains(t, err.Error(), "do not make whole cosignatures")

	short := append([]byte{}, payload...)
	binary.LittleEndian.PutUint32(short[BodyOffset:], 2)
	_, err = Decode(short)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestDecode_InvalidEnums(t *testing.T) {
	root, err := txn.NewRootNamespace("newnamespace", 10)
	require.NoError(t, err)

	payload := makePayload(t, root)
	payload[BodyOffset] = 2

	_, err = Decode(payload)
	require.EqualError(t, err, "failed to decode REGISTER_NAMESPACE: unknown namespace type 2: malformed payload")

	def := fake.NewBodies()[5]
	require.Equal(t, txn.MosaicDefinition, def.Type())

	payload = makePayload(t, def)
	payload[BodyOffset+12] = 0x08

	_, err = Decode(payload)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
}

func TestDecode_SignSchema(t *testing.T) {
	body := fake.NewTransfer()

	payload := makePayload(t, body)
	_, err := Decode(payload, WithSignSchema(crypto.SHA3))
	require.NoError(t, err)

	_, err = Decode(payload, WithSignSchema(crypto.KeccakReversedKey))
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	body.Recipient[account.AddressSize-1] ^= 0xFF
	payload = makePayload(t, body)

	_, err = Decode(payload)
	require.NoError(t, err)

	_, err = Decode(payload, WithSignSchema(crypto.SHA3))
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))
}

func TestDecode_EmptyMessage(t *testing.T) {
	body := fake.NewTransfer()
	body.Message = txn.Message{}

	payload := makePayload(t, body)
	require.Equal(t, uint8(1), payload[BodyOffset+account.AddressSize+1])

	// A message without the type byte is accepted.
	short := append([]byte{}, payload[:len(payload)-1]...)
	binary.LittleEndian.PutUint32(short, uint32(len(short)))
	short[BodyOffset+account.AddressSize+1] = 0

	tx, err := Decode(short)
	require.NoError(t, err)
	require.Equal(t, txn.Message{}, tx.Body.(txn.TransferBody).Message)
}

func TestDecode_Short(t *testing.T) {
	_, err := Decode(nil)
	require.EqualError(t, err, "payload of 0 bytes is shorter than the header: malformed payload")

	_, err = DecodeEmbedded(make([]byte, 43))
	require.EqualError(t, err, "payload of 43 bytes is shorter than the embedded header: malformed payload")

	data := make([]byte, txn.HeaderSize)
	_, err = Decode(data)
	require.EqualError(t, err, "size field 0 does not match the 128 bytes: malformed payload")
}

func TestDecode_DuplicateCosignature(t *testing.T) {
	body := fake.NewAggregate(txn.AggregateBonded)
	body.Cosignatures = []txn.Cosignature{{Signer: fake.NewSigner().PublicKey}}

	payload := makePayload(t, body)

	_, err := Decode(payload)
	require.NoError(t, err)

	twice := append(append([]byte{}, payload...), payload[len(payload)-txn.CosignatureSize:]...)
	binary.LittleEndian.PutUint32(twice, uint32(len(twice)))

	_, err = Decode(twice)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
	require.Contains(t, err.Error(), "duplicate cosignature of "+fake.NewSigner().PublicKey.Hex())
}

func TestCodec_MessageNotUTF8(t *testing.T) {
	body, err := txn.NewTransfer(fake.NewRecipient(), nil, txn.Message{Type: txn.EncryptedMessage, Payload: "ab"})
	require.NoError(t, err)

	payload := makePayload(t, body)
	copy(payload[len(payload)-2:], []byte{0xFF, 0xFE})

	_, err = Decode(payload)
	require.True(t, xerrors.Is(err, catapult.ErrMalformedPayload))
	require.Contains(t, err.Error(), "message payload is not valid UTF-8")

	tx := fake.NewTransaction(body)
	body.Message.Payload = "\xff\xfe"
	tx.Body = body

	_, err = Encode(tx)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}

// -----------------------------------------------------------------------------
// Utility functions

func makePayload(t *testing.T, body txn.Body) []byte {
	payload, err := Encode(fake.NewTransaction(body))
	require.NoError(t, err)

	return payload
}
