package txn

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"golang.org/x/xerrors"
)

func TestType_Parse(t *testing.T) {
	for _, typ := range Types() {
		other, err := ParseType(uint16(typ))
		require.NoError(t, err)
		require.Equal(t, typ, other)
		require.True(t, typ.Known())
		require.NotContains(t, typ.String(), "UNKNOWN")
	}

	require.Len(t, Types(), 21)
	require.Equal(t, "TRANSFER", Transfer.String())
	require.Equal(t, uint8(2), LinkAccount.Version())
	require.True(t, AggregateBonded.IsAggregate())
	require.False(t, Transfer.IsAggregate())

	_, err := ParseType(0x4199)
	require.EqualError(t, err, "type code 0x4199: unsupported transaction type")
	require.False(t, Type(0x4199).Known())
}

func TestTransferBody_New(t *testing.T) {
	body := makeTransfer(t)
	require.Equal(t, mosaic.ID(1), body.Mosaics[0].ID)
	require.Equal(t, mosaic.ID(2), body.Mosaics[1].ID)
	require.Equal(t, 25+1+1+4+32+6, body.Size())

	body.Mosaics[0], body.Mosaics[1] = body.Mosaics[1], body.Mosaics[0]
	require.EqualError(t, body.Validate(), "mosaics must be sorted by id: precondition violation")

	_, err := NewTransfer(account.Address{}, make([]mosaic.Mosaic, 256), Message{})
	require.EqualError(t, err, "too many mosaics: 256: precondition violation")

	_, err = NewTransfer(account.Address{}, nil, NewPlainMessage(string(make([]byte, 255))))
	require.EqualError(t, err, "message is 256 bytes, max is 255: precondition violation")

	_, err = NewTransfer(account.Address{}, nil, Message{Type: 7})
	require.EqualError(t, err, "unknown message type 0x7: precondition violation")

	_, err = NewTransfer(account.Address{}, nil, Message{Type: EncryptedMessage, Payload: "\xff\xfe\x00A"})
	require.EqualError(t, err, "message payload is not valid UTF-8: precondition violation")
}

func TestNamespaceBodies(t *testing.T) {
	root, err := NewRootNamespace("newnamespace", 100)
	require.NoError(t, err)
	require.Equal(t, RegisterNamespace, root.Type())
	require.Equal(t, 18+12, root.Size())

	id, err := namespace.IDFromName("newnamespace")
	require.NoError(t, err)
	require.Equal(t, id, root.ID)

	sub, err := NewSubNamespace("sub", "newnamespace")
	require.NoError(t, err)
	require.Equal(t, root.ID, sub.Parent)
	require.Equal(t, RegisterNamespace, sub.Type())
	require.NoError(t, sub.Validate())

	_, err = NewRootNamespace("New", 100)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	_, err = NewSubNamespace("sub", "Bad")
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	alias := AddressAliasBody{Action: Link}
	require.NoError(t, alias.Validate())
	require.Equal(t, 34, alias.Size())

	mosaicAlias := MosaicAliasBody{Action: 3}
	require.EqualError(t, mosaicAlias.Validate(), "unknown alias action 3: precondition violation")
	require.Equal(t, 17, mosaicAlias.Size())
}

func TestMosaicBodies(t *testing.T) {
	owner := makeSigner(t).PublicKey
	nonce := mosaic.NonceFromUint32(5)

	def, err := NewMosaicDefinition(nonce, owner, mosaic.Flags{Transferable: true}, 6, 0)
	require.NoError(t, err)
	require.Equal(t, mosaic.GenerateID(nonce, owner), def.MosaicID)
	require.Equal(t, 22, def.Size())

	_, err = NewMosaicDefinition(nonce, owner, mosaic.Flags{}, 7, 0)
	require.EqualError(t, err, "divisibility 7 is above 6: precondition violation")

	supply := MosaicSupplyChangeBody{Action: SupplyDecrease, Delta: 5}
	require.NoError(t, supply.Validate())
	require.Equal(t, 17, supply.Size())
}

func TestMultisigBody_Validate(t *testing.T) {
	key := makeSigner(t).PublicKey

	body := MultisigAccountModificationBody{
		MinApprovalDelta: 1,
		MinRemovalDelta:  -1,
		Modifications:    []CosignatoryModification{{Action: Add, Cosignatory: key}},
	}
	require.NoError(t, body.Validate())
	require.Equal(t, 36, body.Size())

	body.Modifications = append(body.Modifications, CosignatoryModification{Action: Remove, Cosignatory: key})
	require.True(t, xerrors.Is(body.Validate(), catapult.ErrPreconditionViolation))

	body.Modifications = []CosignatoryModification{{Action: 2}}
	require.EqualError(t, body.Validate(), "unknown modification action 2: precondition violation")
}

func TestAggregateBody(t *testing.T) {
	inner, err := NewInner(makeSigner(t), makeTransfer(t))
	require.NoError(t, err)

	body, err := NewAggregateComplete([]InnerTransaction{inner, inner}, nil)
	require.NoError(t, err)
	require.Equal(t, AggregateComplete, body.Type())
	require.Equal(t, 2*inner.Size(), body.PayloadSize())
	require.Equal(t, 4+2*inner.Size(), body.Size())

	key := makeSigner(t).PublicKey
	require.False(t, body.HasCosignatureOf(key))

	next, err := body.WithCosignatures(Cosignature{Signer: key})
	require.NoError(t, err)
	require.True(t, next.HasCosignatureOf(key))
	require.False(t, body.HasCosignatureOf(key))
	require.Equal(t, body.Size()+CosignatureSize, next.Size())

	_, err = next.WithCosignatures(Cosignature{Signer: key})
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	_, err = newAggregate(Transfer, nil, nil)
	require.EqualError(t, err, "TRANSFER is not an aggregate: precondition violation")

	nested := InnerTransaction{Body: body}
	_, err = NewAggregateBonded([]InnerTransaction{nested}, nil)
	require.EqualError(t, err, "transaction #0 is an aggregate: precondition violation")

	_, err = NewAggregateBonded([]InnerTransaction{{}}, nil)
	require.EqualError(t, err, "transaction #0 has no body: precondition violation")

	invalid := InnerTransaction{Body: AccountLinkBody{Action: 3}}
	_, err = NewAggregateBonded([]InnerTransaction{invalid}, nil)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}

func TestLockFundsBody_New(t *testing.T) {
	h := Hash{1, 2, 3}
	m := mosaic.NewMosaic(1, 10)

	signed := SignedTransaction{Hash: h.Hex(), Type: AggregateBonded}

	body, err := NewLockFunds(m, 480, signed)
	require.NoError(t, err)
	require.Equal(t, h, body.Hash)
	require.Equal(t, Lock, body.Type())
	require.Equal(t, 56, body.Size())

	signed.Type = AggregateComplete
	_, err = NewLockFunds(m, 480, signed)
	require.EqualError(t, err,
		"signed transaction must be AGGREGATE_BONDED, got AGGREGATE_COMPLETE: precondition violation")

	signed = SignedTransaction{Hash: "zz", Type: AggregateBonded}
	_, err = NewLockFunds(m, 480, signed)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))
}

func TestSecretBodies(t *testing.T) {
	recipient := makeRecipient(t)
	proof := []byte("secret")

	for _, alg := range []crypto.HashAlgorithm{crypto.OpSha3_256, crypto.OpKeccak256, crypto.OpHash160, crypto.OpHash256} {
		body, err := NewSecretProof(alg, recipient, proof)
		require.NoError(t, err, alg.String())
		require.Equal(t, alg.Secret(proof), body.Secret)
		require.Equal(t, 60+len(proof), body.Size())
	}

	body, err := NewSecretProof(crypto.OpSha3_256, recipient, proof)
	require.NoError(t, err)

	body.Proof = []byte("other")
	require.EqualError(t, body.Validate(), "proof does not match the secret: precondition violation")

	_, err = NewSecretProof(crypto.HashAlgorithm(9), recipient, proof)
	require.True(t, xerrors.Is(err, catapult.ErrPreconditionViolation))

	lock := SecretLockBody{HashAlgorithm: crypto.OpHash160, Secret: [32]byte{31: 1}}
	require.True(t, xerrors.Is(lock.Validate(), catapult.ErrPreconditionViolation))
	require.Equal(t, 82, lock.Size())
}

func TestRestrictionBodies(t *testing.T) {
	addr := AccountAddressRestrictionBody{
		RestrictionType: BlockOutgoingAddress,
		Modifications:   []AddressModification{{Action: Add}},
	}
	require.NoError(t, addr.Validate())
	require.Equal(t, 2+26, addr.Size())

	addr.RestrictionType = AllowMosaic
	require.EqualError(t, addr.Validate(), "restriction type 0x2 is not about addresses: precondition violation")

	mos := AccountMosaicRestrictionBody{RestrictionType: AllowMosaic}
	require.NoError(t, mos.Validate())
	require.Equal(t, 2, mos.Size())

	mos.RestrictionType = AllowIncomingTransaction
	require.True(t, xerrors.Is(mos.Validate(), catapult.ErrPreconditionViolation))

	op := AccountOperationRestrictionBody{
		RestrictionType: BlockIncomingTransaction,
		Modifications:   []OperationModification{{Action: Remove, Value: Lock}},
	}
	require.NoError(t, op.Validate())
	require.Equal(t, 2+3, op.Size())

	op.Modifications[0].Value = 0x1234
	require.True(t, xerrors.Is(op.Validate(), catapult.ErrPreconditionViolation))

	global := MosaicGlobalRestrictionBody{NewType: MosaicRestrictionGE}
	require.NoError(t, global.Validate())
	require.Equal(t, 42, global.Size())

	global.PreviousType = 7
	require.EqualError(t, global.Validate(), "unknown mosaic restriction type: precondition violation")

	require.Equal(t, 57, MosaicAddressRestrictionBody{}.Size())
	require.NoError(t, MosaicAddressRestrictionBody{}.Validate())
}

func TestMetadataBodies(t *testing.T) {
	m := Metadata{TargetPublicKey: ed25519.PublicKey{1}, Value: []byte("abc")}

	require.Equal(t, 47, AccountMetadataBody{Metadata: m}.Size())
	require.Equal(t, 55, MosaicMetadataBody{Metadata: m}.Size())
	require.Equal(t, 55, NamespaceMetadataBody{Metadata: m}.Size())
	require.NoError(t, NamespaceMetadataBody{Metadata: m}.Validate())

	m.Value = make([]byte, MaxMetadataSize+1)
	require.True(t, xerrors.Is(MosaicMetadataBody{Metadata: m}.Validate(), catapult.ErrPreconditionViolation))
}

func TestAccountLinkBody(t *testing.T) {
	body := AccountLinkBody{Action: LinkAccountUnlink}
	require.NoError(t, body.Validate())
	require.Equal(t, 33, body.Size())
	require.Equal(t, LinkAccount, body.Type())
}
