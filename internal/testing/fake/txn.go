package fake

import (
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
)

const (
	// PrivateKey is the private key of the default signer.
	PrivateKey = "26B64CB10F005E5988A36744CA19E20D835CCC7C105AAA5F3B212DA593180930"

	// CosignerKey is the private key of the default cosigner.
	CosignerKey = "D54AC2D3D6B0A4D3E2A974F5E7B4C8F1A9C3B6E1F2D4A7B8C9E0F1A2B3C4D5E6"

	// Deadline is the deadline of the fake transactions.
	Deadline = txn.Deadline(3600000)

	// MaxFee is the maximum fee of the fake transactions.
	MaxFee = numeric.UInt64(100)
)

// GenerationHash is the generation hash used to sign the fake transactions.
var GenerationHash = network.GenerationHash{
	0x57, 0xF7, 0xDA, 0x20, 0x50, 0x08, 0x02, 0x6C, 0x77, 0x6C, 0xB6, 0xAE, 0xD8, 0x43, 0x39, 0x3F,
	0x04, 0xCD, 0x45, 0x8E, 0x0A, 0xA2, 0xD9, 0xF1, 0xD5, 0xF3, 0x1A, 0x40, 0x20, 0x72, 0xB2, 0xD6,
}

// NewAccount returns the account of the private key on the test network. It
// panics if the key is malformed.
func NewAccount(key string) account.Account {
	acc, err := account.NewAccount(key, network.MijinTest)
	must(err)

	return acc
}

// NewSigner returns the public account of the default signer.
func NewSigner() account.PublicAccount {
	return NewAccount(PrivateKey).PublicAccount(crypto.SHA3)
}

// NewRecipient returns the address of the default cosigner.
func NewRecipient() account.Address {
	return NewAccount(CosignerKey).Address(crypto.SHA3)
}

// NewTransaction returns an unsigned transaction with the body.
func NewTransaction(body txn.Body) txn.Transaction {
	tx, err := txn.New(Deadline, network.MijinTest, body, txn.WithMaxFee(MaxFee))
	must(err)

	return tx
}

// NewInner returns the body embedded with the default signer.
func NewInner(body txn.Body) txn.InnerTransaction {
	inner, err := txn.NewInner(NewSigner(), body)
	must(err)

	return inner
}

// NewTransfer returns the body of a transfer to the default recipient.
func NewTransfer() txn.TransferBody {
	mosaics := []mosaic.Mosaic{
		mosaic.NewMosaic(0x85BBEA6CC462B244, 10),
		mosaic.NewMosaic(0x2A09B7F9097934C2, 20),
	}

	body, err := txn.NewTransfer(NewRecipient(), mosaics, txn.NewPlainMessage("test-message"))
	must(err)

	return body
}

// NewAggregate returns the body of an aggregate of the kind with a transfer of
// the default signer and no cosignature.
func NewAggregate(kind txn.Type) txn.AggregateBody {
	inners := []txn.InnerTransaction{NewInner(NewTransfer())}

	var body txn.AggregateBody
	var err error

	if kind == txn.AggregateBonded {
		body, err = txn.NewAggregateBonded(inners, nil)
	} else {
		body, err = txn.NewAggregateComplete(inners, nil)
	}

	must(err)

	return body
}

// NewBodies returns a body of every kind of transaction.
func NewBodies() []txn.Body {
	signer := NewSigner()
	recipient := NewRecipient()
	cosigner := NewAccount(CosignerKey).PublicKey(crypto.SHA3)

	nsID, err := namespace.IDFromName("newnamespace")
	must(err)

	root, err := txn.NewRootNamespace("newnamespace", 1000)
	must(err)

	sub, err := txn.NewSubNamespace("subnamespace", "newnamespace")
	must(err)

	flags := mosaic.Flags{SupplyMutable: true, Transferable: true}
	definition, err := txn.NewMosaicDefinition(mosaic.NonceFromUint32(7), signer.PublicKey, flags, 3, 1000)
	must(err)

	mosaicID := definition.MosaicID
	currency := mosaic.NewMosaic(mosaicID, 10)

	proof := []byte("proof of the secret")
	proofBody, err := txn.NewSecretProof(crypto.OpSha3_256, recipient, proof)
	must(err)

	bonded := NewAggregate(txn.AggregateBonded)
	bonded.Cosignatures = []txn.Cosignature{{
		Signer:    cosigner,
		Signature: ed25519.Signature{1, 2, 3},
	}}

	metadata := txn.Metadata{
		TargetPublicKey: signer.PublicKey,
		ScopedKey:       1,
		ValueSizeDelta:  5,
		Value:           []byte("value"),
	}

	return []txn.Body{
		NewTransfer(),
		root,
		sub,
		txn.AddressAliasBody{Action: txn.Link, NamespaceID: nsID, Address: recipient},
		txn.MosaicAliasBody{Action: txn.Unlink, NamespaceID: nsID, MosaicID: mosaicID},
		definition,
		txn.MosaicSupplyChangeBody{MosaicID: mosaicID, Action: txn.SupplyIncrease, Delta: 10},
		txn.MultisigAccountModificationBody{
			MinApprovalDelta: 2,
			MinRemovalDelta:  1,
			Modifications: []txn.CosignatoryModification{
				{Action: txn.Add, Cosignatory: cosigner},
			},
		},
		NewAggregate(txn.AggregateComplete),
		bonded,
		txn.LockFundsBody{Mosaic: currency, Duration: 480, Hash: txn.Hash{0xAA, 0xBB}},
		txn.SecretLockBody{
			Mosaic:        currency,
			Duration:      100,
			HashAlgorithm: crypto.OpSha3_256,
			Secret:        proofBody.Secret,
			Recipient:     recipient,
		},
		proofBody,
		txn.AccountAddressRestrictionBody{
			RestrictionType: txn.AllowIncomingAddress,
			Modifications:   []txn.AddressModification{{Action: txn.Add, Value: recipient}},
		},
		txn.AccountMosaicRestrictionBody{
			RestrictionType: txn.BlockMosaic,
			Modifications:   []txn.MosaicModification{{Action: txn.Remove, Value: mosaicID}},
		},
		txn.AccountOperationRestrictionBody{
			RestrictionType: txn.AllowOutgoingTransaction,
			Modifications:   []txn.OperationModification{{Action: txn.Add, Value: txn.Transfer}},
		},
		txn.AccountLinkBody{RemotePublicKey: cosigner, Action: txn.LinkAccountLink},
		txn.MosaicAddressRestrictionBody{
			MosaicID:       mosaicID,
			RestrictionKey: 0xFFFFFFFFFFFFFFFF,
			TargetAddress:  recipient,
			PreviousValue:  9,
			NewValue:       8,
		},
		txn.MosaicGlobalRestrictionBody{
			MosaicID:          mosaicID,
			ReferenceMosaicID: 0x85BBEA6CC462B244,
			RestrictionKey:    1,
			PreviousValue:     0,
			PreviousType:      txn.MosaicRestrictionNone,
			NewValue:          1,
			NewType:           txn.MosaicRestrictionGE,
		},
		txn.AccountMetadataBody{Metadata: metadata},
		txn.MosaicMetadataBody{Metadata: metadata, TargetMosaicID: mosaicID},
		txn.NamespaceMetadataBody{Metadata: metadata, TargetNamespaceID: nsID},
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
