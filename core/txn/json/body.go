package json

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/serde"
	"golang.org/x/xerrors"
)

// MosaicJSON is the JSON message of a mosaic.
type MosaicJSON struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
}

// MessageJSON is the JSON message of the message of a transfer.
type MessageJSON struct {
	Type    uint8  `json:"type"`
	Payload string `json:"payload"`
}

// TransferJSON is the JSON message of a transfer.
type TransferJSON struct {
	HeaderJSON

	RecipientAddress string       `json:"recipientAddress"`
	Mosaics          []MosaicJSON `json:"mosaics"`
	Message          MessageJSON  `json:"message"`
}

// NamespaceJSON is the JSON message of the registration of a namespace. The
// duration is only set for a root namespace and the parent for a sub
// namespace.
type NamespaceJSON struct {
	HeaderJSON

	NamespaceType uint8  `json:"namespaceType"`
	NamespaceName string `json:"namespaceName"`
	ID            string `json:"id"`
	Duration      string `json:"duration,omitempty"`
	ParentID      string `json:"parentId,omitempty"`
}

// AddressAliasJSON is the JSON message of an address alias.
type AddressAliasJSON struct {
	HeaderJSON

	AliasAction uint8  `json:"aliasAction"`
	NamespaceID string `json:"namespaceId"`
	Address     string `json:"address"`
}

// MosaicAliasJSON is the JSON message of a mosaic alias.
type MosaicAliasJSON struct {
	HeaderJSON

	AliasAction uint8  `json:"aliasAction"`
	NamespaceID string `json:"namespaceId"`
	MosaicID    string `json:"mosaicId"`
}

// MosaicDefinitionJSON is the JSON message of the definition of a mosaic.
type MosaicDefinitionJSON struct {
	HeaderJSON

	Nonce        uint32 `json:"nonce"`
	MosaicID     string `json:"mosaicId"`
	Flags        uint8  `json:"flags"`
	Divisibility uint8  `json:"divisibility"`
	Duration     string `json:"duration"`
}

// MosaicSupplyChangeJSON is the JSON message of a change of supply.
type MosaicSupplyChangeJSON struct {
	HeaderJSON

	MosaicID  string `json:"mosaicId"`
	Direction uint8  `json:"direction"`
	Delta     string `json:"delta"`
}

// CosignatoryModificationJSON is the JSON message of a modification of a
// multisig account.
type CosignatoryModificationJSON struct {
	ModificationAction   uint8  `json:"modificationAction"`
	CosignatoryPublicKey string `json:"cosignatoryPublicKey"`
}

// MultisigJSON is the JSON message of the modification of a multisig account.
type MultisigJSON struct {
	HeaderJSON

	MinApprovalDelta int8                          `json:"minApprovalDelta"`
	MinRemovalDelta  int8                          `json:"minRemovalDelta"`
	Modifications    []CosignatoryModificationJSON `json:"modifications"`
}

// CosignatureJSON is the JSON message of a cosignature.
type CosignatureJSON struct {
	Signature       string `json:"signature"`
	SignerPublicKey string `json:"signerPublicKey"`
}

// AggregateJSON is the JSON message of an aggregate.
type AggregateJSON struct {
	HeaderJSON

	Transactions []DocumentJSON    `json:"transactions"`
	Cosignatures []CosignatureJSON `json:"cosignatures"`
}

// LockJSON is the JSON message of a lock of funds.
type LockJSON struct {
	HeaderJSON

	MosaicID string `json:"mosaicId"`
	Amount   string `json:"amount"`
	Duration string `json:"duration"`
	Hash     string `json:"hash"`
}

// SecretLockJSON is the JSON message of a secret lock.
type SecretLockJSON struct {
	HeaderJSON

	MosaicID         string `json:"mosaicId"`
	Amount           string `json:"amount"`
	Duration         string `json:"duration"`
	HashAlgorithm    uint8  `json:"hashAlgorithm"`
	Secret           string `json:"secret"`
	RecipientAddress string `json:"recipientAddress"`
}

// SecretProofJSON is the JSON message of a secret proof.
type SecretProofJSON struct {
	HeaderJSON

	HashAlgorithm    uint8  `json:"hashAlgorithm"`
	Secret           string `json:"secret"`
	RecipientAddress string `json:"recipientAddress"`
	Proof            string `json:"proof"`
}

// RestrictionModificationJSON is the JSON message of a modification of an
// account restriction. The value is an address, a mosaic identifier or a
// transaction type depending on the restriction.
type RestrictionModificationJSON struct {
	ModificationAction uint8           `json:"modificationAction"`
	Value              json.RawMessage `json:"value"`
}

// AccountRestrictionJSON is the JSON message of an account restriction.
type AccountRestrictionJSON struct {
	HeaderJSON

	RestrictionType uint8                         `json:"restrictionType"`
	Modifications   []RestrictionModificationJSON `json:"modifications"`
}

// AccountLinkJSON is the JSON message of an account link.
type AccountLinkJSON struct {
	HeaderJSON

	RemotePublicKey string `json:"remotePublicKey"`
	LinkAction      uint8  `json:"linkAction"`
}

// MosaicGlobalRestrictionJSON is the JSON message of a mosaic global
// restriction.
type MosaicGlobalRestrictionJSON struct {
	HeaderJSON

	MosaicID                 string `json:"mosaicId"`
	ReferenceMosaicID        string `json:"referenceMosaicId"`
	RestrictionKey           string `json:"restrictionKey"`
	PreviousRestrictionValue string `json:"previousRestrictionValue"`
	PreviousRestrictionType  uint8  `json:"previousRestrictionType"`
	NewRestrictionValue      string `json:"newRestrictionValue"`
	NewRestrictionType       uint8  `json:"newRestrictionType"`
}

// MosaicAddressRestrictionJSON is the JSON message of a mosaic address
// restriction.
type MosaicAddressRestrictionJSON struct {
	HeaderJSON

	MosaicID                 string `json:"mosaicId"`
	RestrictionKey           string `json:"restrictionKey"`
	TargetAddress            string `json:"targetAddress"`
	PreviousRestrictionValue string `json:"previousRestrictionValue"`
	NewRestrictionValue      string `json:"newRestrictionValue"`
}

// MetadataJSON is the JSON message of a metadata transaction. Only one of the
// targets is set, and none for an account.
type MetadataJSON struct {
	HeaderJSON

	TargetPublicKey   string `json:"targetPublicKey"`
	ScopedMetadataKey string `json:"scopedMetadataKey"`
	ValueSizeDelta    int16  `json:"valueSizeDelta"`
	TargetMosaicID    string `json:"targetMosaicId,omitempty"`
	TargetNamespaceID string `json:"targetNamespaceId,omitempty"`
	ValueSize         uint16 `json:"valueSize"`
	Value             string `json:"value"`
}

func encodeBody(ctx serde.Context, h HeaderJSON, body txn.Body) (interface{}, error) {
	switch b := body.(type) {
	case txn.TransferBody:
		if !utf8.ValidString(b.Message.Payload) {
			return nil, xerrors.Errorf("message payload is not valid UTF-8: %w", catapult.ErrPreconditionViolation)
		}

		m := TransferJSON{
			HeaderJSON:       h,
			RecipientAddress: b.Recipient.Encoded(),
			Mosaics:          make([]MosaicJSON, len(b.Mosaics)),
			Message: MessageJSON{
				Type:    uint8(b.Message.Type),
				Payload: b.Message.Payload,
			},
		}

		for i, mos := range b.Mosaics {
			m.Mosaics[i] = MosaicJSON{ID: mos.ID.Hex(), Amount: mos.Amount.String()}
		}

		return m, nil
	case txn.RootNamespaceBody:
		return NamespaceJSON{
			HeaderJSON:    h,
			NamespaceType: uint8(txn.RootNamespace),
			NamespaceName: b.Name,
			ID:            b.ID.Hex(),
			Duration:      b.Duration.String(),
		}, nil
	case txn.SubNamespaceBody:
		return NamespaceJSON{
			HeaderJSON:    h,
			NamespaceType: uint8(txn.SubNamespace),
			NamespaceName: b.Name,
			ID:            b.ID.Hex(),
			ParentID:      b.Parent.Hex(),
		}, nil
	case txn.AddressAliasBody:
		return AddressAliasJSON{
			HeaderJSON:  h,
			AliasAction: uint8(b.Action),
			NamespaceID: b.NamespaceID.Hex(),
			Address:     b.Address.Encoded(),
		}, nil
	case txn.MosaicAliasBody:
		return MosaicAliasJSON{
			HeaderJSON:  h,
			AliasAction: uint8(b.Action),
			NamespaceID: b.NamespaceID.Hex(),
			MosaicID:    b.MosaicID.Hex(),
		}, nil
	case txn.MosaicDefinitionBody:
		return MosaicDefinitionJSON{
			HeaderJSON:   h,
			Nonce:        b.Nonce.Uint32(),
			MosaicID:     b.MosaicID.Hex(),
			Flags:        b.Flags.Byte(),
			Divisibility: b.Divisibility,
			Duration:     b.Duration.String(),
		}, nil
	case txn.MosaicSupplyChangeBody:
		return MosaicSupplyChangeJSON{
			HeaderJSON: h,
			MosaicID:   b.MosaicID.Hex(),
			Direction:  uint8(b.Action),
			Delta:      b.Delta.String(),
		}, nil
	case txn.MultisigAccountModificationBody:
		m := MultisigJSON{
			HeaderJSON:       h,
			MinApprovalDelta: b.MinApprovalDelta,
			MinRemovalDelta:  b.MinRemovalDelta,
			Modifications:    make([]CosignatoryModificationJSON, len(b.Modifications)),
		}

		for i, mod := range b.Modifications {
			m.Modifications[i] = CosignatoryModificationJSON{
				ModificationAction:   uint8(mod.Action),
				CosignatoryPublicKey: mod.Cosignatory.Hex(),
			}
		}

		return m, nil
	case txn.AggregateBody:
		return encodeAggregate(ctx, h, b)
	case txn.LockFundsBody:
		return LockJSON{
			HeaderJSON: h,
			MosaicID:   b.Mosaic.ID.Hex(),
			Amount:     b.Mosaic.Amount.String(),
			Duration:   b.Duration.String(),
			Hash:       b.Hash.Hex(),
		}, nil
	case txn.SecretLockBody:
		return SecretLockJSON{
			HeaderJSON:       h,
			MosaicID:         b.Mosaic.ID.Hex(),
			Amount:           b.Mosaic.Amount.String(),
			Duration:         b.Duration.String(),
			HashAlgorithm:    uint8(b.HashAlgorithm),
			Secret:           hexOf(b.Secret[:]),
			RecipientAddress: b.Recipient.Encoded(),
		}, nil
	case txn.SecretProofBody:
		return SecretProofJSON{
			HeaderJSON:       h,
			HashAlgorithm:    uint8(b.HashAlgorithm),
			Secret:           hexOf(b.Secret[:]),
			RecipientAddress: b.Recipient.Encoded(),
			Proof:            hexOf(b.Proof),
		}, nil
	case txn.AccountAddressRestrictionBody:
		values := make([]restrictionValue, len(b.Modifications))
		for i, mod := range b.Modifications {
			values[i] = restrictionValue{action: mod.Action, value: mod.Value.Encoded()}
		}

		return encodeRestriction(ctx, h, b.RestrictionType, values)
	case txn.AccountMosaicRestrictionBody:
		values := make([]restrictionValue, len(b.Modifications))
		for i, mod := range b.Modifications {
			values[i] = restrictionValue{action: mod.Action, value: mod.Value.Hex()}
		}

		return encodeRestriction(ctx, h, b.RestrictionType, values)
	case txn.AccountOperationRestrictionBody:
		values := make([]restrictionValue, len(b.Modifications))
		for i, mod := range b.Modifications {
			values[i] = restrictionValue{action: mod.Action, value: uint16(mod.Value)}
		}

		return encodeRestriction(ctx, h, b.RestrictionType, values)
	case txn.AccountLinkBody:
		return AccountLinkJSON{
			HeaderJSON:      h,
			RemotePublicKey: b.RemotePublicKey.Hex(),
			LinkAction:      uint8(b.Action),
		}, nil
	case txn.MosaicGlobalRestrictionBody:
		return MosaicGlobalRestrictionJSON{
			HeaderJSON:               h,
			MosaicID:                 b.MosaicID.Hex(),
			ReferenceMosaicID:        b.ReferenceMosaicID.Hex(),
			RestrictionKey:           b.RestrictionKey.String(),
			PreviousRestrictionValue: b.PreviousValue.String(),
			PreviousRestrictionType:  uint8(b.PreviousType),
			NewRestrictionValue:      b.NewValue.String(),
			NewRestrictionType:       uint8(b.NewType),
		}, nil
	case txn.MosaicAddressRestrictionBody:
		return MosaicAddressRestrictionJSON{
			HeaderJSON:               h,
			MosaicID:                 b.MosaicID.Hex(),
			RestrictionKey:           b.RestrictionKey.String(),
			TargetAddress:            b.TargetAddress.Encoded(),
			PreviousRestrictionValue: b.PreviousValue.String(),
			NewRestrictionValue:      b.NewValue.String(),
		}, nil
	case txn.AccountMetadataBody:
		return encodeMetadata(h, b.Metadata)
	case txn.MosaicMetadataBody:
		m, err := encodeMetadata(h, b.Metadata)
		m.TargetMosaicID = b.TargetMosaicID.Hex()
		return m, err
	case txn.NamespaceMetadataBody:
		m, err := encodeMetadata(h, b.Metadata)
		m.TargetNamespaceID = b.TargetNamespaceID.Hex()
		return m, err
	default:
		return nil, xerrors.Errorf("body '%T': %w", body, catapult.ErrUnsupportedTransactionType)
	}
}

func encodeAggregate(ctx serde.Context, h HeaderJSON, b txn.AggregateBody) (AggregateJSON, error) {
	m := AggregateJSON{
		HeaderJSON:   h,
		Transactions: make([]DocumentJSON, len(b.Transactions)),
		Cosignatures: make([]CosignatureJSON, len(b.Cosignatures)),
	}

	for i, inner := range b.Transactions {
		doc, err := encodeInner(ctx, inner)
		if err != nil {
			return m, xerrors.Errorf("transaction #%d: %w", i, err)
		}

		m.Transactions[i] = doc
	}

	for i, cosig := range b.Cosignatures {
		m.Cosignatures[i] = CosignatureJSON{
			Signature:       cosig.Signature.Hex(),
			SignerPublicKey: cosig.Signer.Hex(),
		}
	}

	return m, nil
}

type restrictionValue struct {
	action txn.ModificationAction
	value  interface{}
}

func encodeRestriction(ctx serde.Context, h HeaderJSON, typ txn.AccountRestrictionType,
	values []restrictionValue) (AccountRestrictionJSON, error) {

	m := AccountRestrictionJSON{
		HeaderJSON:      h,
		RestrictionType: uint8(typ),
		Modifications:   make([]RestrictionModificationJSON, len(values)),
	}

	for i, v := range values {
		data, err := ctx.Marshal(v.value)
		if err != nil {
			return m, xerrors.Errorf("failed to marshal modification #%d: %v", i, err)
		}

		m.Modifications[i] = RestrictionModificationJSON{
			ModificationAction: uint8(v.action),
			Value:              data,
		}
	}

	return m, nil
}

func encodeMetadata(h HeaderJSON, m txn.Metadata) (MetadataJSON, error) {
	if len(m.Value) > txn.MaxMetadataSize {
		return MetadataJSON{}, xerrors.Errorf("value of %d bytes exceeds %d: %w",
			len(m.Value), txn.MaxMetadataSize, catapult.ErrPreconditionViolation)
	}

	data := MetadataJSON{
		HeaderJSON:        h,
		TargetPublicKey:   m.TargetPublicKey.Hex(),
		ScopedMetadataKey: m.ScopedKey.String(),
		ValueSizeDelta:    m.ValueSizeDelta,
		ValueSize:         uint16(len(m.Value)),
		Value:             hexOf(m.Value),
	}

	return data, nil
}

func decodeBody(ctx serde.Context, typ txn.Type, data []byte) (txn.Body, error) {
	switch typ {
	case txn.Transfer:
		return decodeTransfer(ctx, data)
	case txn.RegisterNamespace:
		return decodeNamespace(ctx, data)
	case txn.AddressAlias:
		m := AddressAliasJSON{}
		err := unmarshal(ctx, data, &m)
		if err != nil {
			return nil, err
		}

		b := txn.AddressAliasBody{Action: txn.AliasAction(m.AliasAction)}
		b.NamespaceID, err = namespaceID("namespaceId", m.NamespaceID)
		if err != nil {
			return nil, err
		}

		b.Address, err = address("address", m.Address)
		if err != nil {
			return nil, err
		}

		return b, nil
	case txn.MosaicAlias:
		m := MosaicAliasJSON{}
		err := unmarshal(ctx, data, &m)
		if err != nil {
			return nil, err
		}

		b := txn.MosaicAliasBody{Action: txn.AliasAction(m.AliasAction)}
		b.NamespaceID, err = namespaceID("namespaceId", m.NamespaceID)
		if err != nil {
			return nil, err
		}

		b.MosaicID, err = mosaicID("mosaicId", m.MosaicID)
		if err != nil {
			return nil, err
		}

		return b, nil
	case txn.MosaicDefinition:
		return decodeMosaicDefinition(ctx, data)
	case txn.MosaicSupplyChange:
		m := MosaicSupplyChangeJSON{}
		err := unmarshal(ctx, data, &m)
		if err != nil {
			return nil, err
		}

		b := txn.MosaicSupplyChangeBody{Action: txn.SupplyChangeAction(m.Direction)}
		b.MosaicID, err = mosaicID("mosaicId", m.MosaicID)
		if err != nil {
			return nil, err
		}

		b.Delta, err = decimal("delta", m.Delta)
		if err != nil {
			return nil, err
		}

		return b, nil
	case txn.ModifyMultisigAccount:
		return decodeMultisig(ctx, data)
	case txn.AggregateComplete, txn.AggregateBonded:
		return decodeAggregate(ctx, typ, data)
	case txn.Lock:
		return decodeLock(ctx, data)
	case txn.SecretLock:
		return decodeSecretLock(ctx, data)
	case txn.SecretProof:
		return decodeSecretProof(ctx, data)
	case txn.AccountRestrictionAddress, txn.AccountRestrictionMosaic, txn.AccountRestrictionOperation:
		return decodeRestriction(ctx, typ, data)
	case txn.LinkAccount:
		m := AccountLinkJSON{}
		err := unmarshal(ctx, data, &m)
		if err != nil {
			return nil, err
		}

		b := txn.AccountLinkBody{Action: txn.LinkAction(m.LinkAction)}
		b.RemotePublicKey, err = publicKey("remotePublicKey", m.RemotePublicKey)
		if err != nil {
			return nil, err
		}

		return b, nil
	case txn.MosaicGlobalRestriction:
		return decodeGlobalRestriction(ctx, data)
	case txn.MosaicAddressRestriction:
		return decodeAddressRestriction(ctx, data)
	case txn.AccountMetadataTransaction, txn.MosaicMetadataTransaction, txn.NamespaceMetadataTransaction:
		return decodeMetadata(ctx, typ, data)
	default:
		return nil, xerrors.Errorf("no decoder for %v: %w", typ, catapult.ErrUnsupportedTransactionType)
	}
}

func decodeTransfer(ctx serde.Context, data []byte) (txn.Body, error) {
	m := TransferJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.TransferBody{
		Mosaics: make([]mosaic.Mosaic, len(m.Mosaics)),
		Message: txn.Message{
			Type:    txn.MessageType(m.Message.Type),
			Payload: m.Message.Payload,
		},
	}

	b.Recipient, err = address("recipientAddress", m.RecipientAddress)
	if err != nil {
		return nil, err
	}

	for i, mos := range m.Mosaics {
		b.Mosaics[i].ID, err = mosaicID("mosaics.id", mos.ID)
		if err != nil {
			return nil, err
		}

		b.Mosaics[i].Amount, err = decimal("mosaics.amount", mos.Amount)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func decodeNamespace(ctx serde.Context, data []byte) (txn.Body, error) {
	m := NamespaceJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	id, err := namespaceID("id", m.ID)
	if err != nil {
		return nil, err
	}

	switch txn.NamespaceType(m.NamespaceType) {
	case txn.RootNamespace:
		b := txn.RootNamespaceBody{Name: m.NamespaceName, ID: id}
		b.Duration, err = decimal("duration", m.Duration)
		if err != nil {
			return nil, err
		}

		return b, nil
	case txn.SubNamespace:
		b := txn.SubNamespaceBody{Name: m.NamespaceName, ID: id}
		b.Parent, err = namespaceID("parentId", m.ParentID)
		if err != nil {
			return nil, err
		}

		return b, nil
	default:
		return nil, xerrors.Errorf("unknown namespace type %d: %w", m.NamespaceType, catapult.ErrMalformedPayload)
	}
}

func decodeMosaicDefinition(ctx serde.Context, data []byte) (txn.Body, error) {
	m := MosaicDefinitionJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.MosaicDefinitionBody{
		Nonce:        mosaic.NonceFromUint32(m.Nonce),
		Divisibility: m.Divisibility,
	}

	b.MosaicID, err = mosaicID("mosaicId", m.MosaicID)
	if err != nil {
		return nil, err
	}

	b.Flags, err = mosaic.FlagsFromByte(m.Flags)
	if err != nil {
		return nil, xerrors.Errorf("field 'flags': %v: %w", err, catapult.ErrMalformedPayload)
	}

	b.Duration, err = decimal("duration", m.Duration)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func decodeMultisig(ctx serde.Context, data []byte) (txn.Body, error) {
	m := MultisigJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.MultisigAccountModificationBody{
		MinApprovalDelta: m.MinApprovalDelta,
		MinRemovalDelta:  m.MinRemovalDelta,
		Modifications:    make([]txn.CosignatoryModification, len(m.Modifications)),
	}

	for i, mod := range m.Modifications {
		b.Modifications[i].Action = txn.ModificationAction(mod.ModificationAction)
		b.Modifications[i].Cosignatory, err = publicKey("cosignatoryPublicKey", mod.CosignatoryPublicKey)
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func decodeAggregate(ctx serde.Context, typ txn.Type, data []byte) (txn.Body, error) {
	m := AggregateJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.AggregateBody{
		Kind:         typ,
		Transactions: make([]txn.InnerTransaction, len(m.Transactions)),
		Cosignatures: make([]txn.Cosignature, 0, len(m.Cosignatures)),
	}

	for i, doc := range m.Transactions {
		b.Transactions[i], err = decodeInner(ctx, doc)
		if err != nil {
			return nil, xerrors.Errorf("transaction #%d: %w", i, err)
		}
	}

	for _, doc := range m.Cosignatures {
		var cosig txn.Cosignature

		cosig.Signer, err = publicKey("signerPublicKey", doc.SignerPublicKey)
		if err != nil {
			return nil, err
		}

		cosig.Signature, err = ed25519.SignatureFromHex(doc.Signature)
		if err != nil {
			return nil, xerrors.Errorf("field 'signature': %w", err)
		}

		if b.HasCosignatureOf(cosig.Signer) {
			return nil, xerrors.Errorf("duplicate cosignature of %v: %w", cosig.Signer, catapult.ErrMalformedPayload)
		}

		b.Cosignatures = append(b.Cosignatures, cosig)
	}

	return b, nil
}

func decodeLock(ctx serde.Context, data []byte) (txn.Body, error) {
	m := LockJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.LockFundsBody{}

	b.Mosaic, err = mosaicOf(m.MosaicID, m.Amount)
	if err != nil {
		return nil, err
	}

	b.Duration, err = decimal("duration", m.Duration)
	if err != nil {
		return nil, err
	}

	b.Hash, err = txn.ParseHash(m.Hash)
	if err != nil {
		return nil, xerrors.Errorf("field 'hash': %w", err)
	}

	return b, nil
}

func decodeSecretLock(ctx serde.Context, data []byte) (txn.Body, error) {
	m := SecretLockJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.SecretLockBody{HashAlgorithm: crypto.HashAlgorithm(m.HashAlgorithm)}

	b.Mosaic, err = mosaicOf(m.MosaicID, m.Amount)
	if err != nil {
		return nil, err
	}

	b.Duration, err = decimal("duration", m.Duration)
	if err != nil {
		return nil, err
	}

	err = fixedHex("secret", m.Secret, b.Secret[:])
	if err != nil {
		return nil, err
	}

	b.Recipient, err = address("recipientAddress", m.RecipientAddress)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func decodeSecretProof(ctx serde.Context, data []byte) (txn.Body, error) {
	m := SecretProofJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.SecretProofBody{HashAlgorithm: crypto.HashAlgorithm(m.HashAlgorithm)}

	err = fixedHex("secret", m.Secret, b.Secret[:])
	if err != nil {
		return nil, err
	}

	b.Recipient, err = address("recipientAddress", m.RecipientAddress)
	if err != nil {
		return nil, err
	}

	b.Proof, err = hex.DecodeString(m.Proof)
	if err != nil {
		return nil, xerrors.Errorf("field 'proof': %v: %w", err, catapult.ErrInvalidIdentifier)
	}

	return b, nil
}

func decodeRestriction(ctx serde.Context, typ txn.Type, data []byte) (txn.Body, error) {
	m := AccountRestrictionJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	restriction := txn.AccountRestrictionType(m.RestrictionType)

	switch typ {
	case txn.AccountRestrictionAddress:
		b := txn.AccountAddressRestrictionBody{
			RestrictionType: restriction,
			Modifications:   make([]txn.AddressModification, len(m.Modifications)),
		}

		for i, mod := range m.Modifications {
			var text string
			err = unmarshal(ctx, mod.Value, &text)
			if err != nil {
				return nil, err
			}

			b.Modifications[i].Action = txn.ModificationAction(mod.ModificationAction)
			b.Modifications[i].Value, err = address("value", text)
			if err != nil {
				return nil, err
			}
		}

		return b, nil
	case txn.AccountRestrictionMosaic:
		b := txn.AccountMosaicRestrictionBody{
			RestrictionType: restriction,
			Modifications:   make([]txn.MosaicModification, len(m.Modifications)),
		}

		for i, mod := range m.Modifications {
			var text string
			err = unmarshal(ctx, mod.Value, &text)
			if err != nil {
				return nil, err
			}

			b.Modifications[i].Action = txn.ModificationAction(mod.ModificationAction)
			b.Modifications[i].Value, err = mosaicID("value", text)
			if err != nil {
				return nil, err
			}
		}

		return b, nil
	default:
		b := txn.AccountOperationRestrictionBody{
			RestrictionType: restriction,
			Modifications:   make([]txn.OperationModification, len(m.Modifications)),
		}

		for i, mod := range m.Modifications {
			var code uint16
			err = unmarshal(ctx, mod.Value, &code)
			if err != nil {
				return nil, err
			}

			b.Modifications[i].Action = txn.ModificationAction(mod.ModificationAction)
			b.Modifications[i].Value = txn.Type(code)
		}

		return b, nil
	}
}

func decodeGlobalRestriction(ctx serde.Context, data []byte) (txn.Body, error) {
	m := MosaicGlobalRestrictionJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.MosaicGlobalRestrictionBody{
		PreviousType: txn.MosaicRestrictionType(m.PreviousRestrictionType),
		NewType:      txn.MosaicRestrictionType(m.NewRestrictionType),
	}

	b.MosaicID, err = mosaicID("mosaicId", m.MosaicID)
	if err != nil {
		return nil, err
	}

	b.ReferenceMosaicID, err = mosaicID("referenceMosaicId", m.ReferenceMosaicID)
	if err != nil {
		return nil, err
	}

	b.RestrictionKey, err = decimal("restrictionKey", m.RestrictionKey)
	if err != nil {
		return nil, err
	}

	b.PreviousValue, err = decimal("previousRestrictionValue", m.PreviousRestrictionValue)
	if err != nil {
		return nil, err
	}

	b.NewValue, err = decimal("newRestrictionValue", m.NewRestrictionValue)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func decodeAddressRestriction(ctx serde.Context, data []byte) (txn.Body, error) {
	m := MosaicAddressRestrictionJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	b := txn.MosaicAddressRestrictionBody{}

	b.MosaicID, err = mosaicID("mosaicId", m.MosaicID)
	if err != nil {
		return nil, err
	}

	b.RestrictionKey, err = decimal("restrictionKey", m.RestrictionKey)
	if err != nil {
		return nil, err
	}

	b.TargetAddress, err = address("targetAddress", m.TargetAddress)
	if err != nil {
		return nil, err
	}

	b.PreviousValue, err = decimal("previousRestrictionValue", m.PreviousRestrictionValue)
	if err != nil {
		return nil, err
	}

	b.NewValue, err = decimal("newRestrictionValue", m.NewRestrictionValue)
	if err != nil {
		return nil, err
	}

	return b, nil
}

func decodeMetadata(ctx serde.Context, typ txn.Type, data []byte) (txn.Body, error) {
	m := MetadataJSON{}
	err := unmarshal(ctx, data, &m)
	if err != nil {
		return nil, err
	}

	meta := txn.Metadata{ValueSizeDelta: m.ValueSizeDelta}

	meta.TargetPublicKey, err = publicKey("targetPublicKey", m.TargetPublicKey)
	if err != nil {
		return nil, err
	}

	meta.ScopedKey, err = decimal("scopedMetadataKey", m.ScopedMetadataKey)
	if err != nil {
		return nil, err
	}

	meta.Value, err = hex.DecodeString(m.Value)
	if err != nil {
		return nil, xerrors.Errorf("field 'value': %v: %w", err, catapult.ErrMalformedPayload)
	}

	if len(meta.Value) != int(m.ValueSize) {
		return nil, xerrors.Errorf("value of %d bytes does not match the size %d: %w",
			len(meta.Value), m.ValueSize, catapult.ErrMalformedPayload)
	}

	switch typ {
	case txn.MosaicMetadataTransaction:
		target, err := mosaicID("targetMosaicId", m.TargetMosaicID)
		if err != nil {
			return nil, err
		}

		return txn.MosaicMetadataBody{Metadata: meta, TargetMosaicID: target}, nil
	case txn.NamespaceMetadataTransaction:
		target, err := namespaceID("targetNamespaceId", m.TargetNamespaceID)
		if err != nil {
			return nil, err
		}

		return txn.NamespaceMetadataBody{Metadata: meta, TargetNamespaceID: target}, nil
	default:
		return txn.AccountMetadataBody{Metadata: meta}, nil
	}
}

func unmarshal(ctx serde.Context, data []byte, m interface{}) error {
	err := ctx.Unmarshal(data, m)
	if err != nil {
		return xerrors.Errorf("failed to unmarshal: %v: %w", err, catapult.ErrMalformedPayload)
	}

	return nil
}

func mosaicOf(id, amount string) (mosaic.Mosaic, error) {
	mosID, err := mosaicID("mosaicId", id)
	if err != nil {
		return mosaic.Mosaic{}, err
	}

	value, err := decimal("amount", amount)
	if err != nil {
		return mosaic.Mosaic{}, err
	}

	return mosaic.NewMosaic(mosID, value), nil
}

func mosaicID(field, text string) (mosaic.ID, error) {
	id, err := mosaic.IDFromHex(text)
	if err != nil {
		return 0, xerrors.Errorf("field '%s': %w", field, err)
	}

	return id, nil
}

func namespaceID(field, text string) (namespace.ID, error) {
	id, err := namespace.IDFromHex(text)
	if err != nil {
		return 0, xerrors.Errorf("field '%s': %w", field, err)
	}

	return id, nil
}

func address(field, text string) (account.Address, error) {
	addr, err := account.ParseAddress(text)
	if err != nil {
		return account.Address{}, xerrors.Errorf("field '%s': %w", field, err)
	}

	return addr, nil
}

func publicKey(field, text string) (ed25519.PublicKey, error) {
	pk, err := ed25519.PublicKeyFromHex(text)
	if err != nil {
		return pk, xerrors.Errorf("field '%s': %w", field, err)
	}

	return pk, nil
}

func fixedHex(field, text string, dst []byte) error {
	if len(text) != 2*len(dst) {
		return xerrors.Errorf("field '%s' must be %d hex characters: %w", field, 2*len(dst), catapult.ErrInvalidIdentifier)
	}

	_, err := hex.Decode(dst, []byte(text))
	if err != nil {
		return xerrors.Errorf("field '%s': %v: %w", field, err, catapult.ErrInvalidIdentifier)
	}

	return nil
}

func hexOf(buffer []byte) string {
	return strings.ToUpper(hex.EncodeToString(buffer))
}
