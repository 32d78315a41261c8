package wire

import (
	"encoding/binary"
	"unicode/utf8"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/core/txn"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
)

const (
	maxU8  = 0xFF
	maxU16 = 0xFFFF
)

func encodeBody(w *writer, body txn.Body) error {
	switch b := body.(type) {
	case txn.TransferBody:
		return encodeTransfer(w, b)
	case txn.RootNamespaceBody:
		return encodeNamespace(w, txn.RootNamespace, b.Duration, b.ID, b.Name)
	case txn.SubNamespaceBody:
		return encodeNamespace(w, txn.SubNamespace, numeric.UInt64(b.Parent), b.ID, b.Name)
	case txn.AddressAliasBody:
		w.u8(uint8(b.Action))
		w.u64(numeric.UInt64(b.NamespaceID))
		w.raw(b.Address[:])
	case txn.MosaicAliasBody:
		w.u8(uint8(b.Action))
		w.u64(numeric.UInt64(b.NamespaceID))
		w.u64(numeric.UInt64(b.MosaicID))
	case txn.MosaicDefinitionBody:
		w.raw(b.Nonce[:])
		w.u64(numeric.UInt64(b.MosaicID))
		w.u8(b.Flags.Byte())
		w.u8(b.Divisibility)
		w.u64(b.Duration)
	case txn.MosaicSupplyChangeBody:
		w.u64(numeric.UInt64(b.MosaicID))
		w.u8(uint8(b.Action))
		w.u64(b.Delta)
	case txn.MultisigAccountModificationBody:
		return encodeMultisig(w, b)
	case txn.AggregateBody:
		return encodeAggregate(w, b)
	case txn.LockFundsBody:
		w.u64(numeric.UInt64(b.Mosaic.ID))
		w.u64(b.Mosaic.Amount)
		w.u64(b.Duration)
		w.raw(b.Hash[:])
	case txn.SecretLockBody:
		w.u64(numeric.UInt64(b.Mosaic.ID))
		w.u64(b.Mosaic.Amount)
		w.u64(b.Duration)
		w.u8(uint8(b.HashAlgorithm))
		w.raw(b.Secret[:])
		w.raw(b.Recipient[:])
	case txn.SecretProofBody:
		if len(b.Proof) > maxU16 {
			return overflow("proof", len(b.Proof), maxU16)
		}

		w.u8(uint8(b.HashAlgorithm))
		w.raw(b.Secret[:])
		w.raw(b.Recipient[:])
		w.u16(uint16(len(b.Proof)))
		w.raw(b.Proof)
	case txn.AccountAddressRestrictionBody:
		if len(b.Modifications) > maxU8 {
			return overflow("modifications", len(b.Modifications), maxU8)
		}

		w.u8(uint8(b.RestrictionType))
		w.u8(uint8(len(b.Modifications)))
		for _, mod := range b.Modifications {
			w.u8(uint8(mod.Action))
			w.raw(mod.Value[:])
		}
	case txn.AccountMosaicRestrictionBody:
		if len(b.Modifications) > maxU8 {
			return overflow("modifications", len(b.Modifications), maxU8)
		}

		w.u8(uint8(b.RestrictionType))
		w.u8(uint8(len(b.Modifications)))
		for _, mod := range b.Modifications {
			w.u8(uint8(mod.Action))
			w.u64(numeric.UInt64(mod.Value))
		}
	case txn.AccountOperationRestrictionBody:
		if len(b.Modifications) > maxU8 {
			return overflow("modifications", len(b.Modifications), maxU8)
		}

		w.u8(uint8(b.RestrictionType))
		w.u8(uint8(len(b.Modifications)))
		for _, mod := range b.Modifications {
			w.u8(uint8(mod.Action))
			w.u16(uint16(mod.Value))
		}
	case txn.AccountLinkBody:
		w.raw(b.RemotePublicKey[:])
		w.u8(uint8(b.Action))
	case txn.MosaicAddressRestrictionBody:
		w.u64(numeric.UInt64(b.MosaicID))
		w.u64(b.RestrictionKey)
		w.raw(b.TargetAddress[:])
		w.u64(b.PreviousValue)
		w.u64(b.NewValue)
	case txn.MosaicGlobalRestrictionBody:
		w.u64(numeric.UInt64(b.MosaicID))
		w.u64(numeric.UInt64(b.ReferenceMosaicID))
		w.u64(b.RestrictionKey)
		w.u64(b.PreviousValue)
		w.u8(uint8(b.PreviousType))
		w.u64(b.NewValue)
		w.u8(uint8(b.NewType))
	case txn.AccountMetadataBody:
		return encodeMetadata(w, b.Metadata, nil)
	case txn.MosaicMetadataBody:
		target := numeric.UInt64(b.TargetMosaicID)
		return encodeMetadata(w, b.Metadata, &target)
	case txn.NamespaceMetadataBody:
		target := numeric.UInt64(b.TargetNamespaceID)
		return encodeMetadata(w, b.Metadata, &target)
	default:
		return xerrors.Errorf("body '%T': %w", body, catapult.ErrUnsupportedTransactionType)
	}

	return nil
}

func encodeTransfer(w *writer, b txn.TransferBody) error {
	if len(b.Mosaics) > maxU8 {
		return overflow("mosaics", len(b.Mosaics), maxU8)
	}

	if b.Message.Size() > maxU8 {
		return overflow("message", b.Message.Size(), maxU8)
	}

	if !utf8.ValidString(b.Message.Payload) {
		return xerrors.Errorf("message payload is not valid UTF-8: %w", catapult.ErrPreconditionViolation)
	}

	w.raw(b.Recipient[:])
	w.u8(uint8(len(b.Mosaics)))
	w.u8(uint8(b.Message.Size()))
	w.u32(0)

	for _, m := range b.Mosaics {
		w.u64(numeric.UInt64(m.ID))
		w.u64(m.Amount)
	}

	w.raw(b.Message.Bytes())

	return nil
}

func encodeNamespace(w *writer, kind txn.NamespaceType, value numeric.UInt64, id namespace.ID, name string) error {
	if len(name) > maxU8 {
		return overflow("name", len(name), maxU8)
	}

	w.u8(uint8(kind))
	w.u64(value)
	w.u64(numeric.UInt64(id))
	w.u8(uint8(len(name)))
	w.raw([]byte(name))

	return nil
}

func encodeMultisig(w *writer, b txn.MultisigAccountModificationBody) error {
	if len(b.Modifications) > maxU8 {
		return overflow("modifications", len(b.Modifications), maxU8)
	}

	w.u8(uint8(b.MinRemovalDelta))
	w.u8(uint8(b.MinApprovalDelta))
	w.u8(uint8(len(b.Modifications)))

	for _, mod := range b.Modifications {
		w.u8(uint8(mod.Action))
		w.raw(mod.Cosignatory[:])
	}

	return nil
}

func encodeAggregate(w *writer, b txn.AggregateBody) error {
	w.u32(uint32(b.PayloadSize()))

	for i, tx := range b.Transactions {
		err := encodeEmbedded(w, tx)
		if err != nil {
			return xerrors.Errorf("transaction #%d: %w", i, err)
		}
	}

	for _, cosig := range b.Cosignatures {
		w.raw(cosig.Signer[:])
		w.raw(cosig.Signature[:])
	}

	return nil
}

func encodeMetadata(w *writer, m txn.Metadata, target *numeric.UInt64) error {
	if len(m.Value) > maxU16 {
		return overflow("value", len(m.Value), maxU16)
	}

	w.raw(m.TargetPublicKey[:])
	w.u64(m.ScopedKey)

	if target != nil {
		w.u64(*target)
	}

	w.u16(uint16(m.ValueSizeDelta))
	w.u16(uint16(len(m.Value)))
	w.raw(m.Value)

	return nil
}

func overflow(field string, size, max int) error {
	return xerrors.Errorf("%s of size %d exceeds %d: %w", field, size, max, catapult.ErrPreconditionViolation)
}

func decodeBody(r *reader, typ txn.Type) (txn.Body, error) {
	var body txn.Body

	switch typ {
	case txn.Transfer:
		body = decodeTransfer(r)
	case txn.RegisterNamespace:
		return decodeNamespace(r)
	case txn.AddressAlias:
		body = txn.AddressAliasBody{
			Action:      txn.AliasAction(r.u8()),
			NamespaceID: namespace.ID(r.u64()),
			Address:     r.address(),
		}
	case txn.MosaicAlias:
		body = txn.MosaicAliasBody{
			Action:      txn.AliasAction(r.u8()),
			NamespaceID: namespace.ID(r.u64()),
			MosaicID:    mosaic.ID(r.u64()),
		}
	case txn.MosaicDefinition:
		return decodeMosaicDefinition(r)
	case txn.MosaicSupplyChange:
		body = txn.MosaicSupplyChangeBody{
			MosaicID: mosaic.ID(r.u64()),
			Action:   txn.SupplyChangeAction(r.u8()),
			Delta:    r.u64(),
		}
	case txn.ModifyMultisigAccount:
		body = decodeMultisig(r)
	case txn.AggregateComplete, txn.AggregateBonded:
		return decodeAggregate(r, typ)
	case txn.Lock:
		b := txn.LockFundsBody{
			Mosaic:   mosaic.NewMosaic(mosaic.ID(r.u64()), r.u64()),
			Duration: r.u64(),
		}
		r.copyTo(b.Hash[:])
		body = b
	case txn.SecretLock:
		b := txn.SecretLockBody{
			Mosaic:        mosaic.NewMosaic(mosaic.ID(r.u64()), r.u64()),
			Duration:      r.u64(),
			HashAlgorithm: crypto.HashAlgorithm(r.u8()),
		}
		r.copyTo(b.Secret[:])
		b.Recipient = r.address()
		body = b
	case txn.SecretProof:
		b := txn.SecretProofBody{
			HashAlgorithm: crypto.HashAlgorithm(r.u8()),
		}
		r.copyTo(b.Secret[:])
		b.Recipient = r.address()
		b.Proof = r.bytes(int(r.u16()))
		body = b
	case txn.AccountRestrictionAddress:
		b := txn.AccountAddressRestrictionBody{RestrictionType: txn.AccountRestrictionType(r.u8())}
		count := int(r.u8())
		for i := 0; i < count && r.err == nil; i++ {
			action := txn.ModificationAction(r.u8())
			b.Modifications = append(b.Modifications, txn.AddressModification{Action: action, Value: r.address()})
		}
		body = b
	case txn.AccountRestrictionMosaic:
		b := txn.AccountMosaicRestrictionBody{RestrictionType: txn.AccountRestrictionType(r.u8())}
		count := int(r.u8())
		for i := 0; i < count && r.err == nil; i++ {
			action := txn.ModificationAction(r.u8())
			b.Modifications = append(b.Modifications, txn.MosaicModification{Action: action, Value: mosaic.ID(r.u64())})
		}
		body = b
	case txn.AccountRestrictionOperation:
		b := txn.AccountOperationRestrictionBody{RestrictionType: txn.AccountRestrictionType(r.u8())}
		count := int(r.u8())
		for i := 0; i < count && r.err == nil; i++ {
			action := txn.ModificationAction(r.u8())
			b.Modifications = append(b.Modifications, txn.OperationModification{Action: action, Value: txn.Type(r.u16())})
		}
		body = b
	case txn.LinkAccount:
		b := txn.AccountLinkBody{}
		r.copyTo(b.RemotePublicKey[:])
		b.Action = txn.LinkAction(r.u8())
		body = b
	case txn.MosaicAddressRestriction:
		body = txn.MosaicAddressRestrictionBody{
			MosaicID:       mosaic.ID(r.u64()),
			RestrictionKey: r.u64(),
			TargetAddress:  r.address(),
			PreviousValue:  r.u64(),
			NewValue:       r.u64(),
		}
	case txn.MosaicGlobalRestriction:
		body = txn.MosaicGlobalRestrictionBody{
			MosaicID:          mosaic.ID(r.u64()),
			ReferenceMosaicID: mosaic.ID(r.u64()),
			RestrictionKey:    r.u64(),
			PreviousValue:     r.u64(),
			PreviousType:      txn.MosaicRestrictionType(r.u8()),
			NewValue:          r.u64(),
			NewType:           txn.MosaicRestrictionType(r.u8()),
		}
	case txn.AccountMetadataTransaction:
		m, _ := decodeMetadata(r, false)
		body = txn.AccountMetadataBody{Metadata: m}
	case txn.MosaicMetadataTransaction:
		m, target := decodeMetadata(r, true)
		body = txn.MosaicMetadataBody{Metadata: m, TargetMosaicID: mosaic.ID(target)}
	case txn.NamespaceMetadataTransaction:
		m, target := decodeMetadata(r, true)
		body = txn.NamespaceMetadataBody{Metadata: m, TargetNamespaceID: namespace.ID(target)}
	default:
		return nil, xerrors.Errorf("no decoder for %v: %w", typ, catapult.ErrUnsupportedTransactionType)
	}

	if r.err != nil {
		return nil, r.err
	}

	return body, nil
}

func decodeTransfer(r *reader) txn.Body {
	b := txn.TransferBody{
		Recipient: r.address(),
	}

	count := int(r.u8())
	messageSize := int(r.u8())
	r.reserved()

	b.Mosaics = make([]mosaic.Mosaic, 0, count)

	for i := 0; i < count && r.err == nil; i++ {
		id := mosaic.ID(r.u64())
		b.Mosaics = append(b.Mosaics, mosaic.NewMosaic(id, r.u64()))
	}

	if messageSize > 0 {
		b.Message.Type = txn.MessageType(r.u8())
		payload := r.next(messageSize - 1)
		if !utf8.Valid(payload) {
			r.fail(xerrors.Errorf("message payload is not valid UTF-8: %w", catapult.ErrMalformedPayload))
		}

		b.Message.Payload = string(payload)
	}

	return b
}

func decodeNamespace(r *reader) (txn.Body, error) {
	kind := txn.NamespaceType(r.u8())
	value := r.u64()
	id := namespace.ID(r.u64())
	name := string(r.next(int(r.u8())))

	if r.err != nil {
		return nil, r.err
	}

	switch kind {
	case txn.RootNamespace:
		return txn.RootNamespaceBody{Name: name, ID: id, Duration: value}, nil
	case txn.SubNamespace:
		return txn.SubNamespaceBody{Name: name, ID: id, Parent: namespace.ID(value)}, nil
	default:
		return nil, xerrors.Errorf("unknown namespace type %d: %w", kind, catapult.ErrMalformedPayload)
	}
}

func decodeMosaicDefinition(r *reader) (txn.Body, error) {
	b := txn.MosaicDefinitionBody{}
	r.copyTo(b.Nonce[:])
	b.MosaicID = mosaic.ID(r.u64())
	rawFlags := r.u8()
	b.Divisibility = r.u8()
	b.Duration = r.u64()

	if r.err != nil {
		return nil, r.err
	}

	flags, err := mosaic.FlagsFromByte(rawFlags)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, catapult.ErrMalformedPayload)
	}

	b.Flags = flags

	return b, nil
}

func decodeMultisig(r *reader) txn.Body {
	b := txn.MultisigAccountModificationBody{
		MinRemovalDelta:  int8(r.u8()),
		MinApprovalDelta: int8(r.u8()),
	}

	count := int(r.u8())
	for i := 0; i < count && r.err == nil; i++ {
		mod := txn.CosignatoryModification{Action: txn.ModificationAction(r.u8())}
		r.copyTo(mod.Cosignatory[:])

		b.Modifications = append(b.Modifications, mod)
	}

	return b
}

func decodeAggregate(r *reader, kind txn.Type) (txn.Body, error) {
	payload := r.next(int(r.u32()))
	if r.err != nil {
		return nil, r.err
	}

	b := txn.AggregateBody{
		Kind:         kind,
		Transactions: []txn.InnerTransaction{},
		Cosignatures: []txn.Cosignature{},
	}

	for offset := 0; offset < len(payload); {
		if len(payload)-offset < 4 {
			return nil, xerrors.Errorf("truncated embedded transaction at offset %d: %w",
				offset, catapult.ErrMalformedPayload)
		}

		size := int(binary.LittleEndian.Uint32(payload[offset:]))
		if size < txn.EmbeddedHeaderSize || size > len(payload)-offset {
			return nil, xerrors.Errorf("embedded transaction of %d bytes at offset %d exceeds the payload: %w",
				size, offset, catapult.ErrMalformedPayload)
		}

		tx, err := decodeEmbedded(payload[offset:offset+size], r.schema)
		if err != nil {
			return nil, xerrors.Errorf("transaction #%d: %w", len(b.Transactions), err)
		}

		b.Transactions = append(b.Transactions, tx)
		offset += size
	}

	if r.remaining()%txn.CosignatureSize != 0 {
		return nil, xerrors.Errorf("%d bytes do not make whole cosignatures: %w",
			r.remaining(), catapult.ErrMalformedPayload)
	}

	for r.remaining() > 0 {
		var cosig txn.Cosignature
		r.copyTo(cosig.Signer[:])
		r.copyTo(cosig.Signature[:])

		if b.HasCosignatureOf(cosig.Signer) {
			return nil, xerrors.Errorf("duplicate cosignature of %v: %w", cosig.Signer, catapult.ErrMalformedPayload)
		}

		b.Cosignatures = append(b.Cosignatures, cosig)
	}

	return b, nil
}

func decodeMetadata(r *reader, targeted bool) (txn.Metadata, numeric.UInt64) {
	m := txn.Metadata{}
	r.copyTo(m.TargetPublicKey[:])
	m.ScopedKey = r.u64()

	var target numeric.UInt64
	if targeted {
		target = r.u64()
	}

	m.ValueSizeDelta = int16(r.u16())
	m.Value = r.bytes(int(r.u16()))

	return m, target
}
