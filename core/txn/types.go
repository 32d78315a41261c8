package txn

import (
	"fmt"

	"go.dedis.ch/catapult"
	"golang.org/x/xerrors"
)

// Type is the 2-byte code of a transaction kind.
type Type uint16

// The kinds of transactions known by the engine.
const (
	Transfer                     Type = 0x4154
	RegisterNamespace            Type = 0x414E
	AddressAlias                 Type = 0x424E
	MosaicAlias                  Type = 0x434E
	MosaicDefinition             Type = 0x414D
	MosaicSupplyChange           Type = 0x424D
	ModifyMultisigAccount        Type = 0x4155
	AggregateComplete            Type = 0x4141
	AggregateBonded              Type = 0x4241
	Lock                         Type = 0x4148
	SecretLock                   Type = 0x4152
	SecretProof                  Type = 0x4252
	AccountRestrictionAddress    Type = 0x4150
	AccountRestrictionMosaic     Type = 0x4250
	AccountRestrictionOperation  Type = 0x4350
	LinkAccount                  Type = 0x414C
	MosaicAddressRestriction     Type = 0x4251
	MosaicGlobalRestriction      Type = 0x4151
	AccountMetadataTransaction   Type = 0x4144
	MosaicMetadataTransaction    Type = 0x4244
	NamespaceMetadataTransaction Type = 0x4344
)

type typeInfo struct {
	name    string
	version uint8
}

var typeRegistry = map[Type]typeInfo{
	Transfer:                     {"TRANSFER", 1},
	RegisterNamespace:            {"REGISTER_NAMESPACE", 1},
	AddressAlias:                 {"ADDRESS_ALIAS", 1},
	MosaicAlias:                  {"MOSAIC_ALIAS", 1},
	MosaicDefinition:             {"MOSAIC_DEFINITION", 1},
	MosaicSupplyChange:           {"MOSAIC_SUPPLY_CHANGE", 1},
	ModifyMultisigAccount:        {"MODIFY_MULTISIG_ACCOUNT", 1},
	AggregateComplete:            {"AGGREGATE_COMPLETE", 1},
	AggregateBonded:              {"AGGREGATE_BONDED", 1},
	Lock:                         {"LOCK", 1},
	SecretLock:                   {"SECRET_LOCK", 1},
	SecretProof:                  {"SECRET_PROOF", 1},
	AccountRestrictionAddress:    {"ACCOUNT_RESTRICTION_ADDRESS", 1},
	AccountRestrictionMosaic:     {"ACCOUNT_RESTRICTION_MOSAIC", 1},
	AccountRestrictionOperation:  {"ACCOUNT_RESTRICTION_OPERATION", 1},
	LinkAccount:                  {"LINK_ACCOUNT", 2},
	MosaicAddressRestriction:     {"MOSAIC_ADDRESS_RESTRICTION", 1},
	MosaicGlobalRestriction:      {"MOSAIC_GLOBAL_RESTRICTION", 1},
	AccountMetadataTransaction:   {"ACCOUNT_METADATA_TRANSACTION", 1},
	MosaicMetadataTransaction:    {"MOSAIC_METADATA_TRANSACTION", 1},
	NamespaceMetadataTransaction: {"NAMESPACE_METADATA_TRANSACTION", 1},
}

// ParseType returns the type of the code, or an error if the code is not in
// the registry.
func ParseType(code uint16) (Type, error) {
	t := Type(code)
	if !t.Known() {
		return 0, xerrors.Errorf("type code %#04x: %w", code, catapult.ErrUnsupportedTransactionType)
	}

	return t, nil
}

// Types returns the list of known types.
func Types() []Type {
	types := make([]Type, 0, len(typeRegistry))
	for t := range typeRegistry {
		types = append(types, t)
	}

	return types
}

// Known returns true if the type is in the registry.
func (t Type) Known() bool {
	_, found := typeRegistry[t]
	return found
}

// Version returns the current entity version of the type.
func (t Type) Version() uint8 {
	return typeRegistry[t].version
}

// IsAggregate returns true for both kinds of aggregates.
func (t Type) IsAggregate() bool {
	return t == AggregateComplete || t == AggregateBonded
}

// String implements fmt.Stringer. It returns the name of the type.
func (t Type) String() string {
	info, found := typeRegistry[t]
	if !found {
		return fmt.Sprintf("UNKNOWN(%#04x)", uint16(t))
	}

	return info.name
}
