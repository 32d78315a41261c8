package txn

// AliasAction is the action of an alias transaction.
type AliasAction uint8

const (
	// Unlink removes the alias.
	Unlink AliasAction = 0
	// Link sets the alias.
	Link AliasAction = 1
)

// LinkAction is the action of an account link transaction. Note that the
// values are the opposite of the alias actions.
type LinkAction uint8

const (
	// LinkAccountLink links the remote account.
	LinkAccountLink LinkAction = 0
	// LinkAccountUnlink unlinks the remote account.
	LinkAccountUnlink LinkAction = 1
)

// SupplyChangeAction is the direction of a supply change.
type SupplyChangeAction uint8

const (
	// SupplyDecrease removes units from the supply.
	SupplyDecrease SupplyChangeAction = 0
	// SupplyIncrease adds units to the supply.
	SupplyIncrease SupplyChangeAction = 1
)

// ModificationAction is the action of a multisig or a restriction
// modification.
type ModificationAction uint8

const (
	// Remove removes the entry.
	Remove ModificationAction = 0
	// Add adds the entry.
	Add ModificationAction = 1
)

// NamespaceType is the kind of namespace registration.
type NamespaceType uint8

const (
	// RootNamespace has no parent and a duration.
	RootNamespace NamespaceType = 0
	// SubNamespace has a parent namespace.
	SubNamespace NamespaceType = 1
)

// AccountRestrictionType is the kind of an account restriction. The lower
// bits tell the kind of value, the higher bits tell if incoming or outgoing
// transactions are affected and if they are allowed or blocked.
type AccountRestrictionType uint8

const (
	AllowIncomingAddress     AccountRestrictionType = 0x01
	AllowMosaic              AccountRestrictionType = 0x02
	AllowIncomingTransaction AccountRestrictionType = 0x04
	Sentinel                 AccountRestrictionType = 0x05
	BlockIncomingAddress     AccountRestrictionType = 0x81
	BlockMosaic              AccountRestrictionType = 0x82
	BlockIncomingTransaction AccountRestrictionType = 0x84
	AllowOutgoingAddress     AccountRestrictionType = 0x41
	BlockOutgoingAddress     AccountRestrictionType = 0xC1
	AllowOutgoingTransaction AccountRestrictionType = 0x44
	BlockOutgoingTransaction AccountRestrictionType = 0xC4
)

const (
	restrictionAddressFlag   = 0x01
	restrictionMosaicFlag    = 0x02
	restrictionOperationFlag = 0x04
	restrictionValueMask     = 0x0F
)

// IsAddress returns true if the restriction applies to addresses.
func (t AccountRestrictionType) IsAddress() bool {
	return t&restrictionValueMask == restrictionAddressFlag
}

// IsMosaic returns true if the restriction applies to mosaics.
func (t AccountRestrictionType) IsMosaic() bool {
	return t&restrictionValueMask == restrictionMosaicFlag
}

// IsOperation returns true if the restriction applies to transaction types.
func (t AccountRestrictionType) IsOperation() bool {
	return t&restrictionValueMask == restrictionOperationFlag
}

// MosaicRestrictionType is the comparison of a mosaic global restriction.
type MosaicRestrictionType uint8

const (
	MosaicRestrictionNone MosaicRestrictionType = iota
	MosaicRestrictionEQ
	MosaicRestrictionNE
	MosaicRestrictionLT
	MosaicRestrictionLE
	MosaicRestrictionGT
	MosaicRestrictionGE
)
