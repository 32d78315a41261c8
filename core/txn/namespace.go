package txn

import (
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/mosaic"
	"go.dedis.ch/catapult/core/namespace"
	"go.dedis.ch/catapult/core/numeric"
)

// RootNamespaceBody registers a root namespace for a duration.
//
// - implements txn.Body
type RootNamespaceBody struct {
	Name     string
	ID       namespace.ID
	Duration numeric.UInt64
}

// NewRootNamespace returns the body of the registration of a root namespace.
func NewRootNamespace(name string, duration numeric.UInt64) (RootNamespaceBody, error) {
	id, err := namespace.Generate(0, name)
	if err != nil {
		return RootNamespaceBody{}, precondition("invalid name: %v", err)
	}

	body := RootNamespaceBody{
		Name:     name,
		ID:       id,
		Duration: duration,
	}

	return body, nil
}

// Type implements txn.Body.
func (b RootNamespaceBody) Type() Type {
	return RegisterNamespace
}

// Size implements txn.Body.
func (b RootNamespaceBody) Size() int {
	return namespaceSize(b.Name)
}

// Validate implements txn.Body.
func (b RootNamespaceBody) Validate() error {
	return validateName(b.Name)
}

func (RootNamespaceBody) body() {}

// SubNamespaceBody registers a namespace under a parent namespace.
//
// - implements txn.Body
type SubNamespaceBody struct {
	Name   string
	ID     namespace.ID
	Parent namespace.ID
}

// NewSubNamespace returns the body of the registration of a namespace under
// the dotted name of its parent.
func NewSubNamespace(name, parentName string) (SubNamespaceBody, error) {
	parent, err := namespace.IDFromName(parentName)
	if err != nil {
		return SubNamespaceBody{}, precondition("invalid parent: %v", err)
	}

	return NewSubNamespaceOf(name, parent)
}

// NewSubNamespaceOf returns the body of the registration of a namespace under
// the parent identifier.
func NewSubNamespaceOf(name string, parent namespace.ID) (SubNamespaceBody, error) {
	id, err := namespace.Generate(parent, name)
	if err != nil {
		return SubNamespaceBody{}, precondition("invalid name: %v", err)
	}

	body := SubNamespaceBody{
		Name:   name,
		ID:     id,
		Parent: parent,
	}

	return body, nil
}

// Type implements txn.Body.
func (b SubNamespaceBody) Type() Type {
	return RegisterNamespace
}

// Size implements txn.Body.
func (b SubNamespaceBody) Size() int {
	return namespaceSize(b.Name)
}

// Validate implements txn.Body.
func (b SubNamespaceBody) Validate() error {
	return validateName(b.Name)
}

func (SubNamespaceBody) body() {}

func namespaceSize(name string) int {
	return 1 + 8 + 8 + 1 + len(name)
}

func validateName(name string) error {
	err := namespace.CheckName(name)
	if err != nil {
		return precondition("invalid name: %v", err)
	}

	return nil
}

// AddressAliasBody links or unlinks a namespace to an address.
//
// - implements txn.Body
type AddressAliasBody struct {
	Action      AliasAction
	NamespaceID namespace.ID
	Address     account.Address
}

// Type implements txn.Body.
func (b AddressAliasBody) Type() Type {
	return AddressAlias
}

// Size implements txn.Body.
func (b AddressAliasBody) Size() int {
	return 1 + 8 + account.AddressSize
}

// Validate implements txn.Body.
func (b AddressAliasBody) Validate() error {
	return validateAliasAction(b.Action)
}

func (AddressAliasBody) body() {}

// MosaicAliasBody links or unlinks a namespace to a mosaic.
//
// - implements txn.Body
type MosaicAliasBody struct {
	Action      AliasAction
	NamespaceID namespace.ID
	MosaicID    mosaic.ID
}

// Type implements txn.Body.
func (b MosaicAliasBody) Type() Type {
	return MosaicAlias
}

// Size implements txn.Body.
func (b MosaicAliasBody) Size() int {
	return 1 + 8 + 8
}

// Validate implements txn.Body.
func (b MosaicAliasBody) Validate() error {
	return validateAliasAction(b.Action)
}

func (MosaicAliasBody) body() {}

func validateAliasAction(action AliasAction) error {
	if action != Link && action != Unlink {
		return precondition("unknown alias action %d", action)
	}

	return nil
}
