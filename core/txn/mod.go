// Package txn defines the transaction model of the network.
//
// A transaction is a header shared by every kind, composed with a body that
// holds the fields specific to the kind. The set of bodies is closed so that
// the codecs can match over it exhaustively. A transaction exists in two
// forms: the standalone form that is signed and announced on its own, and the
// embedded form nested inside an aggregate that has neither deadline nor fee
// nor signature.
//
// The codecs register themselves as format engines: the binary wire format in
// core/txn/wire and the REST JSON document in core/txn/json.
package txn

import (
	"encoding/hex"
	"strings"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/numeric"
	"go.dedis.ch/catapult/crypto/ed25519"
	"go.dedis.ch/catapult/serde"
	"go.dedis.ch/catapult/serde/registry"
	"golang.org/x/xerrors"
)

const (
	// HeaderSize is the size in bytes of the header of a standalone
	// transaction.
	HeaderSize = 128

	// EmbeddedHeaderSize is the size in bytes of the header of an embedded
	// transaction.
	EmbeddedHeaderSize = 44
)

var (
	txFormats    = registry.NewSimpleRegistry()
	innerFormats = registry.NewSimpleRegistry()
)

// RegisterTransactionFormat registers the engine for the provided format.
func RegisterTransactionFormat(f serde.Format, e serde.FormatEngine) {
	txFormats.Register(f, e)
}

// RegisterInnerTransactionFormat registers the engine of embedded
// transactions for the provided format.
func RegisterInnerTransactionFormat(f serde.Format, e serde.FormatEngine) {
	innerFormats.Register(f, e)
}

// Body is the part of a transaction specific to its kind. The list of
// implementations is closed.
type Body interface {
	// Type returns the type code of the body.
	Type() Type

	// Size returns the number of bytes of the body on the wire.
	Size() int

	// Validate returns an error if the body cannot be signed.
	Validate() error

	body()
}

// Entity is the common interface of the standalone and the embedded
// transactions.
type Entity interface {
	serde.Message

	GetType() Type
	GetBody() Body
	GetNetwork() network.Type
	Size() int
}

// EntityHeader holds the fields common to every form of transaction.
type EntityHeader struct {
	Network network.Type
	Version uint8
}

// Transaction is a standalone transaction.
//
// - implements txn.Entity
type Transaction struct {
	EntityHeader

	Deadline Deadline
	MaxFee   numeric.UInt64

	// Signature and Signer are either both nil or both set.
	Signature *ed25519.Signature
	Signer    *account.PublicAccount

	// Info is only set for a transaction received from the network.
	Info *Info

	Body Body
}

type template struct {
	Transaction
}

// Option is the type of options to create a transaction.
type Option func(*template)

// WithMaxFee is an option to set the maximum fee the signer is willing to pay.
func WithMaxFee(fee numeric.UInt64) Option {
	return func(tmpl *template) {
		tmpl.MaxFee = fee
	}
}

// WithVersion is an option to override the entity version of the type.
func WithVersion(version uint8) Option {
	return func(tmpl *template) {
		tmpl.Version = version
	}
}

// New creates a new unsigned transaction with the body.
func New(deadline Deadline, net network.Type, body Body, opts ...Option) (Transaction, error) {
	if body == nil {
		return Transaction{}, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	err := body.Validate()
	if err != nil {
		return Transaction{}, xerrors.Errorf("invalid %v: %w", body.Type(), err)
	}

	tmpl := template{
		Transaction: Transaction{
			EntityHeader: EntityHeader{
				Network: net,
				Version: body.Type().Version(),
			},
			Deadline: deadline,
			Body:     body,
		},
	}

	for _, opt := range opts {
		opt(&tmpl)
	}

	return tmpl.Transaction, nil
}

// GetType implements txn.Entity. It returns the type of the body.
func (t Transaction) GetType() Type {
	if t.Body == nil {
		return 0
	}

	return t.Body.Type()
}

// GetBody implements txn.Entity.
func (t Transaction) GetBody() Body {
	return t.Body
}

// GetNetwork implements txn.Entity.
func (t Transaction) GetNetwork() network.Type {
	return t.Network
}

// Size implements txn.Entity. It returns the number of bytes of the
// transaction on the wire.
func (t Transaction) Size() int {
	if t.Body == nil {
		return HeaderSize
	}

	return HeaderSize + t.Body.Size()
}

// IsSigned returns true if the signature and the signer are set.
func (t Transaction) IsSigned() bool {
	return t.Signature != nil && t.Signer != nil
}

// Validate returns an error if the transaction cannot be signed.
func (t Transaction) Validate() error {
	if t.Body == nil {
		return xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if (t.Signature == nil) != (t.Signer == nil) {
		return xerrors.Errorf("signature and signer must be set together: %w", catapult.ErrPreconditionViolation)
	}

	if t.Deadline.IsZero() {
		return xerrors.Errorf("missing deadline: %w", catapult.ErrPreconditionViolation)
	}

	_, err := network.ParseType(uint8(t.Network))
	if err != nil {
		return xerrors.Errorf("%v: %w", err, catapult.ErrPreconditionViolation)
	}

	err = t.Body.Validate()
	if err != nil {
		return xerrors.Errorf("invalid %v: %w", t.Body.Type(), err)
	}

	return nil
}

// ToAggregate returns the embedded form of the transaction signed by the
// signer.
func (t Transaction) ToAggregate(signer account.PublicAccount) (InnerTransaction, error) {
	if t.Body == nil {
		return InnerTransaction{}, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if t.Body.Type().IsAggregate() {
		return InnerTransaction{}, xerrors.Errorf("an aggregate cannot be embedded: %w",
			catapult.ErrPreconditionViolation)
	}

	inner := InnerTransaction{
		EntityHeader: t.EntityHeader,
		Signer:       signer,
		Body:         t.Body,
	}

	return inner, nil
}

// Serialize implements serde.Message. It returns the serialized data of the
// transaction.
func (t Transaction) Serialize(ctx serde.Context) ([]byte, error) {
	format := txFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, t)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode: %w", err)
	}

	return data, nil
}

// InnerTransaction is a transaction embedded in an aggregate.
//
// - implements txn.Entity
type InnerTransaction struct {
	EntityHeader

	Signer account.PublicAccount

	// Info is only set for a transaction received from the network.
	Info *Info

	Body Body
}

// NewInner creates a new embedded transaction on the network of the signer.
func NewInner(signer account.PublicAccount, body Body) (InnerTransaction, error) {
	if body == nil {
		return InnerTransaction{}, xerrors.Errorf("missing body: %w", catapult.ErrPreconditionViolation)
	}

	if body.Type().IsAggregate() {
		return InnerTransaction{}, xerrors.Errorf("an aggregate cannot be embedded: %w",
			catapult.ErrPreconditionViolation)
	}

	err := body.Validate()
	if err != nil {
		return InnerTransaction{}, xerrors.Errorf("invalid %v: %w", body.Type(), err)
	}

	inner := InnerTransaction{
		EntityHeader: EntityHeader{
			Network: signer.Network,
			Version: body.Type().Version(),
		},
		Signer: signer,
		Body:   body,
	}

	return inner, nil
}

// GetType implements txn.Entity. It returns the type of the body.
func (t InnerTransaction) GetType() Type {
	if t.Body == nil {
		return 0
	}

	return t.Body.Type()
}

// GetBody implements txn.Entity.
func (t InnerTransaction) GetBody() Body {
	return t.Body
}

// GetNetwork implements txn.Entity.
func (t InnerTransaction) GetNetwork() network.Type {
	return t.Network
}

// Size implements txn.Entity. It returns the number of bytes of the embedded
// transaction on the wire.
func (t InnerTransaction) Size() int {
	if t.Body == nil {
		return EmbeddedHeaderSize
	}

	return EmbeddedHeaderSize + t.Body.Size()
}

// Standalone returns a standalone transaction with the content of the
// embedded one, to be displayed. The deadline and the fee cannot be recovered
// and are zero, which prevents the result from being signed.
func (t InnerTransaction) Standalone() Transaction {
	signer := t.Signer

	return Transaction{
		EntityHeader: t.EntityHeader,
		Signer:       &signer,
		Signature:    &ed25519.Signature{},
		Info:         t.Info,
		Body:         t.Body,
	}
}

// Serialize implements serde.Message. It returns the serialized data of the
// embedded transaction.
func (t InnerTransaction) Serialize(ctx serde.Context) ([]byte, error) {
	format := innerFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, t)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode: %w", err)
	}

	return data, nil
}

// TransactionFactory is a factory to deserialize standalone transactions.
//
// - implements serde.Factory
type TransactionFactory struct{}

// NewFactory returns a new factory of standalone transactions.
func NewFactory() TransactionFactory {
	return TransactionFactory{}
}

// Deserialize implements serde.Factory. It populates the transaction from the
// data if appropriate, otherwise it returns an error.
func (f TransactionFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	return f.TransactionOf(ctx, data)
}

// TransactionOf returns the transaction of the data.
func (f TransactionFactory) TransactionOf(ctx serde.Context, data []byte) (Transaction, error) {
	format := txFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return Transaction{}, xerrors.Errorf("failed to decode: %w", err)
	}

	tx, ok := msg.(Transaction)
	if !ok {
		return Transaction{}, xerrors.Errorf("invalid transaction of type '%T'", msg)
	}

	return tx, nil
}

// InnerTransactionFactory is a factory to deserialize embedded transactions.
//
// - implements serde.Factory
type InnerTransactionFactory struct{}

// NewInnerFactory returns a new factory of embedded transactions.
func NewInnerFactory() InnerTransactionFactory {
	return InnerTransactionFactory{}
}

// Deserialize implements serde.Factory. It populates the embedded transaction
// from the data if appropriate, otherwise it returns an error.
func (f InnerTransactionFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	return f.InnerTransactionOf(ctx, data)
}

// InnerTransactionOf returns the embedded transaction of the data.
func (f InnerTransactionFactory) InnerTransactionOf(ctx serde.Context, data []byte) (InnerTransaction, error) {
	format := innerFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return InnerTransaction{}, xerrors.Errorf("failed to decode: %w", err)
	}

	tx, ok := msg.(InnerTransaction)
	if !ok {
		return InnerTransaction{}, xerrors.Errorf("invalid embedded transaction of type '%T'", msg)
	}

	return tx, nil
}

func hexOf(buffer []byte) string {
	return strings.ToUpper(hex.EncodeToString(buffer))
}

func precondition(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, catapult.ErrPreconditionViolation)...)
}
