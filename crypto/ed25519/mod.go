// Package ed25519 implements the deterministic Ed25519 signature of RFC 8032
// with a digest chosen by the sign schema.
//
// The group arithmetic is done by the Kyber Edwards 25519 suite while the
// construction of the nonce and the challenge follows the schema so that both
// the SHA3 and the legacy Keccak networks are supported.
package ed25519

import (
	"bytes"
	"encoding/hex"
	"hash"
	"math/big"
	"strings"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/crypto"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/suites"
	"golang.org/x/xerrors"
)

const (
	// PublicKeySize is the size in bytes of a public key.
	PublicKeySize = 32
	// PrivateKeySize is the size in bytes of a private key.
	PrivateKeySize = 32
	// SignatureSize is the size in bytes of a signature.
	SignatureSize = 64
)

var (
	suite = suites.MustFind("Ed25519")

	// order is the prime order L of the base point.
	order, _ = new(big.Int).SetString(
		"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
)

// PublicKey is the compressed encoding of a point of the curve.
type PublicKey [PublicKeySize]byte

// PublicKeyFromHex returns the public key of the hexadecimal string.
func PublicKeyFromHex(text string) (PublicKey, error) {
	var pk PublicKey

	err := decodeHex(pk[:], text)
	if err != nil {
		return pk, xerrors.Errorf("malformed public key: %w", err)
	}

	return pk, nil
}

// Hex returns the uppercase hexadecimal representation of the key.
func (pk PublicKey) Hex() string {
	return strings.ToUpper(hex.EncodeToString(pk[:]))
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	return pk.Hex()
}

// IsZero returns true when all the bytes are zero, which is how an absent key
// is written in a payload.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	key, err := PublicKeyFromHex(string(text))
	if err != nil {
		return err
	}

	*pk = key

	return nil
}

// Signature is the concatenation of the encoded point R and the scalar S.
type Signature [SignatureSize]byte

// SignatureFromHex returns the signature of the hexadecimal string.
func SignatureFromHex(text string) (Signature, error) {
	var sig Signature

	err := decodeHex(sig[:], text)
	if err != nil {
		return sig, xerrors.Errorf("malformed signature: %w", err)
	}

	return sig, nil
}

// Hex returns the uppercase hexadecimal representation of the signature.
func (sig Signature) Hex() string {
	return strings.ToUpper(hex.EncodeToString(sig[:]))
}

// String implements fmt.Stringer.
func (sig Signature) String() string {
	return sig.Hex()
}

// IsZero returns true when all the bytes are zero.
func (sig Signature) IsZero() bool {
	return sig == Signature{}
}

// MarshalText implements encoding.TextMarshaler.
func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (sig *Signature) UnmarshalText(text []byte) error {
	s, err := SignatureFromHex(string(text))
	if err != nil {
		return err
	}

	*sig = s

	return nil
}

// KeyPair is a private key together with its public key for a given schema.
type KeyPair struct {
	schema crypto.SignSchema
	scalar kyber.Scalar
	prefix []byte
	public PublicKey
}

// NewKeyPair derives the key pair of the private key for the schema.
func NewKeyPair(privateKey []byte, schema crypto.SignSchema) (KeyPair, error) {
	if len(privateKey) != PrivateKeySize {
		return KeyPair{}, xerrors.Errorf("private key must be %d bytes, got %d: %w",
			PrivateKeySize, len(privateKey), catapult.ErrInvalidIdentifier)
	}

	scalar, prefix, public := derive(schema.New512, schema.PrepareKey(privateKey))

	kp := KeyPair{
		schema: schema,
		scalar: scalar,
		prefix: prefix,
		public: public,
	}

	return kp, nil
}

// NewKeyPairFromHex derives the key pair of the hexadecimal private key.
func NewKeyPairFromHex(privateKey string, schema crypto.SignSchema) (KeyPair, error) {
	buffer := make([]byte, PrivateKeySize)

	err := decodeHex(buffer, privateKey)
	if err != nil {
		return KeyPair{}, xerrors.Errorf("malformed private key: %w", err)
	}

	return NewKeyPair(buffer, schema)
}

// PublicKey returns the public key of the pair.
func (kp KeyPair) PublicKey() PublicKey {
	return kp.public
}

// Schema returns the schema the pair was derived for.
func (kp KeyPair) Schema() crypto.SignSchema {
	return kp.schema
}

// Sign returns the deterministic signature of the message.
func (kp KeyPair) Sign(msg []byte) Signature {
	return sign(kp.schema.New512, kp.scalar, kp.prefix, kp.public, msg)
}

// Verify returns true if the signature of the message is valid for the public
// key under the schema.
func Verify(pk PublicKey, msg []byte, sig Signature, schema crypto.SignSchema) bool {
	return verify(schema.New512, pk, msg, sig)
}

func derive(newHash func() hash.Hash, seed []byte) (kyber.Scalar, []byte, PublicKey) {
	digest := digestOf(newHash, seed)

	digest[0] &= 248
	digest[31] &= 127
	digest[31] |= 64

	scalar := scalarOf(digest[:32])

	var public PublicKey
	copy(public[:], marshalPoint(suite.Point().Mul(scalar, nil)))

	return scalar, digest[32:], public
}

func sign(newHash func() hash.Hash, a kyber.Scalar, prefix []byte, pk PublicKey, msg []byte) Signature {
	r := scalarOf(digestOf(newHash, prefix, msg))

	encodedR := marshalPoint(suite.Point().Mul(r, nil))

	k := scalarOf(digestOf(newHash, encodedR, pk[:], msg))

	s := suite.Scalar().Add(r, suite.Scalar().Mul(k, a))

	encodedS, err := s.MarshalBinary()
	if err != nil {
		panic("scalar cannot be marshaled: " + err.Error())
	}

	var sig Signature
	copy(sig[:32], encodedR)
	copy(sig[32:], encodedS)

	return sig
}

func verify(newHash func() hash.Hash, pk PublicKey, msg []byte, sig Signature) bool {
	if !isCanonical(sig[32:]) {
		return false
	}

	a := suite.Point()
	err := a.UnmarshalBinary(pk[:])
	if err != nil {
		return false
	}

	k := scalarOf(digestOf(newHash, sig[:32], pk[:], msg))
	s := scalarOf(sig[32:])

	// R = sB - kA
	r := suite.Point().Sub(suite.Point().Mul(s, nil), suite.Point().Mul(k, a))

	return bytes.Equal(marshalPoint(r), sig[:32])
}

func digestOf(newHash func() hash.Hash, chunks ...[]byte) []byte {
	h := newHash()
	for _, chunk := range chunks {
		h.Write(chunk)
	}

	return h.Sum(nil)
}

// scalarOf returns the scalar of the little-endian integer reduced modulo the
// order of the group.
func scalarOf(le []byte) kyber.Scalar {
	n := new(big.Int).SetBytes(reverse(le))
	n.Mod(n, order)

	buffer := make([]byte, 32)
	n.FillBytes(buffer)

	return suite.Scalar().SetBytes(reverse(buffer))
}

// isCanonical returns true if the little-endian integer is smaller than the
// order of the group.
func isCanonical(le []byte) bool {
	return new(big.Int).SetBytes(reverse(le)).Cmp(order) < 0
}

func marshalPoint(p kyber.Point) []byte {
	buffer, err := p.MarshalBinary()
	if err != nil {
		panic("point cannot be marshaled: " + err.Error())
	}

	return buffer
}

func reverse(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}

	return out
}

func decodeHex(dst []byte, text string) error {
	if hex.DecodedLen(len(text)) != len(dst) {
		return xerrors.Errorf("expected %d hex characters, got %d: %w",
			len(dst)*2, len(text), catapult.ErrInvalidIdentifier)
	}

	_, err := hex.Decode(dst, []byte(text))
	if err != nil {
		return xerrors.Errorf("%v: %w", err, catapult.ErrInvalidIdentifier)
	}

	return nil
}
