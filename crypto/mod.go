// Package crypto defines the signature schemes and the digests used across the
// engine.
//
// Two schemes coexist on the networks. The current one derives keys and signs
// with SHA3-512 and uses SHA3-256 for addresses. The legacy one reverses the
// private key bytes before the derivation and uses the Keccak digests. The
// scheme is always an explicit parameter and it is never inferred.
package crypto

import (
	"hash"
	"strings"

	"go.dedis.ch/catapult"
	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

// SignSchema is the strategy to derive keys, sign messages and compute
// addresses.
type SignSchema int

const (
	// SHA3 is the current scheme.
	SHA3 SignSchema = iota
	// KeccakReversedKey is the legacy scheme.
	KeccakReversedKey
)

var schemaNames = map[SignSchema]string{
	SHA3:              "SHA3",
	KeccakReversedKey: "KECCAK_REVERSED_KEY",
}

// ParseSignSchema returns the scheme associated with the name.
func ParseSignSchema(name string) (SignSchema, error) {
	for schema, n := range schemaNames {
		if strings.EqualFold(n, name) {
			return schema, nil
		}
	}

	return 0, xerrors.Errorf("unknown sign schema '%s': %w", name, catapult.ErrInvalidIdentifier)
}

// String implements fmt.Stringer. It returns the name of the scheme.
func (s SignSchema) String() string {
	name, found := schemaNames[s]
	if !found {
		return "UNKNOWN"
	}

	return name
}

// MarshalText implements encoding.TextMarshaler.
func (s SignSchema) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SignSchema) UnmarshalText(text []byte) error {
	schema, err := ParseSignSchema(string(text))
	if err != nil {
		return err
	}

	*s = schema

	return nil
}

// New512 returns the 512-bit digest used by the Ed25519 construction.
func (s SignSchema) New512() hash.Hash {
	if s == KeccakReversedKey {
		return sha3.NewLegacyKeccak512()
	}

	return sha3.New512()
}

// New256 returns the 256-bit digest used to derive addresses.
func (s SignSchema) New256() hash.Hash {
	if s == KeccakReversedKey {
		return sha3.NewLegacyKeccak256()
	}

	return sha3.New256()
}

// Sum256 returns the 256-bit digest of the concatenation of the chunks.
func (s SignSchema) Sum256(chunks ...[]byte) []byte {
	return sum(s.New256(), chunks...)
}

// PrepareKey returns the bytes of the private key as they are fed to the key
// derivation.
func (s SignSchema) PrepareKey(privateKey []byte) []byte {
	buffer := make([]byte, len(privateKey))
	copy(buffer, privateKey)

	if s == KeccakReversedKey {
		for i, j := 0, len(buffer)-1; i < j; i, j = i+1, j-1 {
			buffer[i], buffer[j] = buffer[j], buffer[i]
		}
	}

	return buffer
}

// Sha3_256 returns the SHA3-256 digest of the concatenation of the chunks. It
// is the digest of the signing and transaction hashes whatever the scheme.
func Sha3_256(chunks ...[]byte) [32]byte {
	var digest [32]byte
	copy(digest[:], sum(sha3.New256(), chunks...))

	return digest
}

func sum(h hash.Hash, chunks ...[]byte) []byte {
	for _, chunk := range chunks {
		// A hash.Hash never returns an error on write.
		h.Write(chunk)
	}

	return h.Sum(nil)
}
