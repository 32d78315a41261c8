package crypto

import (
	"crypto/sha256"

	"go.dedis.ch/catapult"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
	"golang.org/x/xerrors"
)

// HashAlgorithm is the algorithm used to produce the secret of a secret lock
// from its proof.
type HashAlgorithm uint8

const (
	// OpSha3_256 is the SHA3-256 digest of the proof.
	OpSha3_256 HashAlgorithm = iota
	// OpKeccak256 is the legacy Keccak-256 digest of the proof.
	OpKeccak256
	// OpHash160 is the RIPEMD-160 digest of the SHA-256 digest of the proof.
	OpHash160
	// OpHash256 is the double SHA-256 digest of the proof.
	OpHash256
)

// SecretSize is the size in bytes of a secret on the wire.
const SecretSize = 32

var hashNames = [...]string{"Op_Sha3_256", "Op_Keccak_256", "Op_Hash_160", "Op_Hash_256"}

// ParseHashAlgorithm returns the algorithm of the code.
func ParseHashAlgorithm(code uint8) (HashAlgorithm, error) {
	alg := HashAlgorithm(code)
	if !alg.Valid() {
		return 0, xerrors.Errorf("unknown hash algorithm %d: %w", code, catapult.ErrInvalidIdentifier)
	}

	return alg, nil
}

// Valid returns true if the algorithm is known.
func (a HashAlgorithm) Valid() bool {
	return int(a) < len(hashNames)
}

// String implements fmt.Stringer.
func (a HashAlgorithm) String() string {
	if !a.Valid() {
		return "Op_Unknown"
	}

	return hashNames[a]
}

// Secret returns the secret of the proof. The OpHash160 digest is left aligned
// and the remaining bytes are zero.
func (a HashAlgorithm) Secret(proof []byte) [SecretSize]byte {
	var secret [SecretSize]byte

	switch a {
	case OpSha3_256:
		copy(secret[:], sum(sha3.New256(), proof))
	case OpKeccak256:
		copy(secret[:], sum(sha3.NewLegacyKeccak256(), proof))
	case OpHash160:
		inner := sha256.Sum256(proof)
		copy(secret[:], sum(ripemd160.New(), inner[:]))
	case OpHash256:
		inner := sha256.Sum256(proof)
		outer := sha256.Sum256(inner[:])
		copy(secret[:], outer[:])
	}

	return secret
}

// CheckSecret returns an error if the secret cannot be produced by the
// algorithm, which is the case of an OpHash160 secret with a non-zero tail.
func (a HashAlgorithm) CheckSecret(secret [SecretSize]byte) error {
	if !a.Valid() {
		return xerrors.Errorf("unknown hash algorithm %d: %w", a, catapult.ErrPreconditionViolation)
	}

	if a != OpHash160 {
		return nil
	}

	for _, b := range secret[ripemd160.Size:] {
		if b != 0 {
			return xerrors.Errorf("hash160 secret must be padded with zeros: %w",
				catapult.ErrPreconditionViolation)
		}
	}

	return nil
}

// Ripemd160 returns the RIPEMD-160 digest of the data.
func Ripemd160(data []byte) []byte {
	return sum(ripemd160.New(), data)
}
