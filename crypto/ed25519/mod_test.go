package ed25519

import (
	stded25519 "crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
)

const (
	rfcSecret    = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	rfcPublic    = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	rfcSignature = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065" +
		"224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"

	testPrivateKey = "575DBB3062267EFF57C970A336EBBC8FBCFE12C5BD3ED7BC11EB0481D7704CED"
)

func TestSign_RFC8032(t *testing.T) {
	seed, err := hex.DecodeString(rfcSecret)
	require.NoError(t, err)

	scalar, prefix, public := derive(sha512.New, seed)
	require.Equal(t, rfcPublic, hex.EncodeToString(public[:]))

	sig := sign(sha512.New, scalar, prefix, public, nil)
	require.Equal(t, rfcSignature, hex.EncodeToString(sig[:]))
	require.True(t, verify(sha512.New, public, nil, sig))
}

func TestSign_MatchStandardLibrary(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i * 7)
	}

	msg := []byte("a message to sign")

	key := stded25519.NewKeyFromSeed(seed)

	scalar, prefix, public := derive(sha512.New, seed)
	require.Equal(t, []byte(key.Public().(stded25519.PublicKey)), public[:])

	sig := sign(sha512.New, scalar, prefix, public, msg)
	require.Equal(t, stded25519.Sign(key, msg), sig[:])
}

func TestKeyPair_Sign(t *testing.T) {
	for _, schema := range []crypto.SignSchema{crypto.SHA3, crypto.KeccakReversedKey} {
		kp, err := NewKeyPairFromHex(testPrivateKey, schema)
		require.NoError(t, err)
		require.Equal(t, schema, kp.Schema())

		msg := []byte("catapult")

		sig := kp.Sign(msg)
		require.Equal(t, sig, kp.Sign(msg))
		require.True(t, Verify(kp.PublicKey(), msg, sig, schema))

		require.False(t, Verify(kp.PublicKey(), []byte("other"), sig, schema))

		sig[3] ^= 0x1
		require.False(t, Verify(kp.PublicKey(), msg, sig, schema))
	}
}

func TestKeyPair_SchemasDiffer(t *testing.T) {
	current, err := NewKeyPairFromHex(testPrivateKey, crypto.SHA3)
	require.NoError(t, err)

	legacy, err := NewKeyPairFromHex(testPrivateKey, crypto.KeccakReversedKey)
	require.NoError(t, err)

	require.NotEqual(t, current.PublicKey(), legacy.PublicKey())

	sig := current.Sign([]byte("x"))
	require.False(t, Verify(current.PublicKey(), []byte("x"), sig, crypto.KeccakReversedKey))
}

func TestNewKeyPair_Invalid(t *testing.T) {
	_, err := NewKeyPair([]byte{1, 2}, crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = NewKeyPairFromHex("zz", crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))

	_, err = NewKeyPairFromHex(testPrivateKey[:62]+"ZZ", crypto.SHA3)
	require.True(t, xerrors.Is(err, catapult.ErrInvalidIdentifier))
}

func TestVerify_NonCanonical(t *testing.T) {
	kp, err := NewKeyPairFromHex(testPrivateKey, crypto.SHA3)
	require.NoError(t, err)

	sig := kp.Sign([]byte("x"))
	for i := 32; i < SignatureSize; i++ {
		sig[i] = 0xff
	}

	require.False(t, Verify(kp.PublicKey(), []byte("x"), sig, crypto.SHA3))
}

func TestVerify_InvalidPoint(t *testing.T) {
	var pk PublicKey
	for i := range pk {
		pk[i] = 0xff
	}

	require.False(t, Verify(pk, nil, Signature{}, crypto.SHA3))
}

func TestPublicKey_Text(t *testing.T) {
	pk, err := PublicKeyFromHex(rfcPublic)
	require.NoError(t, err)
	require.Equal(t, "D75A980182B10AB7D54BFED3C964073A0EE172F3DAA62325AF021A68F707511A", pk.String())
	require.False(t, pk.IsZero())
	require.True(t, PublicKey{}.IsZero())

	data, err := pk.MarshalText()
	require.NoError(t, err)

	var other PublicKey
	require.NoError(t, other.UnmarshalText(data))
	require.Equal(t, pk, other)

	err = other.UnmarshalText([]byte("abc"))
	require.EqualError(t, err, "malformed public key: expected 64 hex characters, got 3: invalid identifier")
}

func TestSignature_Text(t *testing.T) {
	sig, err := SignatureFromHex(rfcSignature)
	require.NoError(t, err)
	require.False(t, sig.IsZero())
	require.True(t, Signature{}.IsZero())

	data, err := sig.MarshalText()
	require.NoError(t, err)
	require.Equal(t, sig.String(), string(data))

	var other Signature
	require.NoError(t, other.UnmarshalText(data))
	require.Equal(t, sig, other)

	require.Error(t, other.UnmarshalText([]byte("00")))
}
