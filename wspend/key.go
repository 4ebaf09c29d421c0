package wspend

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// UniquePubkeySize is the size of a compressed secp256k1 public key.
const UniquePubkeySize = 33

// UniquePubkey identifies exactly one spendable value.
// It is the compressed serialization of a secp256k1 public key.
//
// The key doubles as the grouping identity for spends:
// the storage layer sorts spend records by this key alone,
// so its total order is part of the protocol contract.
type UniquePubkey [UniquePubkeySize]byte

// Compare orders keys by their serialized bytes, ascending.
func (u UniquePubkey) Compare(o UniquePubkey) int {
	return bytes.Compare(u[:], o[:])
}

// Verify reports whether sig is a valid signature over msg under u.
//
// Any failure to parse the key or the signature
// is reported as an invalid signature;
// there is no caller distinction between
// "garbage signature bytes" and "wrong signer".
func (u UniquePubkey) Verify(sig Signature, msg []byte) bool {
	pk, err := secp256k1.ParsePubKey(u[:])
	if err != nil {
		return false
	}

	s, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}

	digest := HashBytes(msg)
	return s.Verify(digest[:], pk)
}

// Hex returns the full hex form of the key.
func (u UniquePubkey) Hex() string {
	return hex.EncodeToString(u[:])
}

func (u UniquePubkey) String() string {
	return "UniquePubkey(" + u.Hex() + ")"
}

// Signature is a DER-serialized ECDSA signature.
type Signature []byte

// DerivedSecretKey is the signing capability for one spendable value.
// Its public half is the value's [UniquePubkey].
type DerivedSecretKey struct {
	priv *secp256k1.PrivateKey
}

// GenerateDerivedKey returns a fresh derived secret key.
func GenerateDerivedKey() (DerivedSecretKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return DerivedSecretKey{}, fmt.Errorf("failed to generate derived secret key: %w", err)
	}
	return DerivedSecretKey{priv: priv}, nil
}

// UniquePubkey returns the public key identifying the value this key can spend.
func (k DerivedSecretKey) UniquePubkey() UniquePubkey {
	var u UniquePubkey
	copy(u[:], k.priv.PubKey().SerializeCompressed())
	return u
}

// Sign signs msg (after hashing) with k.
func (k DerivedSecretKey) Sign(msg []byte) Signature {
	digest := HashBytes(msg)
	return ecdsa.Sign(k.priv, digest[:]).Serialize()
}
