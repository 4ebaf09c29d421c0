// Package wspend implements the spend half of wren's double-spend defense:
// the types and cryptographic checks that decide whether a single signed
// spend assertion is internally valid.
//
// A spend asserts that the value identified by one [UniquePubkey]
// has been consumed by a specific transaction.
// Detecting that two distinct valid spends exist for the same key
// is the storage layer's job, using the ordering and equality
// contracts defined on [SignedSpend].
package wspend

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hash is a SHA3-256 digest.
// It is used both for content handles (spend hashes, transaction hashes)
// and as the message digest under spend signatures.
type Hash [32]byte

// HashBytes returns the hash of b.
func HashBytes(b []byte) Hash {
	return sha3.Sum256(b)
}

// Hex returns the full lowercase hex form of h.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}
