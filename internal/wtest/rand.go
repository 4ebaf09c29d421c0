package wtest

import (
	"math/rand/v2"
	"testing"

	"lukechampine.com/blake3"
)

// RandomDataForTest returns sz bytes of pseudorandom data,
// deterministically seeded from the test name so that
// reruns of a failing test see the same bytes.
func RandomDataForTest(t *testing.T, sz int) []byte {
	t.Helper()

	// The 32-byte digest is exactly a ChaCha8 seed,
	// and hashing means arbitrarily long test names still work.
	seed := blake3.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]byte, sz)
	if _, err := chacha.Read(out); err != nil {
		panic(err)
	}

	return out
}
