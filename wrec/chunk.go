package wrec

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// ChunkAddress is the content address of a chunk:
// the BLAKE3 hash of its value.
type ChunkAddress [32]byte

func (a ChunkAddress) String() string {
	return hex.EncodeToString(a[:])
}

// Chunk is an opaque blob of content-addressed data.
// Its network address is derived from its content,
// so a chunk can never be modified in place.
type Chunk struct {
	Value []byte `msgpack:"value"`
}

// Address returns the chunk's content address.
func (c Chunk) Address() ChunkAddress {
	return blake3.Sum256(c.Value)
}
