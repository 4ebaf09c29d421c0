package wspend

import (
	"encoding/binary"
	"strconv"
)

// NanoTokens is a token amount in indivisible nano units.
type NanoTokens uint64

// AppendBytes appends the canonical 8-byte big-endian form of n to dst.
// This is the representation used inside spend signable bytes,
// so it can never change.
func (n NanoTokens) AppendBytes(dst []byte) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(n))
}

func (n NanoTokens) String() string {
	return strconv.FormatUint(uint64(n), 10) + " nanos"
}
