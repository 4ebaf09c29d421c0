package wrec_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrennet/wren/internal/wtest"
	"github.com/wrennet/wren/wrec"
	"lukechampine.com/blake3"
)

func TestChunk_address(t *testing.T) {
	t.Parallel()

	data := wtest.RandomDataForTest(t, 256)

	c := wrec.Chunk{Value: data}
	require.Equal(t, wrec.ChunkAddress(blake3.Sum256(data)), c.Address())

	// Same content, same address, regardless of the chunk instance.
	again := wrec.Chunk{Value: append([]byte(nil), data...)}
	require.Equal(t, c.Address(), again.Address())

	other := wrec.Chunk{Value: append(data, 'x')}
	require.NotEqual(t, c.Address(), other.Address())
}

func TestPrettyKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", wrec.PrettyKey(nil))
	require.Equal(t, "0102", wrec.PrettyKey([]byte{1, 2}))

	long := make([]byte, 32)
	for i := range long {
		long[i] = byte(i)
	}
	require.Equal(t, "00010203..1c1d1e1f", wrec.PrettyKey(long))
}
