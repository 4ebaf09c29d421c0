package wrec_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrennet/wren/internal/wtest"
	"github.com/wrennet/wren/wrec"
)

var allKinds = []wrec.Kind{
	wrec.KindChunkWithPayment,
	wrec.KindChunk,
	wrec.KindSpend,
	wrec.KindRegister,
	wrec.KindRegisterWithPayment,
}

func TestHeader_encodedSize(t *testing.T) {
	t.Parallel()

	// Every stored record on the network was framed with a
	// HeaderSize-byte header; any kind encoding larger than that
	// breaks the framing of existing records.
	for _, k := range allKinds {
		b, err := wrec.EncodeHeader(k)
		require.NoError(t, err)
		require.Len(t, b, wrec.HeaderSize, "kind %v", k)
	}
}

func TestHeader_roundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range allKinds {
		b, err := wrec.EncodeHeader(k)
		require.NoError(t, err)

		h, err := wrec.DecodeHeader(b)
		require.NoError(t, err)
		require.Equal(t, k, h.Kind)
	}
}

func TestEncodeHeader_rejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := wrec.EncodeHeader(wrec.Kind(9))

	var unknown wrec.UnknownKindError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, uint64(9), unknown.Ordinal)
}

func TestDecodeHeader_unknownOrdinal(t *testing.T) {
	t.Parallel()

	// 0x91 is a one-element msgpack array; the second byte is the
	// kind ordinal as a positive fixint. 5 is the first unassigned
	// ordinal, 0x2a an arbitrary future one.
	for _, ordinal := range []byte{5, 0x2a} {
		_, err := wrec.DecodeHeader([]byte{0x91, ordinal})

		var unknown wrec.UnknownKindError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, uint64(ordinal), unknown.Ordinal)
	}
}

func TestDecodeHeader_malformed(t *testing.T) {
	t.Parallel()

	for name, b := range map[string][]byte{
		"empty":           {},
		"truncated array": {0x91},
		"not an array":    {0xa3, 'a', 'b', 'c'},
		"kind not an int": {0x91, 0xa1, 'x'},
	} {
		_, err := wrec.DecodeHeader(b)

		var malformed wrec.MalformedHeaderError
		require.ErrorAs(t, err, &malformed, "input %q", name)
	}
}

func TestHeaderFromRecord(t *testing.T) {
	t.Parallel()

	value, err := wrec.MarshalRecord(
		wrec.Chunk{Value: wtest.RandomDataForTest(t, 64)},
		wrec.KindChunk,
	)
	require.NoError(t, err)

	h, err := wrec.HeaderFromRecord(value)
	require.NoError(t, err)
	require.Equal(t, wrec.KindChunk, h.Kind)
}

func TestHeaderFromRecord_tooShort(t *testing.T) {
	t.Parallel()

	hdr, err := wrec.EncodeHeader(wrec.KindChunk)
	require.NoError(t, err)

	// A bare header with no payload byte at all is below the
	// HeaderSize+1 minimum a stored value must carry.
	for _, value := range [][]byte{nil, {0x91}, hdr} {
		_, err := wrec.HeaderFromRecord(value)
		require.ErrorIs(t, err, wrec.ErrHeaderTooShort)
	}
}

func TestIsChunk(t *testing.T) {
	t.Parallel()

	chunkValue, err := wrec.MarshalRecord(
		wrec.Chunk{Value: wtest.RandomDataForTest(t, 32)},
		wrec.KindChunk,
	)
	require.NoError(t, err)

	got, err := wrec.IsChunk(chunkValue)
	require.NoError(t, err)
	require.True(t, got)

	registerValue, err := wrec.MarshalRecord(
		map[string]string{"name": "r1"},
		wrec.KindRegister,
	)
	require.NoError(t, err)

	got, err = wrec.IsChunk(registerValue)
	require.NoError(t, err)
	require.False(t, got)

	_, err = wrec.IsChunk([]byte{0x91})
	require.ErrorIs(t, err, wrec.ErrHeaderTooShort)
}

func TestRecord_roundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `msgpack:"name"`
		Blob  []byte `msgpack:"blob"`
		Count uint32 `msgpack:"count"`
	}

	want := payload{
		Name:  "round-trip",
		Blob:  wtest.RandomDataForTest(t, 128),
		Count: 7,
	}

	for _, k := range allKinds {
		value, err := wrec.MarshalRecord(want, k)
		require.NoError(t, err)

		h, err := wrec.HeaderFromRecord(value)
		require.NoError(t, err)
		require.Equal(t, k, h.Kind)

		var got payload
		require.NoError(t, wrec.UnmarshalRecord(value, &got))
		require.Equal(t, want, got)
	}
}

func TestUnmarshalRecord_tooShort(t *testing.T) {
	t.Parallel()

	hdr, err := wrec.EncodeHeader(wrec.KindSpend)
	require.NoError(t, err)

	var out []byte
	for _, value := range [][]byte{nil, {0x91}, hdr} {
		err := wrec.UnmarshalRecord(value, &out)
		require.ErrorIs(t, err, wrec.ErrRecordTooShort)
	}
}

func TestUnmarshalRecord_payloadMismatch(t *testing.T) {
	t.Parallel()

	value, err := wrec.MarshalRecord(
		wrec.Chunk{Value: wtest.RandomDataForTest(t, 16)},
		wrec.KindChunk,
	)
	require.NoError(t, err)

	var wrong []uint64
	err = wrec.UnmarshalRecord(value, &wrong)

	var payloadErr wrec.PayloadError
	require.ErrorAs(t, err, &payloadErr)
}
