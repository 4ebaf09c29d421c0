// Package wrec defines the typed byte layout shared by every value
// stored in the wren DHT: a fixed-size header carrying the record kind,
// followed by a kind-specific MessagePack payload.
//
// The header encoding is a compatibility contract.
// Every node that has ever stored a record framed it with this header,
// so the header size and the kind ordinals can never change;
// new kinds may only be appended with new ordinals.
package wrec

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Kind is the type tag at the front of every stored record value.
type Kind uint8

const (
	// The ordinals here are wire values, stable forever.
	// Not using iota, to avoid any possibility of
	// values silently shifting across the wire
	// if the declarations are reordered.

	KindChunkWithPayment    Kind = 0
	KindChunk               Kind = 1
	KindSpend               Kind = 2
	KindRegister            Kind = 3
	KindRegisterWithPayment Kind = 4
)

func (k Kind) valid() bool {
	switch k {
	case KindChunkWithPayment, KindChunk, KindSpend, KindRegister, KindRegisterWithPayment:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindChunkWithPayment:
		return "ChunkWithPayment"
	case KindChunk:
		return "Chunk"
	case KindSpend:
		return "Spend"
	case KindRegister:
		return "Register"
	case KindRegisterWithPayment:
		return "RegisterWithPayment"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// EncodeMsgpack implements [msgpack.CustomEncoder],
// writing the kind's explicit wire ordinal.
// Encoding an out-of-set kind is refused,
// so a bad in-memory value can never leak onto the wire.
func (k Kind) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !k.valid() {
		return UnknownKindError{Ordinal: uint64(k)}
	}
	return enc.EncodeUint(uint64(k))
}

// DecodeMsgpack implements [msgpack.CustomDecoder].
// Ordinals outside the supported set fail with [UnknownKindError].
func (k *Kind) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeUint64()
	if err != nil {
		return MalformedHeaderError{Err: err}
	}

	switch n {
	case 0:
		*k = KindChunkWithPayment
	case 1:
		*k = KindChunk
	case 2:
		*k = KindSpend
	case 3:
		*k = KindRegister
	case 4:
		*k = KindRegisterWithPayment
	default:
		return UnknownKindError{Ordinal: n}
	}

	return nil
}

// Header is the typed prefix of every stored record value.
type Header struct {
	// Encode as a MessagePack array, not a map,
	// so the header lands in exactly [HeaderSize] bytes:
	// a one-byte array frame and a one-byte kind ordinal.
	_msgpack struct{} `msgpack:",as_array"`

	Kind Kind
}

// HeaderSize is the exact encoded size of a [Header], for any kind.
// Growing this breaks the framing of every record already stored
// on the network, so it is asserted in tests for every kind.
const HeaderSize = 2

// EncodeHeader returns the wire encoding of a header for kind k.
func EncodeHeader(k Kind) ([]byte, error) {
	b, err := msgpack.Marshal(Header{Kind: k})
	if err != nil {
		// Marshal only fails here through the Kind custom encoder.
		return nil, fmt.Errorf("failed to encode record header: %w", err)
	}
	return b, nil
}

// DecodeHeader decodes a header from the front of b.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if err := msgpack.Unmarshal(b, &h); err != nil {
		// The kind errors are already ours; don't double-wrap them.
		var unknown UnknownKindError
		if errors.As(err, &unknown) {
			return Header{}, unknown
		}
		var malformed MalformedHeaderError
		if errors.As(err, &malformed) {
			return Header{}, malformed
		}
		return Header{}, MalformedHeaderError{Err: err}
	}
	return h, nil
}

// HeaderFromRecord extracts and decodes the header
// from the front of a raw stored record value.
//
// The value must be at least HeaderSize+1 bytes,
// and exactly HeaderSize+1 bytes are handed to the decoder.
// The extra byte beyond the nominal header size is part of the
// stored-record framing contract; it must not be "corrected" to
// HeaderSize, or framing of existing records changes.
func HeaderFromRecord(value []byte) (Header, error) {
	if len(value) < HeaderSize+1 {
		return Header{}, ErrHeaderTooShort
	}
	return DecodeHeader(value[:HeaderSize+1])
}

// IsChunk reports whether the raw record value holds a chunk.
func IsChunk(value []byte) (bool, error) {
	h, err := HeaderFromRecord(value)
	if err != nil {
		return false, err
	}
	return h.Kind == KindChunk, nil
}

// MarshalRecord produces the canonical stored-value layout for payload:
// the encoded header for kind, followed by the MessagePack payload bytes.
func MarshalRecord(payload any, kind Kind) ([]byte, error) {
	hdr, err := EncodeHeader(kind)
	if err != nil {
		return nil, err
	}

	pb, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, PayloadError{Err: err}
	}

	return append(hdr, pb...), nil
}

// UnmarshalRecord strips the leading header bytes from a raw record value
// and decodes the remainder into out, which must be a pointer.
//
// Use [HeaderFromRecord] first if the kind is not already known.
func UnmarshalRecord(value []byte, out any) error {
	if len(value) <= HeaderSize {
		return ErrRecordTooShort
	}
	if err := msgpack.Unmarshal(value[HeaderSize:], out); err != nil {
		return PayloadError{Err: err}
	}
	return nil
}
