package wrec

import (
	"errors"
	"fmt"
)

// ErrHeaderTooShort is returned when a raw record value is too small
// to contain a header plus any payload at all.
var ErrHeaderTooShort = errors.New("record value too short to contain a header")

// ErrRecordTooShort is returned when a raw record value ends
// before any payload bytes follow the header.
var ErrRecordTooShort = errors.New("record value has no payload after the header")

// UnknownKindError is returned when a header carries a kind ordinal
// outside the supported set.
// The record is inadmissible; it may have been written
// by a newer protocol version.
type UnknownKindError struct {
	Ordinal uint64
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown record kind ordinal %d", e.Ordinal)
}

// MalformedHeaderError is returned when the leading bytes of a record
// do not decode as a header at all.
type MalformedHeaderError struct {
	Err error
}

func (e MalformedHeaderError) Error() string {
	return "malformed record header: " + e.Err.Error()
}

func (e MalformedHeaderError) Unwrap() error { return e.Err }

// PayloadError is returned when a record payload is present
// but does not decode as the expected type.
type PayloadError struct {
	Err error
}

func (e PayloadError) Error() string {
	return "failed to decode record payload: " + e.Err.Error()
}

func (e PayloadError) Unwrap() error { return e.Err }
