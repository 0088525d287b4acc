// Package record packs an ordered set of typed fields into one contiguous
// buffer and back. Fixed-size fields occupy exactly their width. Variable
// fields get a one byte length prefix and are padded to their maximum width so
// that every field sits at a static offset.
package record

import (
	"encoding/binary"

	"github.com/ayoisaiah/hypnos/internal/apperr"
)

// Field is a value that can be stored in a record.
type Field interface {
	// Bytes returns the current encoding of the value.
	Bytes() []byte
	// Size is the length of Bytes.
	Size() int
	// MaxSize is the widest encoding the value can ever have.
	MaxSize() int
	// Variable reports whether Size may be smaller than MaxSize.
	Variable() bool
	// Replace decodes buf into the value. It must leave the value unchanged
	// when it returns an error.
	Replace(buf []byte) error
}

var errFixedLength = &apperr.Error{
	Message: "fixed field expects %d bytes, got %d",
}

// Uint8 is a one byte field.
type Uint8 uint8

func (u Uint8) Bytes() []byte  { return []byte{byte(u)} }
func (u Uint8) Size() int      { return 1 }
func (u Uint8) MaxSize() int   { return 1 }
func (u Uint8) Variable() bool { return false }

func (u *Uint8) Replace(buf []byte) error {
	if len(buf) != 1 {
		return errFixedLength.Fmt(1, len(buf))
	}

	*u = Uint8(buf[0])

	return nil
}

// Uint32 is a four byte little-endian field.
type Uint32 uint32

func (u Uint32) Bytes() []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(u))
}

func (u Uint32) Size() int      { return 4 }
func (u Uint32) MaxSize() int   { return 4 }
func (u Uint32) Variable() bool { return false }

func (u *Uint32) Replace(buf []byte) error {
	if len(buf) != 4 {
		return errFixedLength.Fmt(4, len(buf))
	}

	*u = Uint32(binary.LittleEndian.Uint32(buf))

	return nil
}
