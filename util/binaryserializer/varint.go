package binaryserializer

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxVarIntPayload is the maximum payload size for a variable length integer.
const MaxVarIntPayload = 9

// ErrNonCanonicalVarInt is returned by ReadVarInt when the value could have
// been encoded with fewer bytes.
var ErrNonCanonicalVarInt = errors.New("non-canonical varint")

// ReadVarInt reads a variable length integer from r and returns it as a uint64.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := Uint8(r)
	if err != nil {
		return 0, err
	}

	var rv, min uint64
	switch discriminant {
	case 0xff:
		rv, err = Uint64(r)
		min = 0x100000000
	case 0xfe:
		var sv uint32
		sv, err = Uint32(r)
		rv, min = uint64(sv), 0x10000
	case 0xfd:
		var sv uint16
		sv, err = Uint16(r)
		rv, min = uint64(sv), 0xfd
	default:
		return uint64(discriminant), nil
	}
	if err != nil {
		return 0, err
	}

	// The encoding is not canonical if the value could have been
	// encoded using fewer bytes.
	if rv < min {
		return 0, errors.Wrapf(ErrNonCanonicalVarInt, "%x - discriminant %x must "+
			"encode a value greater than %x", rv, discriminant, min)
	}
	return rv, nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	_, err := w.Write(AppendVarInt(nil, val))
	return errors.WithStack(err)
}

// AppendVarInt appends the variable length encoding of val to buf and returns
// the extended slice.
func AppendVarInt(buf []byte, val uint64) []byte {
	switch {
	case val < 0xfd:
		return append(buf, uint8(val))
	case val <= math.MaxUint16:
		var b [3]byte
		b[0] = 0xfd
		binary.LittleEndian.PutUint16(b[1:], uint16(val))
		return append(buf, b[:]...)
	case val <= math.MaxUint32:
		var b [5]byte
		b[0] = 0xfe
		binary.LittleEndian.PutUint32(b[1:], uint32(val))
		return append(buf, b[:]...)
	}
	var b [9]byte
	b[0] = 0xff
	binary.LittleEndian.PutUint64(b[1:], val)
	return append(buf, b[:]...)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
