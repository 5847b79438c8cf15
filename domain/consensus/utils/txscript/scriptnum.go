// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math"
)

const (
	// maxScriptNumLen is the maximum number of bytes data being interpreted
	// as an integer may be.
	maxScriptNumLen = 8

	// maxScriptNum is the largest magnitude representable in maxScriptNumLen
	// bytes of sign-magnitude encoding.
	maxScriptNum = math.MaxInt64
)

// scriptNum represents a numeric value used in the scripting engine.
//
// All numbers are stored on the data and alternate stacks encoded as little
// endian with a sign bit. An empty byte slice is zero. The most significant
// bit of the last byte is the sign bit, so an extra 0x00 or 0x80 byte is
// appended when the magnitude already uses that bit:
//
//	0     -> []
//	-1    -> [0x81]
//	127   -> [0x7f]
//	128   -> [0x80 0x00]
//	-128  -> [0x80 0x80]
//	255   -> [0xff 0x00]
//	-255  -> [0xff 0x80]
//
// Values decoded from the stack are limited to maxScriptNumLen bytes, and all
// arithmetic is checked so results stay within that range.
type scriptNum int64

// Bytes returns the number serialized as a little endian with a sign bit.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	result := make([]byte, 0, maxScriptNumLen+1)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// When the most significant byte already has the high bit set, an
	// additional byte is required to carry the sign. Otherwise the sign
	// bit is folded into the last byte.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 returns the script number clamped to a valid int32.
func (n scriptNum) Int32() int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int32(n)
}

// makeScriptNum interprets the passed serialized bytes as an encoded integer
// and returns the result as a script number. Encodings longer than
// maxScriptNumLen fail with ErrNumberTooBig.
//
// Non-minimal encodings, including negative zero, are accepted.
func makeScriptNum(v []byte) (scriptNum, error) {
	if len(v) > maxScriptNumLen {
		str := fmt.Sprintf("numeric value encoded as %x is %d bytes which "+
			"exceeds the max allowed of %d", v, len(v), maxScriptNumLen)
		return 0, scriptError(ErrNumberTooBig, str)
	}

	if len(v) == 0 {
		return 0, nil
	}

	var magnitude uint64
	for i, val := range v {
		magnitude |= uint64(val) << uint8(8*i)
	}

	// The sign lives in the most significant bit of the last byte.
	signBit := uint64(0x80) << uint8(8*(len(v)-1))
	if magnitude&signBit != 0 {
		return -scriptNum(magnitude &^ signBit), nil
	}
	return scriptNum(magnitude), nil
}

// addScriptNums returns a+b, failing with ErrNumberTooBig when the sum can't
// be encoded in maxScriptNumLen bytes.
func addScriptNums(a, b scriptNum) (scriptNum, error) {
	if (b > 0 && a > maxScriptNum-b) || (b < 0 && a < -maxScriptNum-b) {
		str := fmt.Sprintf("%d + %d overflows the numeric range", a, b)
		return 0, scriptError(ErrNumberTooBig, str)
	}
	return a + b, nil
}

// subScriptNums returns a-b with the same range check as addScriptNums.
func subScriptNums(a, b scriptNum) (scriptNum, error) {
	return addScriptNums(a, -b)
}
