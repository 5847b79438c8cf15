// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"
)

const (
	// asn1SequenceID is the ASN.1 identifier for a sequence.
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer.
	asn1IntegerID = 0x02
)

// Serialize returns the signature in the Distinguished Encoding Rules (DER)
// format:
//
// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// R and S use the minimum number of big-endian bytes, with a leading zero
// byte only when the high bit of the first byte is set.
func (sig *Signature) Serialize() []byte {
	canonR := canonicalizeInt(sig.r)
	canonS := canonicalizeInt(sig.s)

	// Total length of returned signature is 1 byte for each magic and length
	// (6 total), plus lengths of R and S.
	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// canonicalizeInt returns the bytes for the passed big integer adjusted as
// necessary to ensure that a big-endian encoded integer can't possibly be
// misinterpreted as a negative number.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}

// ParseDERSignature parses a DER encoded signature. The encoding must be
// strict in the sense of BIP-0066: single byte lengths that account for every
// byte, no negative integers and no excess zero padding. R and S must then be
// in [1, N-1]. S values above half the group order are accepted, since
// deciding whether to enforce low S is up to the caller.
func ParseDERSignature(sig []byte) (*Signature, error) {
	const (
		// minSigLen is the minimum length of a DER encoded signature and is
		// when both R and S are 1 byte each.
		minSigLen = 8

		// maxSigLen is the maximum length of a DER encoded signature and is
		// when both R and S are 33 bytes each.
		maxSigLen = 72

		sequenceOffset = 0
		dataLenOffset  = 1
		rTypeOffset    = 2
		rLenOffset     = 3
		rOffset        = 4
	)

	sigLen := len(sig)
	if sigLen < minSigLen {
		return nil, derError(fmt.Sprintf("too short: %d < %d", sigLen, minSigLen))
	}
	if sigLen > maxSigLen {
		return nil, derError(fmt.Sprintf("too long: %d > %d", sigLen, maxSigLen))
	}

	if sig[sequenceOffset] != asn1SequenceID {
		return nil, derError(fmt.Sprintf("format has wrong type: %#x", sig[sequenceOffset]))
	}

	if int(sig[dataLenOffset]) != sigLen-2 {
		return nil, derError(fmt.Sprintf("bad length: %d != %d", sig[dataLenOffset], sigLen-2))
	}

	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		return nil, derError("S type indicator missing")
	}
	if sLenOffset >= sigLen {
		return nil, derError("S length missing")
	}

	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		return nil, derError("invalid S length")
	}

	r, err := parseDERInteger("R", sig[rTypeOffset], sig[rOffset:rOffset+rLen])
	if err != nil {
		return nil, err
	}
	s, err := parseDERInteger("S", sig[sTypeOffset], sig[sOffset:sOffset+sLen])
	if err != nil {
		return nil, err
	}

	return NewSignatureAllowHighS(r, s)
}

func parseDERInteger(name string, typeID byte, data []byte) (*big.Int, error) {
	if typeID != asn1IntegerID {
		return nil, derError(fmt.Sprintf("%s integer marker: %#x != %#x", name, typeID, asn1IntegerID))
	}
	if len(data) == 0 {
		return nil, derError(fmt.Sprintf("%s length is zero", name))
	}
	if data[0]&0x80 != 0 {
		return nil, derError(fmt.Sprintf("%s is negative", name))
	}

	// Null bytes at the start are not allowed, unless the value would
	// otherwise be interpreted as a negative number.
	if len(data) > 1 && data[0] == 0x00 && data[1]&0x80 == 0 {
		return nil, derError(fmt.Sprintf("%s value has too much padding", name))
	}
	return new(big.Int).SetBytes(data), nil
}

func derError(description string) error {
	return makeError(ErrInvalidEncoding, "malformed signature: "+description)
}
