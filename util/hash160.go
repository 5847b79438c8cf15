// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	sha := sha256.Sum256(buf)
	hasher := ripemd160.New()
	_, _ = hasher.Write(sha[:])
	return hasher.Sum(nil)
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes.
func DoubleHashB(buf []byte) []byte {
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return second[:]
}
