// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

var (
	singleZero = []byte{0x00}
	singleOne  = []byte{0x01}
)

// nonceRFC6979 generates the stream of deterministic nonces defined by
// RFC6979 section 3.2 for HMAC-SHA256 over secp256k1.
type nonceRFC6979 struct {
	k []byte
	v []byte

	// generated is set once the first candidate has been produced, after
	// which every following candidate first reseeds K and V.
	generated bool
}

// newNonceRFC6979 runs steps B through G for the secret e and hash z. The
// hash is reduced modulo the group order first.
func newNonceRFC6979(secret, z *big.Int) *nonceRFC6979 {
	n := secp256k1.n
	zReduced := new(big.Int).Mod(z, n)
	key := append(bigIntTo32Bytes(secret), bigIntTo32Bytes(zReduced)...)

	// Step B.
	v := make([]byte, sha256.Size)
	for i := range v {
		v[i] = 0x01
	}

	// Step C.
	k := make([]byte, sha256.Size)

	// Step D: K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1))
	k = mac(k, v, singleZero, key)

	// Step E: V = HMAC_K(V)
	v = mac(k, v)

	// Step F: K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1))
	k = mac(k, v, singleOne, key)

	// Step G: V = HMAC_K(V)
	v = mac(k, v)

	return &nonceRFC6979{k: k, v: v}
}

// next returns the next candidate nonce in [1, N-1].
func (n *nonceRFC6979) next() *big.Int {
	for {
		if n.generated {
			n.k = mac(n.k, n.v, singleZero)
			n.v = mac(n.k, n.v)
		}
		n.generated = true

		// Step H1 through H3. The output of HMAC-SHA256 already has the bit
		// length of the group order.
		n.v = mac(n.k, n.v)
		candidate := new(big.Int).SetBytes(n.v)
		if candidate.Sign() > 0 && candidate.Cmp(secp256k1.n) < 0 {
			return candidate
		}
	}
}

func mac(key []byte, data ...[]byte) []byte {
	hasher := hmac.New(sha256.New, key)
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)
}
