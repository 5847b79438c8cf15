// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"
)

// Signature is a type representing an ECDSA signature over secp256k1.
type Signature struct {
	r *big.Int
	s *big.Int
}

// NewSignature returns the signature (r, s). Both values must be in [1, N-1]
// and s must not exceed half the group order, otherwise ErrRange or ErrHighS
// is returned.
func NewSignature(r, s *big.Int) (*Signature, error) {
	sig, err := NewSignatureAllowHighS(r, s)
	if err != nil {
		return nil, err
	}
	if sig.IsHighS() {
		return nil, makeError(ErrHighS, fmt.Sprintf("signature S %x is above half the group order", s))
	}
	return sig, nil
}

// NewSignatureAllowHighS is like NewSignature but accepts an s value above
// half the group order. It is intended for verifying signatures produced by
// signers that don't normalize s.
func NewSignatureAllowHighS(r, s *big.Int) (*Signature, error) {
	if err := checkScalarRange("R", r); err != nil {
		return nil, err
	}
	if err := checkScalarRange("S", s); err != nil {
		return nil, err
	}
	return &Signature{r: new(big.Int).Set(r), s: new(big.Int).Set(s)}, nil
}

func checkScalarRange(name string, v *big.Int) error {
	if v.Sign() <= 0 || v.Cmp(secp256k1.n) >= 0 {
		return makeError(ErrRange, fmt.Sprintf("signature %s %x not in range [1, N-1]", name, v))
	}
	return nil
}

// R returns a copy of the r value of the signature.
func (sig *Signature) R() *big.Int {
	return new(big.Int).Set(sig.r)
}

// S returns a copy of the s value of the signature.
func (sig *Signature) S() *big.Int {
	return new(big.Int).Set(sig.s)
}

// IsHighS returns whether s is greater than half the group order.
func (sig *Signature) IsHighS() bool {
	return sig.s.Cmp(halfOrder) > 0
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent. A signature is equivalent to another, if
// they both have the same scalar value for R and S.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Cmp(otherSig.r) == 0 &&
		sig.s.Cmp(otherSig.s) == 0
}

// Verify returns whether the signature is valid for the message hash z and
// the public key. The hash is interpreted as a big-endian integer.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) bool {
	return verifyECDSA(pubKey, new(big.Int).SetBytes(hash), sig.r, sig.s)
}

// verifyECDSA checks R == (z/s)*G + (r/s)*P and r == R.x mod N.
func verifyECDSA(pubKey *PublicKey, z, r, s *big.Int) bool {
	n := secp256k1.n
	if r.Sign() <= 0 || r.Cmp(n) >= 0 || s.Sign() <= 0 || s.Cmp(n) >= 0 {
		return false
	}

	sInv := new(big.Int).Exp(s, new(big.Int).Sub(n, two), n)
	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, n)
	v := new(big.Int).Mul(r, sInv)
	v.Mod(v, n)

	total := secp256k1.g.ScalarMul(u).add(pubKey.point.ScalarMul(v))
	if total.IsInfinity() {
		return false
	}
	x := new(big.Int).Mod(total.x.value, n)
	return x.Cmp(r) == 0
}

// SerializeFixed returns the 64-byte encoding of the signature: r and s
// each as 32-byte big-endian integers.
func (sig *Signature) SerializeFixed() []byte {
	return append(bigIntTo32Bytes(sig.r), bigIntTo32Bytes(sig.s)...)
}

// ParseFixedSignature parses a 64-byte r||s signature. Values above half
// the group order are accepted for s.
func ParseFixedSignature(sigStr []byte) (*Signature, error) {
	if len(sigStr) != 64 {
		return nil, makeError(ErrInvalidEncoding, fmt.Sprintf("malformed fixed signature: "+
			"%d bytes instead of 64", len(sigStr)))
	}
	r := new(big.Int).SetBytes(sigStr[:32])
	s := new(big.Int).SetBytes(sigStr[32:])
	return NewSignatureAllowHighS(r, s)
}

// String returns the signature as Signature(r, s) in hex.
func (sig *Signature) String() string {
	return fmt.Sprintf("Signature(%x, %x)", sig.r, sig.s)
}

// bigIntTo32Bytes pads a big int bytes with leading zeros if they
// are missing to get the length up to 32 bytes.
func bigIntTo32Bytes(val *big.Int) []byte {
	b := make([]byte, 32)
	return val.FillBytes(b)
}

// sign produces a deterministic low-S signature of z using RFC6979 nonces.
func sign(privateKey *PrivateKey, hash []byte) *Signature {
	n := secp256k1.n
	z := new(big.Int).SetBytes(hash)
	nonces := newNonceRFC6979(privateKey.d, z)
	for {
		k := nonces.next()

		r := new(big.Int).Mod(secp256k1.g.ScalarMul(k).x.value, n)
		if r.Sign() == 0 {
			continue
		}

		// s = (z + r*e) / k
		kInv := new(big.Int).Exp(k, new(big.Int).Sub(n, two), n)
		s := new(big.Int).Mul(r, privateKey.d)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, n)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfOrder) > 0 {
			s.Sub(n, s)
		}
		return &Signature{r: r, s: s}
	}
}
