// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/scriptvm/domain/netparams"
	"github.com/kaspanet/scriptvm/util"
)

// These constants define the lengths of serialized public keys.
const (
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
)

const (
	pubkeyCompressed   byte = 0x2 // y_bit + x coord
	pubkeyUncompressed byte = 0x4 // x coord + y coord
)

// PublicKey is an affine point of secp256k1 other than the point at
// infinity.
type PublicKey struct {
	point *Point
}

// NewPublicKey wraps a point as a public key. The point must lie on
// secp256k1 and must not be the point at infinity.
func NewPublicKey(point *Point) (*PublicKey, error) {
	if !point.curve.Equals(secp256k1) {
		return nil, makeError(ErrCurveMismatch, fmt.Sprintf("public key must lie on secp256k1, not %s", point.curve))
	}
	if point.IsInfinity() {
		return nil, makeError(ErrInvalidPoint, "public key cannot be the point at infinity")
	}
	return &PublicKey{point: point}, nil
}

// Point returns the curve point of the public key.
func (p *PublicKey) Point() *Point {
	return p.point
}

// IsEqual compares this PublicKey instance to the one passed, returning true if
// both PublicKeys are equivalent.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.point.Equals(otherPubKey.point)
}

// Verify returns whether sig is a valid signature of hash by this key.
func (p *PublicKey) Verify(hash []byte, sig *Signature) bool {
	return sig.Verify(hash, p)
}

// SerializeUncompressed serializes a public key in the 65-byte SEC
// uncompressed format: 0x04 || x || y.
func (p *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenUncompressed)
	b = append(b, pubkeyUncompressed)
	b = append(b, bigIntTo32Bytes(p.point.x.value)...)
	return append(b, bigIntTo32Bytes(p.point.y.value)...)
}

// SerializeCompressed serializes a public key in the 33-byte SEC compressed
// format: 0x02 or 0x03 by the parity of y, followed by x.
func (p *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, 0, PubKeyBytesLenCompressed)
	format := pubkeyCompressed
	if p.point.y.IsOdd() {
		format |= 0x1
	}
	b = append(b, format)
	return append(b, bigIntTo32Bytes(p.point.x.value)...)
}

// Serialize serializes the key in compressed or uncompressed SEC format.
func (p *PublicKey) Serialize(compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// Hash160 returns RIPEMD160(SHA256(sec)) of the SEC serialization.
func (p *PublicKey) Hash160(compressed bool) []byte {
	return util.Hash160(p.Serialize(compressed))
}

// Address returns the base58check pay-to-pubkey-hash address of the key on
// the given network.
func (p *PublicKey) Address(params *netparams.Params, compressed bool) string {
	return base58.CheckEncode(p.Hash160(compressed), params.PubKeyHashAddrID)
}

// String returns the compressed SEC serialization in hex.
func (p *PublicKey) String() string {
	return fmt.Sprintf("%x", p.SerializeCompressed())
}

// ParsePubKey parses a public key in compressed or uncompressed SEC format.
// The resulting point is validated against the curve equation.
func ParsePubKey(pubKeyStr []byte) (*PublicKey, error) {
	if len(pubKeyStr) == 0 {
		return nil, makeError(ErrInvalidEncoding, "pubkey string is empty")
	}

	format := pubKeyStr[0]
	switch {
	case len(pubKeyStr) == PubKeyBytesLenUncompressed && format == pubkeyUncompressed:
		x := new(big.Int).SetBytes(pubKeyStr[1:33])
		y := new(big.Int).SetBytes(pubKeyStr[33:])
		if err := checkCoordinate("x", x); err != nil {
			return nil, err
		}
		if err := checkCoordinate("y", y); err != nil {
			return nil, err
		}
		point, err := secp256k1.NewPointFromInts(x, y)
		if err != nil {
			return nil, err
		}
		return &PublicKey{point: point}, nil

	case len(pubKeyStr) == PubKeyBytesLenCompressed && format&^0x1 == pubkeyCompressed:
		xValue := new(big.Int).SetBytes(pubKeyStr[1:33])
		if err := checkCoordinate("x", xValue); err != nil {
			return nil, err
		}
		x := newFieldElement(xValue, secp256k1.a.order)
		y, err := decompressY(x, format&0x1 == 0x1)
		if err != nil {
			return nil, err
		}
		return &PublicKey{point: &Point{curve: secp256k1, kind: pointAffine, x: x, y: y}}, nil

	default:
		return nil, makeError(ErrInvalidEncoding, fmt.Sprintf("invalid pub key format %#x "+
			"with length %d", format, len(pubKeyStr)))
	}
}

func checkCoordinate(name string, v *big.Int) error {
	if v.Cmp(secp256k1.a.order) >= 0 {
		return makeError(ErrInvalidEncoding, fmt.Sprintf("pubkey %s coordinate is >= field prime", name))
	}
	return nil
}

// decompressY solves y^2 = x^3 + 7 and picks the root of the requested
// parity.
func decompressY(x *FieldElement, odd bool) (*FieldElement, error) {
	right := x.mul(x).mul(x).add(secp256k1.b)
	y, err := right.Sqrt()
	if err != nil {
		return nil, makeError(ErrInvalidPoint, fmt.Sprintf("no point on the curve with x %x", x.value))
	}
	if y.IsOdd() != odd {
		y = y.Negate()
	}
	return y, nil
}
