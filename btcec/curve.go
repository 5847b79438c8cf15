// Copyright (c) 2010 The Go Authors. All rights reserved.
// Copyright (c) 2011 ThePiachu. All rights reserved.
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"
)

// Curve is a short Weierstrass curve y^2 = x^3 + a*x + b over a prime field.
// A curve may optionally carry a base point and the order of the group it
// generates, which is the case for secp256k1.
type Curve struct {
	name string
	a, b *FieldElement

	// n is the order of the group generated by g. It is nil for curves
	// without a known base point.
	n *big.Int
	g *Point
}

// NewCurve returns the curve y^2 = x^3 + a*x + b. Both coefficients must
// belong to the same field.
func NewCurve(a, b *FieldElement) (*Curve, error) {
	if err := a.sameField(b, "build a curve from"); err != nil {
		return nil, err
	}
	return &Curve{a: a, b: b}, nil
}

// A returns the a coefficient of the curve.
func (c *Curve) A() *FieldElement {
	return c.a
}

// B returns the b coefficient of the curve.
func (c *Curve) B() *FieldElement {
	return c.b
}

// P returns a copy of the order of the field the curve is defined over.
func (c *Curve) P() *big.Int {
	return c.a.Order()
}

// N returns a copy of the order of the base point group, or nil when the
// curve has none.
func (c *Curve) N() *big.Int {
	if c.n == nil {
		return nil
	}
	return new(big.Int).Set(c.n)
}

// G returns the base point of the curve, or nil when the curve has none.
func (c *Curve) G() *Point {
	return c.g
}

// Equals returns whether both curves have the same field and coefficients.
func (c *Curve) Equals(other *Curve) bool {
	if c == other {
		return true
	}
	if other == nil {
		return false
	}
	return c.a.Equals(other.a) && c.b.Equals(other.b)
}

// String returns a description of the curve.
func (c *Curve) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("y^2 = x^3 + %sx + %s mod %s", c.a.value, c.b.value, c.a.order)
}

// onCurve returns whether x and y satisfy the curve equation.
func (c *Curve) onCurve(x, y *FieldElement) bool {
	left := y.mul(y)
	right := x.mul(x).mul(x).add(c.a.mul(x)).add(c.b)
	return left.Equals(right)
}

// secp256k1 domain parameters as defined in SEC 2, section 2.4.1.
const (
	secp256k1PHex  = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"
	secp256k1NHex  = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"
	secp256k1GxHex = "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"
	secp256k1GyHex = "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"
)

var (
	secp256k1 *Curve

	// halfOrder is used to tame ECDSA malleability (see BIP-0062).
	halfOrder *big.Int
)

func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

func initS256() {
	p := fromHex(secp256k1PHex)
	a, err := NewFieldElement(big.NewInt(0), p)
	if err != nil {
		panic(err)
	}
	b, err := NewFieldElement(big.NewInt(7), p)
	if err != nil {
		panic(err)
	}
	curve, err := NewCurve(a, b)
	if err != nil {
		panic(err)
	}
	curve.name = "secp256k1"
	curve.n = fromHex(secp256k1NHex)
	if !curve.n.ProbablyPrime(primalityRounds) {
		panic("secp256k1 group order is not prime")
	}

	g, err := curve.NewPointFromInts(fromHex(secp256k1GxHex), fromHex(secp256k1GyHex))
	if err != nil {
		panic(err)
	}
	curve.g = g

	secp256k1 = curve
	halfOrder = new(big.Int).Rsh(curve.n, 1)
}

func init() {
	initS256()
}

// S256 returns the secp256k1 curve y^2 = x^3 + 7 with its standard base point.
func S256() *Curve {
	return secp256k1
}

// HalfOrder returns a copy of half the secp256k1 group order, rounded down.
// Signatures with an S value above it are considered high-S.
func HalfOrder() *big.Int {
	return new(big.Int).Set(halfOrder)
}
