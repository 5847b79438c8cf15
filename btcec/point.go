// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"
)

type pointKind uint8

const (
	pointInfinity pointKind = iota
	pointAffine
)

// Point is either the point at infinity of a curve or an affine point (x, y)
// satisfying the curve equation. Points are immutable.
type Point struct {
	curve *Curve
	kind  pointKind
	x, y  *FieldElement
}

// NewPoint returns the affine point (x, y) on the curve. Both coordinates must
// belong to the field of the curve and satisfy its equation, otherwise
// ErrFieldMismatch or ErrInvalidPoint is returned.
func (c *Curve) NewPoint(x, y *FieldElement) (*Point, error) {
	if err := c.a.sameField(x, "place on the curve"); err != nil {
		return nil, err
	}
	if err := c.a.sameField(y, "place on the curve"); err != nil {
		return nil, err
	}
	if !c.onCurve(x, y) {
		return nil, makeError(ErrInvalidPoint, fmt.Sprintf("(%s, %s) is not on the curve %s",
			x.value, y.value, c))
	}
	return &Point{curve: c, kind: pointAffine, x: x, y: y}, nil
}

// NewPointFromInts is like NewPoint with the coordinates given as integers of
// the curve field.
func (c *Curve) NewPointFromInts(x, y *big.Int) (*Point, error) {
	p := c.a.order
	fx, err := NewFieldElement(x, p)
	if err != nil {
		return nil, err
	}
	fy, err := NewFieldElement(y, p)
	if err != nil {
		return nil, err
	}
	return c.NewPoint(fx, fy)
}

// Infinity returns the point at infinity of the curve, the identity of point
// addition.
func (c *Curve) Infinity() *Point {
	return &Point{curve: c, kind: pointInfinity}
}

// Curve returns the curve the point belongs to.
func (p *Point) Curve() *Curve {
	return p.curve
}

// IsInfinity returns whether the point is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.kind == pointInfinity
}

// X returns the x coordinate, or nil for the point at infinity.
func (p *Point) X() *FieldElement {
	return p.x
}

// Y returns the y coordinate, or nil for the point at infinity.
func (p *Point) Y() *FieldElement {
	return p.y
}

// Equals returns whether both points lie on the same curve and are either
// both the point at infinity or have equal coordinates.
func (p *Point) Equals(other *Point) bool {
	if other == nil || !p.curve.Equals(other.curve) || p.kind != other.kind {
		return false
	}
	if p.kind == pointInfinity {
		return true
	}
	return p.x.Equals(other.x) && p.y.Equals(other.y)
}

// Add returns p + other using the chord and tangent rules. Points of
// different curves can't be added and yield ErrCurveMismatch.
func (p *Point) Add(other *Point) (*Point, error) {
	if !p.curve.Equals(other.curve) {
		return nil, makeError(ErrCurveMismatch, fmt.Sprintf("cannot add points of curves %s and %s",
			p.curve, other.curve))
	}
	return p.add(other), nil
}

func (p *Point) add(other *Point) *Point {
	switch {
	case p.kind == pointInfinity:
		return other
	case other.kind == pointInfinity:
		return p
	}

	var slope *FieldElement
	if p.x.Equals(other.x) {
		// Either other is -p, or p is doubled with a vertical tangent.
		if !p.y.Equals(other.y) || p.y.IsZero() {
			return p.curve.Infinity()
		}
		// s = (3x^2 + a) / 2y
		numerator := p.x.mul(p.x).MulInt(3).add(p.curve.a)
		slope = numerator.div(p.y.MulInt(2))
	} else {
		// s = (y2 - y1) / (x2 - x1)
		slope = other.y.sub(p.y).div(other.x.sub(p.x))
	}

	x3 := slope.mul(slope).sub(p.x).sub(other.x)
	y3 := slope.mul(p.x.sub(x3)).sub(p.y)
	return &Point{curve: p.curve, kind: pointAffine, x: x3, y: y3}
}

// Negate returns -p.
func (p *Point) Negate() *Point {
	if p.kind == pointInfinity {
		return p
	}
	return &Point{curve: p.curve, kind: pointAffine, x: p.x, y: p.y.Negate()}
}

// ScalarMul returns k*p using binary double-and-add. On curves with a known
// group order, such as secp256k1, k is first reduced modulo that order.
// Otherwise a negative k multiplies the negated point.
func (p *Point) ScalarMul(k *big.Int) *Point {
	coefficient := new(big.Int).Set(k)
	current := p
	if p.curve.n != nil {
		coefficient.Mod(coefficient, p.curve.n)
	} else if coefficient.Sign() < 0 {
		coefficient.Neg(coefficient)
		current = p.Negate()
	}

	result := p.curve.Infinity()
	for i := 0; i < coefficient.BitLen(); i++ {
		if coefficient.Bit(i) == 1 {
			result = result.add(current)
		}
		current = current.add(current)
	}
	return result
}

// String returns the point formatted as Point(x, y), or Point(infinity).
func (p *Point) String() string {
	if p.kind == pointInfinity {
		return "Point(infinity)"
	}
	return fmt.Sprintf("Point(%x, %x)", p.x.value, p.y.value)
}
