// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"fmt"
	"math/big"
)

// primalityRounds is the number of Miller-Rabin rounds used to check the
// order of a field on construction.
const primalityRounds = 20

var (
	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// FieldElement is an element of the finite field of integers modulo a prime
// order. It is an immutable value: every operation returns a new element.
type FieldElement struct {
	value *big.Int
	order *big.Int
}

// NewFieldElement returns the element value of the field of the given prime
// order. It fails with ErrRange unless 0 <= value < order, and with
// ErrNotPrime when order is not prime.
func NewFieldElement(value, order *big.Int) (*FieldElement, error) {
	if order.Cmp(two) < 0 || !order.ProbablyPrime(primalityRounds) {
		return nil, makeError(ErrNotPrime, fmt.Sprintf("field order %s is not prime", order))
	}
	if value.Sign() < 0 || value.Cmp(order) >= 0 {
		return nil, makeError(ErrRange, fmt.Sprintf("value %s not in field range 0 to %s",
			value, new(big.Int).Sub(order, one)))
	}
	return newFieldElement(value, order), nil
}

// newFieldElement builds an element whose order is already known to be
// prime. The value is reduced into range.
func newFieldElement(value, order *big.Int) *FieldElement {
	v := new(big.Int).Mod(value, order)
	return &FieldElement{value: v, order: order}
}

// Value returns a copy of the integer value of the element.
func (e *FieldElement) Value() *big.Int {
	return new(big.Int).Set(e.value)
}

// Order returns a copy of the order of the field the element belongs to.
func (e *FieldElement) Order() *big.Int {
	return new(big.Int).Set(e.order)
}

// IsZero returns whether the element is the additive identity.
func (e *FieldElement) IsZero() bool {
	return e.value.Sign() == 0
}

// IsOdd returns whether the integer value of the element is odd.
func (e *FieldElement) IsOdd() bool {
	return e.value.Bit(0) == 1
}

// Equals returns whether both elements belong to the same field and have the
// same value.
func (e *FieldElement) Equals(other *FieldElement) bool {
	if other == nil {
		return false
	}
	return e.order.Cmp(other.order) == 0 && e.value.Cmp(other.value) == 0
}

func (e *FieldElement) sameField(other *FieldElement, operation string) error {
	if e.order.Cmp(other.order) != 0 {
		return makeError(ErrFieldMismatch, fmt.Sprintf("cannot %s elements of fields "+
			"of order %s and %s", operation, e.order, other.order))
	}
	return nil
}

// Add returns e + other.
func (e *FieldElement) Add(other *FieldElement) (*FieldElement, error) {
	if err := e.sameField(other, "add"); err != nil {
		return nil, err
	}
	return e.add(other), nil
}

// Sub returns e - other.
func (e *FieldElement) Sub(other *FieldElement) (*FieldElement, error) {
	if err := e.sameField(other, "subtract"); err != nil {
		return nil, err
	}
	return e.sub(other), nil
}

// Mul returns e * other.
func (e *FieldElement) Mul(other *FieldElement) (*FieldElement, error) {
	if err := e.sameField(other, "multiply"); err != nil {
		return nil, err
	}
	return e.mul(other), nil
}

// Div returns e / other, computed as e * other^(p-2) by Fermat's little
// theorem.
func (e *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if err := e.sameField(other, "divide"); err != nil {
		return nil, err
	}
	if other.IsZero() {
		return nil, makeError(ErrDivideByZero, "division by the zero element")
	}
	return e.div(other), nil
}

// Exp returns e^exponent. The exponent may be negative or arbitrarily large:
// it is reduced modulo p-1 first. The zero element is not reduced: 0^0 is 1
// and 0 raised to any other exponent is 0.
func (e *FieldElement) Exp(exponent *big.Int) *FieldElement {
	if e.IsZero() {
		if exponent.Sign() == 0 {
			return newFieldElement(one, e.order)
		}
		return newFieldElement(zero, e.order)
	}
	orderMinusOne := new(big.Int).Sub(e.order, one)
	n := new(big.Int).Mod(exponent, orderMinusOne)
	return &FieldElement{value: new(big.Int).Exp(e.value, n, e.order), order: e.order}
}

// MulInt returns e * k where k is an integer that is not a field element,
// such as the coefficients 2 and 3 used in point doubling.
func (e *FieldElement) MulInt(k int64) *FieldElement {
	v := new(big.Int).Mul(e.value, big.NewInt(k))
	return newFieldElement(v, e.order)
}

// Negate returns -e.
func (e *FieldElement) Negate() *FieldElement {
	return newFieldElement(new(big.Int).Neg(e.value), e.order)
}

// Sqrt returns a square root of e as e^((p+1)/4). This shortcut only works
// for fields whose order is congruent to 3 modulo 4, such as the secp256k1
// field. The other root is the negation of the returned one. ErrNoSquareRoot
// is returned when the order doesn't allow the shortcut or e is not a
// quadratic residue.
func (e *FieldElement) Sqrt() (*FieldElement, error) {
	if new(big.Int).Mod(e.order, four).Cmp(three) != 0 {
		return nil, makeError(ErrNoSquareRoot, fmt.Sprintf("field order %s is not 3 mod 4", e.order))
	}
	exponent := new(big.Int).Add(e.order, one)
	exponent.Rsh(exponent, 2)
	root := &FieldElement{value: new(big.Int).Exp(e.value, exponent, e.order), order: e.order}
	if !root.mul(root).Equals(e) {
		return nil, makeError(ErrNoSquareRoot, fmt.Sprintf("%s is not a quadratic residue", e))
	}
	return root, nil
}

// String returns the element formatted as FieldElement_<order>(<value>).
func (e *FieldElement) String() string {
	return fmt.Sprintf("FieldElement_%s(%s)", e.order, e.value)
}

// The following unchecked variants are used where both operands are known to
// belong to the same field, such as inside point arithmetic.

func (e *FieldElement) add(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Add(e.value, other.value), e.order)
}

func (e *FieldElement) sub(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Sub(e.value, other.value), e.order)
}

func (e *FieldElement) mul(other *FieldElement) *FieldElement {
	return newFieldElement(new(big.Int).Mul(e.value, other.value), e.order)
}

func (e *FieldElement) div(other *FieldElement) *FieldElement {
	exponent := new(big.Int).Sub(e.order, two)
	inverse := new(big.Int).Exp(other.value, exponent, e.order)
	return newFieldElement(inverse.Mul(inverse, e.value), e.order)
}
