// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrRange is returned when a value is outside the range its type
	// allows, such as a field element not below its order or a secret
	// key that is zero or not below the group order.
	ErrRange = ErrorKind("ErrRange")

	// ErrNotPrime is returned when the order of a finite field fails the
	// primality test.
	ErrNotPrime = ErrorKind("ErrNotPrime")

	// ErrFieldMismatch is returned when an operation combines elements of
	// two different finite fields.
	ErrFieldMismatch = ErrorKind("ErrFieldMismatch")

	// ErrDivideByZero is returned when dividing by the zero element.
	ErrDivideByZero = ErrorKind("ErrDivideByZero")

	// ErrNoSquareRoot is returned when a field element is not a quadratic
	// residue, or the field order does not permit the square root shortcut.
	ErrNoSquareRoot = ErrorKind("ErrNoSquareRoot")

	// ErrInvalidPoint is returned when a coordinate pair does not satisfy
	// the curve equation.
	ErrInvalidPoint = ErrorKind("ErrInvalidPoint")

	// ErrCurveMismatch is returned when an operation combines points of two
	// different curves.
	ErrCurveMismatch = ErrorKind("ErrCurveMismatch")

	// ErrHighS is returned when constructing a new signature whose S value
	// is greater than half the group order.
	ErrHighS = ErrorKind("ErrHighS")

	// ErrInvalidEncoding is returned when DER, fixed-width or SEC encoded
	// bytes are malformed.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to secp256k1 values and encodings. It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
