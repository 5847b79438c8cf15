// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInternal is returned if internal consistency checks fail. In
	// practice this error should never be seen as it would mean there is an
	// error in the engine logic.
	ErrInternal ErrorCode = iota

	// ---------------------------------------
	// Failures related to improper API usage.
	// ---------------------------------------

	// ErrInvalidFlags is returned when the passed flags to NewEngine
	// contain an invalid combination.
	ErrInvalidFlags

	// ErrInvalidDigest is returned when the signature digest handed to
	// NewEngine is nil or negative.
	ErrInvalidDigest

	// ErrInvalidProgramCounter is returned when an attempt to execute an
	// opcode is made once all of them have already been executed.
	ErrInvalidProgramCounter

	// ErrScriptUnfinished is returned when CheckErrorCondition is called on
	// a script that has not finished executing.
	ErrScriptUnfinished

	// ErrBadNumRequired is returned from MultiSigScript when the
	// specified number of required signatures is larger than the number of
	// provided public keys.
	ErrBadNumRequired

	// ErrNotMultisigScript is returned from CalcMultiSigStats when the
	// provided script is not a multisig script.
	ErrNotMultisigScript

	// ErrTooMuchNullData is returned from NullDataScript when the length of
	// the provided data exceeds MaxDataCarrierSize.
	ErrTooMuchNullData

	// ------------------------------------------
	// Failures related to final execution state.
	// ------------------------------------------

	// ErrEarlyReturn is returned when OP_RETURN is executed in the script.
	ErrEarlyReturn

	// ErrEmptyStack is returned when the script evaluated without error,
	// but terminated with an empty top stack element.
	ErrEmptyStack

	// ErrEvalFalse is returned when the script evaluated without error but
	// terminated with a false top stack element.
	ErrEvalFalse

	// -----------------------------------------------------
	// Failures related to exceeding maximum allowed limits.
	// -----------------------------------------------------

	// ErrScriptTooBig is returned if a script is larger than MaxScriptSize.
	ErrScriptTooBig

	// ErrElementTooBig is returned if the size of an element to be pushed
	// to the stack is over MaxScriptElementSize.
	ErrElementTooBig

	// ErrStackOverflow is returned when stack and altstack combined depth
	// is over the limit.
	ErrStackOverflow

	// ErrInvalidPubKeyCount is returned when the number of public keys
	// specified for a multisig is either negative or greater than
	// MaxPubKeysPerMultiSig.
	ErrInvalidPubKeyCount

	// ErrInvalidSignatureCount is returned when the number of signatures
	// specified for a multisig is either negative or greater than the
	// number of public keys.
	ErrInvalidSignatureCount

	// ErrNumberTooBig is returned when the argument for an opcode that
	// expects numeric input is larger than the expected maximum number of
	// bytes, or when an arithmetic result does not fit in one.
	ErrNumberTooBig

	// --------------------------------------------
	// Failures related to verification operations.
	// --------------------------------------------

	// ErrVerify is returned when OP_VERIFY is encountered in a script and
	// the top item on the data stack does not evaluate to true.
	ErrVerify

	// ErrEqualVerify is returned when OP_EQUALVERIFY is encountered in a
	// script and the top item on the data stack does not evaluate to true.
	ErrEqualVerify

	// ErrNumEqualVerify is returned when OP_NUMEQUALVERIFY is encountered
	// in a script and the top item on the data stack does not evaluate to
	// true.
	ErrNumEqualVerify

	// ErrCheckSigVerify is returned when OP_CHECKSIGVERIFY is encountered
	// in a script and the top item on the data stack does not evaluate to
	// true.
	ErrCheckSigVerify

	// ErrCheckMultiSigVerify is returned when OP_CHECKMULTISIGVERIFY is
	// encountered in a script and the top item on the data stack does not
	// evaluate to true.
	ErrCheckMultiSigVerify

	// --------------------------------------------
	// Failures related to improper use of opcodes.
	// --------------------------------------------

	// ErrUnsupportedOpcode is returned when an opcode this engine does not
	// implement is executed.
	ErrUnsupportedOpcode

	// ErrMalformedPush is returned when a data push opcode tries to push
	// more bytes than are left in the script.
	ErrMalformedPush

	// ErrScriptLengthMismatch is returned when a serialized script is
	// shorter than its length prefix claims.
	ErrScriptLengthMismatch

	// ErrInvalidStackOperation is returned when a stack operation is
	// attempted with a number that is invalid for the current stack size.
	ErrInvalidStackOperation

	// ErrUnbalancedConditional is returned when an OP_ELSE or OP_ENDIF is
	// encountered in a script without first having an OP_IF or OP_NOTIF or
	// the end of script is reached without encountering an OP_ENDIF when
	// an OP_IF or OP_NOTIF was previously encountered.
	ErrUnbalancedConditional

	// ---------------------------------
	// Failures related to malleability.
	// ---------------------------------

	// ErrSigNullDummy is returned when ScriptStrictMultiSig is set and a
	// multisig script has an invalid value for the dummy argument.
	ErrSigNullDummy

	// numErrorCodes is the maximum error code number used in tests. This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:              "ErrInternal",
	ErrInvalidFlags:          "ErrInvalidFlags",
	ErrInvalidDigest:         "ErrInvalidDigest",
	ErrInvalidProgramCounter: "ErrInvalidProgramCounter",
	ErrScriptUnfinished:      "ErrScriptUnfinished",
	ErrBadNumRequired:        "ErrBadNumRequired",
	ErrNotMultisigScript:     "ErrNotMultisigScript",
	ErrTooMuchNullData:       "ErrTooMuchNullData",
	ErrEarlyReturn:           "ErrEarlyReturn",
	ErrEmptyStack:            "ErrEmptyStack",
	ErrEvalFalse:             "ErrEvalFalse",
	ErrScriptTooBig:          "ErrScriptTooBig",
	ErrElementTooBig:         "ErrElementTooBig",
	ErrStackOverflow:         "ErrStackOverflow",
	ErrInvalidPubKeyCount:    "ErrInvalidPubKeyCount",
	ErrInvalidSignatureCount: "ErrInvalidSignatureCount",
	ErrNumberTooBig:          "ErrNumberTooBig",
	ErrVerify:                "ErrVerify",
	ErrEqualVerify:           "ErrEqualVerify",
	ErrNumEqualVerify:        "ErrNumEqualVerify",
	ErrCheckSigVerify:        "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:   "ErrCheckMultiSigVerify",
	ErrUnsupportedOpcode:     "ErrUnsupportedOpcode",
	ErrMalformedPush:         "ErrMalformedPush",
	ErrScriptLengthMismatch:  "ErrScriptLengthMismatch",
	ErrInvalidStackOperation: "ErrInvalidStackOperation",
	ErrUnbalancedConditional: "ErrUnbalancedConditional",
	ErrSigNullDummy:          "ErrSigNullDummy",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-related error. It is used to indicate three
// classes of errors:
//  1. Script execution failures due to violating one of the many requirements
//     imposed by the script engine or evaluating to false
//  2. Improper API usage by callers
//  3. Internal consistency check failures
//
// The caller can use type assertions on the returned errors to access the
// ErrorCode field to ascertain the specific reason for the error. As an
// additional convenience, the caller may make use of the IsErrorCode function
// to check for a specific error code.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
