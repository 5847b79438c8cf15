// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/kaspanet/scriptvm/btcec"
)

const (
	// MaxDataCarrierSize is the maximum number of bytes allowed in pushed
	// data to be considered a nulldata script.
	MaxDataCarrierSize = 80
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockDAG.
const (
	NonStandardTy ScriptClass = iota // None of the recognized forms.
	PubKeyTy                         // Pay pubkey.
	PubKeyHashTy                     // Pay pubkey hash.
	MultiSigTy                       // Multi signature.
	NullDataTy                       // Empty data-only (provably prunable).
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy: "nonstandard",
	PubKeyTy:      "pubkey",
	PubKeyHashTy:  "pubkeyhash",
	MultiSigTy:    "multisig",
	NullDataTy:    "nulldata",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

// isSmallInt returns whether or not the command is considered a small integer,
// which is an OP_0, or OP_1 through OP_16.
func isSmallInt(cmd Cmd) bool {
	if cmd.isData {
		return false
	}
	return cmd.opcode == Op0 || (cmd.opcode >= Op1 && cmd.opcode <= Op16)
}

// asSmallInt returns the passed opcode, which must be true according to
// isSmallInt(), as an integer.
func asSmallInt(op byte) int {
	if op == Op0 {
		return 0
	}

	return int(op - (Op1 - 1))
}

// isPubKeyData returns whether the command pushes data sized like a SEC
// encoded public key.
func isPubKeyData(cmd Cmd) bool {
	return cmd.isData && (len(cmd.data) == btcec.PubKeyBytesLenCompressed ||
		len(cmd.data) == btcec.PubKeyBytesLenUncompressed)
}

// isOp returns whether the command executes the given opcode.
func isOp(cmd Cmd, op byte) bool {
	return !cmd.isData && cmd.opcode == op
}

// isPubKey returns true if the script passed is a pay-to-pubkey transaction,
// false otherwise.
func isPubKey(cmds []Cmd) bool {
	return len(cmds) == 2 &&
		isPubKeyData(cmds[0]) &&
		isOp(cmds[1], OpCheckSig)
}

// isPubKeyHash returns true if the script passed is a pay-to-pubkey-hash
// transaction, false otherwise.
func isPubKeyHash(cmds []Cmd) bool {
	return len(cmds) == 5 &&
		isOp(cmds[0], OpDup) &&
		isOp(cmds[1], OpHash160) &&
		cmds[2].isData && len(cmds[2].data) == 20 &&
		isOp(cmds[3], OpEqualVerify) &&
		isOp(cmds[4], OpCheckSig)
}

// isMultiSig returns true if the passed script is a multisig transaction,
// false otherwise.
func isMultiSig(cmds []Cmd) bool {
	// The absolute minimum is 1 pubkey:
	// OP_0/OP_1-16 <pubkey> OP_1 OP_CHECKMULTISIG
	l := len(cmds)
	if l < 4 {
		return false
	}
	if !isSmallInt(cmds[0]) || !isSmallInt(cmds[l-2]) ||
		!isOp(cmds[l-1], OpCheckMultiSig) {
		return false
	}

	// Verify the number of pubkeys specified matches the actual number
	// of pubkeys provided.
	numPubKeys := asSmallInt(cmds[l-2].opcode)
	if l-3 != numPubKeys || asSmallInt(cmds[0].opcode) > numPubKeys {
		return false
	}

	for _, cmd := range cmds[1 : l-2] {
		// Valid pubkeys are either 33 or 65 bytes.
		if !isPubKeyData(cmd) {
			return false
		}
	}
	return true
}

// isNullData returns true if the passed script is a null data transaction,
// false otherwise.
func isNullData(cmds []Cmd) bool {
	// A nulldata transaction is either a single OP_RETURN or an
	// OP_RETURN SMALLDATA (where SMALLDATA is a data push up to
	// MaxDataCarrierSize bytes).
	l := len(cmds)
	if l == 1 && isOp(cmds[0], OpReturn) {
		return true
	}

	return l == 2 &&
		isOp(cmds[0], OpReturn) &&
		(isSmallInt(cmds[1]) || cmds[1].isData) &&
		len(cmds[1].data) <= MaxDataCarrierSize
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not match any of the
// standard forms.
func GetScriptClass(script *Script) ScriptClass {
	cmds := script.cmds
	switch {
	case isPubKey(cmds):
		return PubKeyTy
	case isPubKeyHash(cmds):
		return PubKeyHashTy
	case isMultiSig(cmds):
		return MultiSigTy
	case isNullData(cmds):
		return NullDataTy
	}
	return NonStandardTy
}

// CalcMultiSigStats returns the number of public keys and signatures from
// a multi-signature transaction script. The passed script MUST already be
// known to be a multi-signature script.
func CalcMultiSigStats(script *Script) (int, int, error) {
	if !isMultiSig(script.cmds) {
		str := fmt.Sprintf("script %s is not a multisig script", script)
		return 0, 0, scriptError(ErrNotMultisigScript, str)
	}

	// A multi-signature script is of the pattern:
	//  NUM_SIGS PUBKEY PUBKEY PUBKEY... NUM_PUBKEYS OP_CHECKMULTISIG
	numSigs := asSmallInt(script.cmds[0].opcode)
	numPubKeys := asSmallInt(script.cmds[len(script.cmds)-2].opcode)
	return numPubKeys, numSigs, nil
}

// extractPubKeys returns the raw public keys of a script already known to be
// a multisig script.
func extractPubKeys(script *Script) [][]byte {
	cmds := script.cmds[1 : len(script.cmds)-2]
	pubKeys := make([][]byte, 0, len(cmds))
	for _, cmd := range cmds {
		pubKeys = append(pubKeys, cmd.data)
	}
	return pubKeys
}

// PayToPubKeyScript creates a new script to pay to the given SEC encoded
// public key.
func PayToPubKeyScript(serializedPubKey []byte) (*Script, error) {
	return NewScriptBuilder().AddData(serializedPubKey).
		AddOp(OpCheckSig).Script()
}

// PayToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash. It is expected that the input is a valid
// hash.
func PayToPubKeyHashScript(pubKeyHash []byte) (*Script, error) {
	if len(pubKeyHash) != 20 {
		str := fmt.Sprintf("pubkey hash must be 20 bytes, got %d",
			len(pubKeyHash))
		return nil, scriptError(ErrInternal, str)
	}
	return NewScriptBuilder().AddOp(OpDup).AddOp(OpHash160).
		AddData(pubKeyHash).AddOp(OpEqualVerify).AddOp(OpCheckSig).
		Script()
}

// MultiSigScript returns a valid script for a multisignature redemption where
// nrequired of the keys in pubkeys are required to have signed the transaction
// for success. Keys are serialized in compressed form. An Error with the error
// code ErrBadNumRequired will be returned if nrequired is larger than the
// number of keys provided.
func MultiSigScript(pubKeys []*btcec.PublicKey, nrequired int) (*Script, error) {
	if len(pubKeys) < nrequired {
		str := fmt.Sprintf("unable to generate multisig script with "+
			"%d required signatures when there are only %d public "+
			"keys available", nrequired, len(pubKeys))
		return nil, scriptError(ErrBadNumRequired, str)
	}
	if nrequired < 0 {
		str := fmt.Sprintf("number of required signatures %d is negative",
			nrequired)
		return nil, scriptError(ErrBadNumRequired, str)
	}
	if len(pubKeys) > MaxPubKeysPerMultiSig {
		str := fmt.Sprintf("too many pubkeys: %d > %d", len(pubKeys),
			MaxPubKeysPerMultiSig)
		return nil, scriptError(ErrInvalidPubKeyCount, str)
	}

	builder := NewScriptBuilder().AddInt64(int64(nrequired))
	for _, key := range pubKeys {
		builder.AddData(key.SerializeCompressed())
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(OpCheckMultiSig)

	return builder.Script()
}

// NullDataScript creates a provably-prunable script containing OP_RETURN
// followed by the passed data. An Error with the error code ErrTooMuchNullData
// will be returned if the length of the passed data exceeds MaxDataCarrierSize.
func NullDataScript(data []byte) (*Script, error) {
	if len(data) > MaxDataCarrierSize {
		str := fmt.Sprintf("data size %d is larger than max "+
			"allowed size %d", len(data), MaxDataCarrierSize)
		return nil, scriptError(ErrTooMuchNullData, str)
	}

	return NewScriptBuilder().AddOp(OpReturn).AddData(data).Script()
}
