// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"
	"math/big"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/kaspanet/scriptvm/infrastructure/logger"
	"github.com/kaspanet/scriptvm/util/panics"
)

// ScriptFlags is a bitmask defining additional operations or tests that will be
// done when executing a script.
type ScriptFlags uint32

const (
	// ScriptNoFlags runs the engine with the plain evaluation rules.
	ScriptNoFlags ScriptFlags = 0

	// ScriptStrictMultiSig defines whether to verify the stack item
	// used by CHECKMULTISIG is zero length.
	ScriptStrictMultiSig ScriptFlags = 1 << iota

	// ScriptVerifyOrderedMultiSig defines that CHECKMULTISIG matches
	// signatures to public keys in script order, using every public key
	// for at most one signature.
	ScriptVerifyOrderedMultiSig

	// ScriptVerifyLowS defines that signatures are required to comply with
	// the low S rule. Signatures with a high S value count as invalid.
	ScriptVerifyLowS

	// scriptFlagsMask holds every defined flag.
	scriptFlagsMask = ScriptStrictMultiSig | ScriptVerifyOrderedMultiSig |
		ScriptVerifyLowS
)

// Engine is the virtual machine that executes scripts.
type Engine struct {
	script    *Script
	pc        int
	digest    []byte
	flags     ScriptFlags
	dstack    stack
	astack    stack
	condStack []int
}

// hasFlag returns whether the script engine instance has the passed flag set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// isBranchExecuting returns whether or not the current conditional branch is
// actively executing. For example, when the data stack has an OP_FALSE on it
// and an OP_IF is encountered, the branch is inactive until an OP_ELSE or
// OP_ENDIF is encountered. It properly handles nested conditionals.
func (vm *Engine) isBranchExecuting() bool {
	if len(vm.condStack) == 0 {
		return true
	}
	return vm.condStack[len(vm.condStack)-1] == OpCondTrue
}

// executeCmd performs execution on the passed command. It takes into account
// whether or not it is hidden by conditionals, but some rules still must be
// tested in this case.
func (vm *Engine) executeCmd(cmd Cmd) error {
	executing := vm.isBranchExecuting()

	if cmd.isData {
		if len(cmd.data) > MaxScriptElementSize {
			str := fmt.Sprintf("element size %d exceeds max allowed "+
				"size %d", len(cmd.data), MaxScriptElementSize)
			return scriptError(ErrElementTooBig, str)
		}
		if executing {
			vm.dstack.PushByteArray(cmd.data)
		}
		return nil
	}

	op := &opcodeArray[cmd.opcode]

	// Nothing left to do when this is not a conditional opcode and it is
	// not in an executing branch.
	if !executing && !op.isConditional() {
		return nil
	}

	return op.opfunc(op, nil, vm)
}

// disasm returns the disassembly of the command at the given index, prefixed
// with the index.
func (vm *Engine) disasm(pc int) string {
	return fmt.Sprintf("%04d: %s", pc, vm.script.cmds[pc])
}

// validPC returns an error if the current script position is not valid for
// execution, nil otherwise.
func (vm *Engine) validPC() error {
	if vm.pc >= len(vm.script.cmds) {
		str := fmt.Sprintf("past input scripts %d of %d", vm.pc,
			len(vm.script.cmds))
		return scriptError(ErrInvalidProgramCounter, str)
	}
	return nil
}

// CheckErrorCondition returns nil if the running script has ended and was
// successful, leaving a true boolean on the stack. An error otherwise,
// including if the script has not finished.
func (vm *Engine) CheckErrorCondition() error {
	if vm.pc < len(vm.script.cmds) {
		return scriptError(ErrScriptUnfinished,
			"error check when script unfinished")
	}
	if len(vm.condStack) != 0 {
		return scriptError(ErrUnbalancedConditional,
			"end of script reached in conditional execution")
	}

	if vm.dstack.Depth() < 1 {
		return scriptError(ErrEmptyStack,
			"stack empty at end of script execution")
	}

	v, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		// Log interesting data.
		log.Tracef("%v", logger.NewLogClosure(func() string {
			return fmt.Sprintf("stack after failed evaluation:\n%s",
				vm.dstack.String())
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// Step executes the next command and moves the program counter to the next
// command in the script. It returns true when the script has been fully
// executed.
//
// The result of calling Step or any other method is undefined if an error is
// returned.
func (vm *Engine) Step() (done bool, err error) {
	// Verify that it is pointing to a valid script address.
	err = vm.validPC()
	if err != nil {
		return true, err
	}
	cmd := vm.script.cmds[vm.pc]
	vm.pc++

	// Execute the command while taking into account several things such as
	// disabled opcodes, illegal opcodes, maximum allowed operations per
	// script, maximum script element sizes, and conditionals.
	err = vm.executeCmd(cmd)
	if err != nil {
		return true, err
	}

	// The number of elements in the combination of the data and alt stacks
	// must not exceed the maximum number of stack elements allowed.
	combinedStackSize := vm.dstack.Depth() + vm.astack.Depth()
	if combinedStackSize > MaxStackSize {
		str := fmt.Sprintf("combined stack size %d > max allowed %d",
			combinedStackSize, MaxStackSize)
		return true, scriptError(ErrStackOverflow, str)
	}

	if vm.pc < len(vm.script.cmds) {
		return false, nil
	}

	// Illegal to have an `if' that straddles the end of the script.
	if len(vm.condStack) != 0 {
		return true, scriptError(ErrUnbalancedConditional,
			"end of script reached in conditional execution")
	}

	return true, nil
}

// Execute will execute all commands in the script and return nil for
// successful validation or an error if one occurred. A panic raised while
// executing is recovered and returned as an error.
func (vm *Engine) Execute() error {
	return panics.RecoverToError(log, func() error {
		for vm.pc < len(vm.script.cmds) {
			pc := vm.pc
			log.Tracef("%v", logger.NewLogClosure(func() string {
				return fmt.Sprintf("stepping %s", vm.disasm(pc))
			}))

			_, err := vm.Step()
			if err != nil {
				return err
			}

			log.Tracef("%v", logger.NewLogClosure(func() string {
				var dstr, astr string

				// if we're tracing, dump the stacks.
				if vm.dstack.Depth() != 0 {
					dstr = "Stack:\n" + vm.dstack.String()
				}
				if vm.astack.Depth() != 0 {
					astr = "AltStack:\n" + vm.astack.String()
				}

				return dstr + astr
			}))
		}

		return vm.CheckErrorCondition()
	})
}

// GetStack returns the contents of the primary stack as an array. where the
// last item in the array is the top of the stack.
func (vm *Engine) GetStack() [][]byte {
	return getStack(&vm.dstack)
}

// SetStack sets the contents of the primary stack to the contents of the
// provided array where the last item in the array will be the top of the stack.
func (vm *Engine) SetStack(data [][]byte) {
	setStack(&vm.dstack, data)
}

// GetAltStack returns the contents of the alternate stack as an array where the
// last item in the array is the top of the stack.
func (vm *Engine) GetAltStack() [][]byte {
	return getStack(&vm.astack)
}

// SetAltStack sets the contents of the alternate stack to the contents of the
// provided array where the last item in the array will be the top of the stack.
func (vm *Engine) SetAltStack(data [][]byte) {
	setStack(&vm.astack, data)
}

// getStack returns the contents of stack as a byte array bottom up
func getStack(stack *stack) [][]byte {
	array := make([][]byte, stack.Depth())
	for i := range array {
		// PeekByteArray can't fail due to overflow, already checked
		array[len(array)-i-1], _ = stack.PeekByteArray(int32(i))
	}
	return array
}

// setStack sets the stack to the contents of the array where the last item in
// the array is the top item in the stack.
func setStack(stack *stack, data [][]byte) {
	// This can not error. Only errors are for invalid arguments.
	_ = stack.DropN(stack.Depth())

	for i := range data {
		stack.PushByteArray(data[i])
	}
}

// parsePubKey returns the public key encoded in pkBytes, or nil when the bytes
// are not a valid SEC encoding of a point on the curve.
func (vm *Engine) parsePubKey(pkBytes []byte) *btcec.PublicKey {
	pubKey, err := btcec.ParsePubKey(pkBytes)
	if err != nil {
		log.Tracef("invalid public key %x: %s", pkBytes, err)
		return nil
	}
	return pubKey
}

// parseSignature strips the trailing sighash type byte from fullSigBytes and
// parses the remaining DER signature. It returns nil when the signature is
// malformed, or has a high S value while ScriptVerifyLowS is set.
func (vm *Engine) parseSignature(fullSigBytes []byte) *btcec.Signature {
	// The signature actually needs to be longer than this, but at least
	// 1 byte is needed for the hash type below.
	if len(fullSigBytes) < 1 {
		return nil
	}

	// Trim off hashtype from the signature string. The digest the
	// signature commits to is supplied to the engine, so the hash type
	// only has to be present.
	hashType := fullSigBytes[len(fullSigBytes)-1]
	sigBytes := fullSigBytes[:len(fullSigBytes)-1]

	signature, err := btcec.ParseDERSignature(sigBytes)
	if err != nil {
		log.Tracef("invalid signature %x (hash type %#x): %s", sigBytes,
			hashType, err)
		return nil
	}
	if vm.hasFlag(ScriptVerifyLowS) && signature.IsHighS() {
		log.Tracef("signature %x is not canonical due to unnecessarily "+
			"high S value", sigBytes)
		return nil
	}
	return signature
}

// verifySignature returns whether signature is valid for the engine digest
// under pubKey. Missing values, from failed parsing, never verify.
func (vm *Engine) verifySignature(signature *btcec.Signature, pubKey *btcec.PublicKey) bool {
	if signature == nil || pubKey == nil {
		return false
	}
	return signature.Verify(vm.digest, pubKey)
}

// verifyUnorderedMultiSig returns whether every signature verifies against at
// least one of the public keys.
func (vm *Engine) verifyUnorderedMultiSig(signatures []*btcec.Signature, pubKeys []*btcec.PublicKey) bool {
	for _, signature := range signatures {
		matched := false
		for _, pubKey := range pubKeys {
			if vm.verifySignature(signature, pubKey) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// verifyOrderedMultiSig returns whether the signatures verify against the
// public keys in order. Each public key is tried once: it is skipped when it
// doesn't verify the current signature.
func (vm *Engine) verifyOrderedMultiSig(signatures []*btcec.Signature, pubKeys []*btcec.PublicKey) bool {
	sigIdx, pubKeyIdx := 0, 0
	for sigIdx < len(signatures) {
		// There are not enough public keys left to satisfy the
		// remaining signatures.
		if len(signatures)-sigIdx > len(pubKeys)-pubKeyIdx {
			return false
		}

		if vm.verifySignature(signatures[sigIdx], pubKeys[pubKeyIdx]) {
			sigIdx++
		}
		pubKeyIdx++
	}
	return true
}

// NewEngine returns a new script engine for the provided script, signature
// digest z, and flags. The script is usually a signature script joined with
// the public key script it spends, see Script.Add.
func NewEngine(script *Script, z *big.Int, flags ScriptFlags) (*Engine, error) {
	if script == nil {
		return nil, scriptError(ErrInternal, "nil script")
	}
	if z == nil || z.Sign() < 0 {
		return nil, scriptError(ErrInvalidDigest,
			"the signature digest must be a non-negative integer")
	}
	if flags&^scriptFlagsMask != 0 {
		str := fmt.Sprintf("invalid flags %#x", uint32(flags))
		return nil, scriptError(ErrInvalidFlags, str)
	}

	return &Engine{
		script: script,
		digest: z.Bytes(),
		flags:  flags,
	}, nil
}

// Evaluate executes script against the signature digest z and returns whether
// it is valid. Malformed scripts and failed executions are reported as invalid
// and logged at debug level.
func Evaluate(script *Script, z *big.Int, flags ScriptFlags) bool {
	vm, err := NewEngine(script, z, flags)
	if err != nil {
		log.Debugf("Failed to create script engine: %s", err)
		return false
	}
	err = vm.Execute()
	if err != nil {
		log.Debugf("Script evaluation failed: %s", err)
		return false
	}
	return true
}
