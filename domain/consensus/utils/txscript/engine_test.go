// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/stretchr/testify/require"
)

// testKeys returns n deterministic private keys with the secrets 1..n scaled
// by a fixed factor.
func testKeys(t *testing.T, n int) []*btcec.PrivateKey {
	keys := make([]*btcec.PrivateKey, n)
	for i := range keys {
		secret := new(big.Int).Mul(big.NewInt(int64(i+1)), big.NewInt(0x1f2e3d4c5b6a))
		key, err := btcec.NewPrivateKey(secret)
		require.NoError(t, err)
		keys[i] = key
	}
	return keys
}

func testDigest(s string) *big.Int {
	z, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex digest in source file: " + s)
	}
	return z
}

// executeScript runs the script to completion with the given flags and
// returns the execution error.
func executeScript(t *testing.T, script *Script, z *big.Int, flags ScriptFlags) error {
	vm, err := NewEngine(script, z, flags)
	require.NoError(t, err)
	return vm.Execute()
}

// TestCheckSigKnownVector evaluates a pay-to-pubkey script with a signature
// carrying a high S value.
func TestCheckSigKnownVector(t *testing.T) {
	pubKey := hexToBytes("04" +
		"887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c" +
		"61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b666329a0ae34")
	highS := hexToBytes("3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840" +
		"f404876325a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6f" +
		"ca38681d82b2f06fddbdce6feab601")
	lowS := hexToBytes("3044022000eff69ef2b1bd93a66ed5219add4fb51e11a840" +
		"f404876325a1e8ffe0529a2c022038df8011e682d839e75159debf909408cb3f12" +
		"ae472b1d88cf6280cf01c6568b01")
	z := testDigest("7c076ff316692a3d7eb3c3bb0f8b1488cf72e1afcd929e29307032997a838a3d")

	pkScript, err := PayToPubKeyScript(pubKey)
	require.NoError(t, err)
	require.Equal(t, PubKeyTy, GetScriptClass(pkScript))

	highSScript := NewScript(DataCmd(highS)).Add(pkScript)
	require.True(t, highSScript.Evaluate(z))
	require.True(t, Evaluate(highSScript, z, ScriptStrictMultiSig))

	err = executeScript(t, highSScript, z, ScriptVerifyLowS)
	require.True(t, IsErrorCode(err, ErrEvalFalse), "got %v", err)

	lowSScript := NewScript(DataCmd(lowS)).Add(pkScript)
	require.True(t, lowSScript.Evaluate(z))
	require.True(t, Evaluate(lowSScript, z, StandardVerifyFlags))

	// Any other digest fails.
	wrongZ := new(big.Int).Add(z, big.NewInt(1))
	require.False(t, lowSScript.Evaluate(wrongZ))

	// The same key compressed verifies as well.
	compressed := hexToBytes("02887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c")
	pkScript, err = PayToPubKeyScript(compressed)
	require.NoError(t, err)
	require.True(t, NewScript(DataCmd(lowS)).Add(pkScript).Evaluate(z))

	// A malformed signature or public key pushes false.
	require.False(t, NewScript(DataCmd(lowS[1:])).Add(pkScript).Evaluate(z))
	badKeyScript := NewScript(DataCmd(lowS), DataCmd(compressed[1:]), OpCmd(OpCheckSig))
	require.False(t, badKeyScript.Evaluate(z))
	require.False(t, NewScript(DataCmd(nil)).Add(pkScript).Evaluate(z))
}

// TestCheckSigVerify ensures OP_CHECKSIGVERIFY consumes its result and fails
// the script on a bad signature.
func TestCheckSigVerify(t *testing.T) {
	key := testKeys(t, 1)[0]
	z := testDigest("deadbeef")
	pubKey := key.PubKey().SerializeCompressed()

	script, err := NewScriptBuilder().AddData(RawSignature(key, z, SigHashAll)).
		AddData(pubKey).AddOp(OpCheckSigVerify).AddOp(Op1).Script()
	require.NoError(t, err)
	require.NoError(t, executeScript(t, script, z, ScriptNoFlags))

	err = executeScript(t, script, big.NewInt(1), ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrCheckSigVerify), "got %v", err)
}

// TestArithmetic evaluates simple arithmetic scripts.
func TestArithmetic(t *testing.T) {
	z := big.NewInt(0)

	script, err := NewScriptBuilder().AddInt64(4).AddInt64(5).AddOp(OpAdd).
		AddInt64(9).AddOp(OpEqual).Script()
	require.NoError(t, err)
	require.True(t, script.Evaluate(z))

	script, err = NewScriptBuilder().AddInt64(4).AddInt64(5).AddOp(OpAdd).
		AddInt64(10).AddOp(OpEqual).Script()
	require.NoError(t, err)
	require.False(t, script.Evaluate(z))

	script, err = NewScriptBuilder().AddInt64(1000).AddInt64(-1001).AddOp(OpAdd).
		AddOp(OpNegate).AddOp(Op1).AddOp(OpNumEqual).Script()
	require.NoError(t, err)
	require.True(t, script.Evaluate(z))

	// Nine byte operands are out of range.
	script = NewScript(DataCmd(make([]byte, 9)), OpCmd(Op1Add))
	err = executeScript(t, script, z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrNumberTooBig), "got %v", err)

	// Results that leave the 8 byte range fail.
	maxNum := scriptNum(9223372036854775807).Bytes()
	script = NewScript(DataCmd(maxNum), OpCmd(Op1Add))
	err = executeScript(t, script, z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrNumberTooBig), "got %v", err)
}

// TestFinalVerdict ensures the final stack item decides the result.
func TestFinalVerdict(t *testing.T) {
	z := big.NewInt(0)

	tests := []struct {
		name   string
		script *Script
		err    ErrorCode
		valid  bool
	}{
		{"empty script", NewScript(), ErrEmptyStack, false},
		{"false", NewScript(OpCmd(Op0)), ErrEvalFalse, false},
		{"negative zero", NewScript(DataCmd([]byte{0x80})), ErrEvalFalse, false},
		{"padded zero", NewScript(DataCmd([]byte{0x00, 0x00})), ErrEvalFalse, false},
		{"true", NewScript(OpCmd(Op1)), 0, true},
		{"only the top counts", NewScript(OpCmd(Op0), OpCmd(Op1)), 0, true},
		{"top false", NewScript(OpCmd(Op1), OpCmd(Op0)), ErrEvalFalse, false},
		{"unbalanced", NewScript(OpCmd(Op1), OpCmd(OpIf)), ErrUnbalancedConditional, false},
		{"unsupported", NewScript(OpCmd(Op1), OpCmd(OpCat)), ErrUnsupportedOpcode, false},
		{"bare push opcode", NewScript(OpCmd(OpData1)), ErrMalformedPush, false},
		{"early return", NewScript(OpCmd(Op1), OpCmd(OpReturn)), ErrEarlyReturn, false},
		{"underflow", NewScript(OpCmd(OpDup)), ErrInvalidStackOperation, false},
		{
			"untaken branch skips unsupported",
			NewScript(OpCmd(Op0), OpCmd(OpIf), OpCmd(OpCat), OpCmd(OpElse),
				OpCmd(Op1), OpCmd(OpEndIf)),
			0, true,
		},
		{
			"untaken branch still checks element size",
			NewScript(OpCmd(Op0), OpCmd(OpIf), DataCmd(make([]byte, MaxScriptElementSize+1)),
				OpCmd(OpEndIf), OpCmd(Op1)),
			ErrElementTooBig, false,
		},
	}

	for _, test := range tests {
		err := executeScript(t, test.script, z, ScriptNoFlags)
		if test.valid {
			require.NoError(t, err, test.name)
		} else {
			require.True(t, IsErrorCode(err, test.err), "%s: got %v, want %v",
				test.name, err, test.err)
		}
		require.Equal(t, test.valid, Evaluate(test.script, z, ScriptNoFlags), test.name)
	}
}

// TestMultiSig ensures signatures are matched to public keys according to the
// multisig flags.
func TestMultiSig(t *testing.T) {
	keys := testKeys(t, 3)
	pubKeys := []*btcec.PublicKey{keys[0].PubKey(), keys[1].PubKey(), keys[2].PubKey()}
	z := testDigest("6b3c4e1a0f")

	oneOfOne, err := MultiSigScript(pubKeys[:1], 1)
	require.NoError(t, err)
	sigScript, err := MultiSigSignatureScript(keys[:1], z, SigHashAll)
	require.NoError(t, err)
	require.True(t, Evaluate(sigScript.Add(oneOfOne), z, StandardVerifyFlags))
	require.False(t, Evaluate(sigScript.Add(oneOfOne), big.NewInt(7), StandardVerifyFlags))

	wrongKey, err := MultiSigSignatureScript(keys[1:2], z, SigHashAll)
	require.NoError(t, err)
	require.False(t, Evaluate(wrongKey.Add(oneOfOne), z, ScriptNoFlags))

	twoOfThree, err := MultiSigScript(pubKeys, 2)
	require.NoError(t, err)

	tests := []struct {
		name      string
		signers   []*btcec.PrivateKey
		unordered bool
		ordered   bool
	}{
		{"in order", []*btcec.PrivateKey{keys[0], keys[2]}, true, true},
		{"adjacent", []*btcec.PrivateKey{keys[1], keys[2]}, true, true},
		{"out of order", []*btcec.PrivateKey{keys[2], keys[0]}, true, false},
		{"same key twice", []*btcec.PrivateKey{keys[1], keys[1]}, true, false},
	}

	for _, test := range tests {
		sigScript, err := MultiSigSignatureScript(test.signers, z, SigHashAll)
		require.NoError(t, err, test.name)
		script := sigScript.Add(twoOfThree)
		require.Equal(t, test.unordered, Evaluate(script, z, ScriptNoFlags), test.name)
		require.Equal(t, test.ordered, Evaluate(script, z, ScriptVerifyOrderedMultiSig), test.name)
	}

	// Zero of three succeeds with nothing but the dummy.
	zeroOfThree, err := MultiSigScript(pubKeys, 0)
	require.NoError(t, err)
	require.True(t, Evaluate(NewScript(OpCmd(Op0)).Add(zeroOfThree), z, StandardVerifyFlags))
}

// TestMultiSigDummy ensures the extra element consumed by OP_CHECKMULTISIG is
// only required to be empty with ScriptStrictMultiSig.
func TestMultiSigDummy(t *testing.T) {
	keys := testKeys(t, 1)
	z := testDigest("0123456789abcdef")

	pkScript, err := MultiSigScript([]*btcec.PublicKey{keys[0].PubKey()}, 1)
	require.NoError(t, err)
	sigScript, err := NewScriptBuilder().AddOp(Op1).
		AddData(RawSignature(keys[0], z, SigHashAll)).Script()
	require.NoError(t, err)
	script := sigScript.Add(pkScript)

	require.NoError(t, executeScript(t, script, z, ScriptNoFlags))
	err = executeScript(t, script, z, ScriptStrictMultiSig)
	require.True(t, IsErrorCode(err, ErrSigNullDummy), "got %v", err)

	// Without a dummy there is nothing left to pop.
	noDummy := NewScript(DataCmd(RawSignature(keys[0], z, SigHashAll))).Add(pkScript)
	err = executeScript(t, noDummy, z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrInvalidStackOperation), "got %v", err)
}

// TestNewEngineErrors ensures invalid engine parameters are rejected.
func TestNewEngineErrors(t *testing.T) {
	script := NewScript(OpCmd(Op1))

	_, err := NewEngine(nil, big.NewInt(0), ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrInternal), "got %v", err)

	_, err = NewEngine(script, nil, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrInvalidDigest), "got %v", err)

	_, err = NewEngine(script, big.NewInt(-1), ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrInvalidDigest), "got %v", err)

	_, err = NewEngine(script, big.NewInt(0), ScriptFlags(1<<10))
	require.True(t, IsErrorCode(err, ErrInvalidFlags), "got %v", err)

	_, err = NewEngine(script, big.NewInt(0), StandardVerifyFlags)
	require.NoError(t, err)

	require.False(t, Evaluate(script, nil, ScriptNoFlags))
	require.False(t, Evaluate(nil, big.NewInt(0), ScriptNoFlags))
}

// TestStep ensures scripts can be executed one command at a time.
func TestStep(t *testing.T) {
	script := NewScript(OpCmd(Op2), OpCmd(Op3), OpCmd(OpToAltStack))
	vm, err := NewEngine(script, big.NewInt(0), ScriptNoFlags)
	require.NoError(t, err)

	err = vm.CheckErrorCondition()
	require.True(t, IsErrorCode(err, ErrScriptUnfinished), "got %v", err)

	done, err := vm.Step()
	require.NoError(t, err)
	require.False(t, done)
	done, err = vm.Step()
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, [][]byte{{2}, {3}}, vm.GetStack())

	done, err = vm.Step()
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, [][]byte{{2}}, vm.GetStack())
	require.Equal(t, [][]byte{{3}}, vm.GetAltStack())

	_, err = vm.Step()
	require.True(t, IsErrorCode(err, ErrInvalidProgramCounter), "got %v", err)

	require.NoError(t, vm.CheckErrorCondition())
	require.Empty(t, vm.GetStack())
}

// TestStackAccessors ensures the stacks can be replaced and read back.
func TestStackAccessors(t *testing.T) {
	vm, err := NewEngine(NewScript(OpCmd(OpAdd)), big.NewInt(0), ScriptNoFlags)
	require.NoError(t, err)

	vm.SetStack([][]byte{{1}, {2}})
	vm.SetAltStack([][]byte{{9}})
	require.Equal(t, [][]byte{{1}, {2}}, vm.GetStack())
	require.Equal(t, [][]byte{{9}}, vm.GetAltStack())

	require.NoError(t, vm.Execute())

	vm.SetStack(nil)
	require.Empty(t, vm.GetStack())
}

// TestLimits ensures the stack height and element size limits are enforced.
func TestLimits(t *testing.T) {
	z := big.NewInt(0)

	cmds := make([]Cmd, MaxStackSize)
	for i := range cmds {
		cmds[i] = OpCmd(Op1)
	}
	require.NoError(t, executeScript(t, NewScript(cmds...), z, ScriptNoFlags))

	err := executeScript(t, NewScript(append(cmds, OpCmd(Op1))...), z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrStackOverflow), "got %v", err)

	// The alt stack counts towards the limit.
	overflow := append(append([]Cmd{}, cmds...), OpCmd(OpToAltStack), OpCmd(Op1), OpCmd(Op1))
	err = executeScript(t, NewScript(overflow...), z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrStackOverflow), "got %v", err)

	err = executeScript(t, NewScript(DataCmd(make([]byte, MaxScriptElementSize+1))), z, ScriptNoFlags)
	require.True(t, IsErrorCode(err, ErrElementTooBig), "got %v", err)

	script := NewScript(DataCmd(bytes.Repeat([]byte{1}, MaxScriptElementSize)))
	require.NoError(t, executeScript(t, script, z, ScriptNoFlags))
}

// TestHashOpcodes ensures the hash opcodes produce the expected digests.
func TestHashOpcodes(t *testing.T) {
	z := big.NewInt(0)

	tests := []struct {
		op   byte
		want string
	}{
		{OpSHA256, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{OpSHA1, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{OpRipeMD160, "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{OpHash160, "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb"},
		{OpHash256, "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456"},
	}

	for _, test := range tests {
		vm, err := NewEngine(NewScript(OpCmd(Op0), OpCmd(test.op)), z, ScriptNoFlags)
		require.NoError(t, err)
		_, err = vm.Step()
		require.NoError(t, err)
		_, err = vm.Step()
		require.NoError(t, err)
		require.Equal(t, [][]byte{hexToBytes(test.want)}, vm.GetStack(),
			opcodeArray[test.op].name)
	}
}
