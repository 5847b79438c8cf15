// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateInputs(t *testing.T) {
	keys := testKeys(t, 2)
	z := big.NewInt(0x1234567)

	pkScript, err := PayToPubKeyHashScript(keys[0].PubKey().Hash160(true))
	require.NoError(t, err)
	sigScript, err := SignatureScript(keys[0], z, SigHashAll, true)
	require.NoError(t, err)
	wrongSigScript, err := SignatureScript(keys[1], z, SigHashAll, true)
	require.NoError(t, err)

	arithmetic, err := NewScriptBuilder().AddInt64(2).AddInt64(2).
		AddOp(OpAdd).AddInt64(4).AddOp(OpNumEqual).Script()
	require.NoError(t, err)

	inputs := []*InputVerification{
		{SignatureScript: sigScript, PublicKeyScript: pkScript, Digest: z},
		{SignatureScript: wrongSigScript, PublicKeyScript: pkScript, Digest: z},
		{SignatureScript: sigScript, PublicKeyScript: pkScript, Digest: big.NewInt(1)},
		nil,
		{SignatureScript: nil, PublicKeyScript: pkScript, Digest: z},
		{SignatureScript: sigScript, PublicKeyScript: pkScript, Digest: nil},
		{SignatureScript: NewScript(), PublicKeyScript: arithmetic, Digest: z},
	}
	expected := []bool{true, false, false, false, false, false, true}

	for _, workers := range []int{0, 1, 3, 100} {
		require.Equal(t, expected, ValidateInputs(inputs, StandardVerifyFlags, workers),
			"workers: %d", workers)
	}

	require.Empty(t, ValidateInputs(nil, StandardVerifyFlags, 4))
}

func TestValidateInputsManyInputs(t *testing.T) {
	keys := testKeys(t, 1)

	pkScript, err := PayToPubKeyScript(keys[0].PubKey().SerializeCompressed())
	require.NoError(t, err)

	const numInputs = 32
	inputs := make([]*InputVerification, numInputs)
	expected := make([]bool, numInputs)
	for i := range inputs {
		z := big.NewInt(int64(i + 1))
		signingDigest := z
		if i%3 == 0 {
			signingDigest = big.NewInt(int64(i + 1000))
		}
		sigScript, err := NewScriptBuilder().
			AddData(RawSignature(keys[0], signingDigest, SigHashAll)).Script()
		require.NoError(t, err)

		inputs[i] = &InputVerification{
			SignatureScript: sigScript,
			PublicKeyScript: pkScript,
			Digest:          z,
		}
		expected[i] = i%3 != 0
	}

	require.Equal(t, expected, ValidateInputs(inputs, ScriptNoFlags, 4))
}
