// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/kaspanet/scriptvm/btcec"
)

// mustParseShortForm parses the passed short form script and returns the
// resulting script. It panics if an error occurs. This is only used in the
// tests as a helper since the only way it can fail is if there is an error in
// the test source code.
func mustParseShortForm(script string) *Script {
	raw, err := parseShortForm(script)
	if err != nil {
		panic("invalid short form script in test source: err " +
			err.Error() + ", script: " + script)
	}
	s, err := ParseScriptBytes(raw)
	if err != nil {
		panic("unparsable short form script in test source: err " +
			err.Error() + ", script: " + script)
	}

	return s
}

// compressedPubKeyHex is the short form push of the compressed generator.
const compressedPubKeyHex = "0x21 0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

// uncompressedPubKeyHex is the short form push of the uncompressed generator.
const uncompressedPubKeyHex = "0x41 0x04" +
	"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
	"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"

// scriptClassTests houses several test scripts used to ensure various class
// determination is working as expected.
var scriptClassTests = []struct {
	name   string
	script string
	class  ScriptClass
}{
	{
		name:   "Pay Pubkey",
		script: uncompressedPubKeyHex + " CHECKSIG",
		class:  PubKeyTy,
	},
	{
		name:   "Pay compressed Pubkey",
		script: compressedPubKeyHex + " CHECKSIG",
		class:  PubKeyTy,
	},
	{
		name: "Pay PubkeyHash",
		script: "DUP HASH160 0x14 0x660d4ef3a743e3e696ad990364e55543" +
			"3c4e2b9b EQUALVERIFY CHECKSIG",
		class: PubKeyHashTy,
	},
	{
		name:   "1 of 1 multisig",
		script: "1 " + compressedPubKeyHex + " 1 CHECKMULTISIG",
		class:  MultiSigTy,
	},
	{
		name: "2 of 2 multisig",
		script: "2 " + compressedPubKeyHex + " " + uncompressedPubKeyHex +
			" 2 CHECKMULTISIG",
		class: MultiSigTy,
	},
	{
		name:   "multisig requiring more signatures than keys",
		script: "2 " + compressedPubKeyHex + " 1 CHECKMULTISIG",
		class:  NonStandardTy,
	},
	{
		name:   "multisig with a wrong key count",
		script: "1 " + compressedPubKeyHex + " 2 CHECKMULTISIG",
		class:  NonStandardTy,
	},
	{
		name:   "multisig with a short key",
		script: "1 0x20 0x79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798 1 CHECKMULTISIG",
		class:  NonStandardTy,
	},
	{
		name:   "nulldata no data",
		script: "RETURN",
		class:  NullDataTy,
	},
	{
		name:   "nulldata small int",
		script: "RETURN 4",
		class:  NullDataTy,
	},
	{
		name:   "nulldata with data",
		script: "RETURN 0x09 0x046a61737564656e6f",
		class:  NullDataTy,
	},
	{
		name:   "nulldata followed by an opcode",
		script: "RETURN DUP",
		class:  NonStandardTy,
	},
	{
		name:   "Pay PubkeyHash with a short hash",
		script: "DUP HASH160 0x13 0x660d4ef3a743e3e696ad990364e555433c4e2b EQUALVERIFY CHECKSIG",
		class:  NonStandardTy,
	},
	{
		name:   "empty",
		script: "",
		class:  NonStandardTy,
	},
	{
		name:   "arithmetic",
		script: "4 5 ADD 9 EQUAL",
		class:  NonStandardTy,
	},
}

// TestScriptClass ensures all the scripts in scriptClassTests have the expected
// class.
func TestScriptClass(t *testing.T) {
	t.Parallel()

	for _, test := range scriptClassTests {
		script := mustParseShortForm(test.script)
		class := GetScriptClass(script)
		if class != test.class {
			t.Errorf("%s: expected %s got %s (script %s)", test.name,
				test.class, class, script)
			continue
		}
	}
}

// TestStringifyClass ensures the script class string returns the expected
// string for each script class.
func TestStringifyClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		class    ScriptClass
		stringed string
	}{
		{"nonstandardty", NonStandardTy, "nonstandard"},
		{"pubkey", PubKeyTy, "pubkey"},
		{"pubkeyhash", PubKeyHashTy, "pubkeyhash"},
		{"multisig", MultiSigTy, "multisig"},
		{"nulldataty", NullDataTy, "nulldata"},
		{"broken", ScriptClass(255), "Invalid"},
	}

	for _, test := range tests {
		typeString := test.class.String()
		if typeString != test.stringed {
			t.Errorf("%s: got %#q, want %#q", test.name,
				typeString, test.stringed)
		}
	}
}

// TestPayToScripts ensures the standard script constructors produce the
// expected scripts.
func TestPayToScripts(t *testing.T) {
	t.Parallel()

	pubKeyHash := hexToBytes("660d4ef3a743e3e696ad990364e555433c4e2b9b")
	script, err := PayToPubKeyHashScript(pubKeyHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %v", err)
	}
	raw, _ := script.RawBytes()
	want := hexToBytes("76a914660d4ef3a743e3e696ad990364e555433c4e2b9b88ac")
	if !bytes.Equal(raw, want) {
		t.Errorf("PayToPubKeyHashScript: got %x, want %x", raw, want)
	}

	_, err = PayToPubKeyHashScript(pubKeyHash[1:])
	if !IsErrorCode(err, ErrInternal) {
		t.Errorf("PayToPubKeyHashScript: got error %v, want %v", err,
			ErrInternal)
	}

	pubKey := hexToBytes("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	script, err = PayToPubKeyScript(pubKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %v", err)
	}
	raw, _ = script.RawBytes()
	want = append(append([]byte{OpData33}, pubKey...), OpCheckSig)
	if !bytes.Equal(raw, want) {
		t.Errorf("PayToPubKeyScript: got %x, want %x", raw, want)
	}

	script, err = NullDataScript([]byte("scriptvm"))
	if err != nil {
		t.Fatalf("NullDataScript: %v", err)
	}
	if GetScriptClass(script) != NullDataTy {
		t.Errorf("NullDataScript: got class %s", GetScriptClass(script))
	}
	_, err = NullDataScript(make([]byte, MaxDataCarrierSize+1))
	if !IsErrorCode(err, ErrTooMuchNullData) {
		t.Errorf("NullDataScript: got error %v, want %v", err,
			ErrTooMuchNullData)
	}
}

// TestMultiSigScript ensures the MultiSigScript function returns the expected
// scripts and errors.
func TestMultiSigScript(t *testing.T) {
	t.Parallel()

	var pubKeys []*btcec.PublicKey
	for _, key := range testKeys(t, MaxPubKeysPerMultiSig+1) {
		pubKeys = append(pubKeys, key.PubKey())
	}

	tests := []struct {
		name      string
		keys      []*btcec.PublicKey
		nrequired int
		numSigs   int
		err       ErrorCode
		valid     bool
	}{
		{"1 of 2", pubKeys[:2], 1, 1, 0, true},
		{"2 of 2", pubKeys[:2], 2, 2, 0, true},
		{"0 of 1", pubKeys[:1], 0, 0, 0, true},
		{"16 of 16", pubKeys[:16], 16, 16, 0, true},
		{"3 of 2", pubKeys[:2], 3, 0, ErrBadNumRequired, false},
		{"negative", pubKeys[:2], -1, 0, ErrBadNumRequired, false},
		{"21 keys", pubKeys, 1, 0, ErrInvalidPubKeyCount, false},
	}

	for _, test := range tests {
		script, err := MultiSigScript(test.keys, test.nrequired)
		if !test.valid {
			if !IsErrorCode(err, test.err) {
				t.Errorf("%s: got error %v, want %v", test.name,
					err, test.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if GetScriptClass(script) != MultiSigTy {
			t.Errorf("%s: got class %s (script %s)", test.name,
				GetScriptClass(script), script)
			continue
		}
		numPubKeys, numSigs, err := CalcMultiSigStats(script)
		if err != nil {
			t.Errorf("%s: CalcMultiSigStats: %v", test.name, err)
			continue
		}
		if numPubKeys != len(test.keys) || numSigs != test.numSigs {
			t.Errorf("%s: CalcMultiSigStats: got %d keys %d sigs, "+
				"want %d keys %d sigs", test.name, numPubKeys,
				numSigs, len(test.keys), test.numSigs)
		}
	}
}

// TestCalcMultiSigStats ensures non multisig scripts are rejected.
func TestCalcMultiSigStats(t *testing.T) {
	t.Parallel()

	script := mustParseShortForm("DUP HASH160 0x14 0x660d4ef3a743e3e696ad990364e555433c4e2b9b EQUALVERIFY CHECKSIG")
	_, _, err := CalcMultiSigStats(script)
	if !IsErrorCode(err, ErrNotMultisigScript) {
		t.Errorf("CalcMultiSigStats: got error %v, want %v", err,
			ErrNotMultisigScript)
	}

	script = mustParseShortForm("1 " + compressedPubKeyHex + " " + uncompressedPubKeyHex + " 2 CHECKMULTISIG")
	numPubKeys, numSigs, err := CalcMultiSigStats(script)
	if err != nil {
		t.Fatalf("CalcMultiSigStats: %v", err)
	}
	if numPubKeys != 2 || numSigs != 1 {
		t.Errorf("CalcMultiSigStats: got %d keys %d sigs, want 2 keys "+
			"1 sig", numPubKeys, numSigs)
	}
}
