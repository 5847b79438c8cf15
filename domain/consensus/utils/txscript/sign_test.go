// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/pkg/errors"
)

type hashToKey struct {
	key        *btcec.PrivateKey
	compressed bool
}

func mkGetKey(keys map[string]hashToKey) KeyDB {
	if keys == nil {
		return KeyClosure(func(pubKeyHash []byte) (*btcec.PrivateKey,
			bool, error) {
			return nil, false, errors.New("nope")
		})
	}
	return KeyClosure(func(pubKeyHash []byte) (*btcec.PrivateKey,
		bool, error) {
		h2k, ok := keys[hex.EncodeToString(pubKeyHash)]
		if !ok {
			return nil, false, errors.New("nope")
		}
		return h2k.key, h2k.compressed, nil
	})
}

// keyDBFor returns a key database that knows the given keys, indexed by the
// hash of their public key in the requested format.
func keyDBFor(keys []*btcec.PrivateKey, compressed bool) KeyDB {
	db := make(map[string]hashToKey)
	for _, key := range keys {
		pubKeyHash := key.PubKey().Hash160(compressed)
		db[hex.EncodeToString(pubKeyHash)] = hashToKey{key, compressed}
	}
	return mkGetKey(db)
}

func checkSignScript(t *testing.T, name string, sigScript, pkScript *Script, z *big.Int) {
	vm, err := NewEngine(sigScript.Add(pkScript), z, StandardVerifyFlags)
	if err != nil {
		t.Errorf("%s: failed to make script engine: %v", name, err)
		return
	}
	err = vm.Execute()
	if err != nil {
		t.Errorf("%s: invalid script signature: %v (%s)", name, err,
			sigScript)
	}
}

func TestSignScript(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 3)
	z := new(big.Int).SetBytes(hexToBytes("b5cd4a0ec5a6c9b7f3c01b3e8f0a7b0d" +
		"4a8d2fb4c1e12f9e5f3c8a7d2e1b0c9a"))
	hashTypes := []SigHashType{SigHashAll, SigHashNone, SigHashSingle,
		SigHashAll | SigHashAnyOneCanPay}

	for _, hashType := range hashTypes {
		for _, compressed := range []bool{false, true} {
			key := keys[0]

			// Pay to pubkey.
			pkScript, err := PayToPubKeyScript(key.PubKey().Serialize(compressed))
			if err != nil {
				t.Fatalf("PayToPubKeyScript: %v", err)
			}
			sigScript, class, err := SignScript(pkScript, z, hashType,
				keyDBFor(keys[:1], compressed))
			if err != nil {
				t.Errorf("pubkey %d %t: %v", hashType, compressed, err)
				continue
			}
			if class != PubKeyTy {
				t.Errorf("pubkey %d %t: got class %s", hashType,
					compressed, class)
			}
			checkSignScript(t, "pubkey", sigScript, pkScript, z)

			// Pay to pubkey hash.
			pkScript, err = PayToPubKeyHashScript(key.PubKey().Hash160(compressed))
			if err != nil {
				t.Fatalf("PayToPubKeyHashScript: %v", err)
			}
			sigScript, class, err = SignScript(pkScript, z, hashType,
				keyDBFor(keys[:1], compressed))
			if err != nil {
				t.Errorf("pubkeyhash %d %t: %v", hashType, compressed, err)
				continue
			}
			if class != PubKeyHashTy {
				t.Errorf("pubkeyhash %d %t: got class %s", hashType,
					compressed, class)
			}
			checkSignScript(t, "pubkeyhash", sigScript, pkScript, z)
		}

		// The signature ends with the hash type.
		sig := RawSignature(keys[0], z, hashType)
		if SigHashType(sig[len(sig)-1]) != hashType {
			t.Errorf("RawSignature: got hash type %#x, want %#x",
				sig[len(sig)-1], hashType)
		}
	}
}

func TestSignMultiSigScript(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 3)
	pubKeys := []*btcec.PublicKey{keys[0].PubKey(), keys[1].PubKey(), keys[2].PubKey()}
	z := big.NewInt(0x5eed)

	pkScript, err := MultiSigScript(pubKeys, 2)
	if err != nil {
		t.Fatalf("MultiSigScript: %v", err)
	}

	// Only the first and last keys are known.
	kdb := keyDBFor([]*btcec.PrivateKey{keys[0], keys[2]}, true)
	sigScript, class, err := SignScript(pkScript, z, SigHashAll, kdb)
	if err != nil {
		t.Fatalf("SignScript: %v", err)
	}
	if class != MultiSigTy {
		t.Fatalf("SignScript: got class %s", class)
	}
	if sigScript.Len() != 3 {
		t.Fatalf("SignScript: got %d commands, want a dummy and two "+
			"signatures", sigScript.Len())
	}
	checkSignScript(t, "multisig", sigScript, pkScript, z)

	// One known key isn't enough.
	_, _, err = SignScript(pkScript, z, SigHashAll, keyDBFor(keys[1:2], true))
	if err == nil {
		t.Fatalf("SignScript: signed a 2 of 3 multisig with one key")
	}
}

func TestSignScriptErrors(t *testing.T) {
	t.Parallel()

	keys := testKeys(t, 1)
	z := big.NewInt(1)

	pkScript, err := PayToPubKeyHashScript(keys[0].PubKey().Hash160(true))
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %v", err)
	}
	_, _, err = SignScript(pkScript, z, SigHashAll, mkGetKey(nil))
	if err == nil {
		t.Errorf("SignScript: signed without a key")
	}

	pkScript, err = PayToPubKeyScript(keys[0].PubKey().SerializeCompressed())
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %v", err)
	}
	_, _, err = SignScript(pkScript, z, SigHashAll, mkGetKey(nil))
	if err == nil {
		t.Errorf("SignScript: signed without a key")
	}

	nonStandard := NewScript(OpCmd(Op1))
	_, class, err := SignScript(nonStandard, z, SigHashAll, keyDBFor(keys, true))
	if err == nil {
		t.Errorf("SignScript: signed a nonstandard script")
	}
	if class != NonStandardTy {
		t.Errorf("SignScript: got class %s, want %s", class, NonStandardTy)
	}

	// A P2PKH signature made with the wrong key format doesn't spend the
	// output.
	pkScript, err = PayToPubKeyHashScript(keys[0].PubKey().Hash160(true))
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %v", err)
	}
	sigScript, err := SignatureScript(keys[0], z, SigHashAll, false)
	if err != nil {
		t.Fatalf("SignatureScript: %v", err)
	}
	if Evaluate(sigScript.Add(pkScript), z, StandardVerifyFlags) {
		t.Errorf("Evaluate: uncompressed key spent a compressed key hash")
	}
}
