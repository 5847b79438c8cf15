// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/kaspanet/scriptvm/util"
	"github.com/pkg/errors"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType byte

// Hash type bits from the end of a signature.
const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80
)

// RawSignature returns the DER encoded signature of the digest z by key, with
// hashType appended to it.
func RawSignature(key *btcec.PrivateKey, z *big.Int, hashType SigHashType) []byte {
	signature := key.Sign(z.Bytes())
	return append(signature.Serialize(), byte(hashType))
}

// SignatureScript creates a signature script that spends a pay-to-pubkey-hash
// output owned by key, signing the digest z. The public key is serialized in
// either a compressed or uncompressed format based on compress. This format
// must match the same format used to generate the payment address, or the
// script validation will fail.
func SignatureScript(key *btcec.PrivateKey, z *big.Int, hashType SigHashType, compress bool) (*Script, error) {
	sig := RawSignature(key, z, hashType)
	pkData := key.PubKey().Serialize(compress)

	return NewScriptBuilder().AddData(sig).AddData(pkData).Script()
}

// MultiSigSignatureScript creates a signature script that spends a multisig
// output, signing the digest z with each of the keys. The keys must be given
// in the order of their public keys in the output script.
func MultiSigSignatureScript(keys []*btcec.PrivateKey, z *big.Int, hashType SigHashType) (*Script, error) {
	// Start with the dummy element consumed by OP_CHECKMULTISIG.
	builder := NewScriptBuilder().AddOp(Op0)
	for _, key := range keys {
		builder.AddData(RawSignature(key, z, hashType))
	}
	return builder.Script()
}

// KeyDB is an interface type provided to SignScript, it encapsulates
// any user state required to get the private keys for a public key hash.
type KeyDB interface {
	GetKey(pubKeyHash []byte) (*btcec.PrivateKey, bool, error)
}

// KeyClosure implements KeyDB with a closure.
type KeyClosure func(pubKeyHash []byte) (*btcec.PrivateKey, bool, error)

// GetKey implements KeyDB by returning the result of calling the closure.
func (kc KeyClosure) GetKey(pubKeyHash []byte) (*btcec.PrivateKey, bool, error) {
	return kc(pubKeyHash)
}

// SignScript creates the signature script spending the public key script
// pkScript, signing the digest z with keys looked up in kdb. Keys are looked up
// by the Hash160 of the public key data in pkScript, or by the hash itself for
// pay-to-pubkey-hash scripts. Multisig scripts are signed by the first keys
// kdb knows about, up to the number of required signatures. The class of
// pkScript is returned alongside the signature script.
func SignScript(pkScript *Script, z *big.Int, hashType SigHashType, kdb KeyDB) (*Script, ScriptClass, error) {
	class := GetScriptClass(pkScript)
	switch class {
	case PubKeyTy:
		pubKeyHash := util.Hash160(pkScript.cmds[0].data)
		key, _, err := kdb.GetKey(pubKeyHash)
		if err != nil {
			return nil, class, err
		}
		script, err := NewScriptBuilder().
			AddData(RawSignature(key, z, hashType)).Script()
		return script, class, err

	case PubKeyHashTy:
		key, compressed, err := kdb.GetKey(pkScript.cmds[2].data)
		if err != nil {
			return nil, class, err
		}
		script, err := SignatureScript(key, z, hashType, compressed)
		return script, class, err

	case MultiSigTy:
		_, numSigs, err := CalcMultiSigStats(pkScript)
		if err != nil {
			return nil, class, err
		}
		keys := make([]*btcec.PrivateKey, 0, numSigs)
		for _, pubKey := range extractPubKeys(pkScript) {
			if len(keys) == numSigs {
				break
			}
			key, _, err := kdb.GetKey(util.Hash160(pubKey))
			if err != nil {
				continue
			}
			keys = append(keys, key)
		}
		if len(keys) < numSigs {
			return nil, class, errors.Errorf("found %d of the %d keys "+
				"required to sign the multisig script", len(keys), numSigs)
		}
		script, err := MultiSigSignatureScript(keys, z, hashType)
		return script, class, err

	default:
		return nil, class, errors.Errorf("can't sign unknown script class %s", class)
	}
}
