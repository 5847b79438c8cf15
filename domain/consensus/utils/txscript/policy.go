// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

const (
	// StandardVerifyFlags are the script flags which are used when
	// executing scripts to enforce additional checks which are required
	// for the script to be considered standard. These checks help reduce
	// issues related to malleability and bring CHECKMULTISIG in line with
	// Bitcoin Core, which matches signatures to public keys in order.
	// Note these flags are stricter than the plain evaluation rules used
	// by Script.Evaluate.
	StandardVerifyFlags = ScriptStrictMultiSig |
		ScriptVerifyOrderedMultiSig |
		ScriptVerifyLowS
)
