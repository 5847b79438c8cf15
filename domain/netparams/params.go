// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

// Params defines the version bytes that distinguish a network in base58check
// encoded addresses and private keys.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PubKeyHashAddrID is the version byte of pay-to-pubkey-hash addresses.
	PubKeyHashAddrID byte

	// ScriptHashAddrID is the version byte of pay-to-script-hash addresses.
	ScriptHashAddrID byte

	// PrivateKeyID is the version byte of WIF encoded private keys.
	PrivateKeyID byte
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:             "mainnet",
	PubKeyHashAddrID: 0x00,
	ScriptHashAddrID: 0x05,
	PrivateKeyID:     0x80,
}

// TestnetParams defines the network parameters for the test network.
var TestnetParams = Params{
	Name:             "testnet",
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,
}

// RegtestParams defines the network parameters for the regression test
// network. It shares its version bytes with the test network.
var RegtestParams = Params{
	Name:             "regtest",
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,
}

// ParamsForPrivateKeyID returns the first known network whose private key
// version byte is id, or nil if none matches.
func ParamsForPrivateKeyID(id byte) *Params {
	for _, params := range []*Params{&MainnetParams, &TestnetParams} {
		if params.PrivateKeyID == id {
			return params
		}
	}
	return nil
}
