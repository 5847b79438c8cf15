// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcec

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/scriptvm/domain/netparams"
	"github.com/pkg/errors"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// compressMagic is appended to the WIF payload of keys whose public key is
// serialized in compressed form.
const compressMagic byte = 0x01

// PrivateKey wraps a secret scalar e in [1, N-1] along with its public key
// P = e*G.
type PrivateKey struct {
	d      *big.Int
	pubKey *PublicKey
}

// NewPrivateKey returns the private key for the secret e. It fails with
// ErrRange unless 1 <= e < N.
func NewPrivateKey(secret *big.Int) (*PrivateKey, error) {
	if secret.Sign() <= 0 || secret.Cmp(secp256k1.n) >= 0 {
		return nil, makeError(ErrRange, "private key secret not in range [1, N-1]")
	}
	d := new(big.Int).Set(secret)
	point := secp256k1.g.ScalarMul(d)
	return &PrivateKey{d: d, pubKey: &PublicKey{point: point}}, nil
}

// PrivKeyFromBytes returns the private key for the big-endian secret pk.
func PrivKeyFromBytes(pk []byte) (*PrivateKey, error) {
	if len(pk) > PrivKeyBytesLen {
		return nil, makeError(ErrInvalidEncoding, fmt.Sprintf("private key is %d bytes, "+
			"expected at most %d", len(pk), PrivKeyBytesLen))
	}
	return NewPrivateKey(new(big.Int).SetBytes(pk))
}

// GeneratePrivateKey returns a private key with a secret drawn uniformly from
// [1, N-1] using crypto/rand.
func GeneratePrivateKey() (*PrivateKey, error) {
	max := new(big.Int).Sub(secp256k1.n, one)
	d, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	key, err := NewPrivateKey(d.Add(d, one))
	if err != nil {
		return nil, err
	}
	log.Debugf("Generated a new private key for public key %s", key.pubKey)
	return key, nil
}

// PubKey returns the PublicKey corresponding to this private key.
func (p *PrivateKey) PubKey() *PublicKey {
	return p.pubKey
}

// Secret returns a copy of the secret scalar.
func (p *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(p.d)
}

// Sign generates a deterministic ECDSA signature of the hash, interpreted as
// a big-endian integer, using the nonce generation of RFC6979. The resulting
// signature always has a low S value.
func (p *PrivateKey) Sign(hash []byte) *Signature {
	return sign(p, hash)
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p *PrivateKey) Serialize() []byte {
	return bigIntTo32Bytes(p.d)
}

// WIF returns the Wallet Import Format encoding of the key for the given
// network. When compressed is set the key is marked as one whose public key
// is serialized in compressed form.
func (p *PrivateKey) WIF(params *netparams.Params, compressed bool) string {
	payload := p.Serialize()
	if compressed {
		payload = append(payload, compressMagic)
	}
	return base58.CheckEncode(payload, params.PrivateKeyID)
}

// ParseWIF decodes a Wallet Import Format string. It returns the key, whether
// its public key is meant to be compressed and the network it was encoded for.
func ParseWIF(wif string) (*PrivateKey, bool, *netparams.Params, error) {
	payload, version, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, false, nil, makeError(ErrInvalidEncoding, fmt.Sprintf("malformed WIF: %s", err))
	}

	params := netparams.ParamsForPrivateKeyID(version)
	if params == nil {
		return nil, false, nil, makeError(ErrInvalidEncoding, fmt.Sprintf("unknown WIF version byte %#x", version))
	}

	var compressed bool
	switch {
	case len(payload) == PrivKeyBytesLen+1 && payload[PrivKeyBytesLen] == compressMagic:
		compressed = true
		payload = payload[:PrivKeyBytesLen]
	case len(payload) == PrivKeyBytesLen:
	default:
		return nil, false, nil, makeError(ErrInvalidEncoding, fmt.Sprintf("malformed WIF payload of %d bytes",
			len(payload)))
	}

	key, err := PrivKeyFromBytes(payload)
	if err != nil {
		return nil, false, nil, err
	}
	return key, compressed, params, nil
}
