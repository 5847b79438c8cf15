package main

import (
	"fmt"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/pkg/errors"
)

func verify(conf *verifyConfig) error {
	digest, err := parseDigest(conf.Digest)
	if err != nil {
		return err
	}
	publicKeyBytes, err := decodeHex("public key", conf.PublicKey)
	if err != nil {
		return err
	}
	publicKey, err := btcec.ParsePubKey(publicKeyBytes)
	if err != nil {
		return err
	}
	signatureBytes, err := decodeHex("signature", conf.Signature)
	if err != nil {
		return err
	}
	signature, err := parseSignature(signatureBytes)
	if err != nil {
		return err
	}

	if !signature.Verify(digest.Bytes(), publicKey) {
		return errors.New("signature is invalid")
	}
	fmt.Println("Signature is valid")
	return nil
}

// parseSignature reads a DER signature, falling back to the fixed 64 byte
// encoding.
func parseSignature(signatureBytes []byte) (*btcec.Signature, error) {
	signature, err := btcec.ParseDERSignature(signatureBytes)
	if err == nil {
		return signature, nil
	}
	if len(signatureBytes) == 2*32 {
		return btcec.ParseFixedSignature(signatureBytes)
	}
	return nil, err
}
