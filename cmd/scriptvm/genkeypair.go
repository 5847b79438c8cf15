package main

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// masterKeySeed is the HMAC key used to derive a master key from a BIP39
// seed.
var masterKeySeed = []byte("Bitcoin seed")

func genKeyPair(conf *genKeyPairConfig) error {
	numSources := 0
	for _, set := range []bool{conf.Secret != "", conf.Mnemonic, conf.Words != ""} {
		if set {
			numSources++
		}
	}
	if numSources > 1 {
		return errors.New("only one of --secret, --mnemonic and --words can be used")
	}

	var privateKey *btcec.PrivateKey
	var err error
	switch {
	case conf.Secret != "":
		var secret []byte
		secret, err = decodeHex("secret", conf.Secret)
		if err != nil {
			return err
		}
		privateKey, err = btcec.PrivKeyFromBytes(secret)

	case conf.Mnemonic:
		var mnemonic string
		mnemonic, err = createMnemonic()
		if err != nil {
			return err
		}
		fmt.Printf("Mnemonic:\n%s\n\n", mnemonic)
		privateKey, err = privateKeyFromMnemonic(mnemonic)

	case conf.Words != "":
		privateKey, err = privateKeyFromMnemonic(conf.Words)

	default:
		privateKey, err = btcec.GeneratePrivateKey()
	}
	if err != nil {
		return err
	}

	publicKey := privateKey.PubKey()
	params := conf.NetParams()
	log.Debugf("Generated key pair for network %s", params.Name)

	fmt.Printf("Secret: %x\n", privateKey.Serialize())
	fmt.Printf("WIF (compressed): %s\n", privateKey.WIF(params, true))
	fmt.Printf("WIF (uncompressed): %s\n", privateKey.WIF(params, false))
	fmt.Printf("Public key (compressed): %x\n", publicKey.SerializeCompressed())
	fmt.Printf("Public key (uncompressed): %x\n", publicKey.SerializeUncompressed())
	fmt.Printf("Address (compressed): %s\n", publicKey.Address(params, true))
	fmt.Printf("Address (uncompressed): %s\n", publicKey.Address(params, false))
	return nil
}

func createMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// privateKeyFromMnemonic derives the master private key of the BIP39 seed of
// mnemonic, with an empty passphrase.
func privateKeyFromMnemonic(mnemonic string) (*btcec.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	mac := hmac.New(sha512.New, masterKeySeed)
	_, err := mac.Write(seed)
	if err != nil {
		return nil, err
	}
	digest := mac.Sum(nil)

	privateKey, err := btcec.PrivKeyFromBytes(digest[:32])
	if err != nil {
		return nil, errors.Wrap(err, "mnemonic seed derives an invalid key")
	}
	return privateKey, nil
}
