package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kaspanet/scriptvm/btcec"
	"github.com/kaspanet/scriptvm/domain/consensus/utils/txscript"
	"golang.org/x/term"
)

func sign(conf *signConfig) error {
	digest, err := parseDigest(conf.Digest)
	if err != nil {
		return err
	}

	encodedKey := conf.PrivateKey
	if encodedKey == "" {
		encodedKey, err = readPrivateKey()
		if err != nil {
			return err
		}
	}
	privateKey, err := parsePrivateKey(encodedKey)
	if err != nil {
		return err
	}

	signature := privateKey.Sign(digest.Bytes())
	log.Debugf("Signed digest %064x", digest)

	fmt.Printf("DER signature: %x\n", signature.Serialize())
	fmt.Printf("Fixed signature: %x\n", signature.SerializeFixed())
	fmt.Printf("Script signature: %x\n",
		txscript.RawSignature(privateKey, digest, txscript.SigHashType(conf.HashType)))
	return nil
}

// parsePrivateKey accepts either a hex encoded secret or a WIF string.
func parsePrivateKey(encoded string) (*btcec.PrivateKey, error) {
	if secret, err := decodeHex("private key", encoded); err == nil {
		return btcec.PrivKeyFromBytes(secret)
	}
	privateKey, _, params, err := btcec.ParseWIF(encoded)
	if err != nil {
		return nil, err
	}
	log.Debugf("Private key is a WIF of network %s", params.Name)
	return privateKey, nil
}

// readPrivateKey prompts for the private key without echoing it, restoring
// the terminal state if interrupted.
func readPrivateKey() (string, error) {
	fmt.Print("Private key (hex or WIF): ")

	state, err := term.GetState(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	go func() {
		for range interrupt {
			_ = term.Restore(int(syscall.Stdin), state)
			os.Exit(1)
		}
	}()

	input, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(input)), nil
}
