package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func decodeHex(name, value string) ([]byte, error) {
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not valid hex", name)
	}
	return decoded, nil
}

// parseDigest reads a hex encoded signature digest as a big-endian integer.
func parseDigest(value string) (*big.Int, error) {
	digestBytes, err := decodeHex("digest", value)
	if err != nil {
		return nil, err
	}
	if len(digestBytes) > 32 {
		return nil, errors.Errorf("digest is %d bytes long, expected at "+
			"most 32", len(digestBytes))
	}
	return new(big.Int).SetBytes(digestBytes), nil
}
