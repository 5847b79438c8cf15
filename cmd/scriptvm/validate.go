package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kaspanet/scriptvm/domain/consensus/utils/txscript"
	"github.com/pkg/errors"
)

// inputJSON is a single entry of the inputs file of the validate sub-command.
type inputJSON struct {
	ScriptSig    string `json:"scriptSig"`
	ScriptPubKey string `json:"scriptPubKey"`
	Digest       string `json:"digest"`
}

func validate(conf *validateConfig) error {
	inputs, err := readInputsFile(conf.InputsFile)
	if err != nil {
		return err
	}

	flags := txscript.ScriptNoFlags
	if conf.Standard {
		flags = txscript.StandardVerifyFlags
	}
	results := txscript.ValidateInputs(inputs, flags, conf.Workers)

	numValid := 0
	for i, valid := range results {
		if valid {
			numValid++
		}
		fmt.Printf("%d: %t\n", i, valid)
	}
	fmt.Printf("%d of %d inputs are valid\n", numValid, len(results))
	return nil
}

func readInputsFile(path string) ([]*txscript.InputVerification, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []inputJSON
	err = json.Unmarshal(content, &entries)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}

	inputs := make([]*txscript.InputVerification, len(entries))
	for i, entry := range entries {
		input, err := parseInput(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		inputs[i] = input
	}
	return inputs, nil
}

func parseInput(entry inputJSON) (*txscript.InputVerification, error) {
	signatureScript, err := parseRawScript("signature script", entry.ScriptSig)
	if err != nil {
		return nil, err
	}
	publicKeyScript, err := parseRawScript("public key script", entry.ScriptPubKey)
	if err != nil {
		return nil, err
	}
	digest, err := parseDigest(entry.Digest)
	if err != nil {
		return nil, err
	}
	return &txscript.InputVerification{
		SignatureScript: signatureScript,
		PublicKeyScript: publicKeyScript,
		Digest:          digest,
	}, nil
}
