package main

import (
	"fmt"

	"github.com/kaspanet/scriptvm/domain/consensus/utils/txscript"
)

func evaluate(conf *evaluateConfig) error {
	digest, err := parseDigest(conf.Digest)
	if err != nil {
		return err
	}
	signatureScript, err := parseRawScript("signature script", conf.ScriptSig)
	if err != nil {
		return err
	}
	publicKeyScript, err := parseRawScript("public key script", conf.ScriptPubKey)
	if err != nil {
		return err
	}

	flags := txscript.ScriptNoFlags
	if conf.Standard {
		flags = txscript.StandardVerifyFlags
	}
	if conf.StrictMultiSig {
		flags |= txscript.ScriptStrictMultiSig
	}
	if conf.OrderedMultiSig {
		flags |= txscript.ScriptVerifyOrderedMultiSig
	}
	if conf.LowS {
		flags |= txscript.ScriptVerifyLowS
	}

	script := signatureScript.Add(publicKeyScript)
	log.Debugf("Evaluating %s", script)

	vm, err := txscript.NewEngine(script, digest, flags)
	if err == nil {
		err = vm.Execute()
	}
	if err != nil {
		fmt.Printf("invalid: %s\n", err)
		return nil
	}
	fmt.Println("valid")
	return nil
}

func parseRawScript(name, encoded string) (*txscript.Script, error) {
	raw, err := decodeHex(name, encoded)
	if err != nil {
		return nil, err
	}
	return txscript.ParseScriptBytes(raw)
}
