package main

import (
	"bytes"
	"fmt"

	"github.com/kaspanet/scriptvm/domain/consensus/utils/txscript"
)

func disasm(conf *disasmConfig) error {
	raw, err := decodeHex("script", conf.Script)
	if err != nil {
		return err
	}

	if !conf.Serialized {
		disassembly, err := txscript.DisasmString(raw)
		if err != nil {
			return err
		}
		fmt.Println(disassembly)
		return nil
	}

	script, err := txscript.ParseScript(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	fmt.Println(script)
	return nil
}
