// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"
	"runtime"
	"sync"

	"github.com/kaspanet/scriptvm/infrastructure/logger"
	"github.com/kaspanet/scriptvm/util/panics"
)

// InputVerification holds what is needed to verify a single input: the
// signature script, the public key script it spends and the signature digest
// of the input.
type InputVerification struct {
	SignatureScript *Script
	PublicKeyScript *Script
	Digest          *big.Int
}

// ValidateInputs evaluates every input with the given flags, spreading the
// work over up to workers goroutines, and returns the verdict of each input at
// its index. A non-positive workers count uses one goroutine per CPU.
func ValidateInputs(inputs []*InputVerification, flags ScriptFlags, workers int) []bool {
	results := make([]bool, len(inputs))
	if len(inputs) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateInputs")
	defer onEnd()

	spawn := panics.GoroutineWrapperFunc(log)
	indexes := make(chan int)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		spawn(func() {
			defer wg.Done()
			for index := range indexes {
				results[index] = validateInput(index, inputs[index], flags)
			}
		})
	}

	for index := range inputs {
		indexes <- index
	}
	close(indexes)
	wg.Wait()

	return results
}

func validateInput(index int, input *InputVerification, flags ScriptFlags) bool {
	if input == nil || input.SignatureScript == nil || input.PublicKeyScript == nil {
		log.Debugf("Input %d is missing a script", index)
		return false
	}

	script := input.SignatureScript.Add(input.PublicKeyScript)
	valid := Evaluate(script, input.Digest, flags)
	log.Tracef("Input %d evaluated to %t", index, valid)
	return valid
}
