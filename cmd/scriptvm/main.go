package main

import (
	"github.com/kaspanet/scriptvm/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, cfg, subConfig := parseCommandLine()

	err := initLog(cfg)
	if err != nil {
		printErrorAndExit(err)
	}
	defer logger.BackendLog.Close()

	log.Debugf("Running sub-command %s", subCmd)

	switch subCmd {
	case genKeyPairSubCmd:
		err = genKeyPair(subConfig.(*genKeyPairConfig))
	case signSubCmd:
		err = sign(subConfig.(*signConfig))
	case verifySubCmd:
		err = verify(subConfig.(*verifyConfig))
	case evaluateSubCmd:
		err = evaluate(subConfig.(*evaluateConfig))
	case disasmSubCmd:
		err = disasm(subConfig.(*disasmConfig))
	case validateSubCmd:
		err = validate(subConfig.(*validateConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}
}
