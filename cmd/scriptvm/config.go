package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/scriptvm/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	genKeyPairSubCmd = "genkeypair"
	signSubCmd       = "sign"
	verifySubCmd     = "verify"
	evaluateSubCmd   = "evaluate"
	disasmSubCmd     = "disasm"
	validateSubCmd   = "validate"

	defaultLogLevel = "info"
)

type configFlags struct {
	LogDir   string `long:"logdir" description:"Directory to write log files to. Logs go to stderr when not set"`
	LogLevel string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

type genKeyPairConfig struct {
	Secret   string `long:"secret" description:"The private key secret to derive the key pair from (encoded in hex)"`
	Mnemonic bool   `long:"mnemonic" description:"Generate a new BIP39 mnemonic and derive the key pair from it"`
	Words    string `long:"words" description:"Derive the key pair from the given BIP39 mnemonic"`
	config.NetworkFlags
}

type signConfig struct {
	PrivateKey string `long:"private-key" short:"k" description:"The private key of the signer (encoded in hex or WIF). Prompted for when omitted"`
	Digest     string `long:"digest" short:"z" description:"The signature digest to sign (encoded in hex)" required:"true"`
	HashType   uint8  `long:"hash-type" description:"The hash type byte appended to the script signature" default:"1"`
}

type verifyConfig struct {
	PublicKey string `long:"public-key" short:"p" description:"The SEC encoded public key (encoded in hex)" required:"true"`
	Digest    string `long:"digest" short:"z" description:"The signature digest (encoded in hex)" required:"true"`
	Signature string `long:"signature" short:"s" description:"The DER or 64 byte fixed signature (encoded in hex)" required:"true"`
}

type evaluateConfig struct {
	ScriptSig       string `long:"script-sig" description:"The raw signature script (encoded in hex)"`
	ScriptPubKey    string `long:"script-pubkey" description:"The raw public key script (encoded in hex)" required:"true"`
	Digest          string `long:"digest" short:"z" description:"The signature digest (encoded in hex)" default:"00"`
	Standard        bool   `long:"standard" description:"Evaluate with the standard verification flags"`
	StrictMultiSig  bool   `long:"strict-multisig" description:"Require the OP_CHECKMULTISIG dummy to be empty"`
	OrderedMultiSig bool   `long:"ordered-multisig" description:"Match multisig signatures to public keys in order"`
	LowS            bool   `long:"low-s" description:"Treat signatures with a high S value as invalid"`
}

type disasmConfig struct {
	Script     string `long:"script" short:"s" description:"The script to disassemble (encoded in hex)" required:"true"`
	Serialized bool   `long:"serialized" description:"The script is prefixed by its length as a varint"`
}

type validateConfig struct {
	InputsFile string `long:"inputs" short:"i" description:"A JSON file holding an array of {scriptSig, scriptPubKey, digest} objects (encoded in hex)" required:"true"`
	Workers    int    `long:"workers" description:"Number of goroutines validating inputs. Uses one per CPU when not positive"`
	Standard   bool   `long:"standard" description:"Validate with the standard verification flags"`
}

func parseCommandLine() (subCommand string, cfg *configFlags, subConfig interface{}) {
	cfg = &configFlags{
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	genKeyPairConf := &genKeyPairConfig{}
	parser.AddCommand(genKeyPairSubCmd, "Generates a key pair",
		"Generates a secp256k1 key pair and prints its encodings, optionally derived from a secret or a BIP39 mnemonic",
		genKeyPairConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Signs a digest",
		"Signs a signature digest with RFC6979 ECDSA and prints the signature encodings", signConf)

	verifyConf := &verifyConfig{}
	parser.AddCommand(verifySubCmd, "Verifies a signature",
		"Verifies a signature of a digest against a public key", verifyConf)

	evaluateConf := &evaluateConfig{}
	parser.AddCommand(evaluateSubCmd, "Evaluates a script",
		"Joins a signature script with a public key script and evaluates the result against a digest", evaluateConf)

	disasmConf := &disasmConfig{}
	parser.AddCommand(disasmSubCmd, "Disassembles a script",
		"Prints the disassembly of a script", disasmConf)

	validateConf := &validateConfig{}
	parser.AddCommand(validateSubCmd, "Validates a batch of inputs",
		"Evaluates every input of a JSON inputs file concurrently and prints the verdict of each", validateConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil, nil
	}

	switch parser.Command.Active.Name {
	case genKeyPairSubCmd:
		err := genKeyPairConf.ResolveNetwork(parser)
		if err != nil {
			printErrorAndExit(err)
		}
		subConfig = genKeyPairConf
	case signSubCmd:
		subConfig = signConf
	case verifySubCmd:
		subConfig = verifyConf
	case evaluateSubCmd:
		subConfig = evaluateConf
	case disasmSubCmd:
		subConfig = disasmConf
	case validateSubCmd:
		subConfig = validateConf
	}

	return parser.Command.Active.Name, cfg, subConfig
}
