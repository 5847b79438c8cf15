package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/scriptvm/domain/netparams"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network"`
	Regtest bool `long:"regtest" description:"Use the regression test network"`

	ActiveNetParams *netparams.Params
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	//NetParams holds the selected network parameters. Default value is main-net.
	networkFlags.ActiveNetParams = &netparams.MainnetParams
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = &netparams.TestnetParams
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveNetParams = &netparams.RegtestParams
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, regtest) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *netparams.Params {
	return networkFlags.ActiveNetParams
}
