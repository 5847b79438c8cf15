package config

import (
	"testing"

	"github.com/kaspanet/scriptvm/domain/netparams"
	"github.com/stretchr/testify/require"
)

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		name    string
		flags   NetworkFlags
		want    *netparams.Params
		wantErr bool
	}{
		{name: "default", flags: NetworkFlags{}, want: &netparams.MainnetParams},
		{name: "testnet", flags: NetworkFlags{Testnet: true}, want: &netparams.TestnetParams},
		{name: "regtest", flags: NetworkFlags{Regtest: true}, want: &netparams.RegtestParams},
		{name: "both", flags: NetworkFlags{Testnet: true, Regtest: true}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flags := test.flags
			err := flags.ResolveNetwork(nil)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Same(t, test.want, flags.NetParams())
		})
	}
}
