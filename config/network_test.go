package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testNetwork() *Network {
	return &Network{
		ChainID: "secretdev-1",
		LCD:     "http://localhost:1317",
		RPC:     "http://localhost:26657",
	}
}

func TestNetworksAddSetsDefaultFirstTime(t *testing.T) {
	require := require.New(t)

	var networks Networks
	require.NoError(networks.Add("localnet", testNetwork()))
	require.Equal("localnet", networks.Default)
}

func TestNetworksAddRejectsDuplicateName(t *testing.T) {
	require := require.New(t)

	var networks Networks
	require.NoError(networks.Add("localnet", testNetwork()))
	require.Error(networks.Add("localnet", testNetwork()))
}

func TestNetworksAddRejectsMalformedIdentifier(t *testing.T) {
	require := require.New(t)

	var networks Networks
	require.Error(networks.Add("Local Net", testNetwork()))
}

func TestNetworksRemoveClearsDefault(t *testing.T) {
	require := require.New(t)

	var networks Networks
	require.NoError(networks.Add("localnet", testNetwork()))
	require.NoError(networks.Remove("localnet"))
	require.Empty(networks.Default)
	require.Empty(networks.All)
}

func TestNetworksSetDefaultRequiresExistingNetwork(t *testing.T) {
	require := require.New(t)

	var networks Networks
	require.Error(networks.SetDefault("nope"))
}

func TestNetworksValidateRejectsUnknownDefault(t *testing.T) {
	require := require.New(t)

	networks := Networks{Default: "mainnet"}
	require.Error(networks.Validate())
}

func TestNetworkValidateRejectsEmptyChainID(t *testing.T) {
	require := require.New(t)

	net := testNetwork()
	net.ChainID = ""
	require.Error(net.Validate())
}

func TestNetworkIsLocalRPCDetectsLoopback(t *testing.T) {
	require := require.New(t)

	require.True(testNetwork().IsLocalRPC())

	remote := testNetwork()
	remote.RPC = "https://rpc.ankr.com/http/scrt_cosmos"
	require.False(remote.IsLocalRPC())
}
