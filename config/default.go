package config

// DefaultNetworks is the default config containing known Secret Network
// endpoints.
var DefaultNetworks = Networks{
	Default: "mainnet",
	All: map[string]*Network{
		// Mainnet network parameters.
		// See https://docs.scrt.network mainnet connection details.
		"mainnet": {
			ChainID: "secret-4",
			LCD:     "https://lcd.mainnet.secretsaturn.net",
			RPC:     "https://rpc.ankr.com/http/scrt_cosmos",
			Denomination: DenominationInfo{
				Symbol:   "SCRT",
				Decimals: 6,
			},
		},
		// Pulsar-3 public testnet parameters.
		"testnet": {
			ChainID: "pulsar-3",
			LCD:     "https://api.pulsar.scrttestnet.com",
			RPC:     "https://rpc.pulsar.scrttestnet.com",
			Denomination: DenominationInfo{
				Symbol:   "SCRT",
				Decimals: 6,
			},
		},
		// Local secretdev-in-docker instance, for integration tests.
		"localnet": {
			ChainID: "secretdev-1",
			LCD:     "http://localhost:1317",
			RPC:     "http://localhost:26657",
			Denomination: DenominationInfo{
				Symbol:   "SCRT",
				Decimals: 6,
			},
		},
	},
}
