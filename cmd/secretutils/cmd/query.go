package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrt-labs/secret-sdk-go/client"
	"github.com/scrt-labs/secret-sdk-go/cmd/secretutils/config"
	"github.com/scrt-labs/secret-sdk-go/seed"
)

var (
	querySeedHex string
	queryNetwork string
)

var queryCmd = &cobra.Command{
	Use:   "query <contract-address> <json-payload>",
	Short: "Run an encrypted smart query against a contract and decrypt the result",
	Long: "Seals the given JSON payload under a fresh ephemeral encryption identity, " +
		"or the seed given via --seed, runs it as a smart query against the contract, " +
		"and prints the decrypted plaintext result.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, payload := args[0], args[1]
		if !json.Valid([]byte(payload)) {
			return fmt.Errorf("payload is not valid JSON: %s", payload)
		}

		s, err := resolveSeed()
		if err != nil {
			return err
		}
		kp, err := seed.KeyPairFromSeed(s)
		if err != nil {
			return err
		}

		cfg := config.Global()
		name := queryNetwork
		if name == "" {
			name = cfg.Networks.Default
		}
		net, ok := cfg.Networks.All[name]
		if !ok {
			return fmt.Errorf("network '%s' is not configured", name)
		}

		c := client.Connect(net, kp)
		result, err := c.QuerySmart(context.Background(), contract, json.RawMessage(payload))
		if err != nil {
			return err
		}

		fmt.Println(string(result))
		return nil
	},
}

func resolveSeed() (seed.Seed, error) {
	if querySeedHex == "" {
		return seed.Generate()
	}
	raw, err := hex.DecodeString(querySeedHex)
	if err != nil {
		return seed.Seed{}, fmt.Errorf("malformed --seed: %w", err)
	}
	return seed.New(raw)
}

func init() {
	queryCmd.Flags().StringVar(&querySeedHex, "seed", "", "hex-encoded 32-byte seed (random if omitted)")
	queryCmd.Flags().StringVar(&queryNetwork, "network", "", "network name to query (default network if omitted)")
}
