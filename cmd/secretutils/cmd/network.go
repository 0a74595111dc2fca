package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scrt-labs/secret-sdk-go/cmd/secretutils/config"
	sdkconfig "github.com/scrt-labs/secret-sdk-go/config"
)

const defaultMarker = " (*)"

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage configured network endpoints",
}

var networkListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured networks",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()

		names := make([]string, 0, len(cfg.Networks.All))
		for name := range cfg.Networks.All {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			net := cfg.Networks.All[name]
			display := name
			if cfg.Networks.Default == name {
				display += defaultMarker
			}
			fmt.Printf("%-14s chain-id=%-16s lcd=%-40s rpc=%s\n", display, net.ChainID, net.LCD, net.RPC)
		}
	},
}

var networkAddCmd = &cobra.Command{
	Use:   "add <name> <chain-id> <lcd-endpoint> <rpc-endpoint>",
	Short: "Add a new network",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		name, chainID, lcd, rpc := args[0], args[1], args[2], args[3]

		net := sdkconfig.Network{
			ChainID: chainID,
			LCD:     lcd,
			RPC:     rpc,
			Denomination: sdkconfig.DenominationInfo{
				Symbol:   "SCRT",
				Decimals: 6,
			},
		}
		cobra.CheckErr(sdkconfig.ValidateIdentifier(name))
		cobra.CheckErr(net.Validate())

		cfg := config.Global()
		cobra.CheckErr(cfg.Networks.Add(name, &net))
		cobra.CheckErr(cfg.Save())
	},
}

var networkSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default network",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Global()
		cobra.CheckErr(cfg.Networks.SetDefault(args[0]))
		cobra.CheckErr(cfg.Save())
	},
}

func init() {
	networkCmd.AddCommand(networkListCmd)
	networkCmd.AddCommand(networkAddCmd)
	networkCmd.AddCommand(networkSetDefaultCmd)
}
